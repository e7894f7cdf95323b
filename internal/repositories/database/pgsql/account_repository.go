package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger/internal/models"
	"github.com/SscSPs/bank_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `account_id, account_number, client_id, kind, balance, overdraft_limit, daily_limit, blocked,
	created_at, created_by, last_updated_at, last_updated_by`

// Constraint names from the schema migration.
const (
	accountNumberConstraint = "accounts_account_number_key"
	clientKindConstraint    = "accounts_client_id_kind_key"
)

type PgxAccountRepository struct {
	q querier
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(q querier) *PgxAccountRepository {
	return &PgxAccountRepository{q: q}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) findOne(ctx context.Context, where string, args ...any) (*domain.Account, error) {
	rows, err := r.q.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, notFoundOr(err, "failed to scan account")
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, `account_id = $1`, accountID)
}

// FindAccountByNumber retrieves an account by its customer-facing number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return r.findOne(ctx, `account_number = $1`, accountNumber)
}

// FindAccountByClientAndKind retrieves the client's account of the given kind.
func (r *PgxAccountRepository) FindAccountByClientAndKind(ctx context.Context, clientID string, kind domain.AccountKind) (*domain.Account, error) {
	return r.findOne(ctx, `client_id = $1 AND kind = $2`, clientID, string(kind))
}

// ListAccountsByClient retrieves all accounts of a client, oldest first.
func (r *PgxAccountRepository) ListAccountsByClient(ctx context.Context, clientID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE client_id = $1
		ORDER BY created_at, account_id;`

	rows, err := r.q.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for client %s: %w", clientID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts for client %s: %w", clientID, err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// AccountNumberExists reports whether an account number is already taken.
func (r *PgxAccountRepository) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1);`, accountNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account number %s: %w", accountNumber, err)
	}
	return exists, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`

	_, err := r.q.Exec(ctx, query,
		m.AccountID, m.AccountNumber, m.ClientID, string(m.Kind), m.Balance, m.OverdraftLimit, m.DailyLimit, m.Blocked,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	switch constraint := uniqueViolationConstraint(err); constraint {
	case "":
	case accountNumberConstraint:
		return fmt.Errorf("%w: %s", portsrepo.ErrAccountNumberTaken, m.AccountNumber)
	case clientKindConstraint:
		return fmt.Errorf("%w: client already has a %s account", apperrors.ErrDuplicate, m.Kind)
	default:
		return fmt.Errorf("%w: account violates %s", apperrors.ErrDuplicate, constraint)
	}
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// UpdateAccount writes balance, limits, block flag and audit fields.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET balance = $2, overdraft_limit = $3, daily_limit = $4, blocked = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1;`

	tag, err := r.q.Exec(ctx, query,
		m.AccountID, m.Balance, m.OverdraftLimit, m.DailyLimit, m.Blocked, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	return requireOneRow(tag)
}

// DeleteAccount removes an account row. Movements keep their weak references.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	return requireOneRow(tag)
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the
// rows in ascending id order. Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]*domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]*domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;`

	rows, err := r.q.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan locked account rows: %w", err)
	}

	accountsMap := make(map[string]*domain.Account, len(ms))
	for _, m := range ms {
		acc := mapping.ToDomainAccount(m)
		accountsMap[acc.AccountID] = &acc
	}

	var missing []string
	for _, id := range accountIDs {
		if _, found := accountsMap[id]; !found && !slices.Contains(missing, id) {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}
	return accountsMap, nil
}

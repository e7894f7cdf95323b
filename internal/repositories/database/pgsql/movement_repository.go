package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger/internal/models"
	"github.com/SscSPs/bank_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const movementColumns = `movement_id, origin_account_id, destination_account_id, kind, amount, fee, description,
	balance_before, balance_after, status, created_at, created_by`

type PgxMovementRepository struct {
	q querier
}

func newPgxMovementRepository(q querier) *PgxMovementRepository {
	return &PgxMovementRepository{q: q}
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

// FindMovementByID retrieves a single movement.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	rows, err := r.q.Query(ctx, `SELECT `+movementColumns+` FROM movements WHERE movement_id = $1;`, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to query movement %s: %w", movementID, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movement])
	if err != nil {
		return nil, notFoundOr(err, "failed to scan movement %s", movementID)
	}
	d := mapping.ToDomainMovement(m)
	return &d, nil
}

// ListMovementsByAccount returns the account's movements newest first. With a
// cursor only rows strictly older than it are returned.
func (r *PgxMovementRepository) ListMovementsByAccount(ctx context.Context, accountID string, limit int, after *portsrepo.MovementCursor) ([]domain.Movement, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if after == nil {
		query := `SELECT ` + movementColumns + `
			FROM movements
			WHERE origin_account_id = $1 OR destination_account_id = $1
			ORDER BY created_at DESC, movement_id DESC
			LIMIT $2;`
		rows, err = r.q.Query(ctx, query, accountID, limit)
	} else {
		query := `SELECT ` + movementColumns + `
			FROM movements
			WHERE (origin_account_id = $1 OR destination_account_id = $1)
				AND (created_at, movement_id) < ($2, $3)
			ORDER BY created_at DESC, movement_id DESC
			LIMIT $4;`
		rows, err = r.q.Query(ctx, query, accountID, after.CreatedAt, after.MovementID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query movements for account %s: %w", accountID, err)
	}

	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Movement])
	if err != nil {
		return nil, fmt.Errorf("failed to scan movements for account %s: %w", accountID, err)
	}
	return mapping.ToDomainMovementSlice(ms), nil
}

// SaveMovement inserts a movement record.
func (r *PgxMovementRepository) SaveMovement(ctx context.Context, movement domain.Movement) error {
	m := mapping.ToModelMovement(movement)
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`

	_, err := r.q.Exec(ctx, query,
		m.MovementID, m.OriginAccountID, m.DestinationAccountID, m.Kind, m.Amount, m.Fee, m.Description,
		m.BalanceBefore, m.BalanceAfter, m.Status, m.CreatedAt, m.CreatedBy,
	)
	if uniqueViolationConstraint(err) != "" {
		return fmt.Errorf("%w: movement with ID %s already exists", apperrors.ErrDuplicate, m.MovementID)
	}
	if err != nil {
		return fmt.Errorf("failed to save movement %s: %w", m.MovementID, err)
	}
	return nil
}

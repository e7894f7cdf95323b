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

const clientColumns = `client_id, name, cpf, email, phone, address, birth_date, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxClientRepository struct {
	q querier
}

func newPgxClientRepository(q querier) *PgxClientRepository {
	return &PgxClientRepository{q: q}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func (r *PgxClientRepository) findOne(ctx context.Context, where string, arg any) (*domain.Client, error) {
	rows, err := r.q.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE `+where, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query client: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Client])
	if err != nil {
		return nil, notFoundOr(err, "failed to scan client")
	}
	c := mapping.ToDomainClient(m)
	return &c, nil
}

// FindClientByID retrieves a client by its ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	return r.findOne(ctx, `client_id = $1`, clientID)
}

// FindClientByCPF retrieves a client by national tax id.
func (r *PgxClientRepository) FindClientByCPF(ctx context.Context, cpf string) (*domain.Client, error) {
	return r.findOne(ctx, `cpf = $1`, cpf)
}

// FindClientByEmail retrieves a client by email, ignoring case.
func (r *PgxClientRepository) FindClientByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.findOne(ctx, `lower(email) = lower($1)`, email)
}

// ListActiveClients retrieves active clients ordered by name.
func (r *PgxClientRepository) ListActiveClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + `
		FROM clients
		WHERE is_active = TRUE
		ORDER BY name, client_id
		LIMIT $1 OFFSET $2;`

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query active clients: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Client])
	if err != nil {
		return nil, fmt.Errorf("failed to scan active clients: %w", err)
	}
	return mapping.ToDomainClientSlice(ms), nil
}

// SaveClient inserts a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`

	_, err := r.q.Exec(ctx, query,
		m.ClientID, m.Name, m.CPF, m.Email, m.Phone, m.Address, m.BirthDate, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if constraint := uniqueViolationConstraint(err); constraint != "" {
		return fmt.Errorf("%w: client violates %s", apperrors.ErrDuplicate, constraint)
	}
	if err != nil {
		return fmt.Errorf("failed to save client %s: %w", m.ClientID, err)
	}
	return nil
}

// UpdateClient updates the mutable client fields.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, address = $5, birth_date = $6, is_active = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE client_id = $1;`

	tag, err := r.q.Exec(ctx, query,
		m.ClientID, m.Name, m.Email, m.Phone, m.Address, m.BirthDate, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if constraint := uniqueViolationConstraint(err); constraint != "" {
		return fmt.Errorf("%w: client violates %s", apperrors.ErrDuplicate, constraint)
	}
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", m.ClientID, err)
	}
	return requireOneRow(tag)
}

// DeleteClient removes a client row.
func (r *PgxClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE client_id = $1;`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client %s: %w", clientID, err)
	}
	return requireOneRow(tag)
}

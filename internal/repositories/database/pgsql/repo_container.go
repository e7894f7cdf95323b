package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger/internal/platform/resilience"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sony/gobreaker"
)

// Store is the PostgreSQL ledger store. Transactions go through a circuit
// breaker so a failing database is not hammered.
type Store struct {
	pool    *pgxpool.Pool
	breaker *gobreaker.CircuitBreaker
	repos   repoSet
}

var _ portsrepo.LedgerStore = (*Store)(nil)

type repoSet struct {
	clients   *PgxClientRepository
	accounts  *PgxAccountRepository
	movements *PgxMovementRepository
}

func newRepoSet(q querier) repoSet {
	return repoSet{
		clients:   newPgxClientRepository(q),
		accounts:  newPgxAccountRepository(q),
		movements: newPgxMovementRepository(q),
	}
}

func (r repoSet) Clients() portsrepo.ClientRepositoryFacade     { return r.clients }
func (r repoSet) Accounts() portsrepo.AccountRepositoryFacade   { return r.accounts }
func (r repoSet) Movements() portsrepo.MovementRepositoryFacade { return r.movements }

// NewStore builds the store over an open pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
		breaker: resilience.NewCircuitBreaker(resilience.BreakerSettings{
			Name:         "pgsql-ledger",
			IsSuccessful: isBusinessOutcome,
		}),
		repos: newRepoSet(pool),
	}
}

func (s *Store) Clients() portsrepo.ClientRepositoryFacade     { return s.repos.Clients() }
func (s *Store) Accounts() portsrepo.AccountRepositoryFacade   { return s.repos.Accounts() }
func (s *Store) Movements() portsrepo.MovementRepositoryFacade { return s.repos.Movements() }

// RunInTx begins a transaction, runs fn with repositories bound to it and
// commits if fn succeeds. Any error rolls everything back.
func (s *Store) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.runInTx(ctx, fn)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: database unavailable: %v", apperrors.ErrInternal, err)
	}
	return err
}

func (s *Store) runInTx(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", apperrors.ErrInternal, err)
	}
	defer func() {
		if err != nil {
			// Rollback after a failed commit returns ErrTxClosed, which is fine.
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if err = fn(ctx, newRepoSet(tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %v", apperrors.ErrInternal, err)
	}
	return nil
}

// isBusinessOutcome keeps rule violations from counting as database failures.
func isBusinessOutcome(err error) bool {
	return err == nil ||
		errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrDuplicate) ||
		errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, context.Canceled)
}

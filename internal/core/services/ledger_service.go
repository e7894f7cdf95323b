package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/platform/observability"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// errNothingToApply tells mutateAccount that the operation is a no-op and
// nothing should be written.
var errNothingToApply = errors.New("nothing to apply")

const defaultStatementPageSize = 50

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	store          portsrepo.LedgerStore
	locks          *accountLocker
	numbers        *accountNumberGenerator
	depositCeiling decimal.Decimal
	pageSize       int
	newID          func() string
}

// ServiceOption is a functional option for configuring the ledger service
type ServiceOption func(*ledgerService)

// WithMetrics records operation counters and durations.
func WithMetrics(m *observability.Metrics) ServiceOption {
	return func(s *ledgerService) {
		s.Metrics = m
	}
}

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *ledgerService) {
		s.Clock = clock
	}
}

// WithRandomSource replaces the cryptographic source used for account numbers.
func WithRandomSource(r RandomSource) ServiceOption {
	return func(s *ledgerService) {
		s.numbers.rand = r
	}
}

// WithAccountNumberRetry bounds account number allocation.
func WithAccountNumberRetry(maxAttempts int, backoff time.Duration) ServiceOption {
	return func(s *ledgerService) {
		if maxAttempts > 0 {
			s.numbers.maxAttempts = maxAttempts
		}
		s.numbers.backoff = backoff
	}
}

// WithDepositCeiling sets the largest accepted single deposit.
func WithDepositCeiling(ceiling decimal.Decimal) ServiceOption {
	return func(s *ledgerService) {
		if ceiling.IsPositive() {
			s.depositCeiling = ceiling
		}
	}
}

// WithStatementPageSize sets the statement page size used when none is requested.
func WithStatementPageSize(n int) ServiceOption {
	return func(s *ledgerService) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithIDGenerator replaces uuid.NewString for entity ids.
func WithIDGenerator(fn func() string) ServiceOption {
	return func(s *ledgerService) {
		s.newID = fn
	}
}

// NewLedgerService creates the ledger service over store.
func NewLedgerService(store portsrepo.LedgerStore, options ...ServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		store:          store,
		locks:          newAccountLocker(),
		numbers:        newAccountNumberGenerator(),
		depositCeiling: domain.DefaultDepositCeiling,
		pageSize:       defaultStatementPageSize,
		newID:          uuid.NewString,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) accountByNumber(ctx context.Context, repos portsrepo.RepositoryProvider, number string) (*domain.Account, error) {
	acc, err := repos.Accounts().FindAccountByNumber(ctx, number)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, number)
	}
	if err != nil {
		return nil, internalOr(fmt.Errorf("failed to find account %s: %w", number, err))
	}
	return acc, nil
}

func (s *ledgerService) clientByID(ctx context.Context, repos portsrepo.RepositoryProvider, clientID string) (*domain.Client, error) {
	client, err := repos.Clients().FindClientByID(ctx, clientID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrClientNotFound, clientID)
	}
	if err != nil {
		return nil, internalOr(fmt.Errorf("failed to find client %s: %w", clientID, err))
	}
	return client, nil
}

// lockedTxFunc receives the accounts reloaded for update, keyed by id.
type lockedTxFunc func(ctx context.Context, tx portsrepo.RepositoryProvider, accounts map[string]*domain.Account) error

// withLockedAccounts holds the in-process locks for ids and runs fn in one
// transaction with the rows re-read under FOR UPDATE.
func (s *ledgerService) withLockedAccounts(ctx context.Context, ids []string, fn lockedTxFunc) error {
	unlock := s.locks.Lock(ids...)
	defer unlock()

	err := s.store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.RepositoryProvider) error {
		accounts, err := tx.Accounts().FindAccountsByIDsForUpdate(ctx, lockIDs(ids...))
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.ErrAccountNotFound
		}
		if err != nil {
			return err
		}
		return fn(ctx, tx, accounts)
	})
	return internalOr(err)
}

// internalOr passes typed errors through and marks anything else, such as a
// failed write, as internal.
func internalOr(err error) error {
	switch {
	case err == nil,
		errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrInternal),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("%w: %w", apperrors.ErrInternal, err)
}

// mutation changes one locked account. It returns the movement to record, or
// nil for administrative changes that do not move money.
type mutation func(ctx context.Context, tx portsrepo.RepositoryProvider, acc *domain.Account) (*domain.MovementInput, error)

// mutateAccount applies fn to the account and persists the account and the
// movement atomically.
func (s *ledgerService) mutateAccount(ctx context.Context, number, operatorID string, fn mutation) (*domain.OperationReceipt, error) {
	acc, err := s.accountByNumber(ctx, s.store, number)
	if err != nil {
		return nil, err
	}

	receipt := &domain.OperationReceipt{}
	err = s.withLockedAccounts(ctx, []string{acc.AccountID}, func(ctx context.Context, tx portsrepo.RepositoryProvider, accounts map[string]*domain.Account) error {
		locked := accounts[acc.AccountID]
		before := locked.Balance

		in, err := fn(ctx, tx, locked)
		if errors.Is(err, errNothingToApply) {
			receipt.Account = *locked
			return nil
		}
		if err != nil {
			return err
		}

		now := s.Now()
		locked.Touch(operatorID, now)
		if err := tx.Accounts().UpdateAccount(ctx, *locked); err != nil {
			return err
		}
		receipt.Account = *locked

		if in == nil {
			return nil
		}
		in.MovementID = s.newID()
		in.BalanceBefore = before
		in.CreatedBy = operatorID
		in.Now = now
		mv := domain.NewMovement(*in)
		if err := tx.Movements().SaveMovement(ctx, mv); err != nil {
			return err
		}
		receipt.Movement = &mv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// sendFunc moves amount from src to dst and returns the fee charged to src.
type sendFunc func(src, dst *domain.Account) (decimal.Decimal, error)

// moveBetween locks both accounts in id order and applies send atomically:
// both balances and the movement are written, or nothing is.
func (s *ledgerService) moveBetween(ctx context.Context, src, dst *domain.Account, kind domain.OperationKind, amount decimal.Decimal, description, operatorID string, send sendFunc) (*domain.OperationReceipt, error) {
	if src.AccountID == dst.AccountID {
		return nil, domain.ErrSameAccount
	}

	receipt := &domain.OperationReceipt{}
	err := s.withLockedAccounts(ctx, []string{src.AccountID, dst.AccountID}, func(ctx context.Context, tx portsrepo.RepositoryProvider, accounts map[string]*domain.Account) error {
		from, to := accounts[src.AccountID], accounts[dst.AccountID]
		before := from.Balance

		fee, err := send(from, to)
		if err != nil {
			return err
		}

		now := s.Now()
		from.Touch(operatorID, now)
		to.Touch(operatorID, now)
		if err := tx.Accounts().UpdateAccount(ctx, *from); err != nil {
			return err
		}
		if err := tx.Accounts().UpdateAccount(ctx, *to); err != nil {
			return err
		}

		mv := domain.NewMovement(domain.MovementInput{
			MovementID:    s.newID(),
			Kind:          kind,
			Origin:        from,
			Destination:   to,
			Amount:        amount,
			Fee:           fee,
			Description:   description,
			BalanceBefore: before,
			CreatedBy:     operatorID,
			Now:           now,
		})
		if err := tx.Movements().SaveMovement(ctx, mv); err != nil {
			return err
		}

		receipt.Movement = &mv
		receipt.Account = *from
		counterparty := *to
		receipt.Counterparty = &counterparty
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

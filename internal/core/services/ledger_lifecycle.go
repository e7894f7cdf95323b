package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// accountBuilder creates the new account once a number has been drawn.
type accountBuilder func(id, number string) *domain.Account

// openAccount draws numbers until one is free and saves the account built
// for it. Every attempt re-checks the client in its own transaction.
func (s *ledgerService) openAccount(ctx context.Context, clientID string, kind domain.AccountKind, check func() error, build accountBuilder) (*domain.Account, error) {
	unlock := s.locks.Lock("client:" + clientID)
	defer unlock()

	var opened *domain.Account
	_, draws, err := s.numbers.allocate(ctx, func(number string) error {
		return s.store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.RepositoryProvider) error {
			client, err := s.clientByID(ctx, tx, clientID)
			if err != nil {
				return err
			}
			if !client.IsActive {
				return domain.ErrClientInactive
			}

			_, err = tx.Accounts().FindAccountByClientAndKind(ctx, clientID, kind)
			if err == nil {
				return fmt.Errorf("%w: %s", domain.ErrDuplicateAccountKind, kind)
			}
			if !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}

			if check != nil {
				if err := check(); err != nil {
					return err
				}
			}

			taken, err := tx.Accounts().AccountNumberExists(ctx, number)
			if err != nil {
				return err
			}
			if taken {
				return portsrepo.ErrAccountNumberTaken
			}

			acc := build(s.newID(), number)
			err = tx.Accounts().SaveAccount(ctx, *acc)
			switch {
			case errors.Is(err, portsrepo.ErrAccountNumberTaken):
				return err
			case errors.Is(err, apperrors.ErrDuplicate):
				return fmt.Errorf("%w: %s", domain.ErrDuplicateAccountKind, kind)
			case err != nil:
				return err
			}
			opened = acc
			return nil
		})
	})
	s.Metrics.RecordAccountNumberAttempts(draws)
	if err != nil {
		return nil, internalOr(err)
	}
	return opened, nil
}

// OpenChecking opens the client's checking account. A nil limit means the
// default overdraft limit.
func (s *ledgerService) OpenChecking(ctx context.Context, clientID string, overdraftLimit *decimal.Decimal, operatorID string) (acc *domain.Account, err error) {
	ctx, finish := s.startOperation(ctx, "open_checking", attribute.String("client.id", clientID))
	defer func() { finish(err) }()

	limit := domain.DefaultOverdraftLimit
	if overdraftLimit != nil {
		limit = *overdraftLimit
	}

	acc, err = s.openAccount(ctx, clientID, domain.KindChecking,
		func() error {
			if !domain.ValidOverdraftLimit(limit) {
				return fmt.Errorf("%w: %s", domain.ErrLimitOutOfRange, limit.StringFixed(2))
			}
			return nil
		},
		func(id, number string) *domain.Account {
			return domain.NewCheckingAccount(id, number, clientID, limit, domain.NewAuditFields(operatorID, s.Now()))
		},
	)
	if err != nil {
		s.LogError(ctx, err, "Failed to open checking account", "client_id", clientID)
		return nil, err
	}

	s.LogInfo(ctx, "Checking account opened", "client_id", clientID, "account_number", acc.AccountNumber)
	return acc, nil
}

// OpenSavings opens the client's savings account.
func (s *ledgerService) OpenSavings(ctx context.Context, clientID string, operatorID string) (acc *domain.Account, err error) {
	ctx, finish := s.startOperation(ctx, "open_savings", attribute.String("client.id", clientID))
	defer func() { finish(err) }()

	acc, err = s.openAccount(ctx, clientID, domain.KindSavings, nil, func(id, number string) *domain.Account {
		return domain.NewSavingsAccount(id, number, clientID, domain.NewAuditFields(operatorID, s.Now()))
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to open savings account", "client_id", clientID)
		return nil, err
	}

	s.LogInfo(ctx, "Savings account opened", "client_id", clientID, "account_number", acc.AccountNumber)
	return acc, nil
}

// ChangeOverdraftLimit replaces the overdraft limit of an unblocked checking account.
func (s *ledgerService) ChangeOverdraftLimit(ctx context.Context, accountNumber string, limit decimal.Decimal, operatorID string) (acc *domain.Account, err error) {
	ctx, finish := s.startOperation(ctx, "change_overdraft_limit", accountAttrs(accountNumber, limit)...)
	defer func() { finish(err) }()

	receipt, err := s.mutateAccount(ctx, accountNumber, operatorID, func(_ context.Context, _ portsrepo.RepositoryProvider, acc *domain.Account) (*domain.MovementInput, error) {
		c, err := acc.Checking()
		if err != nil {
			return nil, err
		}
		if acc.Blocked {
			return nil, domain.ErrAccountBlocked
		}
		if !domain.ValidOverdraftLimit(limit) {
			return nil, fmt.Errorf("%w: %s", domain.ErrLimitOutOfRange, limit.StringFixed(2))
		}
		return nil, c.SetOverdraftLimit(limit)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Overdraft limit changed", "account_number", accountNumber, "limit", limit.String())
	return &receipt.Account, nil
}

// BlockAccount blocks debits on the account. Blocking an already blocked
// account is rejected and leaves it blocked.
func (s *ledgerService) BlockAccount(ctx context.Context, accountNumber string, reason string, operatorID string) (acc *domain.Account, err error) {
	ctx, finish := s.startOperation(ctx, "block", attribute.String("account.number", accountNumber))
	defer func() { finish(err) }()

	receipt, err := s.mutateAccount(ctx, accountNumber, operatorID, func(_ context.Context, _ portsrepo.RepositoryProvider, acc *domain.Account) (*domain.MovementInput, error) {
		if acc.Blocked {
			return nil, domain.ErrAlreadyBlocked
		}
		acc.Block()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Account blocked", "account_number", accountNumber, "reason", reason, "operator_id", operatorID)
	return &receipt.Account, nil
}

// UnblockAccount lifts a block. The owning client must be active.
func (s *ledgerService) UnblockAccount(ctx context.Context, accountNumber string, operatorID string) (acc *domain.Account, err error) {
	ctx, finish := s.startOperation(ctx, "unblock", attribute.String("account.number", accountNumber))
	defer func() { finish(err) }()

	receipt, err := s.mutateAccount(ctx, accountNumber, operatorID, func(ctx context.Context, tx portsrepo.RepositoryProvider, acc *domain.Account) (*domain.MovementInput, error) {
		if !acc.Blocked {
			return nil, domain.ErrNotBlocked
		}
		client, err := s.clientByID(ctx, tx, acc.ClientID)
		if err != nil {
			return nil, err
		}
		if !client.IsActive {
			return nil, domain.ErrClientInactive
		}
		acc.Unblock()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Account unblocked", "account_number", accountNumber, "operator_id", operatorID)
	return &receipt.Account, nil
}

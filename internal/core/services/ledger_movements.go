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

func accountAttrs(number string, amount decimal.Decimal) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("account.number", number),
		attribute.String("amount", amount.String()),
	}
}

// Deposit credits amount to the account. Blocked accounts accept deposits.
func (s *ledgerService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, description string, operatorID string) (receipt *domain.OperationReceipt, err error) {
	ctx, finish := s.startOperation(ctx, "deposit", accountAttrs(accountNumber, amount)...)
	defer func() { finish(err) }()

	if !domain.ValidAmount(amount) {
		return nil, domain.ErrInvalidAmount
	}
	if amount.GreaterThan(s.depositCeiling) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAmountTooLarge, s.depositCeiling.StringFixed(2))
	}

	receipt, err = s.mutateAccount(ctx, accountNumber, operatorID, func(_ context.Context, _ portsrepo.RepositoryProvider, acc *domain.Account) (*domain.MovementInput, error) {
		if err := acc.Credit(amount); err != nil {
			return nil, err
		}
		return &domain.MovementInput{
			Kind:        domain.OpDeposit,
			Destination: acc,
			Amount:      amount,
			Fee:         decimal.Zero,
			Description: description,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Deposit applied", "account_number", accountNumber, "amount", amount.String(), "balance", receipt.Account.Balance.String())
	return receipt, nil
}

// Withdraw debits amount plus the account kind's withdrawal fee.
func (s *ledgerService) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, description string, operatorID string) (receipt *domain.OperationReceipt, err error) {
	ctx, finish := s.startOperation(ctx, "withdraw", accountAttrs(accountNumber, amount)...)
	defer func() { finish(err) }()

	if !domain.ValidAmount(amount) {
		return nil, domain.ErrInvalidAmount
	}

	receipt, err = s.mutateAccount(ctx, accountNumber, operatorID, func(_ context.Context, _ portsrepo.RepositoryProvider, acc *domain.Account) (*domain.MovementInput, error) {
		fee, err := withdraw(acc, amount)
		if err != nil {
			return nil, err
		}
		return &domain.MovementInput{
			Kind:        domain.OpWithdrawal,
			Origin:      acc,
			Amount:      amount,
			Fee:         fee,
			Description: description,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal applied", "account_number", accountNumber, "amount", amount.String(), "fee", receipt.Movement.Fee.String())
	return receipt, nil
}

func withdraw(acc *domain.Account, amount decimal.Decimal) (decimal.Decimal, error) {
	if c, err := acc.Checking(); err == nil {
		return c.Withdraw(amount)
	}
	sv, err := acc.Savings()
	if err != nil {
		return decimal.Zero, err
	}
	return sv.Withdraw(amount)
}

// resolvePair looks up both ends of a transfer outside any lock.
func (s *ledgerService) resolvePair(ctx context.Context, from, to string) (*domain.Account, *domain.Account, error) {
	if from == to {
		return nil, nil, domain.ErrSameAccount
	}
	src, err := s.accountByNumber(ctx, s.store, from)
	if err != nil {
		return nil, nil, err
	}
	dst, err := s.accountByNumber(ctx, s.store, to)
	if err != nil {
		return nil, nil, err
	}
	return src, dst, nil
}

func (s *ledgerService) send(ctx context.Context, op string, kind domain.OperationKind, from, to string, amount decimal.Decimal, description, operatorID string, fn sendFunc) (receipt *domain.OperationReceipt, err error) {
	ctx, finish := s.startOperation(ctx, op,
		attribute.String("account.number", from),
		attribute.String("destination.number", to),
		attribute.String("amount", amount.String()),
	)
	defer func() { finish(err) }()

	if !domain.ValidAmount(amount) {
		return nil, domain.ErrInvalidAmount
	}
	src, dst, err := s.resolvePair(ctx, from, to)
	if err != nil {
		return nil, err
	}

	receipt, err = s.moveBetween(ctx, src, dst, kind, amount, description, operatorID, fn)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transfer applied", "kind", string(kind), "from", from, "to", to, "amount", amount.String(), "fee", receipt.Movement.Fee.String())
	return receipt, nil
}

// Transfer moves amount between any two accounts, charging the origin's transfer fee.
func (s *ledgerService) Transfer(ctx context.Context, from string, to string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error) {
	return s.send(ctx, "transfer", domain.OpTransfer, from, to, amount, description, operatorID, func(src, dst *domain.Account) (decimal.Decimal, error) {
		return src.TransferTo(dst, amount)
	})
}

// Pix sends an instant transfer, charging the origin kind's fee.
func (s *ledgerService) Pix(ctx context.Context, from string, to string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error) {
	return s.send(ctx, "pix", domain.OpPix, from, to, amount, description, operatorID, func(src, dst *domain.Account) (decimal.Decimal, error) {
		return src.PixTo(dst, amount)
	})
}

// Wire sends a wire transfer, charging the origin kind's fee.
func (s *ledgerService) Wire(ctx context.Context, from string, to string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error) {
	return s.send(ctx, "wire", domain.OpWire, from, to, amount, description, operatorID, func(src, dst *domain.Account) (decimal.Decimal, error) {
		return src.WireTo(dst, amount)
	})
}

// PaperTransfer sends a paper transfer, charging the origin kind's fee.
func (s *ledgerService) PaperTransfer(ctx context.Context, from string, to string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error) {
	return s.send(ctx, "paper_transfer", domain.OpPaperTransfer, from, to, amount, description, operatorID, func(src, dst *domain.Account) (decimal.Decimal, error) {
		return src.PaperTransferTo(dst, amount)
	})
}

// TransferToChecking sweeps amount from a savings account into the same
// client's checking account. No fee is charged.
func (s *ledgerService) TransferToChecking(ctx context.Context, savingsNumber string, amount decimal.Decimal, description string, operatorID string) (receipt *domain.OperationReceipt, err error) {
	ctx, finish := s.startOperation(ctx, "transfer_to_checking", accountAttrs(savingsNumber, amount)...)
	defer func() { finish(err) }()

	if !domain.ValidAmount(amount) {
		return nil, domain.ErrInvalidAmount
	}
	src, err := s.accountByNumber(ctx, s.store, savingsNumber)
	if err != nil {
		return nil, err
	}
	if _, err := src.Savings(); err != nil {
		return nil, err
	}

	dst, err := s.store.Accounts().FindAccountByClientAndKind(ctx, src.ClientID, domain.KindChecking)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, domain.ErrNoCheckingAccount
	}
	if err != nil {
		return nil, internalOr(fmt.Errorf("failed to find checking account of client %s: %w", src.ClientID, err))
	}

	if description == "" {
		description = "Transfer to checking"
	}
	receipt, err = s.moveBetween(ctx, src, dst, domain.OpTransfer, amount, description, operatorID, func(from, to *domain.Account) (decimal.Decimal, error) {
		sv, err := from.Savings()
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.Zero, sv.TransferToChecking(to, amount)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Savings swept to checking", "from", savingsNumber, "to", dst.AccountNumber, "amount", amount.String())
	return receipt, nil
}

// ApplyInterest credits one month of interest to a savings account. When the
// interest rounds to zero nothing is written and the receipt has no movement.
func (s *ledgerService) ApplyInterest(ctx context.Context, savingsNumber string, operatorID string) (receipt *domain.OperationReceipt, err error) {
	ctx, finish := s.startOperation(ctx, "apply_interest", attribute.String("account.number", savingsNumber))
	defer func() { finish(err) }()

	receipt, err = s.mutateAccount(ctx, savingsNumber, operatorID, func(_ context.Context, _ portsrepo.RepositoryProvider, acc *domain.Account) (*domain.MovementInput, error) {
		sv, err := acc.Savings()
		if err != nil {
			return nil, err
		}
		interest := sv.AccrueInterest()
		if interest.IsZero() {
			return nil, errNothingToApply
		}
		return &domain.MovementInput{
			Kind:        domain.OpInterest,
			Destination: acc,
			Amount:      interest,
			Fee:         decimal.Zero,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if receipt.Movement == nil {
		s.LogDebug(ctx, "No interest to apply", "account_number", savingsNumber)
	} else {
		s.LogInfo(ctx, "Interest applied", "account_number", savingsNumber, "interest", receipt.Movement.Amount.String())
	}
	return receipt, nil
}

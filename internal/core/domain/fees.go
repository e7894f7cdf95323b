package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OperationKind names a balance-affecting operation. It selects the fee and
// is recorded as the kind of the resulting movement.
type OperationKind string

const (
	OpDeposit       OperationKind = "deposit"
	OpWithdrawal    OperationKind = "withdrawal"
	OpTransfer      OperationKind = "transfer"
	OpPix           OperationKind = "pix"
	OpWire          OperationKind = "wire"
	OpPaperTransfer OperationKind = "paper"
	OpInterest      OperationKind = "interest"
)

// ParseOperationKind converts a raw string into a known OperationKind.
func ParseOperationKind(s string) (OperationKind, error) {
	switch k := OperationKind(s); k {
	case OpDeposit, OpWithdrawal, OpTransfer, OpPix, OpWire, OpPaperTransfer, OpInterest:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
}

// IsDebit reports whether the operation takes money out of the account it is applied to.
func (k OperationKind) IsDebit() bool {
	switch k {
	case OpWithdrawal, OpTransfer, OpPix, OpWire, OpPaperTransfer:
		return true
	}
	return false
}

// FeeSchedule maps operation kinds to a fixed fee.
type FeeSchedule map[OperationKind]decimal.Decimal

// Fee returns the fee for kind. Kinds missing from the schedule are free.
func (s FeeSchedule) Fee(kind OperationKind) decimal.Decimal {
	if fee, ok := s[kind]; ok {
		return fee
	}
	return decimal.Zero
}

var checkingFees = FeeSchedule{
	OpWithdrawal:    decimal.RequireFromString("4.50"),
	OpTransfer:      decimal.RequireFromString("8.50"),
	OpWire:          decimal.RequireFromString("15.90"),
	OpPaperTransfer: decimal.RequireFromString("12.90"),
	OpPix:           decimal.Zero,
	OpDeposit:       decimal.Zero,
}

var savingsFees = FeeSchedule{
	OpWithdrawal:    decimal.Zero,
	OpTransfer:      decimal.RequireFromString("1.00"),
	OpWire:          decimal.RequireFromString("10.90"),
	OpPaperTransfer: decimal.RequireFromString("8.90"),
	OpPix:           decimal.Zero,
	OpDeposit:       decimal.Zero,
}

// FeesFor returns the fee schedule of an account kind.
func FeesFor(kind AccountKind) FeeSchedule {
	switch kind {
	case KindChecking:
		return checkingFees
	case KindSavings:
		return savingsFees
	}
	return FeeSchedule{}
}

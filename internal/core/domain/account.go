package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountKind is the variant tag of an Account.
type AccountKind string

const (
	KindChecking AccountKind = "checking"
	KindSavings  AccountKind = "savings"
)

// Ledger policy values.
var (
	DefaultOverdraftLimit = decimal.NewFromInt(500)
	MaxOverdraftLimit     = decimal.NewFromInt(10000)
	CheckingDailyLimit    = decimal.NewFromInt(5000)
	SavingsDailyLimit     = decimal.NewFromInt(3000)
	DefaultDepositCeiling = decimal.NewFromInt(50000)
)

// Account is a checking or savings account. Kind-specific behaviour lives on
// the CheckingAccount and SavingsAccount views returned by Checking and Savings.
//
// Balance never drops below -OverdraftLimit, and OverdraftLimit is always
// zero for savings.
type Account struct {
	AccountID      string          `json:"accountID"`
	AccountNumber  string          `json:"accountNumber"` // NNNNN-D, immutable
	ClientID       string          `json:"clientID"`
	Kind           AccountKind     `json:"kind"`
	Balance        decimal.Decimal `json:"balance"`
	OverdraftLimit decimal.Decimal `json:"overdraftLimit"`
	DailyLimit     decimal.Decimal `json:"dailyLimit"` // single-operation ceiling
	Blocked        bool            `json:"blocked"`
	AuditFields
}

// NewCheckingAccount builds an unblocked checking account with a zero balance.
func NewCheckingAccount(accountID, number, clientID string, overdraftLimit decimal.Decimal, audit AuditFields) *Account {
	return &Account{
		AccountID:      accountID,
		AccountNumber:  number,
		ClientID:       clientID,
		Kind:           KindChecking,
		Balance:        decimal.Zero,
		OverdraftLimit: overdraftLimit,
		DailyLimit:     CheckingDailyLimit,
		AuditFields:    audit,
	}
}

// NewSavingsAccount builds an unblocked savings account with a zero balance.
func NewSavingsAccount(accountID, number, clientID string, audit AuditFields) *Account {
	return &Account{
		AccountID:      accountID,
		AccountNumber:  number,
		ClientID:       clientID,
		Kind:           KindSavings,
		Balance:        decimal.Zero,
		OverdraftLimit: decimal.Zero,
		DailyLimit:     SavingsDailyLimit,
		AuditFields:    audit,
	}
}

// AvailableBalance is the most that can be debited right now.
func (a *Account) AvailableBalance() decimal.Decimal {
	if a.Kind == KindChecking {
		return a.Balance.Add(a.OverdraftLimit)
	}
	return a.Balance
}

// Fee returns the fixed fee this account pays for kind.
func (a *Account) Fee(kind OperationKind) decimal.Decimal {
	return FeesFor(a.Kind).Fee(kind)
}

// ValidAmount reports whether amount is positive and expressed in whole cents.
func ValidAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(2))
}

// Credit adds amount to the balance. Blocked accounts can still be credited.
func (a *Account) Credit(amount decimal.Decimal) error {
	if !ValidAmount(amount) {
		return ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Debit subtracts amount from the balance.
func (a *Account) Debit(amount decimal.Decimal) error {
	if !ValidAmount(amount) {
		return ErrInvalidAmount
	}
	if a.Blocked {
		return ErrAccountBlocked
	}
	if available := a.AvailableBalance(); available.LessThan(amount) {
		return fmt.Errorf("%w: available %s, required %s", ErrInsufficientFunds, available.StringFixed(2), amount.StringFixed(2))
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// Block and Unblock toggle the block flag; neither re-validates funds.
func (a *Account) Block()   { a.Blocked = true }
func (a *Account) Unblock() { a.Blocked = false }

// ExceedsDailyLimit reports whether a single operation of amount is over the ceiling.
func (a *Account) ExceedsDailyLimit(amount decimal.Decimal) bool {
	return amount.GreaterThan(a.DailyLimit)
}

// TransferTo moves amount to dst, charging this account's transfer fee.
func (a *Account) TransferTo(dst *Account, amount decimal.Decimal) (decimal.Decimal, error) {
	fee := a.Fee(OpTransfer)
	if err := Transfer(a, dst, amount, fee); err != nil {
		return decimal.Zero, err
	}
	return fee, nil
}

// PixTo sends an instant transfer to dst, charging this account's PIX fee.
func (a *Account) PixTo(dst *Account, amount decimal.Decimal) (decimal.Decimal, error) {
	return a.sendVia(OpPix, dst, amount)
}

// WireTo sends a wire transfer to dst, charging this account's wire fee.
func (a *Account) WireTo(dst *Account, amount decimal.Decimal) (decimal.Decimal, error) {
	return a.sendVia(OpWire, dst, amount)
}

// PaperTransferTo sends a paper transfer to dst, charging this account's paper fee.
func (a *Account) PaperTransferTo(dst *Account, amount decimal.Decimal) (decimal.Decimal, error) {
	return a.sendVia(OpPaperTransfer, dst, amount)
}

func (a *Account) sendVia(kind OperationKind, dst *Account, amount decimal.Decimal) (decimal.Decimal, error) {
	fee := a.Fee(kind)
	if err := Transfer(a, dst, amount, fee); err != nil {
		return decimal.Zero, err
	}
	return fee, nil
}

// Checking returns the checking view of the account.
func (a *Account) Checking() (CheckingAccount, error) {
	if a.Kind != KindChecking {
		return CheckingAccount{}, ErrNotAChecking
	}
	return CheckingAccount{Account: a}, nil
}

// Savings returns the savings view of the account.
func (a *Account) Savings() (SavingsAccount, error) {
	if a.Kind != KindSavings {
		return SavingsAccount{}, ErrNotASavings
	}
	return SavingsAccount{Account: a}, nil
}

// ValidOverdraftLimit reports whether limit is inside [0, MaxOverdraftLimit].
func ValidOverdraftLimit(limit decimal.Decimal) bool {
	return !limit.IsNegative() && !limit.GreaterThan(MaxOverdraftLimit) && limit.Equal(limit.Round(2))
}

// Transfer debits amount+fee from src and credits amount to dst. The fee is
// not credited anywhere. If the credit fails, src is restored.
func Transfer(src, dst *Account, amount, fee decimal.Decimal) error {
	if src.AccountID == dst.AccountID || src.AccountNumber == dst.AccountNumber {
		return ErrSameAccount
	}
	if !ValidAmount(amount) {
		return ErrInvalidAmount
	}
	before := src.Balance
	if err := src.Debit(amount.Add(fee)); err != nil {
		return err
	}
	if err := dst.Credit(amount); err != nil {
		src.Balance = before
		return err
	}
	return nil
}

package domain

import "github.com/shopspring/decimal"

// CheckingAccount is the checking view of an Account.
type CheckingAccount struct {
	*Account
}

// IsUsingOverdraft reports whether the balance is negative.
func (c CheckingAccount) IsUsingOverdraft() bool {
	return c.Balance.IsNegative()
}

// OverdraftUsage is max(0, -balance).
func (c CheckingAccount) OverdraftUsage() decimal.Decimal {
	if c.Balance.IsNegative() {
		return c.Balance.Neg()
	}
	return decimal.Zero
}

// OverdraftHeadroom is the part of the overdraft limit not yet used.
func (c CheckingAccount) OverdraftHeadroom() decimal.Decimal {
	return c.OverdraftLimit.Sub(c.OverdraftUsage())
}

// Withdraw debits amount plus the withdrawal fee. The daily limit is checked
// against amount alone.
func (c CheckingAccount) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	if c.ExceedsDailyLimit(amount) {
		return decimal.Zero, ErrDailyLimitExceeded
	}
	if !ValidAmount(amount) {
		return decimal.Zero, ErrInvalidAmount
	}
	fee := c.Fee(OpWithdrawal)
	if err := c.Debit(amount.Add(fee)); err != nil {
		return decimal.Zero, err
	}
	return fee, nil
}

// SetOverdraftLimit replaces the overdraft limit.
func (c CheckingAccount) SetOverdraftLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return ErrInvalidAmount
	}
	if limit.LessThan(c.OverdraftUsage()) {
		return ErrLimitBelowUsage
	}
	c.OverdraftLimit = limit
	return nil
}

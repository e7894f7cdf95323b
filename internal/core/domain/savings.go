package domain

import (
	"iter"

	"github.com/shopspring/decimal"
)

// SavingsMonthlyRate is the flat monthly interest rate paid on savings balances.
var SavingsMonthlyRate = decimal.RequireFromString("0.005")

// SavingsAccount is the savings view of an Account.
type SavingsAccount struct {
	*Account
}

// InterestProjection is one month of a projected interest schedule.
type InterestProjection struct {
	Month        int             `json:"month"`
	Interest     decimal.Decimal `json:"interest"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
}

// monthlyInterest rounds to cents.
func monthlyInterest(balance decimal.Decimal) decimal.Decimal {
	return balance.Mul(SavingsMonthlyRate).Round(2)
}

// MonthlyInterest is the interest the current balance would earn this month.
func (s SavingsAccount) MonthlyInterest() decimal.Decimal {
	return monthlyInterest(s.Balance)
}

// Withdraw debits amount. Savings never consult an overdraft.
func (s SavingsAccount) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	if s.ExceedsDailyLimit(amount) {
		return decimal.Zero, ErrDailyLimitExceeded
	}
	if amount.GreaterThan(s.Balance) {
		return decimal.Zero, ErrInsufficientFunds
	}
	fee := s.Fee(OpWithdrawal)
	if err := s.Debit(amount.Add(fee)); err != nil {
		return decimal.Zero, err
	}
	return fee, nil
}

// AccrueInterest credits one month of interest and returns it. A zero or
// negative result is a no-op.
func (s SavingsAccount) AccrueInterest() decimal.Decimal {
	interest := s.MonthlyInterest()
	if !interest.IsPositive() {
		return decimal.Zero
	}
	s.Balance = s.Balance.Add(interest)
	return interest
}

// ProjectInterest yields months entries of compounding at the monthly rate
// from the current balance. The account is not modified and the sequence can
// be ranged over more than once.
func (s SavingsAccount) ProjectInterest(months int) iter.Seq[InterestProjection] {
	start := s.Balance
	return func(yield func(InterestProjection) bool) {
		balance := start
		for month := 1; month <= months; month++ {
			interest := monthlyInterest(balance)
			balance = balance.Add(interest)
			if !yield(InterestProjection{Month: month, Interest: interest, BalanceAfter: balance}) {
				return
			}
		}
	}
}

// TransferToChecking sweeps amount into the client's checking account with no fee.
func (s SavingsAccount) TransferToChecking(dst *Account, amount decimal.Decimal) error {
	if dst == nil || dst.Kind != KindChecking || dst.ClientID != s.ClientID {
		return ErrNoCheckingAccount
	}
	return Transfer(s.Account, dst, amount, decimal.Zero)
}

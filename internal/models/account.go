package models

import (
	"github.com/shopspring/decimal"
)

// AccountKind is stored as text in the kind column.
type AccountKind string

const (
	Checking AccountKind = "checking"
	Savings  AccountKind = "savings"
)

// Account is the persisted form of a checking or savings account.
type Account struct {
	AccountID      string          `db:"account_id"`
	AccountNumber  string          `db:"account_number"`
	ClientID       string          `db:"client_id"`
	Kind           AccountKind     `db:"kind"`
	Balance        decimal.Decimal `db:"balance"`
	OverdraftLimit decimal.Decimal `db:"overdraft_limit"`
	DailyLimit     decimal.Decimal `db:"daily_limit"`
	Blocked        bool            `db:"blocked"`
	AuditFields
}

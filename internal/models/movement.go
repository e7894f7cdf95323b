package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement is the persisted form of a movement record. Rows are never updated.
type Movement struct {
	MovementID           string          `db:"movement_id"`
	OriginAccountID      *string         `db:"origin_account_id"`      // Nullable
	DestinationAccountID *string         `db:"destination_account_id"` // Nullable
	Kind                 string          `db:"kind"`
	Amount               decimal.Decimal `db:"amount"`
	Fee                  decimal.Decimal `db:"fee"`
	Description          string          `db:"description"`
	BalanceBefore        decimal.Decimal `db:"balance_before"`
	BalanceAfter         decimal.Decimal `db:"balance_after"`
	Status               string          `db:"status"`
	CreatedAt            time.Time       `db:"created_at"`
	CreatedBy            string          `db:"created_by"`
}

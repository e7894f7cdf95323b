package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementStatus is the lifecycle state of a movement. Only completed exists.
type MovementStatus string

const MovementCompleted MovementStatus = "completed"

// Movement is an immutable record of one balance-affecting event.
// OriginAccountID is empty for deposits and interest; DestinationAccountID is
// empty for withdrawals. BalanceBefore and BalanceAfter snapshot the account
// the record is attached to: the origin when there is one, otherwise the
// destination.
type Movement struct {
	MovementID           string          `json:"movementID"`
	OriginAccountID      string          `json:"originAccountID,omitempty"`
	DestinationAccountID string          `json:"destinationAccountID,omitempty"`
	Kind                 OperationKind   `json:"kind"`
	Amount               decimal.Decimal `json:"amount"`
	Fee                  decimal.Decimal `json:"fee"`
	Description          string          `json:"description"`
	BalanceBefore        decimal.Decimal `json:"balanceBefore"`
	BalanceAfter         decimal.Decimal `json:"balanceAfter"`
	Status               MovementStatus  `json:"status"`
	CreatedAt            time.Time       `json:"createdAt"`
	CreatedBy            string          `json:"createdBy"`
}

// MovementInput carries everything needed to record a movement.
type MovementInput struct {
	MovementID    string
	Kind          OperationKind
	Origin        *Account
	Destination   *Account
	Amount        decimal.Decimal
	Fee           decimal.Decimal
	Description   string
	BalanceBefore decimal.Decimal
	CreatedBy     string
	Now           time.Time
}

// NewMovement builds a completed movement. The after-snapshot is read from
// the attached account, so call it once the mutation has been applied.
func NewMovement(in MovementInput) Movement {
	m := Movement{
		MovementID:    in.MovementID,
		Kind:          in.Kind,
		Amount:        in.Amount,
		Fee:           in.Fee,
		Description:   in.Description,
		BalanceBefore: in.BalanceBefore,
		Status:        MovementCompleted,
		CreatedAt:     in.Now,
		CreatedBy:     in.CreatedBy,
	}
	if in.Destination != nil {
		m.DestinationAccountID = in.Destination.AccountID
		m.BalanceAfter = in.Destination.Balance
	}
	if in.Origin != nil {
		m.OriginAccountID = in.Origin.AccountID
		m.BalanceAfter = in.Origin.Balance
	}
	if m.Description == "" {
		m.Description = defaultDescription(in.Kind)
	}
	return m
}

// Involves reports whether accountID is the origin or destination.
func (m Movement) Involves(accountID string) bool {
	return m.OriginAccountID == accountID || m.DestinationAccountID == accountID
}

func defaultDescription(kind OperationKind) string {
	switch kind {
	case OpDeposit:
		return "Deposit"
	case OpWithdrawal:
		return "Withdrawal"
	case OpTransfer:
		return "Transfer"
	case OpPix:
		return "PIX transfer"
	case OpWire:
		return "Wire transfer"
	case OpPaperTransfer:
		return "Paper transfer"
	case OpInterest:
		return "Savings interest"
	}
	return string(kind)
}

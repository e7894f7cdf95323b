package dto

import (
	"time"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MovementResponse defines the data returned for a movement record.
type MovementResponse struct {
	MovementID           string               `json:"movementID"`
	OriginAccountID      string               `json:"originAccountID,omitempty"`
	DestinationAccountID string               `json:"destinationAccountID,omitempty"`
	Kind                 domain.OperationKind `json:"kind"`
	Amount               decimal.Decimal      `json:"amount"`
	Fee                  decimal.Decimal      `json:"fee"`
	Description          string               `json:"description"`
	BalanceBefore        decimal.Decimal      `json:"balanceBefore"`
	BalanceAfter         decimal.Decimal      `json:"balanceAfter"`
	Status               string               `json:"status"`
	CreatedAt            time.Time            `json:"createdAt"`
}

// ToMovementResponse converts a domain.Movement to MovementResponse DTO
func ToMovementResponse(m domain.Movement) MovementResponse {
	return MovementResponse{
		MovementID:           m.MovementID,
		OriginAccountID:      m.OriginAccountID,
		DestinationAccountID: m.DestinationAccountID,
		Kind:                 m.Kind,
		Amount:               m.Amount,
		Fee:                  m.Fee,
		Description:          m.Description,
		BalanceBefore:        m.BalanceBefore,
		BalanceAfter:         m.BalanceAfter,
		Status:               string(m.Status),
		CreatedAt:            m.CreatedAt,
	}
}

// ListMovementsParams defines query parameters for an account statement.
type ListMovementsParams struct {
	Limit     int    `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// ListMovementsResponse wraps a page of movements.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}

package mapping

import (
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/SscSPs/bank_ledger/internal/models"
)

// ToModelMovement converts a domain Movement to a model Movement.
// Empty account ids become NULL.
func ToModelMovement(d domain.Movement) models.Movement {
	return models.Movement{
		MovementID:           d.MovementID,
		OriginAccountID:      nullableString(d.OriginAccountID),
		DestinationAccountID: nullableString(d.DestinationAccountID),
		Kind:                 string(d.Kind),
		Amount:               d.Amount,
		Fee:                  d.Fee,
		Description:          d.Description,
		BalanceBefore:        d.BalanceBefore,
		BalanceAfter:         d.BalanceAfter,
		Status:               string(d.Status),
		CreatedAt:            d.CreatedAt,
		CreatedBy:            d.CreatedBy,
	}
}

// ToDomainMovement converts a model Movement to a domain Movement
func ToDomainMovement(m models.Movement) domain.Movement {
	return domain.Movement{
		MovementID:           m.MovementID,
		OriginAccountID:      stringOrEmpty(m.OriginAccountID),
		DestinationAccountID: stringOrEmpty(m.DestinationAccountID),
		Kind:                 domain.OperationKind(m.Kind),
		Amount:               m.Amount,
		Fee:                  m.Fee,
		Description:          m.Description,
		BalanceBefore:        m.BalanceBefore,
		BalanceAfter:         m.BalanceAfter,
		Status:               domain.MovementStatus(m.Status),
		CreatedAt:            m.CreatedAt,
		CreatedBy:            m.CreatedBy,
	}
}

// ToDomainMovementSlice converts a slice of model Movements to a slice of domain Movements
func ToDomainMovementSlice(ms []models.Movement) []domain.Movement {
	ds := make([]domain.Movement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

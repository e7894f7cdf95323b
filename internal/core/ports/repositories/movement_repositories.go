package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
)

// MovementCursor marks the last movement of a previous page.
type MovementCursor struct {
	CreatedAt  time.Time
	MovementID string
}

// MovementReader defines read operations for movement records
type MovementReader interface {
	// FindMovementByID retrieves a single movement.
	FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// ListMovementsByAccount returns movements where the account is origin or
	// destination, newest first, strictly after the cursor when one is given.
	ListMovementsByAccount(ctx context.Context, accountID string, limit int, after *MovementCursor) ([]domain.Movement, error)
}

// MovementWriter defines write operations for movement records. Movements are
// never updated or deleted.
type MovementWriter interface {
	SaveMovement(ctx context.Context, movement domain.Movement) error
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}

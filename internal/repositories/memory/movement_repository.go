package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
)

type movementRepo struct {
	v view
}

var _ portsrepo.MovementRepositoryFacade = (*movementRepo)(nil)

func (r *movementRepo) FindMovementByID(_ context.Context, movementID string) (*domain.Movement, error) {
	var found *domain.Movement
	r.v.read(func(d *dataset) {
		for _, m := range d.movements {
			if m.MovementID == movementID {
				found = &m
				return
			}
		}
	})
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (r *movementRepo) ListMovementsByAccount(_ context.Context, accountID string, limit int, after *portsrepo.MovementCursor) ([]domain.Movement, error) {
	var matches []domain.Movement
	r.v.read(func(d *dataset) {
		for _, m := range d.movements {
			if m.Involves(accountID) {
				matches = append(matches, m)
			}
		}
	})

	// Newest first, ties broken by descending id, same as the SQL ordering.
	slices.SortFunc(matches, newestFirst)

	result := []domain.Movement{}
	for _, m := range matches {
		if after != nil && !olderThan(m, *after) {
			continue
		}
		result = append(result, m)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (r *movementRepo) SaveMovement(_ context.Context, movement domain.Movement) error {
	return r.v.write(func(d *dataset, cs *changeSet) error {
		for _, m := range d.movements {
			if m.MovementID == movement.MovementID {
				return fmt.Errorf("%w: movement with ID %s already exists", apperrors.ErrDuplicate, movement.MovementID)
			}
		}
		d.movements = append(d.movements, movement)
		cs.movements = append(cs.movements, movement)
		return nil
	})
}

func newestFirst(a, b domain.Movement) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.MovementID, a.MovementID)
}

// olderThan reports whether m sorts after the cursor in newest-first order.
func olderThan(m domain.Movement, cur portsrepo.MovementCursor) bool {
	if m.CreatedAt.Equal(cur.CreatedAt) {
		return m.MovementID < cur.MovementID
	}
	return m.CreatedAt.Before(cur.CreatedAt)
}

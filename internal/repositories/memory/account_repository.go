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

type accountRepo struct {
	v view
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepo)(nil)

func (r *accountRepo) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	var found *domain.Account
	r.v.read(func(d *dataset) {
		if a, ok := d.accounts[accountID]; ok {
			found = &a
		}
	})
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (r *accountRepo) FindAccountByNumber(_ context.Context, accountNumber string) (*domain.Account, error) {
	return r.findBy(func(a domain.Account) bool { return a.AccountNumber == accountNumber })
}

func (r *accountRepo) FindAccountByClientAndKind(_ context.Context, clientID string, kind domain.AccountKind) (*domain.Account, error) {
	return r.findBy(func(a domain.Account) bool { return a.ClientID == clientID && a.Kind == kind })
}

func (r *accountRepo) findBy(match func(domain.Account) bool) (*domain.Account, error) {
	var found *domain.Account
	r.v.read(func(d *dataset) {
		for _, a := range d.accounts {
			if match(a) {
				found = &a
				return
			}
		}
	})
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (r *accountRepo) ListAccountsByClient(_ context.Context, clientID string) ([]domain.Account, error) {
	accounts := []domain.Account{}
	r.v.read(func(d *dataset) {
		for _, a := range d.accounts {
			if a.ClientID == clientID {
				accounts = append(accounts, a)
			}
		}
	})
	slices.SortFunc(accounts, func(a, b domain.Account) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.AccountID, b.AccountID)
	})
	return accounts, nil
}

func (r *accountRepo) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	_, err := r.FindAccountByNumber(ctx, accountNumber)
	return err == nil, nil
}

func (r *accountRepo) SaveAccount(_ context.Context, account domain.Account) error {
	return r.v.write(func(d *dataset, cs *changeSet) error {
		for id, other := range d.accounts {
			switch {
			case id == account.AccountID:
				return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
			case other.AccountNumber == account.AccountNumber:
				return fmt.Errorf("%w: %s", portsrepo.ErrAccountNumberTaken, account.AccountNumber)
			case other.ClientID == account.ClientID && other.Kind == account.Kind:
				return fmt.Errorf("%w: client already has a %s account", apperrors.ErrDuplicate, account.Kind)
			}
		}
		d.accounts[account.AccountID] = account
		cs.accounts[account.AccountID] = struct{}{}
		return nil
	})
}

func (r *accountRepo) UpdateAccount(_ context.Context, account domain.Account) error {
	return r.v.write(func(d *dataset, cs *changeSet) error {
		current, ok := d.accounts[account.AccountID]
		if !ok {
			return apperrors.ErrNotFound
		}
		// Identity columns are immutable.
		current.Balance = account.Balance
		current.OverdraftLimit = account.OverdraftLimit
		current.DailyLimit = account.DailyLimit
		current.Blocked = account.Blocked
		current.LastUpdatedAt = account.LastUpdatedAt
		current.LastUpdatedBy = account.LastUpdatedBy
		d.accounts[account.AccountID] = current
		cs.accounts[account.AccountID] = struct{}{}
		return nil
	})
}

func (r *accountRepo) DeleteAccount(_ context.Context, accountID string) error {
	return r.v.write(func(d *dataset, cs *changeSet) error {
		if _, ok := d.accounts[accountID]; !ok {
			return apperrors.ErrNotFound
		}
		delete(d.accounts, accountID)
		cs.accounts[accountID] = struct{}{}
		return nil
	})
}

// FindAccountsByIDsForUpdate returns copies of the requested accounts. Row
// locking is implicit since transactions on this store never overlap.
func (r *accountRepo) FindAccountsByIDsForUpdate(_ context.Context, accountIDs []string) (map[string]*domain.Account, error) {
	result := make(map[string]*domain.Account, len(accountIDs))
	var missing []string
	r.v.read(func(d *dataset) {
		for _, id := range accountIDs {
			if a, ok := d.accounts[id]; ok {
				result[id] = &a
			} else {
				missing = append(missing, id)
			}
		}
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}
	return result, nil
}

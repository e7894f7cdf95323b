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

type clientRepo struct {
	v view
}

var _ portsrepo.ClientRepositoryFacade = (*clientRepo)(nil)

func (r *clientRepo) FindClientByID(_ context.Context, clientID string) (*domain.Client, error) {
	var found *domain.Client
	r.v.read(func(d *dataset) {
		if c, ok := d.clients[clientID]; ok {
			found = &c
		}
	})
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (r *clientRepo) FindClientByCPF(_ context.Context, cpf string) (*domain.Client, error) {
	return r.findBy(func(c domain.Client) bool { return c.CPF == cpf })
}

func (r *clientRepo) FindClientByEmail(_ context.Context, email string) (*domain.Client, error) {
	return r.findBy(func(c domain.Client) bool { return strings.EqualFold(c.Email, email) })
}

func (r *clientRepo) findBy(match func(domain.Client) bool) (*domain.Client, error) {
	var found *domain.Client
	r.v.read(func(d *dataset) {
		for _, c := range d.clients {
			if match(c) {
				found = &c
				return
			}
		}
	})
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (r *clientRepo) ListActiveClients(_ context.Context, limit int, offset int) ([]domain.Client, error) {
	var active []domain.Client
	r.v.read(func(d *dataset) {
		for _, c := range d.clients {
			if c.IsActive {
				active = append(active, c)
			}
		}
	})
	slices.SortFunc(active, func(a, b domain.Client) int {
		if n := strings.Compare(a.Name, b.Name); n != 0 {
			return n
		}
		return strings.Compare(a.ClientID, b.ClientID)
	})
	return page(active, limit, offset), nil
}

func (r *clientRepo) SaveClient(_ context.Context, client domain.Client) error {
	return r.v.write(func(d *dataset, cs *changeSet) error {
		if _, ok := d.clients[client.ClientID]; ok {
			return fmt.Errorf("%w: client with ID %s already exists", apperrors.ErrDuplicate, client.ClientID)
		}
		if err := checkClientUnique(d, client); err != nil {
			return err
		}
		d.clients[client.ClientID] = client
		cs.clients[client.ClientID] = struct{}{}
		return nil
	})
}

func (r *clientRepo) UpdateClient(_ context.Context, client domain.Client) error {
	return r.v.write(func(d *dataset, cs *changeSet) error {
		if _, ok := d.clients[client.ClientID]; !ok {
			return apperrors.ErrNotFound
		}
		if err := checkClientUnique(d, client); err != nil {
			return err
		}
		d.clients[client.ClientID] = client
		cs.clients[client.ClientID] = struct{}{}
		return nil
	})
}

func (r *clientRepo) DeleteClient(_ context.Context, clientID string) error {
	return r.v.write(func(d *dataset, cs *changeSet) error {
		if _, ok := d.clients[clientID]; !ok {
			return apperrors.ErrNotFound
		}
		delete(d.clients, clientID)
		cs.clients[clientID] = struct{}{}
		return nil
	})
}

// checkClientUnique mirrors the unique indexes on cpf and lower(email).
func checkClientUnique(d *dataset, client domain.Client) error {
	for id, other := range d.clients {
		if id == client.ClientID {
			continue
		}
		if other.CPF == client.CPF {
			return fmt.Errorf("%w: client with CPF already exists", apperrors.ErrDuplicate)
		}
		if strings.EqualFold(other.Email, client.Email) {
			return fmt.Errorf("%w: client with email already exists", apperrors.ErrDuplicate)
		}
	}
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

package memory

import (
	"maps"
	"slices"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
)

type dataset struct {
	clients   map[string]domain.Client
	accounts  map[string]domain.Account
	movements []domain.Movement
}

func newDataset() *dataset {
	return &dataset{
		clients:  make(map[string]domain.Client),
		accounts: make(map[string]domain.Account),
	}
}

// clone copies the maps; the values are plain structs, except the client
// birth date pointer which is never mutated in place.
func (d *dataset) clone() *dataset {
	return &dataset{
		clients:   maps.Clone(d.clients),
		accounts:  maps.Clone(d.accounts),
		movements: slices.Clone(d.movements),
	}
}

// changeSet records which rows a transaction wrote.
type changeSet struct {
	clients   map[string]struct{}
	accounts  map[string]struct{}
	movements []domain.Movement
}

func newChangeSet() *changeSet {
	return &changeSet{
		clients:  make(map[string]struct{}),
		accounts: make(map[string]struct{}),
	}
}

// apply copies the rows named in cs from src into d. A row missing from src
// was deleted by the transaction.
func (d *dataset) apply(src *dataset, cs *changeSet) {
	for id := range cs.clients {
		if c, ok := src.clients[id]; ok {
			d.clients[id] = c
		} else {
			delete(d.clients, id)
		}
	}
	for id := range cs.accounts {
		if a, ok := src.accounts[id]; ok {
			d.accounts[id] = a
		} else {
			delete(d.accounts, id)
		}
	}
	d.movements = append(d.movements, cs.movements...)
}

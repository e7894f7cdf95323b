// Package memory implements the ledger store in process memory. It backs the
// service tests and STORE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
)

// Store keeps clients, accounts and movements in maps guarded by one mutex.
// Transactions run one at a time against a private copy of the data and
// publish only the rows they touched when they commit.
type Store struct {
	mu   sync.RWMutex
	data *dataset

	txMu sync.Mutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

var _ portsrepo.LedgerStore = (*Store)(nil)

func (s *Store) Clients() portsrepo.ClientRepositoryFacade     { return &clientRepo{v: s.autocommit()} }
func (s *Store) Accounts() portsrepo.AccountRepositoryFacade   { return &accountRepo{v: s.autocommit()} }
func (s *Store) Movements() portsrepo.MovementRepositoryFacade { return &movementRepo{v: s.autocommit()} }

// RunInTx runs fn against a snapshot. Writes become visible to others only
// when fn returns nil; otherwise the snapshot is dropped.
func (s *Store) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	tx := &txView{data: snapshot, changes: newChangeSet()}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	s.mu.Lock()
	s.data.apply(snapshot, tx.changes)
	s.mu.Unlock()
	return nil
}

// view is the data a repository operates on together with its locking.
type view interface {
	read(func(*dataset))
	write(func(*dataset, *changeSet) error) error
}

type autocommitView struct{ s *Store }

func (s *Store) autocommit() view { return autocommitView{s: s} }

func (v autocommitView) read(fn func(*dataset)) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	fn(v.s.data)
}

func (v autocommitView) write(fn func(*dataset, *changeSet) error) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.data, newChangeSet())
}

// txView is the repository provider handed to a TxFunc. It is only used by
// the goroutine running the transaction.
type txView struct {
	data    *dataset
	changes *changeSet
}

func (t *txView) read(fn func(*dataset)) { fn(t.data) }

func (t *txView) write(fn func(*dataset, *changeSet) error) error {
	return fn(t.data, t.changes)
}

func (t *txView) Clients() portsrepo.ClientRepositoryFacade     { return &clientRepo{v: t} }
func (t *txView) Accounts() portsrepo.AccountRepositoryFacade   { return &accountRepo{v: t} }
func (t *txView) Movements() portsrepo.MovementRepositoryFacade { return &movementRepo{v: t} }

package services

import (
	"slices"
	"sync"
)

// accountLocker hands out one mutex per key. Entries are reference counted
// and dropped once nobody holds or waits for them.
type accountLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func newAccountLocker() *accountLocker {
	return &accountLocker{locks: make(map[string]*keyLock)}
}

// lockIDs returns the keys sorted and without duplicates. Acquiring in this
// order keeps two-account operations from deadlocking.
func lockIDs(keys ...string) []string {
	ids := slices.Clone(keys)
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Lock acquires every key in sorted order and returns the release function.
func (l *accountLocker) Lock(keys ...string) (unlock func()) {
	ids := lockIDs(keys...)
	held := make([]*keyLock, 0, len(ids))
	for _, id := range ids {
		kl := l.acquire(id)
		kl.mu.Lock()
		held = append(held, kl)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			l.release(ids[i])
		}
	}
}

func (l *accountLocker) acquire(id string) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl, ok := l.locks[id]
	if !ok {
		kl = &keyLock{}
		l.locks[id] = kl
	}
	kl.refs++
	return kl
}

func (l *accountLocker) release(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if kl, ok := l.locks[id]; ok {
		kl.refs--
		if kl.refs == 0 {
			delete(l.locks, id)
		}
	}
}

// size reports how many keys are currently tracked.
func (l *accountLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

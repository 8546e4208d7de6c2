package service

import (
	"sync"
)

// itemLocks serializes in-process decisions per item. The database
// transaction is still the authoritative exclusion; holding the item lock
// across the decision keeps concurrent approvals from burning serialization
// retries and makes InsufficientStock the failure a loser observes.
type itemLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newItemLocks() *itemLocks {
	return &itemLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *itemLocks) lock(itemID string) (unlock func()) {
	l.mu.Lock()
	m, ok := l.locks[itemID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[itemID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

package lock

import (
	"context"
	"fmt"
	"sync"
)

// KeyedLocker serializes work per owner within one process.
// Use the Redis owner lock when several replicas share a database.
type KeyedLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewKeyedLocker creates a new KeyedLocker.
func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{slots: make(map[string]*slot)}
}

// Lock blocks until ownerID is free or ctx is done.
func (l *KeyedLocker) Lock(ctx context.Context, ownerID string) (func(), error) {
	s := l.acquireSlot(ownerID)

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.releaseSlot(ownerID, s)
		return nil, fmt.Errorf("lock owner %s: %w", ownerID, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.releaseSlot(ownerID, s)
		})
	}, nil
}

func (l *KeyedLocker) acquireSlot(ownerID string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[ownerID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[ownerID] = s
	}
	s.refs++
	return s
}

func (l *KeyedLocker) releaseSlot(ownerID string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, ownerID)
	}
}

// Len returns the number of owners currently locked or waited on.
func (l *KeyedLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

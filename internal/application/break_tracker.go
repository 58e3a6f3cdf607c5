package application

import (
	"sync"
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
)

// BreakTracker keeps at most one open break per user on top of a BreakStore.
type BreakTracker struct {
	store ports.BreakStore
	locks keyedMutex
}

func NewBreakTracker(store ports.BreakStore) *BreakTracker {
	return &BreakTracker{store: store}
}

// Start opens a break; an already open break is overwritten.
func (t *BreakTracker) Start(userID domain.UserID, now time.Time) {
	unlock := t.locks.lock(userID)
	defer unlock()

	t.store.Set(userID, now)
}

// End closes the user's break and returns how long it lasted.
func (t *BreakTracker) End(userID domain.UserID, now time.Time) (time.Duration, bool) {
	unlock := t.locks.lock(userID)
	defer unlock()

	startedAt, ok := t.store.Get(userID)
	if !ok {
		return 0, false
	}
	t.store.Delete(userID)

	return domain.BreakSession{UserID: userID, StartedAt: startedAt}.Elapsed(now), true
}

func (t *BreakTracker) Open(userID domain.UserID) (domain.BreakSession, bool) {
	unlock := t.locks.lock(userID)
	defer unlock()

	startedAt, ok := t.store.Get(userID)
	if !ok {
		return domain.BreakSession{}, false
	}
	return domain.BreakSession{UserID: userID, StartedAt: startedAt}, true
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[domain.UserID]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key domain.UserID) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[domain.UserID]*refMutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()

		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

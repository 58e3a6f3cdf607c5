package memory

import (
	"sync"
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
)

type Store struct {
	mu     sync.RWMutex
	starts map[domain.UserID]time.Time
}

var _ ports.BreakStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{starts: map[domain.UserID]time.Time{}}
}

func (s *Store) Get(userID domain.UserID) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	startedAt, ok := s.starts[userID]
	return startedAt, ok
}

func (s *Store) Set(userID domain.UserID, startedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.starts[userID] = startedAt
}

func (s *Store) Delete(userID domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.starts, userID)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.starts)
}

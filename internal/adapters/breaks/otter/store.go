package otter

import (
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
	"github.com/maypok86/otter/v2"
)

const (
	defaultMaxOpenBreaks = 10_000
	// DefaultTTL drops breaks nobody closed; no real break spans a full shift.
	DefaultTTL = 16 * time.Hour
)

// Store is a bounded BreakStore whose entries expire after a fixed time.
type Store struct {
	cache *otter.Cache[domain.UserID, time.Time]
}

var _ ports.BreakStore = (*Store)(nil)

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Store{
		cache: otter.Must(&otter.Options[domain.UserID, time.Time]{
			MaximumSize:      defaultMaxOpenBreaks,
			ExpiryCalculator: otter.ExpiryWriting[domain.UserID, time.Time](ttl),
		}),
	}
}

func (s *Store) Get(userID domain.UserID) (time.Time, bool) {
	return s.cache.GetIfPresent(userID)
}

func (s *Store) Set(userID domain.UserID, startedAt time.Time) {
	s.cache.Set(userID, startedAt)
}

func (s *Store) Delete(userID domain.UserID) {
	s.cache.Invalidate(userID)
}

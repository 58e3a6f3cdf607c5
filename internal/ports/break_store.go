package ports

import (
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
)

// BreakStore holds the start time of each user's open break. Callers
// serialize access per user; implementations only need to be goroutine safe.
type BreakStore interface {
	Get(userID domain.UserID) (time.Time, bool)
	Set(userID domain.UserID, startedAt time.Time)
	Delete(userID domain.UserID)
}

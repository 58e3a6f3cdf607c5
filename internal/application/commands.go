package application

import (
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
)

// EventCommand is one button press coming from the chat platform.
type EventCommand struct {
	UserID      domain.UserID
	DisplayName string
	Event       domain.EventType
	// HasPriorLogin only matters for logout; callers that do not track
	// logins pass true.
	HasPriorLogin bool
	SaleReport    domain.SaleReport
}

// CheckCommand evaluates an event without touching tracked break state.
type CheckCommand struct {
	DisplayName    string
	Event          domain.EventType
	At             time.Time
	HasPriorLogin  bool
	BreakStartedAt time.Time
}

package ports

import (
	"context"
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
)

type Notification struct {
	UserID      domain.UserID
	DisplayName string
	Event       domain.EventType
	Team        string
	At          time.Time
	Result      domain.ValidationResult
	Recorded    bool
	SaleReport  domain.SaleReport
	// BreakElapsed is set only for break-end events with an open session.
	BreakElapsed *time.Duration
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

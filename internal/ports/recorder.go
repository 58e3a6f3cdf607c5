package ports

import (
	"context"
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
)

// Record is one attendance event as forwarded to the external spreadsheet.
type Record struct {
	EventID    string
	Timestamp  time.Time
	UserName   string
	Action     domain.EventType
	Team       string
	Result     domain.ValidationResult
	SaleReport domain.SaleReport
}

type Recorder interface {
	Record(ctx context.Context, record Record) error
}

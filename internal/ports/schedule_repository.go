package ports

import (
	"context"

	"github.com/bnema/attendance-cli/internal/domain"
)

type ScheduleRepository interface {
	List(ctx context.Context) ([]domain.ShiftEntry, error)
	Save(ctx context.Context, entries []domain.ShiftEntry) error
}

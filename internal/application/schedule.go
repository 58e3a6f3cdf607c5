package application

import (
	"context"
	"fmt"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
)

// LoadDirectory reads the roster and builds the lookup directory from it.
func LoadDirectory(ctx context.Context, repo ports.ScheduleRepository) (*domain.Directory, error) {
	entries, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}

	directory, err := domain.NewDirectory(entries)
	if err != nil {
		return nil, fmt.Errorf("build schedule directory: %w", err)
	}
	return directory, nil
}

// ResetSchedule replaces the stored roster with the built-in one.
func ResetSchedule(ctx context.Context, repo ports.ScheduleRepository) error {
	if err := repo.Save(ctx, domain.DefaultShiftEntries()); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

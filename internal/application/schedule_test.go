package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoadDirectoryResolvesStoredRoster(t *testing.T) {
	t.Parallel()

	repo := mocks.NewMockScheduleRepository(t)
	repo.EXPECT().List(mock.Anything).Return([]domain.ShiftEntry{
		{Shift: domain.ShiftDefinition{Key: "ana", Start: 22 * 60, End: 6 * 60, Team: "NIGHT"}, Aliases: []string{"Anita"}},
	}, nil).Once()

	directory, err := LoadDirectory(context.Background(), repo)
	require.NoError(t, err)

	identity, ok := directory.Resolve("anita")
	require.True(t, ok)
	assert.Equal(t, "anita", identity.MatchedKey)
	assert.Equal(t, "NIGHT", identity.Shift.Team)
}

func TestLoadDirectoryWrapsErrors(t *testing.T) {
	t.Parallel()

	repo := mocks.NewMockScheduleRepository(t)
	repo.EXPECT().List(mock.Anything).Return(nil, errors.New("disk gone")).Once()

	_, err := LoadDirectory(context.Background(), repo)
	require.ErrorContains(t, err, "load schedule: disk gone")

	dup := mocks.NewMockScheduleRepository(t)
	shift := domain.ShiftDefinition{Key: "ana", Start: 60, End: 120, Team: "T"}
	dup.EXPECT().List(mock.Anything).Return([]domain.ShiftEntry{{Shift: shift}, {Shift: shift}}, nil).Once()

	_, err = LoadDirectory(context.Background(), dup)
	require.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestResetScheduleSavesDefaults(t *testing.T) {
	t.Parallel()

	repo := mocks.NewMockScheduleRepository(t)
	repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(entries []domain.ShiftEntry) bool {
		return len(entries) == len(domain.DefaultShiftEntries())
	})).Return(nil).Once()

	require.NoError(t, ResetSchedule(context.Background(), repo))
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryResolveTiers(t *testing.T) {
	t.Parallel()

	dir, err := NewDirectory(DefaultShiftEntries())
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		wantKey string
		wantOK  bool
	}{
		{name: "exact case-insensitive", input: "  Luis T2 ", wantKey: "luis t2", wantOK: true},
		{name: "leading token substring", input: "luis.redteam", wantKey: "luis t2", wantOK: true},
		{name: "leading token inside longer word", input: "kylemartin", wantKey: "kyle t3", wantOK: true},
		{name: "shared token picks first in order", input: "someone t3", wantKey: "mariangela t3", wantOK: true},
		{name: "unresolved", input: "nobody here", wantOK: false},
		{name: "empty", input: "   ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := dir.Resolve(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, got.MatchedKey)
		})
	}
}

func TestDirectoryAliasesResolveToSameShift(t *testing.T) {
	t.Parallel()

	dir, err := NewDirectory([]ShiftEntry{
		{Shift: ShiftDefinition{Key: "Gleidys T2", Start: 390, End: 810, Team: "T2"}},
		{Shift: ShiftDefinition{Key: "Luis T2", Start: 1350, End: 390, Team: "T2"}, Aliases: []string{"Luis RedTeam"}},
	})
	require.NoError(t, err)

	byCode, ok := dir.Resolve("Luis T2")
	require.True(t, ok)
	byLabel, ok := dir.Resolve("Luis RedTeam")
	require.True(t, ok)

	assert.Equal(t, "luis t2", byCode.MatchedKey)
	assert.Equal(t, "luis redteam", byLabel.MatchedKey)
	assert.Equal(t, byCode.Shift, byLabel.Shift)
}

func TestNewDirectoryRejectsInvalidConfiguration(t *testing.T) {
	t.Parallel()

	_, err := NewDirectory([]ShiftEntry{
		{Shift: ShiftDefinition{Key: "a", Start: 600, End: 600}},
	})
	assert.ErrorIs(t, err, ErrInvalidShift)

	_, err = NewDirectory([]ShiftEntry{
		{Shift: ShiftDefinition{Key: "a", Start: 600, End: 700}},
		{Shift: ShiftDefinition{Key: "b", Start: 600, End: 700}, Aliases: []string{"A"}},
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestDirectoryTeamsAndEntriesPreserveOrder(t *testing.T) {
	t.Parallel()

	dir, err := NewDirectory(DefaultShiftEntries())
	require.NoError(t, err)

	assert.Equal(t, []string{"T1", "T2", "T3"}, dir.Teams())
	entries := dir.Entries()
	require.Len(t, entries, 9)
	assert.Equal(t, "mauricio t1", entries[0].Shift.Key)
	assert.Equal(t, "kyle t3", entries[8].Shift.Key)
}

func TestNilDirectoryResolvesNothing(t *testing.T) {
	t.Parallel()

	var dir *Directory
	_, ok := dir.Resolve("luis t2")
	assert.False(t, ok)
}

func TestNormalizeKeyFoldsUnicodeDisplayNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "  Y\u00e9rika   T2 ", want: "yerika t2"},
		{raw: "\uff59\uff45\uff52\uff49\uff4b\uff41 t2", want: "yerika t2"},
		{raw: "\U0001d40b\U0001d42e\U0001d422\U0001d42c", want: "luis"},
		{raw: "GLEIDYS\u200b", want: "gleidys"},
		{raw: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.raw), tt.raw)
	}
}

func TestDirectoryResolvesAccentedDisplayName(t *testing.T) {
	t.Parallel()

	dir, err := NewDirectory(DefaultShiftEntries())
	require.NoError(t, err)

	got, ok := dir.Resolve("Mari\u00e1ngela \u2728")
	require.True(t, ok)
	assert.Equal(t, "mariangela t3", got.MatchedKey)
}

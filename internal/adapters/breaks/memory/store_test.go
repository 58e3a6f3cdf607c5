package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSetGetDelete(t *testing.T) {
	t.Parallel()

	store := NewStore()
	at := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	_, ok := store.Get("u-1")
	assert.False(t, ok)

	store.Set("u-1", at)
	got, ok := store.Get("u-1")
	require.True(t, ok)
	assert.Equal(t, at, got)
	assert.Equal(t, 1, store.Len())

	store.Delete("u-1")
	_, ok = store.Get("u-1")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

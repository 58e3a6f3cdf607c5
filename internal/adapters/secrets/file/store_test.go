package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGetDelete(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	ctx := context.Background()
	key := "attendance/recorder_webhook"

	require.NoError(t, store.Put(ctx, key, "https://script.example/exec\n"))

	info, err := os.Stat(filepath.Join(root, key))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "https://script.example/exec", got)

	require.NoError(t, store.Delete(ctx, key))
	require.NoError(t, store.Delete(ctx, key))

	_, err = store.Get(ctx, key)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreRejectsEscapingKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	for _, key := range []string{"", "  ", "../outside", "/etc/passwd", "."} {
		_, err := store.Get(context.Background(), key)
		require.Error(t, err, key)
		assert.NotErrorIs(t, err, domain.ErrSecretNotFound, key)
	}
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Put(ctx, "k", "v"), context.Canceled)
	_, err := store.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
}

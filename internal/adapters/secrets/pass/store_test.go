package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookKey = "attendance/recorder_webhook"

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(_ context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"insert", "-m", "-f", webhookKey}, args)
			assert.Equal(t, "https://script.example/exec\n", input)
			return "", "", nil
		},
	}

	require.NoError(t, store.Put(context.Background(), webhookKey, "https://script.example/exec"))
	assert.True(t, called)
}

func TestStoreGetKeepsFirstLine(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(_ context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", webhookKey}, args)
			assert.Empty(t, input)
			return "https://script.example/exec\nowner: ops\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), webhookKey)
	require.NoError(t, err)
	assert.Equal(t, "https://script.example/exec", value)
}

func TestStoreGetMissingEntryIsNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			return "", "Error: attendance/recorder_webhook is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), webhookKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			return "", "gpg: decryption failed", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), webhookKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, webhookKey)
	assert.ErrorContains(t, err, "decryption failed")
}

func TestStoreDeleteIgnoresMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(_ context.Context, _ string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", webhookKey}, args)
			return "", "Error: attendance/recorder_webhook is not in the password store.", errors.New("exit status 1")
		},
	}

	require.NoError(t, store.Delete(context.Background(), webhookKey))
}

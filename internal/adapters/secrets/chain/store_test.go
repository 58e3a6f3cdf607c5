package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	passstore "github.com/bnema/attendance-cli/internal/adapters/secrets/pass"
	"github.com/bnema/attendance-cli/internal/domain"
	portmocks "github.com/bnema/attendance-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const webhookKey = "attendance/recorder_webhook"

func newTestChain(t *testing.T) (*Store, *portmocks.MockSecretStore, *portmocks.MockSecretStore) {
	t.Helper()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(Backend{Name: "pass", Store: primary}, Backend{Name: "file", Store: fallback})
	require.NoError(t, err)
	return store, primary, fallback
}

func notFound() error {
	return fmt.Errorf("missing: %w", domain.ErrSecretNotFound)
}

func TestNewStoreRejectsEmptyOrNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore()
	require.Error(t, err)

	_, err = NewStore(Backend{Name: "pass"})
	require.ErrorContains(t, err, "pass")
}

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestChain(t)
	primary.EXPECT().Get(mock.Anything, webhookKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), webhookKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Get(mock.Anything, webhookKey).Return("", errors.New("pass unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, webhookKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), webhookKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetAllMissingIsNotFound(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Get(mock.Anything, webhookKey).Return("", notFound()).Once()
	fallback.EXPECT().Get(mock.Anything, webhookKey).Return("", notFound()).Once()

	_, err := store.Get(context.Background(), webhookKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetTreatsUnavailablePassAsMissing(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Get(mock.Anything, webhookKey).Return("", passstore.ErrUnavailable).Once()
	fallback.EXPECT().Get(mock.Anything, webhookKey).Return("", notFound()).Once()

	_, err := store.Get(context.Background(), webhookKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetCombinesBackendFailures(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Get(mock.Anything, webhookKey).Return("", errors.New("pass failed")).Once()
	fallback.EXPECT().Get(mock.Anything, webhookKey).Return("", notFound()).Once()

	_, err := store.Get(context.Background(), webhookKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass backend: pass failed")
	assert.ErrorContains(t, err, "file backend")
}

func TestStoreGetDoesNotFallbackOnCanceledContext(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestChain(t)
	primary.EXPECT().Get(mock.Anything, webhookKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), webhookKey)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStorePutStopsAtFirstSuccess(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Put(mock.Anything, webhookKey, "url").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Put(mock.Anything, webhookKey, "url").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), webhookKey, "url"))
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestChain(t)
	primary.EXPECT().Put(mock.Anything, webhookKey, "url").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), webhookKey, "url"))
}

func TestStoreDeleteReachesEveryBackend(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Delete(mock.Anything, webhookKey).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, webhookKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), webhookKey))
}

func TestStoreDeleteFailsOnlyWhenEveryBackendFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Delete(mock.Anything, webhookKey).Return(errors.New("pass failed")).Twice()
	fallback.EXPECT().Delete(mock.Anything, webhookKey).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, webhookKey).Return(errors.New("file failed")).Once()

	require.NoError(t, store.Delete(context.Background(), webhookKey))
	require.ErrorContains(t, store.Delete(context.Background(), webhookKey), "file failed")
}

func TestStoreResolveReadsEnvironmentReference(t *testing.T) {
	t.Parallel()

	store, _, _ := newTestChain(t)
	store.getenv = func(name string) string {
		if name == "ATT_WEBHOOK" {
			return " https://script.example/exec "
		}
		return ""
	}

	value, err := store.Resolve(context.Background(), "env:ATT_WEBHOOK")
	require.NoError(t, err)
	assert.Equal(t, "https://script.example/exec", value)

	_, err = store.Resolve(context.Background(), "env:ATT_MISSING")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreResolveFallsThroughToBackends(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestChain(t)
	primary.EXPECT().Get(mock.Anything, webhookKey).Return("from-pass", nil).Once()

	value, err := store.Resolve(context.Background(), webhookKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreResolveSurfacesBrokenBackendNextToMissingOne(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Get(mock.Anything, webhookKey).Return("", errors.New("gpg: decryption failed")).Once()
	fallback.EXPECT().Get(mock.Anything, webhookKey).Return("", notFound()).Once()

	_, err := store.Resolve(context.Background(), webhookKey)
	require.ErrorContains(t, err, "decryption failed")
	assert.False(t, errors.Is(err, domain.ErrSecretNotFound))
}

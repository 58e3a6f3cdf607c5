package chain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	filestore "github.com/bnema/attendance-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/attendance-cli/internal/adapters/secrets/pass"
	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
)

// EnvPrefix marks a secret reference that is read from the environment.
const EnvPrefix = "env:"

type Backend struct {
	Name  string
	Store ports.SecretStore
}

// Store tries its backends in order. Reads stop at the first hit, writes at
// the first success, and deletes reach every backend.
type Store struct {
	backends []Backend
	getenv   func(string) string
}

var _ ports.SecretStore = (*Store)(nil)

var errNoBackends = errors.New("secret chain has no backends")

func NewStore(backends ...Backend) (*Store, error) {
	if len(backends) == 0 {
		return nil, errNoBackends
	}
	for i, b := range backends {
		if b.Store == nil {
			return nil, fmt.Errorf("secret backend %d (%s) is nil", i, b.Name)
		}
	}

	return &Store{backends: backends, getenv: os.Getenv}, nil
}

// NewPassFirstWithFileFallback prefers pass(1) and falls back to files under fileRoot.
func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStore(
		Backend{Name: "pass", Store: passstore.NewStore()},
		Backend{Name: "file", Store: filestore.NewStore(fileRoot)},
	)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var errs []error
	allMissing := true

	for _, b := range s.backends {
		value, err := b.Store.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if isContextError(err) {
			return "", err
		}
		if isMissing(err) {
			// %v keeps ErrSecretNotFound out of a combined failure.
			errs = append(errs, fmt.Errorf("%s backend: %v", b.Name, err))
			continue
		}
		allMissing = false
		errs = append(errs, fmt.Errorf("%s backend: %w", b.Name, err))
	}

	if allMissing {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}
	return "", fmt.Errorf("get secret %q: %w", key, errors.Join(errs...))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs []error

	for _, b := range s.backends {
		err := b.Store.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if isContextError(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("%s backend: %w", b.Name, err))
	}

	return fmt.Errorf("put secret %q: %w", key, errors.Join(errs...))
}

func (s *Store) Delete(ctx context.Context, key string) error {
	var errs []error

	for _, b := range s.backends {
		err := b.Store.Delete(ctx, key)
		if err == nil {
			continue
		}
		if isContextError(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("%s backend: %w", b.Name, err))
	}

	if len(errs) == len(s.backends) {
		return fmt.Errorf("delete secret %q: %w", key, errors.Join(errs...))
	}
	return nil
}

// Resolve reads a configured secret reference: "env:NAME" comes from the
// environment, anything else is a key in the chain.
func (s *Store) Resolve(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if name, ok := strings.CutPrefix(ref, EnvPrefix); ok {
		if value := strings.TrimSpace(s.getenv(name)); value != "" {
			return value, nil
		}
		return "", fmt.Errorf("environment variable %q: %w", name, domain.ErrSecretNotFound)
	}

	return s.Get(ctx, ref)
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// isMissing treats a backend that is not installed like an empty one.
func isMissing(err error) bool {
	return errors.Is(err, domain.ErrSecretNotFound) || errors.Is(err, passstore.ErrUnavailable)
}

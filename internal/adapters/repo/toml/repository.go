package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	SchedulePathKey   = "schedule.path"
	scheduleFileMode  = 0o600
	scheduleDirMode   = 0o700
	scheduleConfigDir = ".attendance"
	scheduleFileName  = "schedule.toml"
	tempFilePattern   = ".schedule-*.toml.tmp"
)

// Repository stores the shift directory in a TOML file. A missing file
// yields the built-in roster.
type Repository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ScheduleRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(SchedulePathKey)
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Repository{path: path, mu: lockForPath(path)}, nil
}

func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, scheduleConfigDir, scheduleFileName), nil
}

func (r *Repository) Path() string {
	return r.path
}

// Exists reports whether the schedule file is on disk.
func (r *Repository) Exists() bool {
	_, err := os.Stat(r.path)
	return err == nil
}

func (r *Repository) List(ctx context.Context) ([]domain.ShiftEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, found, err := r.readSchema()
	if err != nil {
		return nil, err
	}
	if !found {
		return domain.DefaultShiftEntries(), nil
	}

	entries := make([]domain.ShiftEntry, 0, len(file.Shifts))
	for i, shift := range file.Shifts {
		entry, err := fromSchema(i, shift)
		if err != nil {
			return nil, fmt.Errorf("decode schedule file: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Timezone returns the zone the schedule file pins, or "" when it does not.
func (r *Repository) Timezone(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, _, err := r.readSchema()
	if err != nil {
		return "", err
	}
	return file.Timezone, nil
}

// Save replaces the whole directory after checking it would load. A pinned
// timezone survives the rewrite.
func (r *Repository) Save(ctx context.Context, entries []domain.ShiftEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := domain.NewDirectory(entries); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	current, _, err := r.readSchema()
	if err != nil {
		return err
	}

	file := fileSchema{Timezone: current.Timezone, Shifts: make([]shiftSchema, 0, len(entries))}
	for _, entry := range entries {
		file.Shifts = append(file.Shifts, toSchema(entry))
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, false, nil
		}
		return fileSchema{}, false, fmt.Errorf("read schedule file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, false, fmt.Errorf("decode schedule file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, false, err
	}
	file.applyDefaults()

	return file, true, nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve schedule path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), scheduleDirMode); err != nil {
		return fmt.Errorf("create schedule directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode schedule file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp schedule file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp schedule file: %w", err)
	}
	if err := tempFile.Chmod(scheduleFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp schedule file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp schedule file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace schedule file: %w", err)
	}
	cleanup = false

	return nil
}

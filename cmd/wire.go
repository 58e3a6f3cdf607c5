package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/bnema/attendance-cli/internal/adapters/recorder/webhook"
	schedulerender "github.com/bnema/attendance-cli/internal/adapters/render/schedule"
	tomlrepo "github.com/bnema/attendance-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/attendance-cli/internal/adapters/secrets/chain"
	"github.com/bnema/attendance-cli/internal/application"
	"github.com/bnema/attendance-cli/internal/config"
	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/logger"
	"github.com/bnema/attendance-cli/internal/ports"
)

type app struct {
	settings         config.Settings
	schedule         *tomlrepo.Repository
	secretStore      *chainstore.Store
	log              *logger.Logger
	scheduleRenderer func(application.ScheduleView, schedulerender.RenderOptions) (string, error)
	now              func() time.Time
}

func wireApp(stderr io.Writer) (*app, error) {
	v, err := config.New("")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	settings, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
		Writer: stderr,
	})

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire schedule repository: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(filepath.Join(settings.Dir, "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	return &app{
		settings:         settings,
		schedule:         repo,
		secretStore:      secretStore,
		log:              log,
		scheduleRenderer: schedulerender.Render,
		now:              time.Now,
	}, nil
}

// location prefers a timezone pinned in the schedule file over config.
func (a *app) location(ctx context.Context) (*time.Location, error) {
	zone, err := a.schedule.Timezone(ctx)
	if err != nil {
		return nil, err
	}
	if zone == "" {
		return a.settings.Location(), nil
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("schedule timezone %q: %w", zone, err)
	}
	return loc, nil
}

type dispatcherDeps struct {
	store    ports.BreakStore
	recorder ports.Recorder
	notifier ports.Notifier
}

func (a *app) newDispatcher(ctx context.Context, deps dispatcherDeps) (*application.Dispatcher, error) {
	directory, err := application.LoadDirectory(ctx, a.schedule)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.schedule.Path(), err)
	}
	loc, err := a.location(ctx)
	if err != nil {
		return nil, err
	}

	return application.NewDispatcher(
		directory,
		application.NewBreakTracker(deps.store),
		deps.recorder,
		deps.notifier,
		application.DispatcherConfig{
			Policy:   a.settings.Policy,
			Location: loc,
			Clock:    clockFunc(a.now),
			Logger:   logger.Named("dispatcher"),
		},
	), nil
}

// resolveURL returns the configured URL, or the secret behind ref. A missing
// secret disables the integration instead of failing.
func (a *app) resolveURL(ctx context.Context, direct, ref string) (string, error) {
	if direct != "" {
		return direct, nil
	}
	if ref == "" {
		return "", nil
	}

	url, err := a.secretStore.Resolve(ctx, ref)
	if errors.Is(err, domain.ErrSecretNotFound) {
		return "", nil
	}
	return url, err
}

func (a *app) newRecorder(ctx context.Context) (ports.Recorder, error) {
	url, err := a.resolveURL(ctx, a.settings.Recorder.URL, a.settings.Recorder.SecretRef)
	if err != nil {
		return nil, fmt.Errorf("resolve recorder webhook: %w", err)
	}
	if url == "" {
		a.log.Warn().Msg("recorder webhook not configured; events will not be recorded")
		return nil, nil
	}

	return webhook.NewRecorder(webhook.Options{
		URL:      url,
		Timeout:  a.settings.Recorder.Timeout,
		Attempts: a.settings.Recorder.Attempts,
		Backoff:  a.settings.Recorder.Backoff,
		Logger:   logger.Named("recorder"),
	})
}

type clockFunc func() time.Time

func (f clockFunc) Now() time.Time { return f() }

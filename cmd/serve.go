package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	otterbreaks "github.com/bnema/attendance-cli/internal/adapters/breaks/otter"
	"github.com/bnema/attendance-cli/internal/adapters/httpapi"
	"github.com/bnema/attendance-cli/internal/adapters/notify"
	"github.com/bnema/attendance-cli/internal/adapters/notify/chat"
	"github.com/bnema/attendance-cli/internal/adapters/notify/console"
	"github.com/bnema/attendance-cli/internal/logger"
	"github.com/bnema/attendance-cli/internal/ports"
	"github.com/spf13/cobra"
)

func newServeCmd(app *app) *cobra.Command {
	var (
		listen string
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP event intake",
		Long:  "serve accepts login, break and logout events over HTTP, validates them against the schedule, records them and posts a notification.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			loc, err := app.location(ctx)
			if err != nil {
				return err
			}

			recorder, err := app.newRecorder(ctx)
			if err != nil {
				return err
			}

			notifiers := notify.Fanout{}
			if !quiet {
				notifiers = append(notifiers, console.NewNotifier(cmd.OutOrStdout(), loc))
			}
			chatNotifier, err := newChatNotifier(cmd, app)
			if err != nil {
				return err
			}
			if chatNotifier != nil {
				notifiers = append(notifiers, chatNotifier)
			}

			dispatcher, err := app.newDispatcher(ctx, dispatcherDeps{
				store:    otterbreaks.NewStore(app.settings.Breaks.TTL),
				recorder: recorder,
				notifier: notifiers,
			})
			if err != nil {
				return err
			}

			server := httpapi.NewServer(dispatcher, httpapi.Options{
				Addr:        listen,
				NetRate:     app.settings.NetRate,
				CORSOrigins: app.settings.Server.CORSOrigins,
				Logger:      logger.Named("http"),
			})
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", app.settings.Server.Listen, "Address to listen on")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Do not print events to stdout")

	return cmd
}

func newChatNotifier(cmd *cobra.Command, app *app) (ports.Notifier, error) {
	ctx := cmd.Context()

	url, err := app.resolveURL(ctx, app.settings.Notify.URL, app.settings.Notify.SecretRef)
	if err != nil {
		return nil, fmt.Errorf("resolve notify webhook: %w", err)
	}
	if url == "" {
		app.log.Info().Msg("chat webhook not configured; notifications stay local")
		return nil, nil
	}

	loc, err := app.location(ctx)
	if err != nil {
		return nil, err
	}

	return chat.NewNotifier(chat.Options{
		URL:      url,
		Location: loc,
		Logger:   logger.Named("notify"),
	})
}

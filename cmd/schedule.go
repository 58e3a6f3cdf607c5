package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	memorybreaks "github.com/bnema/attendance-cli/internal/adapters/breaks/memory"
	schedulerender "github.com/bnema/attendance-cli/internal/adapters/render/schedule"
	"github.com/bnema/attendance-cli/internal/application"
	"github.com/spf13/cobra"
)

var errScheduleExists = errors.New("schedule file already exists")

func newScheduleCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect and initialize the shift schedule",
	}

	cmd.AddCommand(
		newScheduleListCmd(app),
		newScheduleShowCmd(app),
		newScheduleInitCmd(app),
	)

	return cmd
}

func newScheduleListCmd(app *app) *cobra.Command {
	var team string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List shifts grouped by team",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dispatcher, err := app.newDispatcher(cmd.Context(), dispatcherDeps{store: memorybreaks.NewStore()})
			if err != nil {
				return err
			}
			view := dispatcher.ScheduleView()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}

			loc, err := app.location(cmd.Context())
			if err != nil {
				return err
			}
			rendered, err := app.scheduleRenderer(view, schedulerender.RenderOptions{
				Now:  app.now().In(loc),
				Team: strings.ToUpper(strings.TrimSpace(team)),
			})
			if err != nil {
				return fmt.Errorf("render schedule: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Only list one team")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newScheduleShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show which shift a display name resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, err := app.newDispatcher(cmd.Context(), dispatcherDeps{store: memorybreaks.NewStore()})
			if err != nil {
				return err
			}

			name := strings.Join(args, " ")
			identity, ok := dispatcher.Lookup(name)
			if !ok {
				return fmt.Errorf("%q is not in the schedule", name)
			}

			shift := identity.Shift
			kind := "day"
			if shift.IsNightShift() {
				kind = "night"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s-%s\t%s\n", identity.MatchedKey, shift.Team, shift.Start, shift.End, kind)
			return err
		},
	}
}

func newScheduleInitCmd(app *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in roster to the schedule file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.schedule.Exists() && !force {
				return fmt.Errorf("%w: %s (use --force to overwrite)", errScheduleExists, app.schedule.Path())
			}

			if err := application.ResetSchedule(cmd.Context(), app.schedule); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", app.schedule.Path())
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing schedule file")

	return cmd
}

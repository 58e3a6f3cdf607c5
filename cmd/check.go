package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	memorybreaks "github.com/bnema/attendance-cli/internal/adapters/breaks/memory"
	outcomerender "github.com/bnema/attendance-cli/internal/adapters/render/outcome"
	"github.com/bnema/attendance-cli/internal/application"
	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var errRecorderNotConfigured = errors.New("recorder webhook not configured (set recorder.url or `att secret set`)")

type checkFlags struct {
	user           string
	event          string
	at             string
	noLogin        bool
	breakStartedAt string
	asJSON         bool
	record         bool
}

func newCheckCmd(app *app) *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate an attendance event against the schedule",
		Long:  "check classifies a login, break or logout for a display name at a given time. Times are HH:MM in the schedule timezone or RFC3339.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, app, flags)
		},
	}

	cmd.Flags().StringVar(&flags.user, "user", "", "Display name as shown in chat")
	cmd.Flags().StringVar(&flags.event, "event", "", "Event type (login|break|logout_break|logout)")
	cmd.Flags().StringVar(&flags.at, "at", "", "Event time (default: now)")
	cmd.Flags().BoolVar(&flags.noLogin, "no-login", false, "Logout without a prior login")
	cmd.Flags().StringVar(&flags.breakStartedAt, "break-started-at", "", "Break start, for logout_break")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&flags.record, "record", false, "Send the result to the recorder webhook")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

func runCheck(cmd *cobra.Command, app *app, flags checkFlags) error {
	ctx := cmd.Context()

	event, err := domain.ParseEventType(flags.event)
	if err != nil {
		return err
	}
	loc, err := app.location(ctx)
	if err != nil {
		return err
	}
	now := app.now().In(loc)

	at, err := parseEventTime(flags.at, now)
	if err != nil {
		return fmt.Errorf("--at: %w", err)
	}
	breakStartedAt, err := parseEventTime(flags.breakStartedAt, now)
	if err != nil {
		return fmt.Errorf("--break-started-at: %w", err)
	}

	dispatcher, err := app.newDispatcher(ctx, dispatcherDeps{store: memorybreaks.NewStore()})
	if err != nil {
		return err
	}

	outcome, err := dispatcher.Evaluate(application.CheckCommand{
		DisplayName:    flags.user,
		Event:          event,
		At:             at,
		HasPriorLogin:  !flags.noLogin,
		BreakStartedAt: breakStartedAt,
	})
	if err != nil {
		return err
	}

	if flags.record {
		if err := recordOutcome(cmd, app, &outcome); err != nil {
			return err
		}
	}

	if flags.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(newCheckJSON(outcome))
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), outcomerender.Render(outcome))
	return err
}

func recordOutcome(cmd *cobra.Command, app *app, outcome *application.Outcome) error {
	recorder, err := app.newRecorder(cmd.Context())
	if err != nil {
		return err
	}
	if recorder == nil {
		return errRecorderNotConfigured
	}

	outcome.EventID = uuid.NewString()
	record := ports.Record{
		EventID:   outcome.EventID,
		Timestamp: outcome.At,
		UserName:  domain.NormalizeKey(outcome.DisplayName),
		Action:    outcome.Event,
		Team:      outcome.Team,
		Result:    outcome.Result,
	}

	err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Recording event...", func(ctx context.Context) error {
		return recorder.Record(ctx, record)
	})
	if err != nil {
		return err
	}

	outcome.Recorded = true
	return nil
}

type checkJSON struct {
	EventID       string `json:"event_id,omitempty"`
	User          string `json:"user"`
	MatchedKey    string `json:"matched_key,omitempty"`
	Event         string `json:"event"`
	At            string `json:"at"`
	Team          string `json:"team"`
	Kind          string `json:"kind"`
	Accepted      bool   `json:"accepted"`
	Annotation    string `json:"annotation,omitempty"`
	OffsetMinutes int    `json:"offset_minutes"`
	BreakMinutes  *int   `json:"break_minutes,omitempty"`
	Recorded      bool   `json:"recorded"`
}

func newCheckJSON(o application.Outcome) checkJSON {
	out := checkJSON{
		EventID:       o.EventID,
		User:          o.DisplayName,
		MatchedKey:    o.MatchedKey,
		Event:         string(o.Event),
		At:            o.At.Format(time.RFC3339),
		Team:          o.Team,
		Kind:          string(o.Result.Kind),
		Accepted:      o.Result.Accepted(),
		Annotation:    o.Result.Annotation,
		OffsetMinutes: o.Result.OffsetMinutes,
		Recorded:      o.Recorded,
	}
	if o.BreakElapsed != nil {
		minutes := domain.ElapsedMinutes(*o.BreakElapsed)
		out.BreakMinutes = &minutes
	}
	return out
}

// parseEventTime accepts HH:MM on now's date and location, or RFC3339.
// Empty input yields the zero time.
func parseEventTime(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}

	if tod, err := domain.ParseTimeOfDay(raw); err == nil {
		y, m, d := now.Date()
		return time.Date(y, m, d, int(tod)/60, int(tod)%60, 0, 0, now.Location()), nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("want HH:MM or RFC3339, got %q", raw)
	}
	return t.In(now.Location()), nil
}

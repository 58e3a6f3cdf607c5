package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/logger"
	"github.com/bnema/attendance-cli/internal/ports"
	"github.com/google/uuid"
)

type DispatcherConfig struct {
	Policy   domain.Policy
	Location *time.Location
	Clock    ports.Clock
	Logger   *logger.Logger
}

// Dispatcher turns platform events into validated, recorded outcomes.
type Dispatcher struct {
	directory *domain.Directory
	tracker   *BreakTracker
	recorder  ports.Recorder
	notifier  ports.Notifier
	policy    domain.Policy
	location  *time.Location
	clock     ports.Clock
	log       *logger.Logger
	newID     func() string
}

func NewDispatcher(directory *domain.Directory, tracker *BreakTracker, recorder ports.Recorder, notifier ports.Notifier, cfg DispatcherConfig) *Dispatcher {
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	return &Dispatcher{
		directory: directory,
		tracker:   tracker,
		recorder:  recorder,
		notifier:  notifier,
		policy:    cfg.Policy,
		location:  cfg.Location,
		clock:     cfg.Clock,
		log:       cfg.Logger,
		newID:     uuid.NewString,
	}
}

// Dispatch validates an event, updates break state, then forwards the result.
// Recording or notification failures are logged and reflected in
// Outcome.Recorded; they never change the validation result.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd EventCommand) (Outcome, error) {
	event, err := domain.ParseEventType(string(cmd.Event))
	if err != nil {
		return Outcome{}, err
	}
	if event != domain.EventLogout && !cmd.SaleReport.Empty() {
		return Outcome{}, fmt.Errorf("%w: only logout carries a sale report", domain.ErrInvalidSaleReport)
	}

	userID := cmd.UserID
	if userID == "" {
		userID = domain.UserID(domain.NormalizeKey(cmd.DisplayName))
	}

	now := d.clock.Now().In(d.location)
	outcome := d.resolve(cmd.DisplayName, event, now)
	outcome.EventID = d.newID()
	outcome.UserID = userID
	outcome.SaleReport = cmd.SaleReport

	switch event {
	case domain.EventLogin, domain.EventLogout:
		outcome.Result = d.validateShift(outcome, cmd.HasPriorLogin)
	case domain.EventBreakStart:
		d.tracker.Start(userID, now)
	case domain.EventBreakEnd:
		if elapsed, ok := d.tracker.End(userID, now); ok {
			outcome.BreakElapsed = &elapsed
			if outcome.Resolved() {
				outcome.Result = domain.ValidateBreak(elapsed, d.policy)
			}
		}
	}

	log := d.log.With().
		Str("event_id", outcome.EventID).
		Str("user_id", string(userID)).
		Str("event", string(event)).
		Str("team", outcome.Team).
		Logger()

	outcome.Recorded = d.record(ctx, &log, outcome)

	if d.notifier != nil {
		if err := d.notifier.Notify(ctx, notificationFromOutcome(outcome)); err != nil {
			log.Warn().Err(err).Msg("notify event")
		}
	}

	log.Info().
		Str("kind", string(outcome.Result.Kind)).
		Bool("accepted", outcome.Result.Accepted()).
		Bool("recorded", outcome.Recorded).
		Msg("event dispatched")

	return outcome, nil
}

// Evaluate classifies an event at an arbitrary moment without touching
// tracked breaks, recording or notification.
func (d *Dispatcher) Evaluate(cmd CheckCommand) (Outcome, error) {
	event, err := domain.ParseEventType(string(cmd.Event))
	if err != nil {
		return Outcome{}, err
	}

	at := cmd.At
	if at.IsZero() {
		at = d.clock.Now()
	}
	at = at.In(d.location)

	outcome := d.resolve(cmd.DisplayName, event, at)
	switch event {
	case domain.EventLogin, domain.EventLogout:
		outcome.Result = d.validateShift(outcome, cmd.HasPriorLogin)
	case domain.EventBreakEnd:
		if !cmd.BreakStartedAt.IsZero() {
			elapsed := domain.BreakSession{StartedAt: cmd.BreakStartedAt}.Elapsed(at)
			outcome.BreakElapsed = &elapsed
			if outcome.Resolved() {
				outcome.Result = domain.ValidateBreak(elapsed, d.policy)
			}
		}
	}

	return outcome, nil
}

func (d *Dispatcher) ScheduleView() ScheduleView {
	view := ScheduleView{
		Teams:  d.directory.Teams(),
		Policy: d.policy,
		Zone:   d.location.String(),
	}
	for _, entry := range d.directory.Entries() {
		view.Rows = append(view.Rows, ScheduleRow{
			Key:     entry.Shift.Key,
			Aliases: entry.Aliases,
			Start:   entry.Shift.Start.String(),
			End:     entry.Shift.End.String(),
			Team:    entry.Shift.Team,
			Night:   entry.Shift.IsNightShift(),
		})
	}
	return view
}

// Lookup exposes directory resolution for read-only callers.
func (d *Dispatcher) Lookup(displayName string) (domain.ResolvedIdentity, bool) {
	return d.directory.Resolve(displayName)
}

func (d *Dispatcher) resolve(displayName string, event domain.EventType, at time.Time) Outcome {
	outcome := Outcome{
		DisplayName: displayName,
		Event:       event,
		At:          at,
		Team:        UnassignedTeam,
		Result:      domain.OnTimeResult(),
	}

	if identity, ok := d.directory.Resolve(displayName); ok {
		shift := identity.Shift
		outcome.MatchedKey = identity.MatchedKey
		outcome.Team = shift.Team
		outcome.Shift = &shift
	}

	return outcome
}

func (d *Dispatcher) validateShift(outcome Outcome, hasPriorLogin bool) domain.ValidationResult {
	if outcome.Shift == nil {
		return domain.OnTimeResult()
	}

	now := domain.TimeOfDayOf(outcome.At)
	if outcome.Event == domain.EventLogin {
		return domain.ValidateLogin(*outcome.Shift, now, d.policy)
	}
	return domain.ValidateLogout(*outcome.Shift, now, hasPriorLogin, d.policy)
}

func (d *Dispatcher) record(ctx context.Context, log *logger.Logger, outcome Outcome) bool {
	if d.recorder == nil {
		log.Debug().Msg("recorder disabled")
		return false
	}

	err := d.recorder.Record(ctx, ports.Record{
		EventID:    outcome.EventID,
		Timestamp:  outcome.At,
		UserName:   recordedName(outcome),
		Action:     outcome.Event,
		Team:       outcome.Team,
		Result:     outcome.Result,
		SaleReport: outcome.SaleReport,
	})
	if err != nil {
		log.Warn().Err(err).Msg("record event")
		return false
	}

	return true
}

func recordedName(outcome Outcome) string {
	if name := domain.NormalizeKey(outcome.DisplayName); name != "" {
		return name
	}
	return string(outcome.UserID)
}

func notificationFromOutcome(o Outcome) ports.Notification {
	return ports.Notification{
		UserID:       o.UserID,
		DisplayName:  o.DisplayName,
		Event:        o.Event,
		Team:         o.Team,
		At:           o.At,
		Result:       o.Result,
		Recorded:     o.Recorded,
		SaleReport:   o.SaleReport,
		BreakElapsed: o.BreakElapsed,
	}
}

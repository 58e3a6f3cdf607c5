package domain

import (
	"fmt"
	"time"
)

type AnnotationKind string

const (
	AnnotationOnTime        AnnotationKind = "on_time"
	AnnotationTooEarly      AnnotationKind = "too_early"
	AnnotationLate          AnnotationKind = "late"
	AnnotationOutOfTime     AnnotationKind = "out_of_time"
	AnnotationOutOfWindow   AnnotationKind = "out_of_window"
	AnnotationBreakExceeded AnnotationKind = "break_exceeded"
	AnnotationNoPriorLogin  AnnotationKind = "no_prior_login"
)

func (k AnnotationKind) Label() string {
	switch k {
	case AnnotationOnTime:
		return ""
	case AnnotationTooEarly:
		return "TOO EARLY"
	case AnnotationLate:
		return "LATE"
	case AnnotationOutOfTime:
		return "OUT OF TIME"
	case AnnotationOutOfWindow:
		return "OUT OF SHIFT WINDOW"
	case AnnotationBreakExceeded:
		return "BREAK EXCEEDED"
	case AnnotationNoPriorLogin:
		return "DID NOT LOG IN"
	default:
		return string(k)
	}
}

type ValidationResult struct {
	Kind       AnnotationKind
	OnTime     bool
	Annotation string
	// OffsetMinutes is the signed distance from the boundary the event was
	// judged against, or the elapsed break length for break results.
	OffsetMinutes int
}

// Accepted reports whether the event passes; NO_PRIOR_LOGIN is informational.
func (r ValidationResult) Accepted() bool {
	return r.OnTime
}

func OnTimeResult() ValidationResult {
	return ValidationResult{Kind: AnnotationOnTime, OnTime: true}
}

// Policy holds the tolerance windows, all in minutes.
type Policy struct {
	LoginTolerance  int
	LogoutTolerance int
	EarlyWindow     int
	BreakAllowance  int
	BreakTolerance  int
}

func DefaultPolicy() Policy {
	return Policy{
		LoginTolerance:  10,
		LogoutTolerance: 10,
		EarlyWindow:     60,
		BreakAllowance:  30,
		BreakTolerance:  10,
	}
}

func (p Policy) BreakLimit() int {
	return p.BreakAllowance + p.BreakTolerance
}

func (p Policy) Validate() error {
	if p.LoginTolerance < 0 || p.LogoutTolerance < 0 || p.BreakAllowance < 0 || p.BreakTolerance < 0 {
		return fmt.Errorf("tolerances must not be negative")
	}
	if p.EarlyWindow < p.LoginTolerance {
		return fmt.Errorf("early window (%d) must cover the login tolerance (%d)", p.EarlyWindow, p.LoginTolerance)
	}
	return nil
}

func ValidateLogin(shift ShiftDefinition, now TimeOfDay, policy Policy) ValidationResult {
	delta := shift.sessionMinutes(now) - shift.sessionStart()

	switch {
	case delta > shift.Duration()+policy.LogoutTolerance:
		// The shift is already over; this login belongs to no session.
		return ValidationResult{Kind: AnnotationOutOfWindow, Annotation: AnnotationOutOfWindow.Label(), OffsetMinutes: delta}
	case delta > policy.LoginTolerance:
		return ValidationResult{Kind: AnnotationLate, Annotation: lateLabel(delta), OffsetMinutes: delta}
	case delta >= -policy.LoginTolerance:
		result := OnTimeResult()
		result.OffsetMinutes = delta
		return result
	case delta >= -policy.EarlyWindow:
		return ValidationResult{Kind: AnnotationTooEarly, Annotation: AnnotationTooEarly.Label(), OffsetMinutes: delta}
	default:
		return ValidationResult{Kind: AnnotationOutOfWindow, Annotation: AnnotationOutOfWindow.Label(), OffsetMinutes: delta}
	}
}

func ValidateLogout(shift ShiftDefinition, now TimeOfDay, hasPriorLogin bool, policy Policy) ValidationResult {
	if !hasPriorLogin {
		return ValidationResult{Kind: AnnotationNoPriorLogin, OnTime: true, Annotation: AnnotationNoPriorLogin.Label()}
	}

	if shift.IsNightShift() && now > Noon && now < shift.Start {
		return ValidationResult{
			Kind:          AnnotationTooEarly,
			Annotation:    AnnotationTooEarly.Label(),
			OffsetMinutes: int(now) - int(shift.Start),
		}
	}

	at := shift.sessionMinutes(now)
	if at < shift.sessionStart() {
		return ValidationResult{
			Kind:          AnnotationTooEarly,
			Annotation:    AnnotationTooEarly.Label(),
			OffsetMinutes: at - shift.sessionStart(),
		}
	}

	delta := at - shift.sessionEnd()
	if delta > policy.LogoutTolerance {
		return ValidationResult{Kind: AnnotationOutOfTime, Annotation: AnnotationOutOfTime.Label(), OffsetMinutes: delta}
	}

	result := OnTimeResult()
	result.OffsetMinutes = delta
	return result
}

func ValidateBreak(elapsed time.Duration, policy Policy) ValidationResult {
	minutes := ElapsedMinutes(elapsed)
	if minutes > policy.BreakLimit() {
		return ValidationResult{
			Kind:          AnnotationBreakExceeded,
			Annotation:    fmt.Sprintf("%s (%d min)", AnnotationBreakExceeded.Label(), minutes),
			OffsetMinutes: minutes,
		}
	}

	result := OnTimeResult()
	result.OffsetMinutes = minutes
	return result
}

// ElapsedMinutes floors d to whole minutes; clock skew never goes negative.
func ElapsedMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

func lateLabel(delta int) string {
	if delta < 60 {
		return AnnotationLate.Label()
	}
	return fmt.Sprintf("%s (%dh%02dm)", AnnotationLate.Label(), delta/60, delta%60)
}

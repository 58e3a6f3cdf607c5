package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const MinutesPerDay = 24 * 60

// Noon separates a night shift's morning tail from the run-up to its next start.
const Noon TimeOfDay = 12 * 60

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
type TimeOfDay int

func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, raw)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, raw)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, raw)
	}

	return TimeOfDay(hour*60 + minute), nil
}

// TimeOfDayOf reads the wall clock of t in its own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

type ShiftDefinition struct {
	Key   string
	Start TimeOfDay
	End   TimeOfDay
	Team  string
}

// IsNightShift reports whether the shift wraps past midnight.
func (s ShiftDefinition) IsNightShift() bool {
	return s.End < s.Start
}

// Duration is the shift length in minutes, measured forward from Start.
func (s ShiftDefinition) Duration() int {
	return circular(int(s.End) - int(s.Start))
}

func (s ShiftDefinition) Validate() error {
	if strings.TrimSpace(s.Key) == "" {
		return fmt.Errorf("%w: key is required", ErrInvalidShift)
	}
	if !s.Start.Valid() || !s.End.Valid() {
		return fmt.Errorf("%w: %q has out of range times", ErrInvalidShift, s.Key)
	}
	if s.Start == s.End {
		return fmt.Errorf("%w: %q starts and ends at %s", ErrInvalidShift, s.Key, s.Start)
	}

	return nil
}

// pivot splits the day at the middle of the off-duty gap. Wall-clock times
// before it belong to the session that started on the previous evening.
func (s ShiftDefinition) pivot() int {
	gap := circular(int(s.Start) - int(s.End))
	return (int(s.End) + gap/2) % MinutesPerDay
}

// sessionMinutes places a wall-clock time on the session timeline, which
// runs from pivot to pivot+1440.
func (s ShiftDefinition) sessionMinutes(t TimeOfDay) int {
	m := int(t)
	if m < s.pivot() {
		m += MinutesPerDay
	}
	return m
}

func (s ShiftDefinition) sessionStart() int {
	return s.sessionMinutes(s.Start)
}

func (s ShiftDefinition) sessionEnd() int {
	return s.sessionStart() + s.Duration()
}

func circular(m int) int {
	return ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
}

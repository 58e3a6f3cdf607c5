package application

import (
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
)

const UnassignedTeam = "UNASSIGNED"

type Outcome struct {
	EventID     string
	UserID      domain.UserID
	DisplayName string
	Event       domain.EventType
	At          time.Time
	// MatchedKey is empty when the user is not in the schedule directory.
	MatchedKey   string
	Team         string
	Shift        *domain.ShiftDefinition
	Result       domain.ValidationResult
	BreakElapsed *time.Duration
	SaleReport   domain.SaleReport
	Recorded     bool
}

func (o Outcome) Resolved() bool {
	return o.MatchedKey != ""
}

type ScheduleRow struct {
	Key     string
	Aliases []string
	Start   string
	End     string
	Team    string
	Night   bool
}

type ScheduleView struct {
	Teams  []string
	Rows   []ScheduleRow
	Policy domain.Policy
	Zone   string
}

// RowsForTeam keeps directory order.
func (v ScheduleView) RowsForTeam(team string) []ScheduleRow {
	rows := make([]ScheduleRow, 0, len(v.Rows))
	for _, row := range v.Rows {
		if row.Team == team {
			rows = append(rows, row)
		}
	}
	return rows
}

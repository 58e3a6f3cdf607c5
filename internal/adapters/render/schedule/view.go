package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/attendance-cli/internal/application"
	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const timelineHours = 24

type RenderOptions struct {
	// Now marks the current hour on each timeline and flags on-duty shifts.
	// The zero value disables both.
	Now time.Time
	// Team limits the listing to one team label.
	Team string
}

func renderView(view application.ScheduleView, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Shift Schedule"),
		s.header.Render(fmt.Sprintf("zone: %s  shifts: %d  teams: %d", view.Zone, len(view.Rows), len(view.Teams))),
		s.header.Render(policyLine(view.Policy)),
	}

	teams := view.Teams
	if opts.Team != "" {
		teams = []string{opts.Team}
	}

	rendered := 0
	for _, team := range teams {
		rows := view.RowsForTeam(team)
		if len(rows) == 0 {
			continue
		}
		rendered++
		lines = append(lines, s.section.Render(renderTeam(team, rows, opts, s)))
	}

	if rendered == 0 {
		lines = append(lines, s.empty.Render("No shifts configured."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func policyLine(p domain.Policy) string {
	return fmt.Sprintf("login ±%dm (early %dm)  logout +%dm  break %dm+%dm",
		p.LoginTolerance, p.EarlyWindow, p.LogoutTolerance, p.BreakAllowance, p.BreakTolerance)
}

func renderTeam(team string, rows []application.ScheduleRow, opts RenderOptions, s styles) string {
	width := 0
	for _, row := range rows {
		width = max(width, lipgloss.Width(row.Key))
	}

	parts := []string{s.team.Render(team)}
	for _, row := range rows {
		parts = append(parts, renderRow(row, width, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderRow(row application.ScheduleRow, keyWidth int, opts RenderOptions, s styles) string {
	start, _ := domain.ParseTimeOfDay(row.Start)
	end, _ := domain.ParseTimeOfDay(row.End)

	hours := s.hours.Render(fmt.Sprintf("%s-%s", row.Start, row.End))
	if row.Night {
		hours += " " + s.night.Render("night")
	} else {
		hours += "      "
	}

	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		"  ",
		s.key.Render(fmt.Sprintf("%-*s", keyWidth, row.Key)),
		"  ",
		hours,
		"  ",
		renderTimeline(start, end, opts.Now, s),
	)

	if !opts.Now.IsZero() && covers(start, end, domain.TimeOfDayOf(opts.Now)) {
		line += " " + s.onDuty.Render("on duty")
	}
	if len(row.Aliases) > 0 {
		line += " " + s.alias.Render("aka "+strings.Join(row.Aliases, ", "))
	}

	return line
}

// renderTimeline draws one cell per hour, filled while the shift is on duty.
func renderTimeline(start, end domain.TimeOfDay, now time.Time, s styles) string {
	nowHour := -1
	if !now.IsZero() {
		nowHour = now.Hour()
	}

	var b strings.Builder
	b.WriteString(s.barBracket.Render("["))
	for h := range timelineHours {
		on := covers(start, end, domain.TimeOfDay(h*60+30))
		switch {
		case h == nowHour:
			cell := "|"
			if on {
				cell = "#"
			}
			b.WriteString(s.barNow.Render(cell))
		case on:
			b.WriteString(s.barFill.Render("="))
		default:
			b.WriteString(s.barEmpty.Render("-"))
		}
	}
	b.WriteString(s.barBracket.Render("]"))

	return b.String()
}

// covers reports whether t falls in [start, end) on a clock that may wrap.
func covers(start, end, t domain.TimeOfDay) bool {
	if start <= end {
		return t >= start && t < end
	}
	return t >= start || t < end
}

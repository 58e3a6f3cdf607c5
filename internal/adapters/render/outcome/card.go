// Package outcome renders a single validated event as a terminal card.
package outcome

import (
	"fmt"
	"strings"

	"github.com/bnema/attendance-cli/internal/application"
	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// KindColor maps an annotation kind to the color used for its badge.
func KindColor(kind domain.AnnotationKind) lipgloss.Color {
	switch kind {
	case domain.AnnotationOnTime:
		return lipgloss.Color("78")
	case domain.AnnotationLate:
		return lipgloss.Color("214")
	case domain.AnnotationBreakExceeded:
		return lipgloss.Color("227")
	case domain.AnnotationNoPriorLogin:
		return lipgloss.Color("141")
	default:
		return lipgloss.Color("203")
	}
}

// Badge is the short status text, "ON TIME" when nothing was flagged.
func Badge(result domain.ValidationResult) string {
	if result.Annotation == "" {
		return "ON TIME"
	}
	return result.Annotation
}

func Render(o application.Outcome) string {
	color := KindColor(o.Result.Kind)
	badge := lipgloss.NewStyle().Bold(true).Foreground(color).Render(Badge(o.Result))

	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s  %s", o.Event.Label(), o.DisplayName)) + "  " + badge,
		field("time", o.At.Format("2006-01-02 15:04 MST")),
		field("team", o.Team),
	}

	if o.Shift != nil {
		lines = append(lines, field("shift", fmt.Sprintf("%s  %s-%s", o.MatchedKey, o.Shift.Start, o.Shift.End)))
	} else {
		lines = append(lines, faintStyle.Render("not in the schedule; no validation applied"))
	}
	if o.Result.Kind != domain.AnnotationNoPriorLogin && o.Shift != nil && o.Event != domain.EventBreakStart {
		lines = append(lines, field("offset", offsetText(o)))
	}
	if o.BreakElapsed != nil {
		lines = append(lines, field("break", fmt.Sprintf("%d min", domain.ElapsedMinutes(*o.BreakElapsed))))
	}
	if !o.SaleReport.Empty() {
		lines = append(lines, field("sales", saleText(o.SaleReport)))
	}
	if o.EventID != "" {
		recorded := "not recorded"
		if o.Recorded {
			recorded = "recorded"
		}
		lines = append(lines, faintStyle.Render(fmt.Sprintf("%s · %s", o.EventID, recorded)))
	}

	return borderStyle.BorderForeground(color).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func field(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func offsetText(o application.Outcome) string {
	if o.Event == domain.EventBreakEnd {
		if o.BreakElapsed == nil {
			return "no open break"
		}
		return fmt.Sprintf("%d min taken", o.Result.OffsetMinutes)
	}

	switch {
	case o.Result.OffsetMinutes > 0:
		return fmt.Sprintf("+%dm", o.Result.OffsetMinutes)
	case o.Result.OffsetMinutes < 0:
		return fmt.Sprintf("%dm", o.Result.OffsetMinutes)
	default:
		return "exact"
	}
}

func saleText(r domain.SaleReport) string {
	names := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		names = append(names, item.Name)
	}
	return fmt.Sprintf("%s  gross %.2f  net %.2f", strings.Join(names, ", "), r.TotalGross(), r.TotalNet())
}

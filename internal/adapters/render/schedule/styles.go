package schedule

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	team       lipgloss.Style
	key        lipgloss.Style
	hours      lipgloss.Style
	alias      lipgloss.Style
	night      lipgloss.Style
	onDuty     lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	barNow     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		team:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		key:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		hours:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		alias:      lipgloss.NewStyle().Faint(true),
		night:      lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		onDuty:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		barNow:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

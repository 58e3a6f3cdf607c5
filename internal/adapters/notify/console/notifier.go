package console

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bnema/attendance-cli/internal/adapters/render/outcome"
	"github.com/bnema/attendance-cli/internal/ports"
	"github.com/charmbracelet/lipgloss"
)

var (
	timeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	userStyle = lipgloss.NewStyle().Bold(true)
	teamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Notifier prints one line per event, for operators watching `att serve`.
type Notifier struct {
	mu       sync.Mutex
	out      io.Writer
	location *time.Location
}

var _ ports.Notifier = (*Notifier)(nil)

func NewNotifier(out io.Writer, location *time.Location) *Notifier {
	if location == nil {
		location = time.Local
	}
	return &Notifier{out: out, location: location}
}

func (n *Notifier) Notify(ctx context.Context, note ports.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	badge := lipgloss.NewStyle().Foreground(outcome.KindColor(note.Result.Kind)).Render(outcome.Badge(note.Result))
	line := fmt.Sprintf("%s %s %s %s %s",
		timeStyle.Render(note.At.In(n.location).Format("15:04:05")),
		userStyle.Render(note.DisplayName),
		teamStyle.Render(note.Team),
		note.Event.Label(),
		badge,
	)
	if !note.Recorded {
		line += " " + warnStyle.Render("(not recorded)")
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	_, err := fmt.Fprintln(n.out, line)
	return err
}

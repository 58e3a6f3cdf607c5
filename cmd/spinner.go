package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	elapsedStyle = lipgloss.NewStyle().Faint(true)
)

type taskFinishedMsg struct{ err error }

// taskModel animates a label until the background task reports back.
type taskModel struct {
	spinner spinner.Model
	label   string
	started time.Time
	task    tea.Cmd
	err     error
	done    bool
}

func (m taskModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.task)
}

func (m taskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if finished, ok := msg.(taskFinishedMsg); ok {
		m.done, m.err = true, finished.err
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m taskModel) View() string {
	if m.done {
		return ""
	}

	line := m.spinner.View() + " " + m.label
	if elapsed := time.Since(m.started); elapsed >= time.Second {
		line += elapsedStyle.Render(fmt.Sprintf(" (%ds)", int(elapsed.Seconds())))
	}
	return line
}

// runWithSpinner runs task while a spinner with label animates on out, and
// returns the task's error.
func runWithSpinner(ctx context.Context, out io.Writer, label string, task func(context.Context) error) error {
	model := taskModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		label:   label,
		started: time.Now(),
		task: func() tea.Msg {
			return taskFinishedMsg{err: task(ctx)}
		},
	}

	final, err := tea.NewProgram(model,
		tea.WithInput(nil),
		tea.WithOutput(out),
		tea.WithContext(ctx),
	).Run()
	if err != nil {
		return err
	}

	finished, ok := final.(taskModel)
	if !ok {
		return fmt.Errorf("spinner ended with %T", final)
	}
	return finished.err
}

// internal/tui/progress.go
// Package tui renders a live progress view for evaluation runs.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// UpdateMsg advances the progress display.
type UpdateMsg struct {
	Done  int
	Label string
}

// FinishMsg ends the program once the run completes.
type FinishMsg struct{}

// model is the Bubble Tea model for the progress view.
type model struct {
	total   int
	done    int
	label   string
	bar     progress.Model
	spinner spinner.Model
	width   int
}

var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

func newModel(total int) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		total:   total,
		bar:     progress.New(progress.WithDefaultGradient()),
		spinner: s,
	}
}

// Init starts the spinner tick loop.
func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles progress updates, terminal resizes, and completion.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case UpdateMsg:
		m.done = msg.Done
		m.label = msg.Label
		return m, nil
	case FinishMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		width := msg.Width - 10
		if width > 60 {
			width = 60
		}
		if width > 0 {
			m.bar.Width = width
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

// View renders the spinner, bar, counter, and current entry label.
func (m model) View() string {
	fraction := 0.0
	if m.total > 0 {
		fraction = float64(m.done) / float64(m.total)
	}

	line := fmt.Sprintf("%s %s %d/%d", m.spinner.View(), m.bar.ViewAs(fraction), m.done, m.total)
	if m.label != "" {
		line += labelStyle.Render("  " + m.label)
	}
	return line + "\n"
}

// Progress drives a progress view from outside the Bubble Tea loop.
type Progress struct {
	program *tea.Program
	done    chan struct{}
}

// Start launches the progress view for a run of total steps.
func Start(total int) *Progress {
	p := &Progress{
		program: tea.NewProgram(newModel(total)),
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = p.program.Run()
		close(p.done)
	}()
	return p
}

// Step reports completed steps and the label of the work in flight.
func (p *Progress) Step(done int, label string) {
	p.program.Send(UpdateMsg{Done: done, Label: label})
}

// Finish stops the view and waits for the terminal to be restored.
func (p *Progress) Finish() {
	p.program.Send(FinishMsg{})
	<-p.done
}

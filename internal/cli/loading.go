package cli

import (
	"context"
	"io"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type loadDoneMsg struct{}

// loadingModel shows a spinner until the wrapped work finishes. Esc and
// ctrl+c cancel the work; the screen stays up until it has returned.
type loadingModel struct {
	spinner    spinner.Model
	message    string
	cancel     context.CancelFunc
	cancelling bool
	done       bool
}

func newLoadingModel(message string, cancel context.CancelFunc) loadingModel {
	return loadingModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple)),
		message: message,
		cancel:  cancel,
	}
}

func (m loadingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m loadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDoneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			if !m.cancelling {
				m.cancelling = true
				m.cancel()
			}
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m loadingModel) View() string {
	if m.done {
		return ""
	}
	if m.cancelling {
		return "  " + m.spinner.View() + " " + formatter.Dim("Cancelling...") + "\n"
	}
	return "  " + m.spinner.View() + " " + formatter.Dim(m.message) + formatter.Dim("  (esc to cancel)") + "\n"
}

// runWithLoading runs fn behind a spinner screen and returns its error. If
// the screen cannot start, fn still runs to completion.
func runWithLoading(ctx context.Context, in io.Reader, out io.Writer, message string, fn func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newLoadingModel(message, cancel), tea.WithInput(in), tea.WithOutput(out))
	result := make(chan error, 1)
	go func() {
		result <- fn(ctx)
		p.Send(loadDoneMsg{})
	}()

	_, _ = p.Run()
	return <-result
}

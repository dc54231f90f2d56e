package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/persistence"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// planboardHuhTheme returns a huh theme matching the gruvbox palette.
func planboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// PromptPicker asks for file locations with a huh input form.
type PromptPicker struct {
	// Dir is where suggested save names are placed by default.
	Dir string
}

var _ persistence.FilePicker = PromptPicker{}

func (p PromptPicker) PickSave(ctx context.Context, suggested string) (string, error) {
	path := filepath.Join(p.Dir, suggested)
	input := huh.NewInput().
		Title("Save project data to").
		Description("Esc to skip").
		Value(&path).
		Validate(validateSavePath)
	return runPathForm(ctx, input, &path)
}

func (p PromptPicker) PickOpen(ctx context.Context) (string, error) {
	var path string
	input := huh.NewInput().
		Title("Project data file to open").
		Placeholder(filepath.Join(p.Dir, persistence.DataFileName)).
		Value(&path).
		Validate(validateOpenPath)
	return runPathForm(ctx, input, &path)
}

func runPathForm(ctx context.Context, input *huh.Input, path *string) (string, error) {
	form := huh.NewForm(huh.NewGroup(input)).WithTheme(planboardHuhTheme()).WithShowHelp(false)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", persistence.ErrPickerDeclined
		}
		return "", err
	}
	return filepath.Clean(expandHome(*path)), nil
}

func validateSavePath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("path is required")
	}
	if info, err := os.Stat(expandHome(s)); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	return nil
}

func validateOpenPath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("path is required")
	}
	info, err := os.Stat(expandHome(s))
	if err != nil {
		return fmt.Errorf("cannot open %s", s)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	return nil
}

func expandHome(p string) string {
	p = strings.TrimSpace(p)
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return p
}

// PathPicker answers with a path given on the command line when there is
// one, and defers to Fallback otherwise.
type PathPicker struct {
	Fallback persistence.FilePicker

	mu   sync.Mutex
	path string
}

var _ persistence.FilePicker = (*PathPicker)(nil)

// Use makes the next prompts answer with path until the returned func runs.
func (p *PathPicker) Use(path string) func() {
	p.mu.Lock()
	p.path = expandHome(path)
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		p.path = ""
		p.mu.Unlock()
	}
}

func (p *PathPicker) preset() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

func (p *PathPicker) PickSave(ctx context.Context, suggested string) (string, error) {
	if path := p.preset(); path != "" {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return filepath.Join(path, suggested), nil
		}
		return path, nil
	}
	return p.fallback().PickSave(ctx, suggested)
}

func (p *PathPicker) PickOpen(ctx context.Context) (string, error) {
	if path := p.preset(); path != "" {
		return path, nil
	}
	return p.fallback().PickOpen(ctx)
}

func (p *PathPicker) fallback() persistence.FilePicker {
	if p.Fallback == nil {
		return persistence.DeclinePicker{}
	}
	return p.Fallback
}

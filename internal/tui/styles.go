package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jobjourney/jjprep/internal/tui/theme"
)

// Styles holds the precomputed lipgloss styles for the preview.
type Styles struct {
	Theme *theme.Theme

	Title    lipgloss.Style
	DayLabel lipgloss.Style
	Date     lipgloss.Style
	Slot     lipgloss.Style
	Muted    lipgloss.Style
	Warning  lipgloss.Style
	Footer   lipgloss.Style
	Error    lipgloss.Style
}

// NewStyles derives the style set from a theme.
func NewStyles(th *theme.Theme) *Styles {
	return &Styles{
		Theme: th,

		Title: lipgloss.NewStyle().
			Foreground(theme.Color(th.Accent)).
			Bold(true),

		DayLabel: lipgloss.NewStyle().
			Foreground(theme.Color(th.Fg)).
			Bold(true),

		Date: lipgloss.NewStyle().
			Foreground(theme.Color(th.Accent)),

		Slot: lipgloss.NewStyle().
			Foreground(theme.Color(th.FgMuted)),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Color(th.FgMuted)),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Color(th.Warning)),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Color(th.FgMuted)).
			Background(theme.Color(th.BgHighlight)).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(theme.Color(th.Warning)).
			Bold(true),
	}
}

// Task returns the style for a task title of the given type.
func (s *Styles) Task(taskType string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.Theme.TypeColor(taskType))
}

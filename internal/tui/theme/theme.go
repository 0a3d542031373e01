// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Panels, subtle highlight
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Dates, gaps, secondary text
	Accent      string `toml:"accent"`       // Title, borders
	Study       string `toml:"study"`        // Study tasks
	Practice    string `toml:"practice"`     // Practice tasks
	Mock        string `toml:"mock"`         // Mock interview tasks
	Review      string `toml:"review"`       // Review tasks
	Warning     string `toml:"warning"`      // Warnings, truncation notices
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to frappe if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "frappe"
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		// Fallback to frappe
		if name != "frappe" {
			return Load("frappe")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}

	return &t, nil
}

// TypeColor returns the color for a task type, falling back to the
// primary foreground for unknown types.
func (t *Theme) TypeColor(taskType string) lipgloss.Color {
	switch taskType {
	case "study":
		return Color(t.Study)
	case "practice":
		return Color(t.Practice)
	case "mock":
		return Color(t.Mock)
	case "review":
		return Color(t.Review)
	default:
		return Color(t.Fg)
	}
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte", "light"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}

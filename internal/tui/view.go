package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jobjourney/jjprep/internal/plan"
)

// typeGlyphs marks task types in the day body.
var typeGlyphs = map[string]string{
	"study":    "◆",
	"practice": "▶",
	"mock":     "●",
	"review":   "○",
}

// View renders the full screen.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.err != nil {
		return m.styles.Error.Render("✗ "+m.err.Error()) + "\n\n" + m.styles.Muted.Render("q to quit")
	}

	if m.loading || m.plan == nil {
		return m.styles.Muted.Render("loading plan...")
	}

	return strings.Join([]string{
		m.renderHeader(),
		m.viewport.View(),
		m.renderFooter(),
	}, "\n")
}

// chromeLines is the number of non-viewport lines on screen.
func (m Model) chromeLines() int {
	// header (2 lines) + footer (1 line)
	return 3
}

func (m Model) renderHeader() string {
	title := m.plan.Title
	if title == "" {
		title = m.plan.ID
	}

	day := m.currentDay()
	position := fmt.Sprintf("Day %d of %d", m.dayIdx+1, len(m.preview))

	left := m.styles.Title.Render(title)
	right := m.styles.DayLabel.Render(position) + "  " + m.styles.Date.Render(day.Date)

	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right + "\n"
}

func (m Model) renderFooter() string {
	text := m.statusMsg
	if text == "" {
		text = "←/→ day  ↑/↓ scroll  +/- shift start  t today  y copy  q quit"
	}
	footer := m.styles.Footer.Render(text)

	if pad := m.width - ansi.StringWidth(footer); pad > 0 {
		footer += m.styles.Footer.Render(strings.Repeat(" ", pad))
	}
	return footer
}

// currentDay returns the visible preview day.
func (m Model) currentDay() plan.PreviewDay {
	if m.dayIdx < 0 || m.dayIdx >= len(m.preview) {
		return plan.PreviewDay{}
	}
	return m.preview[m.dayIdx]
}

// renderDay renders the visible day's tasks for the viewport.
func (m Model) renderDay() string {
	day := m.currentDay()

	var b strings.Builder
	b.WriteString("\n")

	if len(day.Tasks) == 0 {
		b.WriteString(m.styles.Muted.Render("  rest day"))
		b.WriteString("\n")
		return b.String()
	}

	for i, t := range day.Tasks {
		glyph := typeGlyphs[t.Type]
		if glyph == "" {
			glyph = "·"
		}

		var slotLabel string
		if slot, ok := m.assigner.Assign(i); ok {
			slotLabel = m.styles.Slot.Render(slot.Start + "-" + slot.End)
		}

		line := fmt.Sprintf("  %s  %s", slotLabel, m.styles.Task(t.Type).Render(glyph+" "+t.Title))
		if t.DurationMinutes > 0 {
			line += m.styles.Muted.Render(fmt.Sprintf("  %dm", t.DurationMinutes))
		}
		b.WriteString(line)
		b.WriteString("\n")

		if t.Gap != "" {
			b.WriteString(m.styles.Muted.Render("              gap: " + t.Gap))
			b.WriteString("\n")
		}
		if t.Resources != "" {
			b.WriteString(m.styles.Muted.Render("              " + t.Resources))
			b.WriteString("\n")
		}
	}

	if hidden := m.hiddenTasks(); hidden > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("  %d more tasks on this day will not be pushed", hidden)))
		b.WriteString("\n")
	}

	return b.String()
}

// hiddenTasks counts tasks of the visible day beyond the surfaced cap.
func (m Model) hiddenTasks() int {
	if m.plan == nil || m.dayIdx >= len(m.plan.Days) {
		return 0
	}
	total := len(m.plan.Days[m.dayIdx].Tasks)
	if total <= plan.MaxPreviewTasks {
		return 0
	}
	return total - plan.MaxPreviewTasks
}

// dayText renders the visible day as plain text for the clipboard.
func (m Model) dayText() string {
	day := m.currentDay()

	var b strings.Builder
	fmt.Fprintf(&b, "Day %d (%s)\n", day.Day, day.Date)
	for i, t := range day.Tasks {
		if slot, ok := m.assigner.Assign(i); ok {
			fmt.Fprintf(&b, "%s-%s  %s\n", slot.Start, slot.End, t.Title)
		} else {
			fmt.Fprintf(&b, "%s\n", t.Title)
		}
	}
	return b.String()
}

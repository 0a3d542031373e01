package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jobjourney/jjprep/internal/dateutil"
)

// shiftDate moves a YYYY-MM-DD date by n calendar days.
func shiftDate(s string, n int) string {
	return dateutil.FormatDate(dateutil.AddDays(dateutil.ParseLenient(s, nil), n))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case planLoadedMsg:
		m.setPlan(msg.plan)
		return m, nil

	case errMsg:
		m.err = msg.err
		m.loading = false
		LogError("load", msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	chrome := m.chromeLines()
	vpHeight := msg.Height - chrome
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
	}

	if m.plan != nil {
		m.viewport.SetContent(m.renderDay())
	}
	return m
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	}

	if m.plan == nil {
		return m, nil
	}

	switch msg.String() {
	// Day navigation: saturating, never wraps.
	case "h", "left":
		if m.dayIdx > 0 {
			LogDayChange(m.dayIdx, m.dayIdx-1, "prev_day")
			m.dayIdx--
			m.statusMsg = ""
			m.refreshViewport()
		}
		return m, nil

	case "l", "right":
		if m.dayIdx < len(m.preview)-1 {
			LogDayChange(m.dayIdx, m.dayIdx+1, "next_day")
			m.dayIdx++
			m.statusMsg = ""
			m.refreshViewport()
		}
		return m, nil

	// Start date shifts re-anchor the whole projection.
	case "+", "=":
		m.setStartDate(shiftDate(m.startDate, 1))
		m.statusMsg = "Start date: " + m.startDate
		return m, nil

	case "-", "_":
		m.setStartDate(shiftDate(m.startDate, -1))
		m.statusMsg = "Start date: " + m.startDate
		return m, nil

	case "t":
		m.setStartDate(dateutil.FormatDate(time.Now()))
		m.statusMsg = "Start date: today"
		return m, nil

	case "g", "home":
		m.viewport.GotoTop()
		return m, nil

	case "G", "end":
		m.viewport.GotoBottom()
		return m, nil

	case "y":
		if err := clipboard.WriteAll(m.dayText()); err != nil {
			m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
		} else {
			m.statusMsg = "Copied day to clipboard"
		}
		return m, nil
	}

	// Remaining keys (j/k, pgup/pgdown, mouse wheel) scroll the day.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

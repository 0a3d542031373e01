// Package tui implements the interactive plan preview.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jobjourney/jjprep/internal/config"
	"github.com/jobjourney/jjprep/internal/dateutil"
	"github.com/jobjourney/jjprep/internal/plan"
	"github.com/jobjourney/jjprep/internal/schedule"
	"github.com/jobjourney/jjprep/internal/tui/theme"
)

// Model is the preview TUI state: one plan, one visible day at a time.
type Model struct {
	repo   plan.Repository
	config *config.Config
	planID string

	plan      *plan.Plan
	preview   []plan.PreviewDay
	startDate string
	dayIdx    int

	assigner *schedule.Assigner
	styles   *Styles
	viewport viewport.Model

	width   int
	height  int
	ready   bool
	loading bool

	statusMsg string
	err       error
}

// NewModel creates the preview model. An empty planID means the most
// recently imported plan.
func NewModel(repo plan.Repository, cfg *config.Config, planID string) (Model, error) {
	th, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		return Model{}, err
	}

	assigner, err := schedule.New(cfg.Calendar.StartHours, cfg.Calendar.EventDurationMinutes)
	if err != nil {
		return Model{}, fmt.Errorf("invalid schedule config: %w", err)
	}

	return Model{
		repo:      repo,
		config:    cfg,
		planID:    planID,
		startDate: dateutil.FormatDate(time.Now()),
		assigner:  assigner,
		styles:    NewStyles(th),
		loading:   true,
	}, nil
}

// Init loads the plan.
func (m Model) Init() tea.Cmd {
	return loadPlan(m.repo, m.planID)
}

// setPlan installs a loaded plan and rebuilds the projection.
func (m *Model) setPlan(p *plan.Plan) {
	m.plan = p
	m.preview = plan.Preview(p, m.startDate)
	m.dayIdx = 0
	m.loading = false
	m.refreshViewport()
}

// setStartDate re-projects the plan from a new start date. The view
// snaps back to day one: every date on screen just changed, so the old
// position no longer means anything.
func (m *Model) setStartDate(startDate string) {
	m.startDate = startDate
	m.preview = plan.Preview(m.plan, startDate)
	m.dayIdx = 0
	m.refreshViewport()
}

// refreshViewport re-renders the visible day and scrolls back to the
// top.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderDay())
	m.viewport.GotoTop()
}

// Run starts the TUI.
func Run(repo plan.Repository, cfg *config.Config, planID string) error {
	return RunWithDebug(repo, cfg, planID, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo plan.Repository, cfg *config.Config, planID string, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	m, err := NewModel(repo, cfg, planID)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running preview: %w", err)
	}
	return nil
}

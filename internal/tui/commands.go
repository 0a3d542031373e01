package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jobjourney/jjprep/internal/plan"
)

// planLoadedMsg carries the plan fetched at startup.
type planLoadedMsg struct {
	plan *plan.Plan
}

// errMsg carries a failure into the update loop.
type errMsg struct {
	err error
}

// loadPlan fetches the requested plan, or the most recently imported
// one when id is empty.
func loadPlan(repo plan.Repository, id string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		if id != "" {
			p, err := repo.GetPlan(ctx, id)
			if err != nil {
				return errMsg{fmt.Errorf("fetching plan: %w", err)}
			}
			if p == nil {
				return errMsg{fmt.Errorf("%w: %s", plan.ErrPlanNotFound, id)}
			}
			return planLoadedMsg{p}
		}

		plans, err := repo.ListPlans(ctx)
		if err != nil {
			return errMsg{fmt.Errorf("listing plans: %w", err)}
		}
		if len(plans) == 0 {
			return errMsg{fmt.Errorf("no plans stored yet, try: jjprep import --sample")}
		}
		return planLoadedMsg{plans[0]}
	}
}

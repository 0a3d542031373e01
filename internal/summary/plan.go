// Package summary provides shared plan summary utilities.
package summary

import (
	"context"
	"fmt"

	"github.com/jobjourney/jjprep/internal/plan"
)

// PlanSummary holds aggregated plan data for display.
type PlanSummary struct {
	Plan         *plan.Plan
	TotalTasks   int
	TotalMinutes int
	DayTotals    []DayTotal
	BusiestDay   int // 1-based plan day, 0 when the plan is empty
}

// DayTotal aggregates a single plan day.
type DayTotal struct {
	Day     int
	Tasks   int
	Minutes int
	Pushed  int // tasks that would reach the calendar (capped per day)
}

// Summarize builds summary data for a plan.
func Summarize(p *plan.Plan) *PlanSummary {
	s := &PlanSummary{Plan: p}
	if p == nil {
		return s
	}

	busiestMinutes := -1
	for _, d := range p.Days {
		minutes := 0
		for _, t := range d.Tasks {
			minutes += t.DurationMinutes
		}
		pushed := len(d.Tasks)
		if pushed > plan.MaxPreviewTasks {
			pushed = plan.MaxPreviewTasks
		}
		s.DayTotals = append(s.DayTotals, DayTotal{
			Day:     d.Day,
			Tasks:   len(d.Tasks),
			Minutes: minutes,
			Pushed:  pushed,
		})
		s.TotalTasks += len(d.Tasks)
		s.TotalMinutes += minutes
		if minutes > busiestMinutes && len(d.Tasks) > 0 {
			busiestMinutes = minutes
			s.BusiestDay = d.Day
		}
	}

	return s
}

// TruncatedTasks returns how many tasks would be dropped by the
// per-day push cap.
func (s *PlanSummary) TruncatedTasks() int {
	n := 0
	for _, d := range s.DayTotals {
		n += d.Tasks - d.Pushed
	}
	return n
}

// Build loads a plan from the repository and summarizes it.
func Build(ctx context.Context, repo plan.Repository, id string) (*PlanSummary, error) {
	p, err := repo.GetPlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching plan: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", plan.ErrPlanNotFound, id)
	}
	return Summarize(p), nil
}

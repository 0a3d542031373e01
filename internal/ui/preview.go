package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobjourney/jjprep/internal/plan"
	"github.com/jobjourney/jjprep/internal/schedule"
)

func (a *App) previewCmd() *cobra.Command {
	var startDate string

	cmd := &cobra.Command{
		Use:   "preview <plan-id>",
		Short: "Preview a plan projected onto real dates",
		Long: `Print every plan day with the date it would land on and the slot
times its tasks would occupy. Only the tasks that would actually be
pushed are shown.`,
		Example: `  jjprep preview plan-sample-frontend
  jjprep preview plan-sample-frontend --start=2026-09-07
  jjprep preview plan-sample-frontend --start=next-monday`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			p, err := a.repo.GetPlan(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("fetching plan: %w", err)
			}
			if p == nil {
				return fmt.Errorf("%w: %s", plan.ErrPlanNotFound, args[0])
			}

			if startDate != "" {
				startDate, err = resolveStartDate(startDate, time.Now())
				if err != nil {
					return err
				}
			}

			assigner, err := schedule.New(a.config.Calendar.StartHours, a.config.Calendar.EventDurationMinutes)
			if err != nil {
				return fmt.Errorf("invalid schedule config: %w", err)
			}

			title := p.Title
			if title == "" {
				title = p.ID
			}
			fmt.Printf("%s\n\n", formatHeader(title))

			for _, d := range plan.Preview(p, startDate) {
				PrintPreviewDay(d, assigner)
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD or relative, defaults to today)")

	return cmd
}

package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List stored plans",
		Example: "  jjprep list",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			plans, err := a.repo.ListPlans(context.Background())
			if err != nil {
				return fmt.Errorf("listing plans: %w", err)
			}

			if len(plans) == 0 {
				fmt.Println("No plans stored yet. Try: jjprep import --sample")
				return nil
			}

			for _, p := range plans {
				title := p.Title
				if title == "" {
					title = formatMuted("(untitled)")
				}
				fmt.Printf("%s  %s\n", formatAccent(p.ID), title)
				fmt.Printf("    %s\n", formatMuted(fmt.Sprintf(
					"%d days, %d tasks, %s  created %s",
					p.DurationDays, p.TaskCount(), FormatDuration(p.TotalMinutes()),
					p.CreatedAt.Format("2006-01-02"))))
			}

			return nil
		},
	}
}

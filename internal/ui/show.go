package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobjourney/jjprep/internal/summary"
)

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <plan-id>",
		Short:   "Show a plan's days and tasks",
		Example: "  jjprep show plan-sample-frontend",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			s, err := summary.Build(context.Background(), a.repo, args[0])
			if err != nil {
				return err
			}
			p := s.Plan

			title := p.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Printf("%s  %s\n", formatAccent(p.ID), formatHeader(title))
			fmt.Println()

			for _, d := range p.Days {
				fmt.Println(formatHeader(fmt.Sprintf("Day %d", d.Day)))
				if len(d.Tasks) == 0 {
					fmt.Println(formatMuted("    rest day"))
					continue
				}
				maxTitle := maxTitleWidth(d.Tasks)
				for _, t := range d.Tasks {
					PrintTaskRow(t, nil, maxTitle)
					if t.Resources != "" {
						fmt.Printf("         %s\n", formatMuted(t.Resources))
					}
				}
			}

			fmt.Println()
			PrintPlanSummary(s)
			return nil
		},
	}
}

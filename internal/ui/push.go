package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobjourney/jjprep/internal/calendar"
	"github.com/jobjourney/jjprep/internal/connect"
	"github.com/jobjourney/jjprep/internal/dateutil"
	"github.com/jobjourney/jjprep/internal/plan"
)

func (a *App) pushCmd() *cobra.Command {
	var (
		startDate string
		file      string
		noBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "push [plan-id]",
		Short: "Push a plan to your calendar",
		Long: `Create calendar events for a plan's tasks, one day at a time,
starting from the given date.

Stored plans are pushed by id. With --file, an un-stored plan document
is pushed directly; its days travel inline in the request. If the
backend asks for additional calendar scopes, one authorization round
runs and the push is retried once.`,
		Example: `  jjprep push plan-sample-frontend --start=2026-09-07
  jjprep push plan-sample-frontend --start=next-monday
  jjprep push --file plan.json --start=tomorrow`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			p, err := a.resolvePushPlan(ctx, args, file)
			if err != nil {
				return err
			}

			if startDate == "" {
				return calendar.ErrMissingStartDate
			}
			startDate, err = resolveStartDate(startDate, time.Now())
			if err != nil {
				return err
			}

			client := a.client()
			orch := calendar.NewOrchestrator(
				client,
				a.flow(),
				a.config.Calendar.StartHours,
				a.config.Calendar.EventDurationMinutes,
				a.config.Calendar.Timezone,
			)

			result, err := orch.Push(ctx, p, startDate)
			if err != nil {
				return err
			}

			fmt.Printf("Created %s starting %s\n",
				formatStats(fmt.Sprintf("%d events", result.CreatedCount)),
				formatAccent(startDate))

			if !noBrowser {
				if err := connect.OpenBrowser(calendar.WebViewURL); err != nil {
					fmt.Println(formatMuted("Open your calendar: " + calendar.WebViewURL))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, \"tomorrow\", \"next-monday\", ...)")
	cmd.Flags().StringVar(&file, "file", "", "Push a plan document instead of a stored plan")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open the calendar web view afterwards")

	return cmd
}

// resolveStartDate turns a --start value into a canonical YYYY-MM-DD
// date. Relative forms ("tomorrow", "friday", "next-monday",
// "next-week") resolve against now.
func resolveStartDate(s string, now time.Time) (string, error) {
	start, err := dateutil.ParseRelativeDate(s, now)
	if err != nil {
		return "", fmt.Errorf("invalid start date %q: %w", s, err)
	}
	return dateutil.FormatDate(start), nil
}

func (a *App) resolvePushPlan(ctx context.Context, args []string, file string) (*plan.Plan, error) {
	switch {
	case file != "" && len(args) > 0:
		return nil, fmt.Errorf("give a plan id or --file, not both")

	case file != "":
		path, err := resolvePath(file)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading plan file: %w", err)
		}
		return plan.Decode(data, time.Now())

	case len(args) > 0:
		if err := a.ensureRepo(); err != nil {
			return nil, err
		}
		p, err := a.repo.GetPlan(ctx, args[0])
		if err != nil {
			return nil, fmt.Errorf("fetching plan: %w", err)
		}
		if p == nil {
			return nil, fmt.Errorf("%w: %s", plan.ErrPlanNotFound, args[0])
		}
		return p, nil

	default:
		return nil, fmt.Errorf("a plan id or --file is required")
	}
}

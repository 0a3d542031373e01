package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobjourney/jjprep/internal/calendar"
)

func (a *App) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show calendar connection status",
		Long: `Check whether a calendar account is connected.

A broken or unreachable backend reports as "not connected" rather than
failing the command.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			printStatus(a.client().Status(ctx))
			return nil
		},
	}
}

func printStatus(status calendar.ConnectionStatus) {
	if !status.Connected {
		fmt.Printf("Calendar: %s\n", formatWarn("not connected"))
		fmt.Println(formatMuted("Run: jjprep connect"))
		return
	}
	if status.Email != "" {
		fmt.Printf("Calendar: %s (%s)\n", formatStats("connected"), status.Email)
		return
	}
	fmt.Printf("Calendar: %s\n", formatStats("connected"))
}

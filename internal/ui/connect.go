package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Connect a calendar account",
		Long: `Run the calendar authorization flow.

Opens the browser at the authorization page and waits for the
completion callback, then re-checks the connection status.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			client := a.client()

			authURL, err := client.AuthURL(ctx)
			if err != nil {
				return err
			}

			if err := a.flow().Authorize(ctx, authURL); err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}

			// The listener is already torn down; a fresh status fetch
			// reflects the new connection.
			printStatus(client.Status(ctx))
			return nil
		},
	}
}

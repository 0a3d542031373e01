package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) deleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <plan-id>",
		Short: "Delete a stored plan",
		Example: `  jjprep delete plan-sample-frontend
  jjprep delete plan-sample-frontend --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			if !force && !promptYesNo(fmt.Sprintf("Delete plan %s?", args[0])) {
				fmt.Println("Aborted.")
				return nil
			}

			if err := a.repo.DeletePlan(context.Background(), args[0]); err != nil {
				return fmt.Errorf("deleting plan: %w", err)
			}

			fmt.Printf("Deleted %s\n", formatAccent(args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}

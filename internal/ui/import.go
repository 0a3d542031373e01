package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobjourney/jjprep/internal/plan"
)

func (a *App) importCmd() *cobra.Command {
	var sample bool

	cmd := &cobra.Command{
		Use:   "import [plan.json]",
		Short: "Import a plan from a JSON file",
		Long: `Import a preparation plan into the local database.

The file holds a plan document: {"id", "title", "days": [{"day",
"tasks"}]}. A missing id gets a generated local id; local plans are
inlined on push instead of referenced.

With --sample, imports the bundled sample plans instead of a file.

Example:
  jjprep import plan.json
  jjprep import --sample`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			if sample {
				if len(args) > 0 {
					return fmt.Errorf("--sample does not take a file argument")
				}
				return a.importSamples(context.Background())
			}

			if len(args) == 0 {
				return fmt.Errorf("a plan file is required (or use --sample)")
			}
			return a.importFile(context.Background(), args[0])
		},
	}

	cmd.Flags().BoolVar(&sample, "sample", false, "Import the bundled sample plans")

	return cmd
}

func (a *App) importFile(ctx context.Context, path string) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading plan file: %w", err)
	}

	p, err := plan.Decode(data, time.Now())
	if err != nil {
		return err
	}

	if err := a.repo.CreatePlan(ctx, p); err != nil {
		return fmt.Errorf("storing plan: %w", err)
	}

	fmt.Printf("Imported %s (%d days, %d tasks)\n", formatAccent(p.ID), p.DurationDays, p.TaskCount())
	return nil
}

func (a *App) importSamples(ctx context.Context) error {
	plans, err := plan.SamplePlans()
	if err != nil {
		return err
	}

	imported := 0
	for _, p := range plans {
		if err := a.repo.CreatePlan(ctx, p); err != nil {
			fmt.Println(formatMuted(fmt.Sprintf("skipping %s: %v", p.ID, err)))
			continue
		}
		fmt.Printf("Imported %s  %s\n", formatAccent(p.ID), p.Title)
		imported++
	}

	if imported == 0 {
		return fmt.Errorf("no sample plans imported")
	}
	return nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}

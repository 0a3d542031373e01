// Package ui implements the jjprep command line interface.
package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobjourney/jjprep/internal/calendar"
	"github.com/jobjourney/jjprep/internal/config"
	"github.com/jobjourney/jjprep/internal/connect"
	"github.com/jobjourney/jjprep/internal/db"
	"github.com/jobjourney/jjprep/internal/plan"
	"github.com/jobjourney/jjprep/internal/token"
	"github.com/jobjourney/jjprep/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   plan.Repository
	config *config.Config
	tokens *token.Store
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given repository and
// config. A nil repository is opened lazily from the configured path.
func NewApp(repo plan.Repository, cfg *config.Config) *App {
	a := &App{
		repo:   repo,
		config: cfg,
		tokens: token.NewStore(cfg.Auth.TokenPath),
	}

	a.root = &cobra.Command{
		Use:   "jjprep",
		Short: "A CLI tool for interview preparation plans",
		Long: `Jjprep manages multi-day interview preparation plans and pushes
them to your calendar.

Import a plan, preview how its days land on real dates, connect your
calendar account, and push the plan as a series of events.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			return tui.RunWithDebug(a.repo, a.config, id, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.previewCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.statusCmd())
	a.root.AddCommand(a.connectCmd())
	a.root.AddCommand(a.pushCmd())
	a.root.AddCommand(a.authCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("jjprep %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the plan database on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening plan database: %w", err)
	}
	a.repo = repo
	return nil
}

// client builds the calendar API client with the configured token
// accessor.
func (a *App) client() *calendar.Client {
	timeout := time.Duration(a.config.API.TimeoutSeconds) * time.Second
	return calendar.NewClient(a.config.API.Root, timeout, a.tokens.Accessor())
}

// flow builds the interactive authorization flow, printing progress to
// stdout.
func (a *App) flow() *connect.Flow {
	return connect.NewFlow(connect.DefaultTimeout, func(format string, args ...any) {
		fmt.Printf(format, args...)
	})
}

// Close releases the application's resources.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

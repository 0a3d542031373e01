package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jobjourney/jjprep/internal/config"
	"github.com/jobjourney/jjprep/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  jjprep config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.API.Root = promptValue(reader, "API root URL", cfg.API.Root)
	cfg.API.TimeoutSeconds = promptInt(reader, "API timeout (seconds)", cfg.API.TimeoutSeconds)
	cfg.Calendar.Timezone = promptValue(reader, "Fallback timezone", cfg.Calendar.Timezone)
	cfg.Calendar.StartHours = promptHours(reader, "Event start hours (3, comma-separated)", cfg.Calendar.StartHours)
	cfg.Calendar.EventDurationMinutes = promptInt(reader, "Event duration (minutes)", cfg.Calendar.EventDurationMinutes)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.Auth.TokenPath = promptValue(reader, "Token path", cfg.Auth.TokenPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[api]")
	fmt.Printf("  root                   = %s\n", cfg.API.Root)
	fmt.Printf("  timeout_seconds        = %d\n", cfg.API.TimeoutSeconds)
	fmt.Println("\n[calendar]")
	fmt.Printf("  timezone               = %s\n", cfg.Calendar.Timezone)
	fmt.Printf("  start_hours            = %s\n", joinInts(cfg.Calendar.StartHours))
	fmt.Printf("  event_duration_minutes = %d\n", cfg.Calendar.EventDurationMinutes)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path                = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[auth]")
	fmt.Printf("  token_path             = %s\n", cfg.Auth.TokenPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme                  = %s\n", cfg.UI.Theme)
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ", ")
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n > 0 {
			return n
		}
		fmt.Printf("  Invalid number %q\n", value)
	}
}

func promptHours(reader *bufio.Reader, label string, current []int) []int {
	for {
		value := promptValue(reader, label, joinInts(current))
		parts := strings.Split(value, ",")
		hours := make([]int, 0, len(parts))
		ok := true
		for _, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				ok = false
				break
			}
			hours = append(hours, n)
		}
		if ok {
			return hours
		}
		fmt.Printf("  Invalid hour list %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}

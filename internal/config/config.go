// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jobjourney/jjprep/internal/schedule"
)

// Config holds the application configuration.
type Config struct {
	API      APIConfig      `toml:"api"`
	Calendar CalendarConfig `toml:"calendar"`
	Storage  StorageConfig  `toml:"storage"`
	Auth     AuthConfig     `toml:"auth"`
	UI       UIConfig       `toml:"ui"`
}

// APIConfig holds backend API settings.
type APIConfig struct {
	Root           string `toml:"root"`            // e.g., "https://api.jobjourney.app"
	TimeoutSeconds int    `toml:"timeout_seconds"` // per-request timeout
}

// CalendarConfig holds calendar push settings.
type CalendarConfig struct {
	Timezone             string `toml:"timezone"`               // fallback when the local zone cannot be resolved
	StartHours           []int  `toml:"start_hours"`            // three event slots per day, e.g., [9, 14, 19]
	EventDurationMinutes int    `toml:"event_duration_minutes"` // length of each pushed event
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// AuthConfig holds bearer token settings.
type AuthConfig struct {
	TokenPath string `toml:"token_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Root:           "https://api.jobjourney.app",
			TimeoutSeconds: 30,
		},
		Calendar: CalendarConfig{
			Timezone:             "Europe/Madrid",
			StartHours:           []int{9, 14, 19},
			EventDurationMinutes: 60,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Auth: AuthConfig{
			TokenPath: defaultTokenPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "jjprep.db"
	}
	return filepath.Join(home, ".local", "share", "jjprep", "jjprep.db")
}

// defaultTokenPath returns the default bearer token path.
func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "token.json"
	}
	return filepath.Join(home, ".config", "jjprep", "token.json")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "jjprep", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Auth.TokenPath = expandPath(cfg.Auth.TokenPath)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	// API overrides
	if v := os.Getenv("JJPREP_API_ROOT"); v != "" {
		cfg.API.Root = v
	}
	if v := os.Getenv("JJPREP_API_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.TimeoutSeconds = n
		}
	}

	// Calendar overrides
	if v := os.Getenv("JJPREP_TIMEZONE"); v != "" {
		cfg.Calendar.Timezone = v
	}
	if v := os.Getenv("JJPREP_START_HOURS"); v != "" {
		if hours, ok := parseHourList(v); ok {
			cfg.Calendar.StartHours = hours
		}
	}
	if v := os.Getenv("JJPREP_EVENT_DURATION_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Calendar.EventDurationMinutes = n
		}
	}

	// Storage overrides
	if v := os.Getenv("JJPREP_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// Auth overrides
	if v := os.Getenv("JJPREP_TOKEN_PATH"); v != "" {
		cfg.Auth.TokenPath = v
	}

	// UI overrides
	if v := os.Getenv("JJPREP_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// parseHourList parses a comma-separated list of hours.
func parseHourList(s string) ([]int, bool) {
	parts := strings.Split(s, ",")
	hours := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, false
		}
		hours = append(hours, n)
	}
	return hours, true
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.API.Root == "" {
		return errors.New("api root must be set")
	}
	u, err := url.Parse(c.API.Root)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api root must be an absolute URL, got %q", c.API.Root)
	}
	if c.API.TimeoutSeconds <= 0 {
		return errors.New("api timeout must be positive")
	}

	if c.Calendar.Timezone == "" {
		return errors.New("calendar timezone fallback must be set")
	}
	if err := schedule.ValidateStartHours(c.Calendar.StartHours); err != nil {
		return fmt.Errorf("calendar start_hours: %w", err)
	}
	if c.Calendar.EventDurationMinutes <= 0 {
		return errors.New("event_duration_minutes must be positive")
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.Auth.TokenPath == "" {
		return errors.New("token_path must be set")
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Cleanup CleanupConfig `toml:"cleanup"`
	Pages   PagesConfig   `toml:"pages"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `toml:"port"`
}

// CleanupConfig controls the automatic cleanup of expired completed
// links. Whether cleanup runs at all, and how far back it keeps links,
// is decided by the user's settings record; this section only controls
// when the server triggers it.
type CleanupConfig struct {
	RunOnStartup  bool `toml:"run_on_startup"`
	IntervalHours int  `toml:"interval_hours"`
}

// PagesConfig holds page metadata fetch settings.
type PagesConfig struct {
	FetchTimeoutSeconds int `toml:"fetch_timeout_seconds"`
}

const defaultConfigContent = `[server]
port = 8080

[cleanup]
run_on_startup = true      # run completed-link cleanup when the server starts
interval_hours = 24        # hours between periodic cleanups (0 disables)

[pages]
fetch_timeout_seconds = 30 # timeout for page-info metadata fetches
`

// Load reads and parses the TOML config from the given path. If the file
// does not exist, it creates a default config file at that path.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// explicitly writing "port = 0" is an error rather than silently
	// being replaced with the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg, md)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML
// file. This catches cases like "port = 0" which would otherwise be
// silently replaced by the default value.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("cleanup", "interval_hours") {
		if cfg.Cleanup.IntervalHours < 0 {
			return fmt.Errorf("invalid cleanup.interval_hours %d: must be >= 0", cfg.Cleanup.IntervalHours)
		}
	}
	if md.IsDefined("pages", "fetch_timeout_seconds") {
		if cfg.Pages.FetchTimeoutSeconds < 1 {
			return fmt.Errorf("invalid pages.fetch_timeout_seconds %d: must be >= 1", cfg.Pages.FetchTimeoutSeconds)
		}
	}
	return nil
}

// applyDefaults sets default values for any fields the file left unset.
// MetaData is consulted so that an explicit "interval_hours = 0" or
// "run_on_startup = false" is respected rather than replaced.
func applyDefaults(cfg *Config, md toml.MetaData) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if !md.IsDefined("cleanup", "run_on_startup") {
		cfg.Cleanup.RunOnStartup = true
	}
	if !md.IsDefined("cleanup", "interval_hours") {
		cfg.Cleanup.IntervalHours = 24
	}
	if cfg.Pages.FetchTimeoutSeconds == 0 {
		cfg.Pages.FetchTimeoutSeconds = 30
	}
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}
	if cfg.Cleanup.IntervalHours < 0 {
		return fmt.Errorf("invalid cleanup.interval_hours %d: must be >= 0", cfg.Cleanup.IntervalHours)
	}
	if cfg.Pages.FetchTimeoutSeconds < 1 {
		return fmt.Errorf("invalid pages.fetch_timeout_seconds %d: must be >= 1", cfg.Pages.FetchTimeoutSeconds)
	}
	return nil
}

// Package config loads and validates the pivotal CLI TOML configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const defaultConfigRelPath = ".config/pivotal/pivotal.toml"

// Config is the full CLI configuration file.
type Config struct {
	Tracker Tracker `toml:"tracker"`
}

// Tracker configures the API client built by the CLI.
type Tracker struct {
	Token     string `toml:"token"`
	ProjectID int    `toml:"project_id"`
	BaseURL   string `toml:"base_url"`
	LogLevel  string `toml:"log_level"`
}

// DefaultPath resolves the config file location: an explicit path wins,
// then the PIVOTAL_CONFIG environment variable, then the well-known file
// under the user's home directory.
func DefaultPath(explicit string) (string, error) {
	if path := strings.TrimSpace(explicit); path != "" {
		return path, nil
	}
	if path := strings.TrimSpace(os.Getenv("PIVOTAL_CONFIG")); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory for config: %w", err)
	}
	return filepath.Join(home, defaultConfigRelPath), nil
}

// Load reads and validates a CLI TOML configuration file. A token given via
// the PIVOTAL_TOKEN environment variable takes precedence over the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if token := strings.TrimSpace(os.Getenv("PIVOTAL_TOKEN")); token != "" {
		cfg.Tracker.Token = token
	}
	if cfg.Tracker.LogLevel == "" {
		cfg.Tracker.LogLevel = "info"
	}
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Tracker.Token) == "" {
		return fmt.Errorf("tracker.token is required (or set PIVOTAL_TOKEN)")
	}
	if cfg.Tracker.ProjectID < 0 {
		return fmt.Errorf("tracker.project_id must not be negative, got %d", cfg.Tracker.ProjectID)
	}
	if base := strings.TrimSpace(cfg.Tracker.BaseURL); base != "" {
		parsed, err := url.Parse(base)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("tracker.base_url %q is not an absolute url", base)
		}
	}
	switch cfg.Tracker.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("tracker.log_level %q is not one of debug, info, warn, error", cfg.Tracker.LogLevel)
	}
	return nil
}

// Package commands wires the pivotal CLI: thin cobra commands over the
// tracker client, configured from a TOML file.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/antigravity-dev/pivotal"
	"github.com/antigravity-dev/pivotal/internal/config"
)

var (
	configFlag   string
	projectFlag  int
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "pivotal",
	Short: "A CLI for the Pivotal Tracker v5 API",
	Long: `pivotal drives story, task and comment workflows on a Pivotal Tracker
project from the terminal. It reads its API token and default project id
from a TOML config file (see 'pivotal login' to obtain a token).`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file (default $PIVOTAL_CONFIG or ~/.config/pivotal/pivotal.toml)")
	rootCmd.PersistentFlags().IntVarP(&projectFlag, "project", "p", 0, "project id, overriding the configured default for this call")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(storiesCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(backlogCmd)
	rootCmd.AddCommand(iceboxCmd)
	rootCmd.AddCommand(myWorkCmd)
}

func configureLogger(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newTracker builds an authenticated client from the config file plus any
// command-line overrides.
func newTracker() (*pivotal.Client, error) {
	path, err := config.DefaultPath(configFlag)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	level := cfg.Tracker.LogLevel
	if logLevelFlag != "" {
		level = logLevelFlag
	}

	opts := []pivotal.Option{pivotal.WithLogger(configureLogger(level))}
	if cfg.Tracker.ProjectID != 0 {
		opts = append(opts, pivotal.WithProjectID(cfg.Tracker.ProjectID))
	}
	if cfg.Tracker.BaseURL != "" {
		opts = append(opts, pivotal.WithBaseURL(cfg.Tracker.BaseURL))
	}
	return pivotal.NewClient(cfg.Tracker.Token, opts...), nil
}

// projectArg maps the --project flag onto the client's optional project id:
// 0 means "not set here, use the configured default".
func projectArg() *int {
	if projectFlag == 0 {
		return nil
	}
	return pivotal.Int(projectFlag)
}

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", what, arg)
	}
	return id, nil
}

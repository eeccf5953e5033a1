package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/mark3labs/chainform/internal/config"
	"github.com/mark3labs/chainform/internal/logger"
	"github.com/mark3labs/chainform/internal/tui/theme"
)

const (
	logoText1 = "█▀▀ █ █ ▄▀█ █ █▄ █ █▀▀ █▀█ █▀█ █▀▄▀█"
	logoText2 = "█▄▄ █▀█ █▀█ █ █ ▀█ █▀  █▄█ █▀▄ █ ▀ █"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chainform",
	Short: "Four-step chained form with a terminal wizard and a submission API",
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.Current()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

chainform collects a four-step form where each step depends on the one before:
a mode, then a topic or a category, then a date or a time, then a budget or an
urgency. Changing an earlier answer clears everything downstream of it.

The wizard and submit commands post the finished form to a submission API;
serve runs that API, recording accepted submissions in an embedded NATS
JetStream ledger.`

	pf := rootCmd.PersistentFlags()
	pf.String("endpoint", config.DefaultEndpoint, "Base URL of the submission API")
	pf.Duration("timeout", config.DefaultTimeout, "Submission request timeout (0 disables)")
	pf.String("data-dir", config.DefaultDataDir, "Data directory for the submission ledger")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-file", "", "Write logs to this file")

	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(setupCmd)
}

// loadConfig resolves configuration for cmd and applies its logging settings.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Default.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return cfg, nil
}

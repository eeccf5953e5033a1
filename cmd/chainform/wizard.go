package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark3labs/chainform/internal/submit"
	"github.com/mark3labs/chainform/internal/tui/wizard"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Fill in the chained form interactively",
	Long: `Open the chained form in a full-screen terminal wizard.

Steps appear as the earlier ones are answered. Press ctrl+s (or enter on the
Submit button) to send the form to the configured endpoint, esc to leave.`,
	RunE: runWizard,
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	t := submit.NewHTTPTransport(cfg.Endpoint, cfg.Timeout)
	sess, err := wizard.Run(cmd.Context(), t)
	if errors.Is(err, wizard.ErrCancelled) {
		fmt.Fprintln(cmd.OutOrStdout(), "Wizard closed without a successful submission.")
		return nil
	}
	if err != nil {
		return err
	}

	return reportResult(cmd.OutOrStdout(), sess)
}

package main

import (
	"fmt"
	"strconv"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/mark3labs/chainform/internal/form"
	"github.com/mark3labs/chainform/internal/ledger"
	"github.com/mark3labs/chainform/internal/tui/theme"
)

var historyFlags struct {
	limit int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List submissions recorded in the ledger",
	Long: `List the submissions recorded by 'chainform serve' in the ledger under --data-dir.

The ledger is opened directly, so stop a running server on the same data
directory first.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "l", 0, "Show only the most recent N submissions (0 = all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Ledger = true

	rec, closeLedger, err := openRecorder(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeLedger()

	recs, err := rec.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}
	if len(recs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No submissions recorded.")
		return nil
	}
	if historyFlags.limit > 0 && len(recs) > historyFlags.limit {
		recs = recs[len(recs)-historyFlags.limit:]
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderHistory(recs))
	return nil
}

// renderHistory lays records out as a table, oldest first.
func renderHistory(recs []ledger.Record) string {
	t := theme.Current()
	header := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)).Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgSurface2))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("ID", "Received", "Mode", "Step 2", "Step 3", "Step 4")

	for _, r := range recs {
		tbl.Row(r.ID, r.ReceivedAt.Local().Format(time.DateTime), string(r.Payload.Mode),
			stepTwo(r.Payload), stepThree(r.Payload), stepFour(r.Payload))
	}
	return tbl.String()
}

func stepTwo(p form.Payload) string {
	if p.Mode == form.ModeAdvanced {
		return string(p.Category)
	}
	return p.Topic
}

func stepThree(p form.Payload) string {
	if p.ChosenDate != "" {
		return p.ChosenDate
	}
	return p.ChosenTime
}

func stepFour(p form.Payload) string {
	if p.Budget != nil {
		return "$" + strconv.Itoa(*p.Budget)
	}
	return string(p.Urgency)
}

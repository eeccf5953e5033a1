package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mark3labs/chainform/internal/flow"
	"github.com/mark3labs/chainform/internal/form"
	"github.com/mark3labs/chainform/internal/submit"
)

var submitFlags struct {
	mode     string
	topic    string
	category string
	date     string
	time     string
	budget   int
	urgency  string
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit the chained form without the wizard",
	Long: `Fill in the chained form from flags and submit it.

Fields are applied in step order, so the same rules as in the wizard hold:
only the fields on the active path are sent, and missing ones are reported
as validation errors.

Examples:
  chainform submit --mode Basic --topic "pick a date" --date 2024-01-15 --budget 1000
  chainform submit --mode Advanced --category Realtime --time 14:30 --urgency High`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&submitFlags.mode, "mode", string(form.ModeBasic), "Mode: Basic or Advanced")
	submitCmd.Flags().StringVar(&submitFlags.topic, "topic", "", "Topic (Basic mode)")
	submitCmd.Flags().StringVar(&submitFlags.category, "category", "", "Category: Schedule, Realtime or Analytics (Advanced mode)")
	submitCmd.Flags().StringVar(&submitFlags.date, "date", "", "Date, YYYY-MM-DD (date path)")
	submitCmd.Flags().StringVar(&submitFlags.time, "time", "", "Time, HH:MM (time path)")
	submitCmd.Flags().IntVar(&submitFlags.budget, "budget", 0, "Budget 0-5000 in steps of 100 (date path)")
	submitCmd.Flags().StringVar(&submitFlags.urgency, "urgency", "", "Urgency: Low, Normal or High (time path)")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sess, err := sessionFromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	t := submit.NewHTTPTransport(cfg.Endpoint, cfg.Timeout)
	if err := sess.Submit(cmd.Context(), t); err != nil {
		if errors.Is(err, flow.ErrNotValid) {
			printErrors(cmd.ErrOrStderr(), sess.Errors())
		}
		return err
	}

	return reportResult(cmd.OutOrStdout(), sess)
}

// sessionFromFlags builds a session from the submit flags. Fields are set in step
// order so earlier answers cascade before later ones are applied.
func sessionFromFlags(flags *pflag.FlagSet) (*flow.Session, error) {
	sess := flow.NewSession()

	set := func(field form.Field, value any) error {
		if err := sess.Set(field, value); err != nil {
			return fmt.Errorf("--%s: %w", flagName(field), err)
		}
		return nil
	}

	if err := set(form.FieldMode, submitFlags.mode); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		field form.Field
		value string
	}{
		{form.FieldTopic, submitFlags.topic},
		{form.FieldCategory, submitFlags.category},
		{form.FieldChosenDate, submitFlags.date},
		{form.FieldChosenTime, submitFlags.time},
		{form.FieldUrgency, submitFlags.urgency},
	} {
		if f.value == "" {
			continue
		}
		if err := set(f.field, f.value); err != nil {
			return nil, err
		}
	}

	if flags.Changed("budget") {
		if err := set(form.FieldBudget, submitFlags.budget); err != nil {
			return nil, err
		}
	}

	return sess, nil
}

// flagName maps a form field to the submit flag that sets it.
func flagName(f form.Field) string {
	switch f {
	case form.FieldChosenDate:
		return "date"
	case form.FieldChosenTime:
		return "time"
	}
	return string(f)
}

func printErrors(w io.Writer, errs form.Errors) {
	for _, f := range errs.Keys() {
		fmt.Fprintf(w, "  --%s: %s\n", flagName(f), errs[f])
	}
}

// reportResult prints the outcome of the session's last submission. A failed
// submission is returned as an error so the process exits non-zero.
func reportResult(w io.Writer, sess *flow.Session) error {
	switch r := sess.Result().(type) {
	case flow.Success:
		fmt.Fprintf(w, "Success! Submission ID: %s\n", r.ID)
		return nil
	case flow.Failure:
		return fmt.Errorf("submission failed: %s", r.Message)
	}
	return errors.New("no submission was made")
}

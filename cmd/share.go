package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"calculator-engine/internal/calculators"
	"calculator-engine/internal/model"
	"calculator-engine/internal/snapshot"
)

var flagBaseURL string

var shareCmd = &cobra.Command{
	Use:   "share <calculator>",
	Short: "Print a shareable link for a set of inputs",
	Long:  "Validate the inputs and print the canonical query string, or a full link with --base-url.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShare,
}

func init() {
	shareCmd.Flags().StringArrayVarP(&flagSet, "set", "s", nil, "Input as key=value (repeatable)")
	shareCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Server URL to prefix, e.g. http://localhost:8080")
	rootCmd.AddCommand(shareCmd)
}

func runShare(cmd *cobra.Command, args []string) error {
	c, ok := calculators.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown calculator %q", args[0])
	}
	_, inputs, err := collectInputs("", flagSet)
	if err != nil {
		return err
	}

	in, msgs := c.Validate(inputs)
	for _, m := range msgs {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s %s: %s\n", m.Level, m.Code, m.Field, m.Message)
	}
	if model.HasCritical(msgs) {
		return errCalculationFailed
	}

	query := snapshot.Encode(c.Name(), in.Query())
	if flagBaseURL == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "?"+query)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s/api/calculate/%s?%s\n", strings.TrimRight(flagBaseURL, "/"), c.Name(), query)
	return nil
}

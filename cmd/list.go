package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"calculator-engine/internal/calculators"
	"calculator-engine/internal/cli"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available calculators",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")
		return cli.Write(os.Stdout, format, calculators.List())
	},
}

func init() {
	listCmd.Flags().StringP("format", "f", cli.FormatTable, "Output format: table, json, yaml")
	rootCmd.AddCommand(listCmd)
}

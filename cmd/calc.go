package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"calculator-engine/internal/cli"
	"calculator-engine/internal/engine"
	"calculator-engine/internal/model"
)

var (
	flagSet    []string
	flagQuery  string
	flagFormat string
	flagVs     []string
)

var errCalculationFailed = errors.New("calculation failed")

var calcCmd = &cobra.Command{
	Use:   "calc [calculator]",
	Short: "Run a calculator",
	Example: `  calculator-engine calc savings --set annual_contribution=1200 --set return_rate=5 --set years=1
  calculator-engine calc --query "calc=binary&value=255"
  calculator-engine calc savings --set years=10 --set return_rate=5 --vs return_rate=7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringArrayVarP(&flagSet, "set", "s", nil, "Input as key=value (repeatable)")
	calcCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "Share query string to load inputs from")
	calcCmd.Flags().StringVarP(&flagFormat, "format", "f", cli.FormatTable, "Output format: table, json, yaml")
	calcCmd.Flags().StringArrayVar(&flagVs, "vs", nil, "Compare against a variant overriding key=value (repeatable)")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	fromQuery, inputs, err := collectInputs(flagQuery, flagSet)
	if err != nil {
		return err
	}
	name, err := calculatorName(args, fromQuery)
	if err != nil {
		return err
	}

	e := engine.New(nil, 0, logger)

	if len(flagVs) > 0 {
		_, variant, err := collectInputs("", flagVs)
		if err != nil {
			return err
		}
		resp := e.Compare(context.Background(), &model.CompareRequest{Calculator: name, Base: inputs, Variant: variant})
		if err := cli.Write(os.Stdout, flagFormat, resp); err != nil {
			return err
		}
		if resp.Variant.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess ||
			resp.Base.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
			return errCalculationFailed
		}
		return nil
	}

	resp := e.Process(context.Background(), &model.CalculationRequest{Calculator: name, Inputs: inputs})
	if err := cli.Write(os.Stdout, flagFormat, resp); err != nil {
		return err
	}
	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		return errCalculationFailed
	}
	return nil
}

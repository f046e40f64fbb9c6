package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"calculator-engine/internal/config"
	"calculator-engine/internal/form"
	"calculator-engine/internal/logging"
	"calculator-engine/internal/snapshot"
)

var (
	flagConfig   string
	flagLogLevel string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "calculator-engine",
	Short:         "Financial, health and everyday calculators",
	Long:          "Run savings, retirement, health, math and lifestyle calculators from the command line or over HTTP.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagLogLevel != "" {
			cfg.Log.Level = flagLogLevel
		}
		logger, err = logging.New(cfg.Log.Level, cfg.Log.Development)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// collectInputs merges a share query with --set pairs; --set wins. The
// calculator named in the query is returned when present.
func collectInputs(query string, sets []string) (string, form.Values, error) {
	var name string
	values := form.Values{}
	if query != "" {
		if n, v, err := snapshot.Decode(query); err == nil {
			name, values = n, v
		} else {
			values = snapshot.Values(query)
		}
	}
	for _, kv := range sets {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return "", nil, fmt.Errorf("--set %q: want key=value", kv)
		}
		values[strings.TrimSpace(k)] = v
	}
	return name, values, nil
}

// calculatorName picks the positional name, falling back to the query.
func calculatorName(args []string, fromQuery string) (string, error) {
	switch {
	case len(args) > 0 && fromQuery != "" && args[0] != fromQuery:
		return "", fmt.Errorf("calculator %q does not match query calculator %q", args[0], fromQuery)
	case len(args) > 0:
		return args[0], nil
	case fromQuery != "":
		return fromQuery, nil
	}
	return "", fmt.Errorf("a calculator name is required (see %q)", "calculator-engine list")
}

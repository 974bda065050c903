// Package cmd provides the CLI commands for the quality tool.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-data-quality/internal/logging"
)

var (
	verbose bool
	log     *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quality",
	Short: "Analyze tabular datasets for data quality issues",
	Long: `quality inspects CSV and Excel files and reports missing values,
invalid values, duplicate records, logical inconsistencies, numeric
statistics, and per-column profiles.

Examples:
  quality analyze sales.csv
  quality analyze --output report.json transactions.csv
  quality analyze inventory.xlsx users.csv`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogging() {
	cfg := logging.DefaultConfig()
	if verbose {
		cfg.Level = "debug"
	}
	log = logging.New(cfg)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("quality version 1.0.0")
	},
}

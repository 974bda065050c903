// Package cmd - analyze command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-data-quality/internal/analyzer"
	"go-data-quality/internal/ingest"
	"go-data-quality/internal/model"
)

var outputPath string

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file...>",
	Short: "Analyze one or more data files",
	Long: `Read CSV or Excel files and print a data quality report as JSON.

With a single file the report object is printed directly; with several
files the output is an array of {dataset, report} entries.

Examples:
  quality analyze sales.csv
  quality analyze --output report.json transactions.csv
  quality analyze inventory.xlsx users.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to a file instead of stdout")
}

type fileReport struct {
	Dataset string        `json:"dataset"`
	Report  *model.Report `json:"report"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	reports := make([]fileReport, 0, len(args))
	for _, path := range args {
		report, err := analyzeFile(path)
		if err != nil {
			return err
		}
		reports = append(reports, fileReport{Dataset: path, Report: report})
		log.Info("analysis complete",
			zap.String("file", path),
			zap.Bool("has_issues", report.HasIssues()),
		)
	}

	var payload interface{} = reports
	if len(reports) == 1 {
		payload = reports[0].Report
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}

func analyzeFile(path string) (*model.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	dataset, err := ingest.ReadFile(path, f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return analyzer.Analyze(dataset, path), nil
}

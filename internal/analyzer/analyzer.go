// Package analyzer is the data-quality engine: a set of read-only rule
// evaluators that inspect one dataset snapshot and produce a structured
// report. The engine performs no I/O and has no fatal error surface; every
// well-formed snapshot, including the empty one, yields a well-formed report.
package analyzer

import (
	"math"
	"sync"
	"time"

	"go-data-quality/internal/model"
)

// Analyze runs every component once over the same snapshot and merges the
// sub-results. Components are pure functions of the snapshot, so they run as
// parallel goroutines joined here; none mutate the snapshot or each other's
// outputs.
func Analyze(d *model.Dataset, datasetName string) *model.Report {
	report := &model.Report{
		DatasetName:  datasetName,
		TotalRecords: d.RowCount(),
		TotalColumns: d.ColumnCount(),
	}
	now := time.Now()

	var wg sync.WaitGroup
	wg.Add(6)

	go func() {
		defer wg.Done()
		report.DataPreview = buildPreview(d)
		report.MissingValues = AnalyzeMissingValues(d)
	}()
	go func() {
		defer wg.Done()
		report.InvalidValues = AnalyzeInvalidValues(d, now)
	}()
	go func() {
		defer wg.Done()
		report.Duplicates = AnalyzeDuplicates(d, datasetName)
	}()
	go func() {
		defer wg.Done()
		report.LogicalIssues = AnalyzeLogicalIssues(d)
	}()
	go func() {
		defer wg.Done()
		report.Statistics = GenerateStatistics(d)
	}()
	go func() {
		defer wg.Done()
		report.ColumnDetails = ProfileColumns(d)
	}()

	wg.Wait()
	return report
}

func buildPreview(d *model.Dataset) model.DataPreview {
	rows := d.Rows
	if rows == nil {
		rows = []model.Row{}
	}
	return model.DataPreview{
		Columns:   append([]string{}, d.Columns...),
		Data:      rows,
		TotalRows: d.RowCount(),
	}
}

// safePercentage computes count/total*100 rounded to 2 decimals, 0 when the
// total is 0. Every percentage in a report goes through this guard.
func safePercentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(count) / float64(total) * 100)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// safeRound rounds to 2 decimals and converts any non-finite input to nil,
// the explicit null marker for statistics.
func safeRound(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	r := round2(f)
	return &r
}

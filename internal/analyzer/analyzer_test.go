package analyzer_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"go-data-quality/internal/analyzer"
	"go-data-quality/internal/model"
)

func TestAnalyzeEmptyDataset(t *testing.T) {
	d := &model.Dataset{Columns: []string{"a", "b"}, Rows: []model.Row{}}
	report := analyzer.Analyze(d, "empty.csv")

	if report.TotalRecords != 0 || report.TotalColumns != 2 {
		t.Fatalf("unexpected dimensions: %d x %d", report.TotalRecords, report.TotalColumns)
	}
	if report.HasIssues() {
		t.Fatalf("empty dataset must have no issues")
	}
	if report.MissingValues.OverallMissingPercentage != 0 {
		t.Fatalf("zero-row percentage must be 0, got %v", report.MissingValues.OverallMissingPercentage)
	}
	if len(report.ColumnDetails) != 2 {
		t.Fatalf("every column must be profiled, got %d", len(report.ColumnDetails))
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("report must serialize: %v", err)
	}
	for _, token := range []string{"NaN", "Infinity"} {
		if strings.Contains(string(data), token) {
			t.Fatalf("serialized report contains %s", token)
		}
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	d := dataset([]string{"id", "age", "email"},
		[]model.Value{model.IntValue(1), model.IntValue(30), model.StringValue("a@example.com")},
		[]model.Value{model.IntValue(2), model.IntValue(-4), model.StringValue("bad")},
		[]model.Value{model.IntValue(3), model.Null(), model.StringValue("c@example.com")},
	)
	first := analyzer.Analyze(d, "users.csv")
	second := analyzer.Analyze(d, "users.csv")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("analysis must be deterministic for the same snapshot")
	}
}

func TestAnalyzePercentagesBounded(t *testing.T) {
	d := dataset([]string{"age"},
		[]model.Value{model.IntValue(200)},
		[]model.Value{model.IntValue(-1)},
	)
	report := analyzer.Analyze(d, "people.csv")
	for _, f := range report.InvalidValues.InvalidPatterns {
		if f.Percentage < 0 || f.Percentage > 100 {
			t.Fatalf("percentage out of range: %v", f.Percentage)
		}
	}
	if report.InvalidValues.TotalInvalidCount != 2 {
		t.Fatalf("expected both rows flagged, got %d", report.InvalidValues.TotalInvalidCount)
	}
}

func TestAnalyzeMissingValues(t *testing.T) {
	d := dataset([]string{"a", "b"},
		[]model.Value{model.IntValue(1), model.Null()},
		[]model.Value{model.IntValue(2), model.StringValue("x")},
		[]model.Value{model.Null(), model.StringValue("y")},
	)
	mv := analyzer.AnalyzeMissingValues(d)
	if mv.TotalMissingValues != 2 {
		t.Fatalf("expected 2 missing cells, got %d", mv.TotalMissingValues)
	}
	if len(mv.ColumnsWithMissing) != 2 {
		t.Fatalf("both columns have gaps, got %d entries", len(mv.ColumnsWithMissing))
	}
	// 2 of 6 cells
	if mv.OverallMissingPercentage != 33.33 {
		t.Fatalf("expected 33.33%%, got %v", mv.OverallMissingPercentage)
	}
}

func TestAnalyzeDenseDatasetHasEmptyMissingList(t *testing.T) {
	d := dataset([]string{"a"},
		[]model.Value{model.IntValue(1)},
	)
	mv := analyzer.AnalyzeMissingValues(d)
	if len(mv.ColumnsWithMissing) != 0 || mv.ColumnsWithMissing == nil {
		t.Fatalf("dense dataset must yield an empty, non-nil list: %+v", mv)
	}
}

func TestAnalyzeLogicalIssues(t *testing.T) {
	d := dataset([]string{"selling_price", "cost_price"},
		[]model.Value{model.FloatValue(5), model.FloatValue(10)},
		[]model.Value{model.FloatValue(20), model.FloatValue(10)},
		[]model.Value{model.Null(), model.FloatValue(10)},
	)
	issues := analyzer.AnalyzeLogicalIssues(d)
	if issues.TotalIssues != 1 {
		t.Fatalf("expected 1 violation, got %d", issues.TotalIssues)
	}
	issue := issues.LogicalInconsistencies[0]
	if issue.Severity != "high" {
		t.Fatalf("selling below cost is high severity, got %q", issue.Severity)
	}
	if len(issue.IssueRows) != 1 {
		t.Fatalf("expected the offending row attached, got %d", len(issue.IssueRows))
	}
}

func TestAnalyzeLogicalIssuesStockRule(t *testing.T) {
	d := dataset([]string{"current_stock", "reorder_level"},
		[]model.Value{model.IntValue(3), model.IntValue(10)},
		[]model.Value{model.IntValue(50), model.IntValue(10)},
	)
	issues := analyzer.AnalyzeLogicalIssues(d)
	if issues.TotalIssues != 1 {
		t.Fatalf("expected 1 stock violation, got %d", issues.TotalIssues)
	}
	if issues.LogicalInconsistencies[0].Severity != "medium" {
		t.Fatalf("stock rule is medium severity")
	}
}

func TestProfileColumns(t *testing.T) {
	d := dataset([]string{"id", "score", "mixed", "order_date"},
		[]model.Value{model.IntValue(1), model.FloatValue(1.5), model.IntValue(1), model.StringValue("2024-01-01")},
		[]model.Value{model.IntValue(2), model.FloatValue(2.5), model.StringValue("x"), model.StringValue("2024-01-02")},
		[]model.Value{model.IntValue(3), model.Null(), model.Null(), model.Null()},
	)
	profiles := analyzer.ProfileColumns(d)
	byName := map[string]model.ColumnProfile{}
	for _, p := range profiles {
		byName[p.Name] = p
	}

	if byName["id"].DataType != "int" {
		t.Fatalf("id should profile as int, got %q", byName["id"].DataType)
	}
	if byName["score"].DataType != "float" {
		t.Fatalf("score should profile as float, got %q", byName["score"].DataType)
	}
	if byName["mixed"].DataType != "string" {
		t.Fatalf("mixed storage should fall back to string, got %q", byName["mixed"].DataType)
	}
	if byName["order_date"].DataType != "date" {
		t.Fatalf("date-named column should profile as date, got %q", byName["order_date"].DataType)
	}
	if byName["id"].UniqueValues != 3 || byName["id"].NullCount != 0 {
		t.Fatalf("unexpected id profile: %+v", byName["id"])
	}
	if byName["score"].NullCount != 1 || byName["score"].NullPercentage != 33.33 {
		t.Fatalf("unexpected score nulls: %+v", byName["score"])
	}
	if len(byName["id"].SampleValues) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(byName["id"].SampleValues))
	}
}

func TestProfileAllNullColumnHasNoSamples(t *testing.T) {
	d := dataset([]string{"v"},
		[]model.Value{model.Null()},
	)
	p := analyzer.ProfileColumns(d)[0]
	if p.SampleValues != nil {
		t.Fatalf("all-null column must omit samples, got %v", p.SampleValues)
	}
	if p.DataType != "string" {
		t.Fatalf("all-null column defaults to string, got %q", p.DataType)
	}
}

func TestAnalyzePreviewCarriesRows(t *testing.T) {
	d := dataset([]string{"a"},
		[]model.Value{model.IntValue(1)},
		[]model.Value{model.IntValue(2)},
	)
	report := analyzer.Analyze(d, "t.csv")
	if report.DataPreview.TotalRows != 2 || len(report.DataPreview.Data) != 2 {
		t.Fatalf("preview must carry all rows: %+v", report.DataPreview)
	}
	if len(report.DataPreview.Columns) != 1 || report.DataPreview.Columns[0] != "a" {
		t.Fatalf("preview columns wrong: %v", report.DataPreview.Columns)
	}
}

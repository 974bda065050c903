package analyzer_test

import (
	"testing"
	"time"

	"go-data-quality/internal/analyzer"
	"go-data-quality/internal/model"
)

func dataset(columns []string, cells ...[]model.Value) *model.Dataset {
	rows := make([]model.Row, 0, len(cells))
	for _, record := range cells {
		row := make(model.Row, len(columns))
		for i, col := range columns {
			row[col] = record[i]
		}
		rows = append(rows, row)
	}
	return &model.Dataset{Columns: columns, Rows: rows}
}

func TestAgeRangeRule(t *testing.T) {
	d := dataset([]string{"age"},
		[]model.Value{model.IntValue(25)},
		[]model.Value{model.IntValue(-5)},
		[]model.Value{model.IntValue(150)},
		[]model.Value{model.Null()},
	)
	result := analyzer.AnalyzeInvalidValues(d, time.Now())
	if len(result.InvalidPatterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(result.InvalidPatterns))
	}
	f := result.InvalidPatterns[0]
	if f.Column != "age" || f.Count != 2 {
		t.Fatalf("expected 2 age violations, got %+v", f)
	}
	if f.Percentage != 50 {
		t.Fatalf("expected 50%%, got %v", f.Percentage)
	}
	if result.TotalInvalidCount != 2 {
		t.Fatalf("expected total 2, got %d", result.TotalInvalidCount)
	}
}

func TestEmailFormatRule(t *testing.T) {
	d := dataset([]string{"email"},
		[]model.Value{model.StringValue("alice@example.com")},
		[]model.Value{model.StringValue("not-an-email")},
		[]model.Value{model.StringValue("bob@test")},
		[]model.Value{model.Null()},
	)
	result := analyzer.AnalyzeInvalidValues(d, time.Now())
	if len(result.InvalidPatterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(result.InvalidPatterns))
	}
	f := result.InvalidPatterns[0]
	if f.Count != 2 {
		t.Fatalf("expected 2 invalid emails, got %d", f.Count)
	}
	if len(f.Examples) != 2 {
		t.Fatalf("expected 2 examples, got %d", len(f.Examples))
	}
	if len(f.InvalidRows) != 2 {
		t.Fatalf("expected 2 invalid rows, got %d", len(f.InvalidRows))
	}
}

func TestStatusRuleDependsOnDatasetShape(t *testing.T) {
	// Without transaction_id the account lifecycle states apply.
	d := dataset([]string{"status"},
		[]model.Value{model.StringValue("Active")},
		[]model.Value{model.StringValue("Completed")},
	)
	result := analyzer.AnalyzeInvalidValues(d, time.Now())
	if result.TotalInvalidCount != 1 {
		t.Fatalf("expected Completed to be invalid for account data, got %d", result.TotalInvalidCount)
	}

	// With transaction_id present the transaction states apply instead.
	d = dataset([]string{"transaction_id", "status"},
		[]model.Value{model.IntValue(1), model.StringValue("Active")},
		[]model.Value{model.IntValue(2), model.StringValue("Completed")},
	)
	result = analyzer.AnalyzeInvalidValues(d, time.Now())
	if result.TotalInvalidCount != 1 {
		t.Fatalf("expected Active to be invalid for transaction data, got %d", result.TotalInvalidCount)
	}
	if result.InvalidPatterns[0].Examples[0].String() != "Active" {
		t.Fatalf("expected Active as the offending example, got %v", result.InvalidPatterns[0].Examples)
	}
}

func TestFutureDateRule(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	d := dataset([]string{"order_date"},
		[]model.Value{model.StringValue("2026-05-30")},
		[]model.Value{model.StringValue("2027-01-01")},
		[]model.Value{model.StringValue("not a date")},
		[]model.Value{model.Null()},
	)
	result := analyzer.AnalyzeInvalidValues(d, now)
	if len(result.InvalidPatterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(result.InvalidPatterns))
	}
	f := result.InvalidPatterns[0]
	if f.Count != 1 {
		t.Fatalf("expected exactly the 2027 date flagged, got %d", f.Count)
	}
	if f.IssueType != "Future Date" {
		t.Fatalf("unexpected issue type %q", f.IssueType)
	}
}

func TestPaymentMethodExamplesAreDistinct(t *testing.T) {
	d := dataset([]string{"payment_method"},
		[]model.Value{model.StringValue("Bitcoin")},
		[]model.Value{model.StringValue("Bitcoin")},
		[]model.Value{model.StringValue("Cheque")},
		[]model.Value{model.StringValue("Cash")},
	)
	result := analyzer.AnalyzeInvalidValues(d, time.Now())
	f := result.InvalidPatterns[0]
	if f.Count != 3 {
		t.Fatalf("expected 3 violations, got %d", f.Count)
	}
	if len(f.Examples) != 2 {
		t.Fatalf("expected distinct examples Bitcoin and Cheque, got %v", f.Examples)
	}
}

func TestAmountAndPriceRules(t *testing.T) {
	d := dataset([]string{"unit_price", "total_amount"},
		[]model.Value{model.FloatValue(19.99), model.FloatValue(39.98)},
		[]model.Value{model.FloatValue(1500), model.FloatValue(-12.5)},
		[]model.Value{model.FloatValue(-1), model.FloatValue(0)},
	)
	result := analyzer.AnalyzeInvalidValues(d, time.Now())
	if len(result.InvalidPatterns) != 2 {
		t.Fatalf("expected price and amount patterns, got %d", len(result.InvalidPatterns))
	}
	if result.TotalInvalidCount != 3 {
		t.Fatalf("expected 2 price + 1 amount violations, got %d", result.TotalInvalidCount)
	}
}

func TestNoColumnsNoFindings(t *testing.T) {
	d := dataset([]string{"name"},
		[]model.Value{model.StringValue("Alice")},
	)
	result := analyzer.AnalyzeInvalidValues(d, time.Now())
	if len(result.InvalidPatterns) != 0 || result.TotalInvalidCount != 0 {
		t.Fatalf("expected no findings, got %+v", result)
	}
	if result.InvalidPatterns == nil {
		t.Fatalf("patterns must be an empty slice, not nil")
	}
}

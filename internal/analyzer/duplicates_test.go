package analyzer_test

import (
	"testing"

	"go-data-quality/internal/analyzer"
	"go-data-quality/internal/model"
)

func TestDuplicatesIgnorePrimaryKey(t *testing.T) {
	d := dataset([]string{"id", "name", "amount"},
		[]model.Value{model.IntValue(1), model.StringValue("Alice"), model.IntValue(100)},
		[]model.Value{model.IntValue(2), model.StringValue("Alice"), model.IntValue(100)},
		[]model.Value{model.IntValue(3), model.StringValue("Bob"), model.IntValue(50)},
	)
	result := analyzer.AnalyzeDuplicates(d, "users.csv")
	if result.TotalDuplicates != 2 {
		t.Fatalf("expected 2 duplicate rows, got %d", result.TotalDuplicates)
	}
	if len(result.DuplicatePatterns) != 1 {
		t.Fatalf("expected one pattern, got %d", len(result.DuplicatePatterns))
	}
	p := result.DuplicatePatterns[0]
	if len(p.DuplicateGroups) != 1 || len(p.DuplicateGroups[0]) != 2 {
		t.Fatalf("expected one group of 2, got %+v", p.DuplicateGroups)
	}
}

func TestDuplicatesDatasetNamedKey(t *testing.T) {
	// transactions.csv excludes id, transactions_id and transaction_id, but
	// customer_id stays part of the comparison.
	d := dataset([]string{"transaction_id", "customer_id", "amount"},
		[]model.Value{model.StringValue("T1"), model.IntValue(7), model.IntValue(100)},
		[]model.Value{model.StringValue("T2"), model.IntValue(7), model.IntValue(100)},
		[]model.Value{model.StringValue("T3"), model.IntValue(8), model.IntValue(100)},
	)
	result := analyzer.AnalyzeDuplicates(d, "data/transactions.csv")
	if result.TotalDuplicates != 2 {
		t.Fatalf("expected rows T1 and T2 grouped, got %d", result.TotalDuplicates)
	}
}

func TestDuplicatesNullsMatch(t *testing.T) {
	d := dataset([]string{"id", "name"},
		[]model.Value{model.IntValue(1), model.Null()},
		[]model.Value{model.IntValue(2), model.Null()},
	)
	result := analyzer.AnalyzeDuplicates(d, "users.csv")
	if result.TotalDuplicates != 2 {
		t.Fatalf("rows null in the same column must match, got %d", result.TotalDuplicates)
	}
}

func TestDuplicatesAllColumnsArePrimaryKeys(t *testing.T) {
	d := dataset([]string{"id"},
		[]model.Value{model.IntValue(1)},
		[]model.Value{model.IntValue(1)},
	)
	result := analyzer.AnalyzeDuplicates(d, "users.csv")
	if result.TotalDuplicates != 0 || len(result.DuplicatePatterns) != 0 {
		t.Fatalf("nothing to compare, expected no duplicates: %+v", result)
	}
}

func TestDuplicatesNone(t *testing.T) {
	d := dataset([]string{"id", "name"},
		[]model.Value{model.IntValue(1), model.StringValue("Alice")},
		[]model.Value{model.IntValue(2), model.StringValue("Bob")},
	)
	result := analyzer.AnalyzeDuplicates(d, "users.csv")
	if result.TotalDuplicates != 0 {
		t.Fatalf("expected no duplicates, got %d", result.TotalDuplicates)
	}
	if result.DuplicatePatterns == nil {
		t.Fatalf("patterns must be an empty slice, not nil")
	}
}

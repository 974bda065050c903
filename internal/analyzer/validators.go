package analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go-data-quality/internal/model"
)

// Rule is one entry in the validator registry: a predicate over the columns
// present in a dataset plus a finding-producing evaluator. The registry is
// built once and is read-only at request time.
type Rule struct {
	Name     string
	Applies  func(d *model.Dataset) bool
	Evaluate func(d *model.Dataset, now time.Time) []model.Finding
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Layouts tried when a date-named column stores strings. Values matching
// none of them are treated as unparseable and never flagged.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006",
	"01/02/2006",
}

// registry is the ordered rule set. Adding a rule is a registry addition,
// not a structural change; dispatch is by column presence, not by schema.
var registry = []Rule{
	{
		Name:     "email_format",
		Applies:  hasColumn("email"),
		Evaluate: validateEmails,
	},
	{
		Name:     "age_range",
		Applies:  hasColumn("age"),
		Evaluate: validateAges,
	},
	{
		Name: "future_dates",
		Applies: func(d *model.Dataset) bool {
			for _, c := range d.Columns {
				if strings.Contains(strings.ToLower(c), "date") {
					return true
				}
			}
			return false
		},
		Evaluate: validateDates,
	},
	{
		Name:     "status_values",
		Applies:  hasColumn("status"),
		Evaluate: validateStatus,
	},
	{
		Name:     "payment_method_values",
		Applies:  hasColumn("payment_method"),
		Evaluate: validatePaymentMethods,
	},
	{
		Name:     "unit_price_range",
		Applies:  hasColumn("unit_price"),
		Evaluate: validatePrices,
	},
	{
		Name:     "negative_amounts",
		Applies:  hasColumn("total_amount"),
		Evaluate: validateAmounts,
	},
}

// AnalyzeInvalidValues dispatches every applicable rule and keeps findings
// with at least one violation. The total counts each triggered rule
// separately: a row violating two rules is counted once per rule.
func AnalyzeInvalidValues(d *model.Dataset, now time.Time) model.InvalidValues {
	patterns := []model.Finding{}
	total := 0
	for _, rule := range registry {
		if !rule.Applies(d) {
			continue
		}
		for _, finding := range rule.Evaluate(d, now) {
			if finding.Count == 0 {
				continue
			}
			patterns = append(patterns, finding)
			total += finding.Count
		}
	}
	return model.InvalidValues{InvalidPatterns: patterns, TotalInvalidCount: total}
}

func hasColumn(name string) func(*model.Dataset) bool {
	return func(d *model.Dataset) bool { return d.HasColumn(name) }
}

// collectViolations scans the non-null values of one column and gathers the
// offending full rows plus up to maxExamples offending values.
func collectViolations(d *model.Dataset, column string, maxExamples int, violates func(model.Value) bool) (rows []model.Row, examples []model.Value) {
	rows = []model.Row{}
	examples = []model.Value{}
	for _, row := range d.Rows {
		v := row.Cell(column)
		if v.IsNull() || !violates(v) {
			continue
		}
		rows = append(rows, row)
		if len(examples) < maxExamples {
			examples = append(examples, v)
		}
	}
	return rows, examples
}

func newFinding(d *model.Dataset, column, issueType, description string, rows []model.Row, examples []model.Value) model.Finding {
	return model.Finding{
		Column:      column,
		IssueType:   issueType,
		Count:       len(rows),
		Percentage:  safePercentage(len(rows), d.RowCount()),
		Description: description,
		Examples:    examples,
		InvalidRows: rows,
	}
}

func validateEmails(d *model.Dataset, _ time.Time) []model.Finding {
	rows, examples := collectViolations(d, "email", 3, func(v model.Value) bool {
		return !emailPattern.MatchString(v.String())
	})
	return []model.Finding{newFinding(d, "email", "Invalid Format",
		"Email addresses missing @ symbol or domain", rows, examples)}
}

func validateAges(d *model.Dataset, _ time.Time) []model.Finding {
	rows, examples := collectViolations(d, "age", 3, func(v model.Value) bool {
		n, ok := v.Numeric()
		return ok && (n < 0 || n > 120)
	})
	return []model.Finding{newFinding(d, "age", "Invalid Range",
		"Age values that are negative or unrealistically high (>120)", rows, examples)}
}

// validateDates flags future-dated values in every column whose name
// contains "date". The comparison uses the wall clock at analysis time, so
// output near "now" is intentionally non-deterministic across runs. Values
// that cannot be parsed as dates are skipped; a column with nothing
// parseable simply yields a zero-count finding.
func validateDates(d *model.Dataset, now time.Time) []model.Finding {
	findings := []model.Finding{}
	for _, col := range d.Columns {
		if !strings.Contains(strings.ToLower(col), "date") {
			continue
		}
		rows, examples := collectViolations(d, col, 3, func(v model.Value) bool {
			t, ok := parseDate(v)
			return ok && t.After(now)
		})
		findings = append(findings, newFinding(d, col, "Future Date",
			fmt.Sprintf("Future dates in %s (data entry errors)", col), rows, examples))
	}
	return findings
}

func parseDate(v model.Value) (time.Time, bool) {
	if v.Kind == model.KindDate {
		return v.Date, true
	}
	s, ok := v.Text()
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func validateStatus(d *model.Dataset, _ time.Time) []model.Finding {
	// The allowed set depends on dataset shape: transaction datasets carry
	// a transaction_id column and use transaction lifecycle states.
	allowed := []string{"Active", "Inactive", "Suspended"}
	description := "Status values that are not Active, Inactive, or Suspended"
	if d.HasColumn("transaction_id") {
		allowed = []string{"Completed", "Failed", "Pending"}
		description = "Status values that are not Completed, Failed, or Pending"
	}
	rows, examples := collectSetViolations(d, "status", allowed)
	return []model.Finding{newFinding(d, "status", "Invalid Value", description, rows, examples)}
}

func validatePaymentMethods(d *model.Dataset, _ time.Time) []model.Finding {
	allowed := []string{"Credit Card", "Debit Card", "PayPal", "Cash"}
	rows, examples := collectSetViolations(d, "payment_method", allowed)
	return []model.Finding{newFinding(d, "payment_method", "Invalid Value",
		"Payment methods that are not valid options", rows, examples)}
}

// collectSetViolations is collectViolations specialized for set-membership
// rules, whose examples are the distinct offending values rather than the
// first few occurrences.
func collectSetViolations(d *model.Dataset, column string, allowed []string) ([]model.Row, []model.Value) {
	member := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		member[a] = true
	}
	rows := []model.Row{}
	examples := []model.Value{}
	seen := map[string]bool{}
	for _, row := range d.Rows {
		v := row.Cell(column)
		if v.IsNull() || member[v.String()] {
			continue
		}
		rows = append(rows, row)
		if sig := v.Signature(); !seen[sig] && len(examples) < 3 {
			seen[sig] = true
			examples = append(examples, v)
		}
	}
	return rows, examples
}

func validatePrices(d *model.Dataset, _ time.Time) []model.Finding {
	rows, examples := collectViolations(d, "unit_price", 3, func(v model.Value) bool {
		n, ok := v.Numeric()
		return ok && (n < 0 || n > 1000)
	})
	return []model.Finding{newFinding(d, "unit_price", "Pricing Error",
		"Unit prices that are negative or unrealistically high", rows, examples)}
}

func validateAmounts(d *model.Dataset, _ time.Time) []model.Finding {
	rows, examples := collectViolations(d, "total_amount", 3, func(v model.Value) bool {
		n, ok := v.Numeric()
		return ok && n < 0
	})
	return []model.Finding{newFinding(d, "total_amount", "Negative Amount",
		"Negative transaction amounts (returns or errors)", rows, examples)}
}

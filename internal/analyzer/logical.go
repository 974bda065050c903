package analyzer

import "go-data-quality/internal/model"

// crossRule compares two columns row-wise. A rule only runs when both
// columns exist; a row violates it when both cells are numeric and the
// predicate holds.
type crossRule struct {
	Type        string
	Description string
	Severity    string
	Left        string
	Right       string
	Violates    func(left, right float64) bool
}

// crossRules is deliberately fixed and small; a new business rule is an
// entry here, not a structural change.
var crossRules = []crossRule{
	{
		Type:        "Selling Price Below Cost",
		Description: "Products where selling price is less than cost price",
		Severity:    "high",
		Left:        "selling_price",
		Right:       "cost_price",
		Violates:    func(l, r float64) bool { return l < r },
	},
	{
		Type:        "Stock Below Reorder Level",
		Description: "Products with stock levels below reorder threshold",
		Severity:    "medium",
		Left:        "current_stock",
		Right:       "reorder_level",
		Violates:    func(l, r float64) bool { return l < r },
	},
}

// AnalyzeLogicalIssues evaluates every cross-column rule whose columns are
// present and reports all offending rows in full.
func AnalyzeLogicalIssues(d *model.Dataset) model.LogicalIssues {
	issues := []model.LogicalIssue{}
	total := 0
	for _, rule := range crossRules {
		if !d.HasColumn(rule.Left) || !d.HasColumn(rule.Right) {
			continue
		}
		rows := []model.Row{}
		for _, row := range d.Rows {
			left, lok := row.Cell(rule.Left).Numeric()
			right, rok := row.Cell(rule.Right).Numeric()
			if lok && rok && rule.Violates(left, right) {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			continue
		}
		issues = append(issues, model.LogicalIssue{
			Type:        rule.Type,
			Count:       len(rows),
			Percentage:  safePercentage(len(rows), d.RowCount()),
			Description: rule.Description,
			Severity:    rule.Severity,
			IssueRows:   rows,
		})
		total += len(rows)
	}
	return model.LogicalIssues{LogicalInconsistencies: issues, TotalIssues: total}
}

package analyzer

import (
	"fmt"
	"path"
	"strings"

	"go-data-quality/internal/model"
)

// AnalyzeDuplicates flags rows that are identical across every
// non-primary-key column. Primary keys are identified by naming convention
// so the detector works without a declared schema; foreign keys such as
// customer_id in a transactions dataset remain part of the comparison.
func AnalyzeDuplicates(d *model.Dataset, datasetName string) model.Duplicates {
	compared := contentColumns(d, datasetName)
	if len(compared) == 0 {
		// Every column is a primary key: nothing left to compare.
		return model.Duplicates{DuplicatePatterns: []model.DuplicatePattern{}}
	}

	// Group rows by their projection onto the content columns. Null cells
	// share one signature, so a value missing in both rows is a match.
	groups := map[string][]model.Row{}
	order := []string{}
	for _, row := range d.Rows {
		var sb strings.Builder
		for _, col := range compared {
			sb.WriteString(row.Cell(col).Signature())
			sb.WriteByte('\x1f')
		}
		key := sb.String()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	duplicateGroups := [][]model.Row{}
	total := 0
	for _, key := range order {
		if group := groups[key]; len(group) >= 2 {
			duplicateGroups = append(duplicateGroups, group)
			total += len(group)
		}
	}

	patterns := []model.DuplicatePattern{}
	if total > 0 {
		patterns = append(patterns, model.DuplicatePattern{
			Type:       "Full Record Duplicates",
			Count:      total,
			Percentage: safePercentage(total, d.RowCount()),
			Description: fmt.Sprintf(
				"Records with identical content in all %d columns (excluding primary key)",
				len(compared)),
			DuplicateGroups: duplicateGroups,
		})
	}
	return model.Duplicates{DuplicatePatterns: patterns, TotalDuplicates: total}
}

// contentColumns returns the columns compared for duplication, i.e. all
// columns minus the primary keys named for this dataset.
func contentColumns(d *model.Dataset, datasetName string) []string {
	base := datasetBaseName(datasetName)
	singular := strings.TrimRight(base, "s")

	cols := []string{}
	for _, col := range d.Columns {
		switch strings.ToLower(col) {
		case "id", base + "_id", singular + "_id":
			// primary key by convention, excluded from comparison
		default:
			cols = append(cols, col)
		}
	}
	return cols
}

// datasetBaseName strips path and extension from a dataset name and lowers
// it: "data/transactions.csv" becomes "transactions".
func datasetBaseName(name string) string {
	base := path.Base(strings.ToLower(strings.ReplaceAll(name, "\\", "/")))
	return strings.TrimSuffix(base, path.Ext(base))
}

package analyzer

import "go-data-quality/internal/model"

// AnalyzeMissingValues counts null cells per column and across the whole
// dataset. Columns without nulls are omitted from the per-column list; a
// fully dense dataset yields an empty list and zero totals.
func AnalyzeMissingValues(d *model.Dataset) model.MissingValues {
	columns := []model.MissingColumn{}
	totalMissing := 0

	for _, col := range d.Columns {
		missing := 0
		for _, row := range d.Rows {
			if row.Cell(col).IsNull() {
				missing++
			}
		}
		totalMissing += missing
		if missing > 0 {
			columns = append(columns, model.MissingColumn{
				Column:            col,
				MissingCount:      missing,
				MissingPercentage: safePercentage(missing, d.RowCount()),
			})
		}
	}

	totalCells := d.RowCount() * d.ColumnCount()
	return model.MissingValues{
		ColumnsWithMissing:       columns,
		TotalMissingValues:       totalMissing,
		OverallMissingPercentage: safePercentage(totalMissing, totalCells),
	}
}

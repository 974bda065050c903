package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"go-data-quality/internal/model"
	"go-data-quality/pkg/utils"
)

// ReadXLSX parses the first sheet of a workbook into a dataset. Row one is
// the header; cells are typed the same way as CSV cells.
func ReadXLSX(r io.Reader) (*model.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &model.Dataset{Columns: []string{}, Rows: []model.Row{}}, nil
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return &model.Dataset{Columns: []string{}, Rows: []model.Row{}}, nil
	}

	columns := make([]string, 0, len(records[0]))
	for _, h := range records[0] {
		columns = append(columns, utils.CleanHeader(h))
	}

	rows := make([]model.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(model.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = utils.ParseCell(record[i])
			} else {
				row[col] = model.Null()
			}
		}
		rows = append(rows, row)
	}

	return &model.Dataset{Columns: columns, Rows: rows}, nil
}

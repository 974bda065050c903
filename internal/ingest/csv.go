// Package ingest turns uploaded files into dataset snapshots. It owns all
// parsing concerns so the analyzer only ever sees well-formed, typed rows.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go-data-quality/internal/model"
	"go-data-quality/pkg/utils"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ReadFile dispatches on the file extension and builds a dataset snapshot.
func ReadFile(name string, r io.Reader) (*model.Dataset, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx", ".xls":
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// ReadCSV parses a CSV stream into a dataset. The first record is the
// header; every cell is typed via utils.ParseCell. Short records are padded
// with nulls and long records truncated, so each row carries exactly the
// header's columns.
func ReadCSV(r io.Reader) (*model.Dataset, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &model.Dataset{Columns: []string{}, Rows: []model.Row{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make([]string, 0, len(header))
	for _, h := range header {
		columns = append(columns, utils.CleanHeader(h))
	}

	rows := []model.Row{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error at row %d: %w", len(rows)+2, err)
		}
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

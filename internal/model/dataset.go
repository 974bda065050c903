package model

// Row maps column names to typed cell values.
type Row map[string]Value

// Cell returns the value for a column, null when the row has no entry.
func (r Row) Cell(column string) Value {
	if v, ok := r[column]; ok {
		return v
	}
	return Null()
}

// Dataset is an immutable, already-parsed tabular snapshot: ordered column
// names plus ordered rows. Components read it and build derived structures;
// nothing mutates it during an analysis.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// RowCount returns the number of rows.
func (d *Dataset) RowCount() int { return len(d.Rows) }

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int { return len(d.Columns) }

// HasColumn reports whether a column with the exact name exists.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the cell values of one column in row order.
func (d *Dataset) Column(name string) []Value {
	vals := make([]Value, len(d.Rows))
	for i, row := range d.Rows {
		vals[i] = row.Cell(name)
	}
	return vals
}

package model

// Finding is one validator's report of rule violations for one column.
type Finding struct {
	Column      string  `json:"column"`
	IssueType   string  `json:"issue_type"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
	Description string  `json:"description"`
	Examples    []Value `json:"examples"`
	InvalidRows []Row   `json:"invalid_rows"`
}

// MissingColumn reports missingness for a single column.
type MissingColumn struct {
	Column            string  `json:"column"`
	MissingCount      int     `json:"missing_count"`
	MissingPercentage float64 `json:"missing_percentage"`
}

// MissingValues aggregates missingness across the dataset.
type MissingValues struct {
	ColumnsWithMissing       []MissingColumn `json:"columns_with_missing"`
	TotalMissingValues       int             `json:"total_missing_values"`
	OverallMissingPercentage float64         `json:"overall_missing_percentage"`
}

// InvalidValues aggregates all triggered validator findings. A row violating
// two rules counts once per rule.
type InvalidValues struct {
	InvalidPatterns   []Finding `json:"invalid_patterns"`
	TotalInvalidCount int       `json:"total_invalid_count"`
}

// DuplicatePattern describes one family of duplicate records. Each group
// holds at least two full row payloads identical across all compared columns.
type DuplicatePattern struct {
	Type            string  `json:"type"`
	Count           int     `json:"count"`
	Percentage      float64 `json:"percentage"`
	Description     string  `json:"description"`
	DuplicateGroups [][]Row `json:"duplicate_groups"`
}

// Duplicates aggregates duplicate detection results.
type Duplicates struct {
	DuplicatePatterns []DuplicatePattern `json:"duplicate_patterns"`
	TotalDuplicates   int                `json:"total_duplicates"`
}

// LogicalIssue is one cross-column business-rule violation set.
type LogicalIssue struct {
	Type        string  `json:"type"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
	Description string  `json:"description"`
	Severity    string  `json:"severity"`
	IssueRows   []Row   `json:"issue_rows"`
}

// LogicalIssues aggregates cross-column consistency results.
type LogicalIssues struct {
	LogicalInconsistencies []LogicalIssue `json:"logical_inconsistencies"`
	TotalIssues            int            `json:"total_issues"`
}

// ColumnStats holds summary statistics for one numeric column. A nil field
// serializes as null; NaN and Infinity are normalized before they get here.
type ColumnStats struct {
	Mean   *float64 `json:"mean"`
	Median *float64 `json:"median"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Std    *float64 `json:"std"`
}

// ColumnProfile is the per-column type/cardinality/null summary.
type ColumnProfile struct {
	Name           string  `json:"name"`
	DataType       string  `json:"data_type"`
	NonNullCount   int     `json:"non_null_count"`
	NullCount      int     `json:"null_count"`
	NullPercentage float64 `json:"null_percentage"`
	UniqueValues   int     `json:"unique_values"`
	SampleValues   []Value `json:"sample_values,omitempty"`
}

// DataPreview carries the raw rows for display in clients.
type DataPreview struct {
	Columns   []string `json:"columns"`
	Data      []Row    `json:"data"`
	TotalRows int      `json:"total_rows"`
}

// Report is the complete data-quality analysis for one dataset snapshot.
// It is created fresh per analysis call and is fully JSON-serializable:
// no field ever carries a NaN or Infinity.
type Report struct {
	DatasetName   string                 `json:"dataset_name"`
	TotalRecords  int                    `json:"total_records"`
	TotalColumns  int                    `json:"total_columns"`
	DataPreview   DataPreview            `json:"data_preview"`
	MissingValues MissingValues          `json:"missing_values"`
	InvalidValues InvalidValues          `json:"invalid_values"`
	Duplicates    Duplicates             `json:"duplicates"`
	LogicalIssues LogicalIssues          `json:"logical_issues"`
	Statistics    map[string]ColumnStats `json:"statistics"`
	ColumnDetails []ColumnProfile        `json:"column_details"`
}

// HasIssues reports whether any analyzer surfaced a problem.
func (r *Report) HasIssues() bool {
	return r.MissingValues.TotalMissingValues > 0 ||
		r.InvalidValues.TotalInvalidCount > 0 ||
		r.Duplicates.TotalDuplicates > 0 ||
		r.LogicalIssues.TotalIssues > 0
}

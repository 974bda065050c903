package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-data-quality/internal/model"
)

// SQLiteOptions configures the SQLite history backend.
type SQLiteOptions struct {
	// Path is the database file, or ":memory:" for tests.
	Path string

	// Reset drops and recreates the analyses table on startup. This is the
	// development-mode flag: it is passed in explicitly here instead of
	// living in a package-level toggle, and every stored report is lost
	// when it is on.
	Reset bool
}

// SQLiteHistory stores analyses in a local SQLite database.
type SQLiteHistory struct {
	db *sql.DB
}

// NewSQLiteHistory opens the database and prepares the schema.
func NewSQLiteHistory(opts SQLiteOptions) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection: sqlite serializes writers anyway, and a :memory:
	// database exists per connection.
	db.SetMaxOpenConns(1)

	if opts.Reset {
		if _, err := db.Exec(`DROP TABLE IF EXISTS analyses`); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to reset analyses table: %w", err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		analysis_id TEXT PRIMARY KEY,
		dataset_name TEXT NOT NULL,
		file_hash TEXT NOT NULL,
		analysis_timestamp TEXT NOT NULL,
		analysis_results TEXT NOT NULL,
		total_records INTEGER,
		total_columns INTEGER,
		has_issues INTEGER DEFAULT 1
	);
	CREATE INDEX IF NOT EXISTS idx_file_hash ON analyses(file_hash);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create analyses table: %w", err)
	}

	return &SQLiteHistory{db: db}, nil
}

func (s *SQLiteHistory) Save(ctx context.Context, a *Analysis) error {
	results, err := json.Marshal(a.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses
		(analysis_id, dataset_name, file_hash, analysis_timestamp, analysis_results, total_records, total_columns, has_issues)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.DatasetName, a.FileHash,
		a.Timestamp.UTC().Format(time.RFC3339),
		string(results), a.TotalRecords, a.TotalColumns, boolToInt(a.HasIssues),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT analysis_id, dataset_name, file_hash, analysis_timestamp,
	       analysis_results, total_records, total_columns, has_issues
	FROM analyses`

func (s *SQLiteHistory) GetByID(ctx context.Context, id string) (*Analysis, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE analysis_id = ?`, id)
	return scanAnalysis(row)
}

func (s *SQLiteHistory) GetByHash(ctx context.Context, hash string) (*Analysis, error) {
	row := s.db.QueryRowContext(ctx,
		selectColumns+` WHERE file_hash = ? ORDER BY analysis_timestamp DESC LIMIT 1`, hash)
	return scanAnalysis(row)
}

func (s *SQLiteHistory) List(ctx context.Context, limit int) ([]*Analysis, error) {
	query := selectColumns + ` ORDER BY analysis_timestamp DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryAnalyses(ctx, query, args...)
}

func (s *SQLiteHistory) ListByDataset(ctx context.Context, datasetName string) ([]*Analysis, error) {
	return s.queryAnalyses(ctx,
		selectColumns+` WHERE dataset_name = ? ORDER BY analysis_timestamp DESC`, datasetName)
}

func (s *SQLiteHistory) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE analysis_id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete analysis: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteHistory) Summary(ctx context.Context) (*SummaryStats, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(DISTINCT dataset_name),
		       COALESCE(SUM(has_issues), 0),
		       MIN(analysis_timestamp),
		       MAX(analysis_timestamp)
		FROM analyses`)

	var stats SummaryStats
	var first, last sql.NullString
	if err := row.Scan(&stats.TotalAnalyses, &stats.UniqueDatasets,
		&stats.AnalysesWithIssues, &first, &last); err != nil {
		return nil, fmt.Errorf("failed to read summary: %w", err)
	}
	stats.FirstAnalysis = parseNullTime(first)
	stats.LastAnalysis = parseNullTime(last)
	return &stats, nil
}

func (s *SQLiteHistory) Close() error { return s.db.Close() }

func (s *SQLiteHistory) queryAnalyses(ctx context.Context, query string, args ...any) ([]*Analysis, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	analyses := []*Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row scanner) (*Analysis, error) {
	var a Analysis
	var timestamp, results string
	var hasIssues int
	err := row.Scan(&a.ID, &a.DatasetName, &a.FileHash, &timestamp,
		&results, &a.TotalRecords, &a.TotalColumns, &hasIssues)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, timestamp); err == nil {
		a.Timestamp = t
	}
	a.Report = &model.Report{}
	if err := json.Unmarshal([]byte(results), a.Report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored report: %w", err)
	}
	a.HasIssues = hasIssues != 0
	return &a, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

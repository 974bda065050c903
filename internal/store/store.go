// Package store persists analysis history keyed by analysis ID and by the
// SHA-256 hash of the uploaded file content.
package store

import (
	"context"
	"errors"
	"time"

	"go-data-quality/internal/model"
)

// ErrNotFound is returned when no analysis matches the requested key.
var ErrNotFound = errors.New("analysis not found")

// Analysis is one stored history record.
type Analysis struct {
	ID           string        `json:"analysis_id"`
	DatasetName  string        `json:"dataset_name"`
	FileHash     string        `json:"file_hash"`
	Timestamp    time.Time     `json:"analysis_timestamp"`
	Report       *model.Report `json:"analysis_results"`
	TotalRecords int           `json:"total_records"`
	TotalColumns int           `json:"total_columns"`
	HasIssues    bool          `json:"has_issues"`
}

// SummaryStats summarizes the whole history.
type SummaryStats struct {
	TotalAnalyses      int        `json:"total_analyses"`
	UniqueDatasets     int        `json:"unique_datasets"`
	AnalysesWithIssues int        `json:"analyses_with_issues"`
	FirstAnalysis      *time.Time `json:"first_analysis"`
	LastAnalysis       *time.Time `json:"last_analysis"`
}

// History is the persistence boundary for past reports. Implementations
// must be safe for concurrent use.
type History interface {
	// Save persists one analysis record.
	Save(ctx context.Context, a *Analysis) error

	// GetByID returns the analysis with the given ID, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Analysis, error)

	// GetByHash returns the most recent analysis for a file hash, or
	// ErrNotFound when the file was never analyzed.
	GetByHash(ctx context.Context, hash string) (*Analysis, error)

	// List returns analyses newest first; limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*Analysis, error)

	// ListByDataset returns all analyses for one dataset name, newest first.
	ListByDataset(ctx context.Context, datasetName string) ([]*Analysis, error)

	// Delete removes one analysis; the bool reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// Summary returns aggregate statistics over the stored history.
	Summary(ctx context.Context) (*SummaryStats, error)

	// Close releases the backing connection.
	Close() error
}

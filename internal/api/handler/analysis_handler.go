package handler

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-data-quality/internal/analyzer"
	"go-data-quality/internal/ingest"
	"go-data-quality/internal/store"
)

// Handler serves the analysis API. All state is injected so tests can run
// against an in-memory history.
type Handler struct {
	History        store.History
	Log            *zap.Logger
	MaxUploadBytes int64
}

// New builds a handler. maxUploadBytes <= 0 means 50 MiB.
func New(history store.History, log *zap.Logger, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 50 << 20
	}
	return &Handler{History: history, Log: log, MaxUploadBytes: maxUploadBytes}
}

// FileResult is the per-file outcome of an upload.
type FileResult struct {
	Filename string          `json:"filename"`
	Cached   bool            `json:"cached"`
	Error    string          `json:"error,omitempty"`
	Analysis *store.Analysis `json:"analysis,omitempty"`
}

// Analyze runs quality analysis on uploaded files
// @Summary Analyze uploaded files
// @Description Upload one or more CSV/XLSX files and receive a data quality report for each. Files already analyzed (by content hash) return the stored report.
// @Tags analyses
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files to analyze"
// @Success 200 {object} map[string]interface{} "Per-file analysis results"
// @Failure 400 {object} map[string]interface{} "Invalid upload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses [post]
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "At least one file is required")
		return
	}

	results := make([]FileResult, 0, len(files))
	for _, fh := range files {
		results = append(results, h.analyzeOne(r, fh.Filename, func() ([]byte, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			defer f.Close()
			var buf bytes.Buffer
			if _, err := buf.ReadFrom(f); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		}))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"files_analyzed": len(results),
		"results":        results,
	})
}

func (h *Handler) analyzeOne(r *http.Request, filename string, read func() ([]byte, error)) FileResult {
	data, err := read()
	if err != nil {
		return FileResult{Filename: filename, Error: "Failed to read upload"}
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	if cached, err := h.History.GetByHash(r.Context(), hash); err == nil {
		h.Log.Info("cache hit", zap.String("file", filename), zap.String("hash", hash))
		return FileResult{Filename: filename, Cached: true, Analysis: cached}
	} else if err != store.ErrNotFound {
		h.Log.Error("history lookup failed", zap.Error(err))
		return FileResult{Filename: filename, Error: "History lookup failed"}
	}

	dataset, err := ingest.ReadFile(filename, bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, ingest.ErrUnsupportedFormat) {
			return FileResult{Filename: filename, Error: "Unsupported file format"}
		}
		return FileResult{Filename: filename, Error: fmt.Sprintf("Failed to parse file: %v", err)}
	}

	report := analyzer.Analyze(dataset, filename)
	analysis := &store.Analysis{
		ID:           uuid.New().String(),
		DatasetName:  filename,
		FileHash:     hash,
		Timestamp:    time.Now().UTC(),
		Report:       report,
		TotalRecords: dataset.RowCount(),
		TotalColumns: dataset.ColumnCount(),
		HasIssues:    report.HasIssues(),
	}
	if err := h.History.Save(r.Context(), analysis); err != nil {
		h.Log.Error("failed to save analysis", zap.Error(err))
		return FileResult{Filename: filename, Error: "Failed to save analysis"}
	}

	h.Log.Info("analysis complete",
		zap.String("file", filename),
		zap.String("id", analysis.ID),
		zap.Int("records", analysis.TotalRecords),
		zap.Bool("has_issues", analysis.HasIssues),
	)
	return FileResult{Filename: filename, Analysis: analysis}
}

// ListAnalyses lists stored analyses
// @Summary List analyses
// @Description Get stored analyses, newest first
// @Tags analyses
// @Produce json
// @Param limit query int false "Maximum number of analyses to return"
// @Param dataset query string false "Filter by dataset name"
// @Success 200 {object} map[string]interface{} "List of analyses"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses [get]
func (h *Handler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	if dataset := r.URL.Query().Get("dataset"); dataset != "" {
		analyses, err := h.History.ListByDataset(r.Context(), dataset)
		if err != nil {
			h.Log.Error("failed to list analyses", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to fetch analyses")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"analyses": analyses,
			"count":    len(analyses),
		})
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	analyses, err := h.History.List(r.Context(), limit)
	if err != nil {
		h.Log.Error("failed to list analyses", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch analyses")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"analyses": analyses,
		"count":    len(analyses),
	})
}

// GetAnalysis retrieves one stored analysis
// @Summary Get analysis
// @Description Retrieve a stored analysis by ID
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} store.Analysis "Analysis record"
// @Failure 400 {object} map[string]interface{} "Invalid analysis ID"
// @Failure 404 {object} map[string]interface{} "Analysis not found"
// @Router /analyses/{id} [get]
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(w, r)
	if !ok {
		return
	}
	analysis, err := h.History.GetByID(r.Context(), id)
	if err == store.ErrNotFound {
		writeError(w, http.StatusNotFound, "Analysis not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to load analysis", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load analysis")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// DeleteAnalysis removes one stored analysis
// @Summary Delete analysis
// @Description Delete a stored analysis by ID
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} map[string]interface{} "Analysis deleted"
// @Failure 400 {object} map[string]interface{} "Invalid analysis ID"
// @Failure 404 {object} map[string]interface{} "Analysis not found"
// @Router /analyses/{id} [delete]
func (h *Handler) DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := analysisID(w, r)
	if !ok {
		return
	}
	existed, err := h.History.Delete(r.Context(), id)
	if err != nil {
		h.Log.Error("failed to delete analysis", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to delete analysis")
		return
	}
	if !existed {
		writeError(w, http.StatusNotFound, "Analysis not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Analysis deleted successfully",
		"analysis_id": id,
	})
}

// GetSummary returns aggregate history statistics
// @Summary History summary
// @Description Aggregate statistics over all stored analyses
// @Tags analyses
// @Produce json
// @Success 200 {object} store.SummaryStats "Summary statistics"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := h.History.Summary(r.Context())
	if err != nil {
		h.Log.Error("failed to read summary", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to read summary")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Health reports service liveness
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{} "Service status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

// Root describes the service and its endpoints.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "Data Quality Analysis API",
		"version": "1.0",
		"endpoints": map[string]string{
			"analyze": "POST /api/v1/analyses",
			"list":    "GET /api/v1/analyses",
			"get":     "GET /api/v1/analyses/{id}",
			"delete":  "DELETE /api/v1/analyses/{id}",
			"summary": "GET /api/v1/summary",
			"health":  "GET /api/v1/health",
			"docs":    "GET /swagger/index.html",
		},
	})
}

// analysisID extracts the trailing path segment after /api/v1/analyses/.
func analysisID(w http.ResponseWriter, r *http.Request) (string, bool) {
	const prefix = "/api/v1/analyses/"
	path := r.URL.Path
	if !strings.HasPrefix(path, prefix) {
		writeError(w, http.StatusBadRequest, "Invalid path")
		return "", false
	}
	id := path[len(prefix):]
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "Analysis ID is required")
		return "", false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"error": msg})
}

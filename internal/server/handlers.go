package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
	"github.com/jonathan/kpi-dashboard/internal/db"
	"github.com/jonathan/kpi-dashboard/internal/kpi"
	"github.com/jonathan/kpi-dashboard/internal/types"
)

// NormalizeRequest represents the request body for /learning/normalize.
// Each row is a map of raw CSV column values, legacy or current schema.
type NormalizeRequest struct {
	Rows []map[string]string `json:"rows"`
}

// RecordsResponse represents the response for /learning/records
type RecordsResponse struct {
	Records  []types.LearningRecord `json:"records"`
	Errors   any                    `json:"errors,omitempty"`
	Warnings any                    `json:"warnings,omitempty"`
}

// EntryResponse represents the response for POST /kpis/{key}/entries
type EntryResponse struct {
	KPI    string            `json:"kpi"`
	Fields map[string]string `json:"fields"`
	Status string            `json:"status"`
}

// BatchResponse represents the response for GET /learning/batches/{id}
type BatchResponse struct {
	Batch   *db.ImportBatch        `json:"batch"`
	Records []types.LearningRecord `json:"records"`
}

// SnapshotResponse represents the response for POST /kpis/{key}/snapshots
type SnapshotResponse struct {
	ID   uuid.UUID `json:"id"`
	Card *kpi.Card `json:"card"`
}

// kpiRows loads the backing CSV rows for a KPI. A missing file is an empty
// dataset, not an error: a fresh dashboard has no data yet.
func (s *Server) kpiRows(def kpi.Definition) ([]dataset.Row, error) {
	path := filepath.Join(s.dataDir, def.Meta.SourceCSV)
	rows, err := dataset.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &ErrDataUnavailable{Key: def.Meta.Key, Cause: err}
	}
	return rows, nil
}

// rangeFromQuery parses optional start/end query parameters.
func rangeFromQuery(r *http.Request) (kpi.DateRange, error) {
	rng, err := kpi.ParseRange(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		return kpi.DateRange{}, &ErrValidation{Field: "range", Message: err.Error()}
	}
	return rng, nil
}

// handleListKPIs returns the KPI reference table
func (s *Server) handleListKPIs(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, kpi.List())
}

// handleKPISummary returns a KPI's headline card over an optional date range
func (s *Server) handleKPISummary(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	def, err := kpi.Get(key)
	if err != nil {
		kpiErr := &ErrUnknownKPI{Key: key}
		s.errorResponse(w, HTTPStatus(kpiErr), kpiErr.Error())
		return
	}

	rng, err := rangeFromQuery(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	rows, err := s.kpiRows(def)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	card, err := def.Summarize(rows, rng)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, card)
}

// handleKPITrend returns a KPI's per-period trend over an optional date range
func (s *Server) handleKPITrend(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	def, err := kpi.Get(key)
	if err != nil {
		kpiErr := &ErrUnknownKPI{Key: key}
		s.errorResponse(w, HTTPStatus(kpiErr), kpiErr.Error())
		return
	}

	rng, err := rangeFromQuery(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	rows, err := s.kpiRows(def)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	series, err := def.Trend(rows, rng)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, series)
}

// handleKPIBreakdown returns a KPI's grouped views (per department, app
// type, issue type) over an optional date range.
func (s *Server) handleKPIBreakdown(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	def, err := kpi.Get(key)
	if err != nil {
		kpiErr := &ErrUnknownKPI{Key: key}
		s.errorResponse(w, HTTPStatus(kpiErr), kpiErr.Error())
		return
	}
	if def.Breakdowns == nil {
		s.errorResponse(w, http.StatusNotFound, "KPI "+key+" has no breakdown view")
		return
	}

	rng, err := rangeFromQuery(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	rows, err := s.kpiRows(def)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, def.Breakdowns(rows, rng))
}

// handleAppendEntry appends one entry to a KPI's CSV file. Requires auth.
func (s *Server) handleAppendEntry(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if _, err := kpi.Get(key); err != nil {
		kpiErr := &ErrUnknownKPI{Key: key}
		s.errorResponse(w, HTTPStatus(kpiErr), kpiErr.Error())
		return
	}

	var req types.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	fields, err := dataset.PrepareEntry(key, req.Fields, s.entryVocab)
	if err != nil {
		vErr := &ErrValidation{Field: "fields", Message: err.Error()}
		s.errorResponse(w, HTTPStatus(vErr), vErr.Error())
		return
	}

	path := filepath.Join(s.dataDir, key+".csv")
	if err := dataset.AppendRow(path, dataset.Columns(key), fields); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, EntryResponse{
		KPI:    key,
		Fields: fields,
		Status: "appended",
	})
}

// handleLearningRecords returns normalized learning records with per-row
// errors, filtered to an optional date range.
func (s *Server) handleLearningRecords(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeFromQuery(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	def, _ := kpi.Get("learning")
	rows, err := s.kpiRows(def)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := s.normalizer.NormalizeAll(rows)

	filtered := make([]types.LearningRecord, 0, len(result.Records))
	for _, rec := range result.Records {
		if rng.Contains(rec.Date.Time) {
			filtered = append(filtered, rec)
		}
	}

	s.jsonResponse(w, http.StatusOK, RecordsResponse{
		Records:  filtered,
		Errors:   result.Errors,
		Warnings: result.Warnings,
	})
}

// handleNormalize normalizes raw rows posted as JSON and returns the
// partitioned result. Rows are numbered from 2, as if read below a CSV header.
func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req NormalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Rows) == 0 {
		vErr := &ErrValidation{Field: "rows", Message: "at least one row is required"}
		s.errorResponse(w, HTTPStatus(vErr), vErr.Error())
		return
	}

	rows := make([]dataset.Row, len(req.Rows))
	for i, fields := range req.Rows {
		rows[i] = dataset.Row{Line: i + 2, Fields: fields}
	}

	s.jsonResponse(w, http.StatusOK, s.normalizer.NormalizeAll(rows))
}

// handleListBatches lists archived import batches. Requires a configured
// database.
func (s *Server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "archive store is not configured")
		return
	}

	batches, err := s.db.ListBatches(r.Context(), 0)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, batches)
}

// handleGetBatch returns one archived batch together with its records.
func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "archive store is not configured")
		return
	}

	batchID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		vErr := &ErrValidation{Field: "id", Message: "invalid batch id"}
		s.errorResponse(w, HTTPStatus(vErr), vErr.Error())
		return
	}

	batch, err := s.db.GetBatch(r.Context(), batchID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if batch == nil {
		s.errorResponse(w, http.StatusNotFound, "batch not found")
		return
	}

	recs, err := s.db.ListRecords(r.Context(), db.RecordFilters{BatchID: batchID})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, BatchResponse{Batch: batch, Records: recs})
}

// handleArchivedRecords lists archived learning records with optional
// core_skill, date range, and limit filters.
func (s *Server) handleArchivedRecords(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "archive store is not configured")
		return
	}

	rng, err := rangeFromQuery(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	filters := db.RecordFilters{CoreSkill: r.URL.Query().Get("core_skill")}
	if !rng.Start.IsZero() {
		filters.Start = rng.Start.Format(types.DateLayout)
	}
	if !rng.End.IsZero() {
		filters.End = rng.End.Format(types.DateLayout)
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			vErr := &ErrValidation{Field: "limit", Message: "must be a positive integer"}
			s.errorResponse(w, HTTPStatus(vErr), vErr.Error())
			return
		}
		filters.Limit = limit
	}

	recs, err := s.db.ListRecords(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, recs)
}

// handleSaveSnapshot computes a KPI's card over the requested range and
// freezes it in the archive. Requires auth.
func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "archive store is not configured")
		return
	}

	key := r.PathValue("key")
	def, err := kpi.Get(key)
	if err != nil {
		kpiErr := &ErrUnknownKPI{Key: key}
		s.errorResponse(w, HTTPStatus(kpiErr), kpiErr.Error())
		return
	}

	rng, err := rangeFromQuery(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	rows, err := s.kpiRows(def)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	card, err := def.Summarize(rows, rng)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, err := s.db.SaveSnapshot(r.Context(), key,
		r.URL.Query().Get("start"), r.URL.Query().Get("end"), card)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, SnapshotResponse{ID: id, Card: card})
}

// handleListSnapshots lists frozen summary cards for a KPI, newest first.
func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "archive store is not configured")
		return
	}

	key := r.PathValue("key")
	if _, err := kpi.Get(key); err != nil {
		kpiErr := &ErrUnknownKPI{Key: key}
		s.errorResponse(w, HTTPStatus(kpiErr), kpiErr.Error())
		return
	}

	snaps, err := s.db.ListSnapshots(r.Context(), key, 0)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, snaps)
}

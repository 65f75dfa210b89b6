package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/kpi-dashboard/internal/types"
)

// ImportLearningRecords archives a normalized batch: one import_batches row
// plus one learning_records row per record, in a single transaction.
func (db *DB) ImportLearningRecords(ctx context.Context, sourceFile string, records []*types.LearningRecord, errorCount, warningCount int) (uuid.UUID, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	var batchID uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO import_batches (source_file, record_count, error_count, warning_count)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		sourceFile, len(records), errorCount, warningCount,
	).Scan(&batchID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create import batch: %w", err)
	}

	for _, rec := range records {
		_, err = tx.Exec(ctx,
			`INSERT INTO learning_records
			 (batch_id, date, core_skill, skills_tech_tags, time_spent_hrs,
			  applied_hrs, applications, delta_performance_pct, time_saved_hrs, cost_eur, notes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			batchID, rec.Date.Time, rec.CoreSkill, rec.SkillsTechTags, rec.TimeSpentHrs,
			rec.AppliedHrs, rec.Applications, rec.DeltaPerformancePct, rec.TimeSavedHrs, rec.CostEUR, rec.Notes,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert learning record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit import: %w", err)
	}
	return batchID, nil
}

// GetBatch retrieves an import batch by ID. Returns nil when not found.
func (db *DB) GetBatch(ctx context.Context, batchID uuid.UUID) (*ImportBatch, error) {
	var b ImportBatch
	err := db.pool.QueryRow(ctx,
		`SELECT id, source_file, record_count, error_count, warning_count, created_at
		 FROM import_batches WHERE id = $1`,
		batchID,
	).Scan(&b.ID, &b.SourceFile, &b.RecordCount, &b.ErrorCount, &b.WarningCount, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	return &b, nil
}

// ListBatches retrieves recent import batches, newest first.
func (db *DB) ListBatches(ctx context.Context, limit int) ([]ImportBatch, error) {
	if limit == 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, source_file, record_count, error_count, warning_count, created_at
		 FROM import_batches ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var batches []ImportBatch
	for rows.Next() {
		var b ImportBatch
		if err := rows.Scan(&b.ID, &b.SourceFile, &b.RecordCount, &b.ErrorCount, &b.WarningCount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, nil
}

// RecordFilters holds optional filters for listing archived records
type RecordFilters struct {
	BatchID   uuid.UUID
	CoreSkill string
	Start     string // YYYY-MM-DD, inclusive
	End       string // YYYY-MM-DD, inclusive
	Limit     int
}

// ListRecords retrieves archived learning records with optional filters,
// oldest first.
func (db *DB) ListRecords(ctx context.Context, filters RecordFilters) ([]types.LearningRecord, error) {
	if filters.Limit == 0 {
		filters.Limit = 500
	}

	query := `SELECT date, core_skill, skills_tech_tags, time_spent_hrs,
		       applied_hrs, applications, delta_performance_pct, time_saved_hrs, cost_eur, notes
		FROM learning_records WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.BatchID != uuid.Nil {
		query += fmt.Sprintf(" AND batch_id = $%d", argNum)
		args = append(args, filters.BatchID)
		argNum++
	}
	if filters.CoreSkill != "" {
		query += fmt.Sprintf(" AND core_skill = $%d", argNum)
		args = append(args, filters.CoreSkill)
		argNum++
	}
	if filters.Start != "" {
		query += fmt.Sprintf(" AND date >= $%d", argNum)
		args = append(args, filters.Start)
		argNum++
	}
	if filters.End != "" {
		query += fmt.Sprintf(" AND date <= $%d", argNum)
		args = append(args, filters.End)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY date ASC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []types.LearningRecord
	for rows.Next() {
		var rec types.LearningRecord
		if err := rows.Scan(&rec.Date.Time, &rec.CoreSkill, &rec.SkillsTechTags, &rec.TimeSpentHrs,
			&rec.AppliedHrs, &rec.Applications, &rec.DeltaPerformancePct, &rec.TimeSavedHrs, &rec.CostEUR, &rec.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// SaveSnapshot persists a computed KPI payload (a summary card or trend
// series) together with the range it covers.
func (db *DB) SaveSnapshot(ctx context.Context, kpiKey, rangeStart, rangeEnd string, payload any) (uuid.UUID, error) {
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO kpi_snapshots (kpi_key, range_start, range_end, payload)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		kpiKey, rangeStart, rangeEnd, jsonBytes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save snapshot %s: %w", kpiKey, err)
	}
	return id, nil
}

// ListSnapshots retrieves snapshots for a KPI, newest first.
func (db *DB) ListSnapshots(ctx context.Context, kpiKey string, limit int) ([]Snapshot, error) {
	if limit == 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, kpi_key, range_start, range_end, payload, created_at
		 FROM kpi_snapshots WHERE kpi_key = $1 ORDER BY created_at DESC LIMIT $2`,
		kpiKey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.KPIKey, &s.RangeStart, &s.RangeEnd, &s.Payload, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snaps = append(snaps, s)
	}
	return snaps, nil
}

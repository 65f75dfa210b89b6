// Package db provides PostgreSQL archive storage for imported learning
// batches and computed KPI snapshots.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the archive tables when they do not exist yet.
// Safe to call on every startup.
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS import_batches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			source_file TEXT NOT NULL,
			record_count INT NOT NULL,
			error_count INT NOT NULL,
			warning_count INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS learning_records (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			batch_id UUID NOT NULL REFERENCES import_batches(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			core_skill TEXT NOT NULL,
			skills_tech_tags TEXT[] NOT NULL DEFAULT '{}',
			time_spent_hrs DOUBLE PRECISION NOT NULL,
			applied_hrs DOUBLE PRECISION,
			applications INT,
			delta_performance_pct DOUBLE PRECISION,
			time_saved_hrs DOUBLE PRECISION,
			cost_eur DOUBLE PRECISION,
			notes TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS learning_records_date_idx
			ON learning_records (date)`,
		`CREATE TABLE IF NOT EXISTS kpi_snapshots (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			kpi_key TEXT NOT NULL,
			range_start TEXT NOT NULL DEFAULT '',
			range_end TEXT NOT NULL DEFAULT '',
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

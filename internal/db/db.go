// Package db provides the optional PostgreSQL audit store. Every fill
// run and every per-field decision can be persisted for later review:
// which label matched which attribute, at what confidence, from which
// stage, and whether the run was approved and injected. The store is
// strictly an observer; nothing in the matching or fill path reads its
// answers back during a run.
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

// EnsureSchema creates the audit tables when they do not exist yet. The
// store is single-purpose enough that idempotent DDL beats a migration
// tool.
func (db *DB) EnsureSchema(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS fill_runs (
			id UUID PRIMARY KEY,
			target TEXT NOT NULL,
			mode TEXT NOT NULL,
			status TEXT NOT NULL,
			filled_count INT NOT NULL DEFAULT 0,
			unmatched_count INT NOT NULL DEFAULT 0,
			skipped_count INT NOT NULL DEFAULT 0,
			approval_jti TEXT,
			started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS fill_fields (
			run_id UUID NOT NULL REFERENCES fill_runs(id) ON DELETE CASCADE,
			position INT NOT NULL,
			label TEXT NOT NULL,
			attribute TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			source TEXT NOT NULL,
			status TEXT NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (run_id, position)
		)`,
	}
	for _, stmt := range ddl {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure audit schema: %w", err)
		}
	}
	return nil
}

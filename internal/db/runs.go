package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Run modes.
const (
	ModeWeb    = "web"
	ModeScreen = "screen"
)

// Run statuses. A run starts previewing; approval moves it to injected,
// a declined preview to cancelled.
const (
	StatusPreviewing = "previewing"
	StatusInjected   = "injected"
	StatusCancelled  = "cancelled"
	StatusFailed     = "failed"
)

// FillRun is one audit record: a single form previewed (and possibly
// filled) against a target.
type FillRun struct {
	ID          uuid.UUID  `json:"id"`
	Target      string     `json:"target"`
	Mode        string     `json:"mode"`
	Status      string     `json:"status"`
	Filled      int        `json:"filled"`
	Unmatched   int        `json:"unmatched"`
	Skipped     int        `json:"skipped"`
	ApprovalJTI *string    `json:"approval_jti,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CreateRun records the start of a fill run.
func (db *DB) CreateRun(ctx context.Context, runID uuid.UUID, target, mode string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO fill_runs (id, target, mode, status)
		 VALUES ($1, $2, $3, $4)`,
		runID, target, mode, StatusPreviewing,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// CompleteRun finalizes a run with its outcome and counts. approvalJTI
// is empty for runs that never passed the preview gate.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string, filled, unmatched, skipped int, approvalJTI string) error {
	var jti *string
	if approvalJTI != "" {
		jti = &approvalJTI
	}
	_, err := db.pool.Exec(ctx,
		`UPDATE fill_runs
		 SET status = $1, filled_count = $2, unmatched_count = $3, skipped_count = $4,
		     approval_jti = $5, completed_at = NOW()
		 WHERE id = $6`,
		status, filled, unmatched, skipped, jti, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// GetRun loads one run, or nil when the ID is unknown.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*FillRun, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, target, mode, status, filled_count, unmatched_count, skipped_count,
		        approval_jti, started_at, completed_at
		 FROM fill_runs WHERE id = $1`,
		runID,
	)

	var r FillRun
	err := row.Scan(&r.ID, &r.Target, &r.Mode, &r.Status, &r.Filled, &r.Unmatched,
		&r.Skipped, &r.ApprovalJTI, &r.StartedAt, &r.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]FillRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, target, mode, status, filled_count, unmatched_count, skipped_count,
		        approval_jti, started_at, completed_at
		 FROM fill_runs ORDER BY started_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []FillRun
	for rows.Next() {
		var r FillRun
		if err := rows.Scan(&r.ID, &r.Target, &r.Mode, &r.Status, &r.Filled, &r.Unmatched,
			&r.Skipped, &r.ApprovalJTI, &r.StartedAt, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

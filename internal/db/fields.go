package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/application-autofill/internal/types"
)

// FieldDecision is one row of a run's per-field audit trail. Position
// preserves detection order; values themselves are never persisted, the
// preview already showed them and the record store holds them.
type FieldDecision struct {
	RunID      uuid.UUID `json:"run_id"`
	Position   int       `json:"position"`
	Label      string    `json:"label"`
	Attribute  string    `json:"attribute"`
	Confidence float64   `json:"confidence"`
	Source     string    `json:"source"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
}

// DecisionsFromPreview flattens preview entries into audit rows.
func DecisionsFromPreview(runID uuid.UUID, entries []types.PreviewEntry) []FieldDecision {
	decisions := make([]FieldDecision, len(entries))
	for i, e := range entries {
		decisions[i] = FieldDecision{
			RunID:      runID,
			Position:   i,
			Label:      e.Label,
			Attribute:  string(e.Attribute),
			Confidence: e.Confidence,
			Source:     string(e.Source),
			Status:     string(e.Status),
			Note:       e.Note,
		}
	}
	return decisions
}

// SaveDecisions writes a run's per-field rows in one batch.
func (db *DB) SaveDecisions(ctx context.Context, decisions []FieldDecision) error {
	if len(decisions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, d := range decisions {
		batch.Queue(
			`INSERT INTO fill_fields (run_id, position, label, attribute, confidence, source, status, note)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (run_id, position) DO UPDATE
			 SET label = $3, attribute = $4, confidence = $5, source = $6, status = $7, note = $8`,
			d.RunID, d.Position, d.Label, d.Attribute, d.Confidence, d.Source, d.Status, d.Note,
		)
	}

	results := db.pool.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()
	for range decisions {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save field decisions: %w", err)
		}
	}
	return nil
}

// GetDecisions loads a run's field rows in detection order.
func (db *DB) GetDecisions(ctx context.Context, runID uuid.UUID) ([]FieldDecision, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT run_id, position, label, attribute, confidence, source, status, note
		 FROM fill_fields WHERE run_id = $1 ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get field decisions: %w", err)
	}
	defer rows.Close()

	var decisions []FieldDecision
	for rows.Next() {
		var d FieldDecision
		if err := rows.Scan(&d.RunID, &d.Position, &d.Label, &d.Attribute,
			&d.Confidence, &d.Source, &d.Status, &d.Note); err != nil {
			return nil, fmt.Errorf("failed to scan field decision: %w", err)
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

package types

import (
	"github.com/google/uuid"

	"github.com/jonathan/application-autofill/internal/schema"
)

// EntryStatus is the per-field disposition shown in a fill preview.
type EntryStatus string

const (
	// StatusFilled means the field matched and a value was rendered.
	StatusFilled EntryStatus = "filled"
	// StatusUnmatched means no attribute could be assigned.
	StatusUnmatched EntryStatus = "unmatched"
	// StatusSkipped means the field matched but rendering declined it,
	// for example when the record holds no value for the attribute.
	StatusSkipped EntryStatus = "skipped"
)

// PreviewEntry is one row of the fill preview presented for approval.
// Entries appear in the same order as the detected fields.
type PreviewEntry struct {
	FieldID    uuid.UUID        `json:"field_id"`
	Label      string           `json:"label"`
	Attribute  schema.Attribute `json:"attribute"`
	Value      string           `json:"value,omitempty"`
	Confidence float64          `json:"confidence"`
	Source     MatchSource      `json:"source"`
	Status     EntryStatus      `json:"status"`
	// Note explains skips and flags sensitive values that were masked.
	Note string `json:"note,omitempty"`
}

// Fillable reports whether the entry carries a value the fill step
// should act on.
func (e PreviewEntry) Fillable() bool {
	return e.Status == StatusFilled
}

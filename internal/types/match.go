package types

import (
	"github.com/google/uuid"

	"github.com/jonathan/application-autofill/internal/schema"
)

// MatchSource records which stage produced a match decision.
type MatchSource string

const (
	// SourceRule means an ordered pattern rule claimed the field.
	SourceRule MatchSource = "rule"
	// SourceAI means the language-model matcher claimed the field.
	SourceAI MatchSource = "ai"
	// SourceNone means no stage produced an acceptable match.
	SourceNone MatchSource = "none"
)

// Unmatched is the attribute reported for fields no stage could claim.
// It is deliberately outside the schema catalog so nothing downstream
// can look a value up for it.
const Unmatched = schema.Attribute("unmatched")

// MatchResult is the outcome of matching one form field against the
// personal-data vocabulary.
//
// The zero confidence / none source / unmatched attribute states are
// coupled: a result either names a real attribute with a positive
// confidence and the stage that found it, or it is unmatched with
// confidence 0 and source none. Construct results through Matched and
// NewUnmatched to keep that coupling intact.
type MatchResult struct {
	FieldID    uuid.UUID        `json:"field_id"`
	Attribute  schema.Attribute `json:"attribute"`
	Confidence float64          `json:"confidence"`
	Source     MatchSource      `json:"source"`
}

// Matched builds a successful result, clamping confidence into [0, 1].
func Matched(fieldID uuid.UUID, attr schema.Attribute, confidence float64, source MatchSource) MatchResult {
	if confidence > 1 {
		confidence = 1
	}
	if confidence <= 0 || attr == Unmatched || attr == "" || source == SourceNone {
		return NewUnmatched(fieldID)
	}
	return MatchResult{
		FieldID:    fieldID,
		Attribute:  attr,
		Confidence: confidence,
		Source:     source,
	}
}

// NewUnmatched builds the canonical no-match result for a field.
func NewUnmatched(fieldID uuid.UUID) MatchResult {
	return MatchResult{
		FieldID:    fieldID,
		Attribute:  Unmatched,
		Confidence: 0,
		Source:     SourceNone,
	}
}

// IsMatched reports whether the result names a real attribute.
func (r MatchResult) IsMatched() bool {
	return r.Source != SourceNone && r.Attribute != Unmatched && r.Attribute != ""
}

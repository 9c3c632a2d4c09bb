package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/application-autofill/internal/schema"
	"github.com/jonathan/application-autofill/internal/types"
)

func TestStatusConstants(t *testing.T) {
	statuses := []string{StatusPreviewing, StatusInjected, StatusCancelled, StatusFailed}
	for _, s := range statuses {
		assert.NotEmpty(t, s)
	}
	assert.Equal(t, "web", ModeWeb)
	assert.Equal(t, "screen", ModeScreen)
}

func TestFillRunType(t *testing.T) {
	run := FillRun{
		ID:     uuid.New(),
		Target: "https://example.com/apply",
		Mode:   ModeWeb,
		Status: StatusPreviewing,
	}

	assert.Equal(t, "https://example.com/apply", run.Target)
	assert.Nil(t, run.CompletedAt)
	assert.Nil(t, run.ApprovalJTI)
}

func TestDecisionsFromPreview(t *testing.T) {
	runID := uuid.New()
	entries := []types.PreviewEntry{
		{
			FieldID:    uuid.New(),
			Label:      "Email",
			Attribute:  schema.Email,
			Value:      "jane@example.com",
			Confidence: 0.9,
			Source:     types.SourceRule,
			Status:     types.StatusFilled,
		},
		{
			FieldID:   uuid.New(),
			Label:     "Why us?",
			Attribute: types.Unmatched,
			Status:    types.StatusUnmatched,
		},
		{
			FieldID:   uuid.New(),
			Label:     "Transcript",
			Attribute: schema.Transcript,
			Status:    types.StatusSkipped,
			Note:      "file does not exist",
		},
	}

	decisions := DecisionsFromPreview(runID, entries)

	assert.Len(t, decisions, 3)
	for i, d := range decisions {
		assert.Equal(t, runID, d.RunID)
		assert.Equal(t, i, d.Position)
	}
	assert.Equal(t, "email", decisions[0].Attribute)
	assert.Equal(t, "rule", decisions[0].Source)
	assert.Equal(t, "unmatched", decisions[1].Attribute)
	assert.Equal(t, "file does not exist", decisions[2].Note)

	// Values never reach the audit trail.
	for _, d := range decisions {
		assert.NotContains(t, d.Note, "jane@example.com")
	}
}

func TestDecisionsFromPreview_Empty(t *testing.T) {
	decisions := DecisionsFromPreview(uuid.New(), nil)
	assert.Empty(t, decisions)
}

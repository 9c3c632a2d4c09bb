//go:build integration
// +build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/application-autofill/internal/schema"
	"github.com/jonathan/application-autofill/internal/types"
)

// testDB connects using DATABASE_URL and skips when it is not set.
func testDB(t *testing.T) *DB {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}

	db, err := Connect(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(context.Background()))
	return db
}

func TestRunLifecycle_Integration(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	runID := uuid.New()
	require.NoError(t, db.CreateRun(ctx, runID, "https://example.com/apply", ModeWeb))

	run, err := db.GetRun(ctx, runID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, StatusPreviewing, run.Status)
	assert.Nil(t, run.CompletedAt)

	require.NoError(t, db.CompleteRun(ctx, runID, StatusInjected, 5, 2, 1, "jti-123"))

	run, err = db.GetRun(ctx, runID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, StatusInjected, run.Status)
	assert.Equal(t, 5, run.Filled)
	assert.Equal(t, 2, run.Unmatched)
	assert.Equal(t, 1, run.Skipped)
	require.NotNil(t, run.ApprovalJTI)
	assert.Equal(t, "jti-123", *run.ApprovalJTI)
	assert.NotNil(t, run.CompletedAt)
}

func TestGetRun_Unknown_Integration(t *testing.T) {
	db := testDB(t)

	run, err := db.GetRun(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestSaveAndGetDecisions_Integration(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	runID := uuid.New()
	require.NoError(t, db.CreateRun(ctx, runID, "screen", ModeScreen))

	entries := []types.PreviewEntry{
		{FieldID: uuid.New(), Label: "First Name", Attribute: schema.FirstName, Confidence: 0.9, Source: types.SourceRule, Status: types.StatusFilled},
		{FieldID: uuid.New(), Label: "Essay", Attribute: types.Unmatched, Source: types.SourceNone, Status: types.StatusUnmatched},
	}
	require.NoError(t, db.SaveDecisions(ctx, DecisionsFromPreview(runID, entries)))

	decisions, err := db.GetDecisions(ctx, runID)
	require.NoError(t, err)
	require.Len(t, decisions, 2)
	assert.Equal(t, 0, decisions[0].Position)
	assert.Equal(t, "first_name", decisions[0].Attribute)
	assert.Equal(t, "unmatched", decisions[1].Attribute)
}

func TestListRuns_Integration(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	runID := uuid.New()
	require.NoError(t, db.CreateRun(ctx, runID, "https://example.com/a", ModeWeb))

	runs, err := db.ListRuns(ctx, 50)
	require.NoError(t, err)

	found := false
	for _, r := range runs {
		if r.ID == runID {
			found = true
		}
	}
	assert.True(t, found, "created run should appear in listing")
}

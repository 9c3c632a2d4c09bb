package fill

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/application-autofill/internal/schema"
	"github.com/jonathan/application-autofill/internal/types"
)

func TestMatchOptions_Defaults(t *testing.T) {
	opts := Options{}

	m := opts.matchOptions()

	assert.Equal(t, 0.5, m.MinAcceptConfidence)
	assert.Equal(t, 0.6, m.AIThreshold)
	assert.Equal(t, 0.2, m.KindMismatchPenalty)
	assert.Equal(t, 10*time.Second, m.AITimeout)
}

func TestMatchOptions_Overrides(t *testing.T) {
	opts := Options{
		MinAcceptConfidence: 0.7,
		AIThreshold:         0.8,
		KindMismatchPenalty: 0.1,
		AITimeoutSeconds:    3,
		AIParallelism:       2,
	}

	m := opts.matchOptions()

	assert.Equal(t, 0.7, m.MinAcceptConfidence)
	assert.Equal(t, 0.8, m.AIThreshold)
	assert.Equal(t, 0.1, m.KindMismatchPenalty)
	assert.Equal(t, 3*time.Second, m.AITimeout)
	assert.Equal(t, 2, m.AIParallelism)
}

func TestMergeResults_PreservesDetectionOrder(t *testing.T) {
	fields := []types.FormField{
		types.NewFormField("First Name", types.ControlText, types.CSSLocator("#a")),
		types.NewFormField("Email", types.ControlText, types.CSSLocator("#b")),
		types.NewFormField("Essay", types.ControlTextarea, types.CSSLocator("#c")),
	}

	// Mapping resolved the second field, the engine the first; the
	// third came back from neither.
	fromMapping := []types.MatchResult{
		types.Matched(fields[1].ID, schema.Email, 0.95, types.SourceRule),
	}
	fromEngine := []types.MatchResult{
		types.Matched(fields[0].ID, schema.FirstName, 0.9, types.SourceRule),
	}

	merged := mergeResults(fields, fromMapping, fromEngine)

	require.Len(t, merged, 3)
	assert.Equal(t, schema.FirstName, merged[0].Attribute)
	assert.Equal(t, schema.Email, merged[1].Attribute)
	assert.False(t, merged[2].IsMatched())
	for i, f := range fields {
		assert.Equal(t, f.ID, merged[i].FieldID)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"fill", "1\n", true},
		{"fill with spaces", "  1  \n", true},
		{"cancel", "2\n", false},
		{"empty defaults to cancel", "\n", false},
		{"no input at all", "", false},
		{"anything else cancels", "yes\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := confirm(strings.NewReader(tt.input), &out)

			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Nothing has been written yet")
		})
	}
}

func TestNewEngine_NoKeyIsRuleOnly(t *testing.T) {
	var out bytes.Buffer
	opts := Options{}

	engine, client, err := newEngine(context.Background(), &opts, &out)

	require.NoError(t, err)
	require.NotNil(t, engine)
	assert.Nil(t, client)
	assert.Empty(t, out.String())
}

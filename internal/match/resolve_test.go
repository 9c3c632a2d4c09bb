package match

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/application-autofill/internal/schema"
	"github.com/jonathan/application-autofill/internal/types"
)

func TestResolve(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name      string
		rule      Candidate
		ai        Candidate
		minAccept float64
		want      types.MatchResult
	}{
		{
			name:      "rule alone wins",
			rule:      Candidate{Attribute: schema.FirstName, Confidence: 0.9},
			ai:        None(),
			minAccept: 0.5,
			want:      types.Matched(id, schema.FirstName, 0.9, types.SourceRule),
		},
		{
			name:      "ai overtakes weaker rule",
			rule:      Candidate{Attribute: schema.FullName, Confidence: 0.55},
			ai:        Candidate{Attribute: schema.University, Confidence: 0.85},
			minAccept: 0.5,
			want:      types.Matched(id, schema.University, 0.85, types.SourceAI),
		},
		{
			name:      "exact tie prefers the rule",
			rule:      Candidate{Attribute: schema.FirstName, Confidence: 0.8},
			ai:        Candidate{Attribute: schema.LastName, Confidence: 0.8},
			minAccept: 0.5,
			want:      types.Matched(id, schema.FirstName, 0.8, types.SourceRule),
		},
		{
			name:      "winner below floor is unmatched",
			rule:      Candidate{Attribute: schema.FirstName, Confidence: 0.4},
			ai:        None(),
			minAccept: 0.5,
			want:      types.NewUnmatched(id),
		},
		{
			name:      "winner exactly at floor is kept",
			rule:      Candidate{Attribute: schema.FirstName, Confidence: 0.5},
			ai:        None(),
			minAccept: 0.5,
			want:      types.Matched(id, schema.FirstName, 0.5, types.SourceRule),
		},
		{
			name:      "both none stays unmatched",
			rule:      None(),
			ai:        None(),
			minAccept: 0.5,
			want:      types.NewUnmatched(id),
		},
		{
			name:      "winning attribute outside the schema is unmatched",
			rule:      None(),
			ai:        Candidate{Attribute: "favourite_colour", Confidence: 0.99},
			minAccept: 0.5,
			want:      types.NewUnmatched(id),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(id, tt.rule, tt.ai, tt.minAccept))
		})
	}
}

func TestResolveDeterministic(t *testing.T) {
	id := uuid.New()
	rule := Candidate{Attribute: schema.Email, Confidence: 0.7}
	ai := Candidate{Attribute: schema.Phone, Confidence: 0.65}

	first := Resolve(id, rule, ai, 0.5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Resolve(id, rule, ai, 0.5))
	}
}

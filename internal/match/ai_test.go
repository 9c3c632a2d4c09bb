package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/application-autofill/internal/llm"
	"github.com/jonathan/application-autofill/internal/schema"
	"github.com/jonathan/application-autofill/internal/types"
)

// stubLLM returns a canned response (or error) for every prompt.
type stubLLM struct {
	response string
	err      error
	calls    int
}

func (s *stubLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return s.GenerateJSON(ctx, prompt, tier)
}

func (s *stubLLM) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubLLM) GetModel(llm.ModelTier) string { return "stub" }
func (s *stubLLM) Close() error                  { return nil }

func TestDisabledMatcher(t *testing.T) {
	m := Disabled()
	field := types.NewFormField("First Name", types.ControlText, types.CSSLocator("#f"))

	assert.Equal(t, None(), m.Match(context.Background(), field))
}

func TestLLMMatcher_Match(t *testing.T) {
	field := types.NewFormField("Preferred way to reach you", types.ControlText, types.CSSLocator("#f"))

	tests := []struct {
		name     string
		response string
		err      error
		want     Candidate
	}{
		{
			name:     "clean classification",
			response: `{"attribute": "email", "confidence": 0.85, "reasoning": "asks for contact channel"}`,
			want:     Candidate{Attribute: schema.Email, Confidence: 0.85},
		},
		{
			name:     "attribute normalized to lowercase",
			response: `{"attribute": " Email ", "confidence": 0.8, "reasoning": "x"}`,
			want:     Candidate{Attribute: schema.Email, Confidence: 0.8},
		},
		{
			name:     "none answer",
			response: `{"attribute": "none", "confidence": 0.9, "reasoning": "free-form prose"}`,
			want:     None(),
		},
		{
			name:     "attribute outside the schema",
			response: `{"attribute": "shoe_size", "confidence": 0.9, "reasoning": "x"}`,
			want:     None(),
		},
		{
			name:     "confidence above one is clamped",
			response: `{"attribute": "phone", "confidence": 1.4, "reasoning": "x"}`,
			want:     Candidate{Attribute: schema.Phone, Confidence: 1},
		},
		{
			name:     "zero confidence degrades to none",
			response: `{"attribute": "phone", "confidence": 0, "reasoning": "x"}`,
			want:     None(),
		},
		{
			name:     "malformed json degrades to none",
			response: `not json at all`,
			want:     None(),
		},
		{
			name: "request error degrades to none",
			err:  errors.New("rpc: connection refused"),
			want: None(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewLLMMatcher(&stubLLM{response: tt.response, err: tt.err}, time.Second)
			assert.Equal(t, tt.want, m.Match(context.Background(), field))
		})
	}
}

// slowLLM never answers before its context expires.
type slowLLM struct{}

func (slowLLM) GenerateContent(ctx context.Context, _ string, _ llm.ModelTier) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (s slowLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return s.GenerateContent(ctx, prompt, tier)
}

func (slowLLM) GetModel(llm.ModelTier) string { return "stub" }
func (slowLLM) Close() error                  { return nil }

func TestLLMMatcher_Timeout(t *testing.T) {
	m := NewLLMMatcher(slowLLM{}, 10*time.Millisecond)
	field := types.NewFormField("First Name", types.ControlText, types.CSSLocator("#f"))

	start := time.Now()
	got := m.Match(context.Background(), field)

	assert.Equal(t, None(), got)
	assert.Less(t, time.Since(start), time.Second, "timeout must bound the call")
}

func TestClassifyPrompt(t *testing.T) {
	field := types.NewFormField("Work Authorization", types.ControlSelect, types.CSSLocator("#auth"))
	field.Options = []string{"Citizen", "Visa holder"}

	prompt := classifyPrompt(field)

	assert.Contains(t, prompt, `"Work Authorization"`)
	assert.Contains(t, prompt, "select")
	assert.Contains(t, prompt, "Citizen, Visa holder")
	for _, name := range schema.Names() {
		assert.Contains(t, prompt, "- "+string(name))
	}
}

func TestClassifyPrompt_NoOptions(t *testing.T) {
	field := types.NewFormField("First Name", types.ControlText, types.CSSLocator("#f"))

	assert.Contains(t, classifyPrompt(field), "(none)")
}

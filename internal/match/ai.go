package match

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jonathan/application-autofill/internal/llm"
	"github.com/jonathan/application-autofill/internal/prompts"
	"github.com/jonathan/application-autofill/internal/schema"
	"github.com/jonathan/application-autofill/internal/types"
)

// Matcher is the optional second matching stage, consulted when the rule
// table is unsure. It is strictly additive: a Matcher never errors the
// engine, it only proposes a Candidate or None. Timeouts, network
// failures and unparseable answers all degrade to None.
type Matcher interface {
	Match(ctx context.Context, field types.FormField) Candidate
}

// Disabled returns the Matcher used when no API credential is
// configured. It never performs network access.
func Disabled() Matcher {
	return disabled{}
}

type disabled struct{}

func (disabled) Match(context.Context, types.FormField) Candidate {
	return None()
}

// LLMMatcher classifies field labels with a language model. Raw labels
// go into the prompt unnormalized; phrasing the rule table cannot parse
// is exactly what the model is for.
type LLMMatcher struct {
	client  llm.Client
	timeout time.Duration
}

// NewLLMMatcher wraps an LLM client. Each classification call is bounded
// by timeout regardless of the caller's context.
func NewLLMMatcher(client llm.Client, timeout time.Duration) *LLMMatcher {
	return &LLMMatcher{client: client, timeout: timeout}
}

// classification is the shape the model is instructed to return. The
// reasoning is accepted for prompt compliance but not acted on.
type classification struct {
	Attribute  string  `json:"attribute"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

func (m *LLMMatcher) Match(ctx context.Context, field types.FormField) Candidate {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	raw, err := m.client.GenerateJSON(ctx, classifyPrompt(field), llm.TierLite)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: AI field matching failed for %q: %v\n", field.Label, err)
		return None()
	}

	var c classification
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: AI field matching returned unparseable answer for %q: %v\n", field.Label, err)
		return None()
	}

	attr := schema.Attribute(strings.ToLower(strings.TrimSpace(c.Attribute)))
	if attr == "none" || !schema.Known(attr) {
		return None()
	}
	confidence := c.Confidence
	if confidence > 1 {
		confidence = 1
	}
	if confidence <= 0 {
		return None()
	}
	return Candidate{Attribute: attr, Confidence: confidence}
}

func classifyPrompt(field types.FormField) string {
	names := schema.Names()
	lines := make([]string, len(names))
	for i, n := range names {
		lines[i] = "- " + string(n)
	}

	options := "(none)"
	if len(field.Options) > 0 {
		options = strings.Join(field.Options, ", ")
	}

	template := prompts.MustGet("match.json", "classify-field")
	return prompts.Format(template, map[string]string{
		"Label":       field.Label,
		"ControlKind": string(field.Kind),
		"Options":     options,
		"Attributes":  strings.Join(lines, "\n"),
	})
}

package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/application-autofill/internal/match"
	"github.com/jonathan/application-autofill/internal/schema"
	"github.com/jonathan/application-autofill/internal/types"
)

func sampleFields() []types.FormField {
	return []types.FormField{
		types.NewFormField("First Name", types.ControlText, types.CSSLocator("#first_name")),
		types.NewFormField("Last Name", types.ControlText, types.CSSLocator("#last_name")),
		types.NewFormField("Why do you want this job?", types.ControlTextarea, types.CSSLocator("#essay")),
	}
}

func TestNew_KeepsOnlyConfidentMatches(t *testing.T) {
	fields := sampleFields()
	results := []types.MatchResult{
		types.Matched(fields[0].ID, schema.FirstName, 0.9, types.SourceRule),
		types.Matched(fields[1].ID, schema.LastName, 0.55, types.SourceAI),
		types.NewUnmatched(fields[2].ID),
	}

	m := New("boards.greenhouse.io", fields, results)

	require.Len(t, m.Fields, 1)
	assert.Equal(t, "css:#first_name", m.Fields[0].Locator)
	assert.Equal(t, schema.FirstName, m.Fields[0].Attribute)
	assert.NotEmpty(t, m.CreatedAt)
}

func TestResolve_SplitsCoveredAndRemaining(t *testing.T) {
	fields := sampleFields()
	m := &Mapping{
		Site: "example.com",
		Fields: []Field{
			{Locator: "css:#first_name", Label: "First Name", Attribute: schema.FirstName},
		},
	}

	resolved, remaining := m.Resolve(fields)

	require.Len(t, resolved, 1)
	assert.Equal(t, fields[0].ID, resolved[0].FieldID)
	assert.Equal(t, schema.FirstName, resolved[0].Attribute)
	assert.Equal(t, PinnedConfidence, resolved[0].Confidence)
	assert.Equal(t, types.SourceRule, resolved[0].Source)

	require.Len(t, remaining, 2)
	assert.Equal(t, fields[1].ID, remaining[0].ID)
	assert.Equal(t, fields[2].ID, remaining[1].ID)
}

func TestResolve_IgnoresUnknownAttribute(t *testing.T) {
	fields := sampleFields()[:1]
	m := &Mapping{
		Site:   "example.com",
		Fields: []Field{{Locator: "css:#first_name", Attribute: "no_such_attribute"}},
	}

	resolved, remaining := m.Resolve(fields)

	assert.Empty(t, resolved)
	assert.Len(t, remaining, 1)
}

func TestCheck_FlagsSuspectEntries(t *testing.T) {
	rules := match.NewRuleMatcher(0.2)
	m := &Mapping{
		Site: "example.com",
		Fields: []Field{
			{Locator: "css:#a", Label: "First Name", Attribute: schema.FirstName},
			{Locator: "css:#b", Label: "Favorite color", Attribute: schema.Email},
			{Locator: "css:#c", Label: "X", Attribute: "no_such_attribute"},
		},
	}

	warnings := m.Check(rules)

	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "Favorite color")
	assert.Contains(t, warnings[1], "unknown attribute")
}

func TestSiteKey(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"url", "https://boards.greenhouse.io/acme/jobs/1", "boards_greenhouse_io"},
		{"bare name", "Acme Careers", "acme_careers"},
		{"already clean", "acme", "acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SiteKey(tt.target))
		})
	}
}

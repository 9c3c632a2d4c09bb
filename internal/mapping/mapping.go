// Package mapping persists reviewed label-to-attribute decisions per
// site. A saved mapping lets later runs against the same form skip the
// guessing: fields it covers are pre-resolved before the rule table or
// the AI stage ever see them. Mappings are created only from a match
// pass the applicant has already looked at.
package mapping

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/application-autofill/internal/schema"
	"github.com/jonathan/application-autofill/internal/types"
)

// PinnedConfidence is reported for fields a saved mapping resolves.
// Deliberately below 1.0 so a mapping never claims more certainty than
// the review that produced it, and stays subject to the resolver's
// accept floor like every other result.
const PinnedConfidence = 0.95

// MinSaveConfidence is the bar a match must clear before it is worth
// persisting into a mapping.
const MinSaveConfidence = 0.6

// Field is one saved decision, keyed by the control's locator string.
type Field struct {
	Locator   string           `json:"locator"`
	Label     string           `json:"label,omitempty"`
	Attribute schema.Attribute `json:"attribute"`
}

// Mapping is the saved decision set for one site.
type Mapping struct {
	Site      string  `json:"site"`
	CreatedAt string  `json:"created_at,omitempty"`
	Fields    []Field `json:"fields"`
}

// New builds a mapping from a reviewed match pass. Only matched fields
// at or above MinSaveConfidence are kept; unmatched and low-confidence
// fields stay unsaved so the next run re-evaluates them.
func New(site string, fields []types.FormField, results []types.MatchResult) *Mapping {
	byField := make(map[string]types.MatchResult, len(results))
	for _, r := range results {
		byField[r.FieldID.String()] = r
	}

	m := &Mapping{
		Site:      site,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, f := range fields {
		r, ok := byField[f.ID.String()]
		if !ok || !r.IsMatched() || r.Confidence < MinSaveConfidence {
			continue
		}
		m.Fields = append(m.Fields, Field{
			Locator:   f.Locator.String(),
			Label:     f.Label,
			Attribute: r.Attribute,
		})
	}
	return m
}

// Lookup returns the saved attribute for a locator.
func (m *Mapping) Lookup(loc types.Locator) (schema.Attribute, bool) {
	key := loc.String()
	for _, f := range m.Fields {
		if f.Locator == key {
			return f.Attribute, true
		}
	}
	return "", false
}

// Resolve pre-matches the fields a mapping covers. Covered fields get a
// rule-sourced result at PinnedConfidence; the rest come back in
// remaining for the engine to handle. Order is preserved on both sides
// and reassembly is by field ID.
func (m *Mapping) Resolve(fields []types.FormField) (resolved []types.MatchResult, remaining []types.FormField) {
	for _, f := range fields {
		if attr, ok := m.Lookup(f.Locator); ok && schema.Known(attr) {
			resolved = append(resolved, types.Matched(f.ID, attr, PinnedConfidence, types.SourceRule))
			continue
		}
		remaining = append(remaining, f)
	}
	return resolved, remaining
}

// Validator reports whether a label could plausibly map to an attribute;
// the rule matcher implements it.
type Validator interface {
	Validate(label string, attr schema.Attribute) bool
}

// Check reviews a mapping's entries and returns a warning per entry that
// names an unknown attribute or that the rule table could not itself
// have produced from the saved label. Warnings do not invalidate the
// mapping, they flag entries worth a second look.
func (m *Mapping) Check(v Validator) []string {
	var warnings []string
	for _, f := range m.Fields {
		if !schema.Known(f.Attribute) {
			warnings = append(warnings, "unknown attribute "+string(f.Attribute)+" for "+f.Locator)
			continue
		}
		if f.Label != "" && !v.Validate(f.Label, f.Attribute) {
			warnings = append(warnings, "label "+strings.TrimSpace(f.Label)+" does not obviously mean "+string(f.Attribute))
		}
	}
	return warnings
}

var siteKeyRe = regexp.MustCompile(`[^a-z0-9]+`)

// SiteKey derives the filesystem-safe mapping name for a target. URLs
// reduce to their host; anything else is sanitized as given.
func SiteKey(target string) string {
	name := target
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		name = u.Host
	}
	name = siteKeyRe.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(name, "_")
}

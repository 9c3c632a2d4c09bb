package match

import (
	"html"
	"strings"
	"unicode"
)

// NormalizeLabel reduces a raw field label to the canonical form the
// rule table and AI prompts operate on: HTML entities decoded, case
// folded, punctuation and underscores turned into spaces, whitespace
// collapsed to single spaces, and surrounding space trimmed.
//
// The function is idempotent, so labels that arrive pre-normalized
// (saved mappings, test fixtures) pass through unchanged.
func NormalizeLabel(label string) string {
	decoded := html.UnescapeString(label)

	var b strings.Builder
	b.Grow(len(decoded))
	lastSpace := true
	for _, r := range strings.ToLower(decoded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		// Everything else, punctuation and whitespace alike, becomes a
		// single separating space.
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimRight(b.String(), " ")
}

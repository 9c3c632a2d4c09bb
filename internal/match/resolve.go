package match

import (
	"github.com/google/uuid"

	"github.com/jonathan/application-autofill/internal/schema"
	"github.com/jonathan/application-autofill/internal/types"
)

// Resolve combines the rule and AI proposals for one field into the
// final decision. The higher confidence wins; on an exact tie the rule
// result is kept, since a table entry can be audited and an AI answer
// cannot. A winner below minAccept is discarded entirely: writing wrong
// data into a live application is worse than leaving a field blank.
//
// Resolve is pure. The same inputs always produce the same result.
func Resolve(fieldID uuid.UUID, ruleResult, aiResult Candidate, minAccept float64) types.MatchResult {
	winner := ruleResult
	source := types.SourceRule
	if aiResult.Confidence > ruleResult.Confidence {
		winner = aiResult
		source = types.SourceAI
	}
	if !schema.Known(winner.Attribute) || winner.Confidence < minAccept {
		return types.NewUnmatched(fieldID)
	}
	return types.Matched(fieldID, winner.Attribute, winner.Confidence, source)
}

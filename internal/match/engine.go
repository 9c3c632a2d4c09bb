package match

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/application-autofill/internal/types"
)

// Options holds the engine thresholds. Zero is a valid value for the
// penalty, so callers build on DefaultOptions rather than the zero
// struct.
type Options struct {
	// MinAcceptConfidence is the floor below which a winning candidate
	// is discarded and the field left unmatched.
	MinAcceptConfidence float64
	// AIThreshold is the rule confidence below which the AI stage is
	// consulted. At or above it the rule answer stands alone.
	AIThreshold float64
	// KindMismatchPenalty is subtracted from a rule's confidence when
	// the control kind is not one the attribute is expected to occupy.
	KindMismatchPenalty float64
	// AITimeout bounds each AI classification call.
	AITimeout time.Duration
	// AIParallelism caps concurrent AI calls per form.
	AIParallelism int
}

// DefaultOptions returns the tuning used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MinAcceptConfidence: 0.5,
		AIThreshold:         0.6,
		KindMismatchPenalty: 0.2,
		AITimeout:           10 * time.Second,
		AIParallelism:       4,
	}
}

// Engine runs the matching pipeline for one form: rule table first, AI
// stage for fields the rules are unsure about, then resolution. An
// Engine is immutable after construction and safe for concurrent use
// across forms.
type Engine struct {
	rules *RuleMatcher
	ai    Matcher
	opts  Options
}

// NewEngine builds an engine. A nil ai installs the disabled matcher.
func NewEngine(ai Matcher, opts Options) *Engine {
	if ai == nil {
		ai = Disabled()
	}
	if opts.AIParallelism <= 0 {
		opts.AIParallelism = DefaultOptions().AIParallelism
	}
	return &Engine{
		rules: NewRuleMatcher(opts.KindMismatchPenalty),
		ai:    ai,
		opts:  opts,
	}
}

// Rules exposes the engine's rule matcher for mapping validation.
func (e *Engine) Rules() *RuleMatcher {
	return e.rules
}

// MatchFields decides an attribute (or unmatched) for every detected
// field. Results come back in detection order, one per input field.
//
// Fields are independent of each other, so the AI consultations run
// concurrently; the slice indexing keeps each answer with its field and
// the final resolution loop restores detection order. Workers never
// return errors, a failed consultation is just None for that field.
func (e *Engine) MatchFields(ctx context.Context, fields []types.FormField) []types.MatchResult {
	ruleResults := make([]Candidate, len(fields))
	aiResults := make([]Candidate, len(fields))
	for i, f := range fields {
		ruleResults[i] = e.rules.Match(f.Label, f.Kind)
		aiResults[i] = None()
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.AIParallelism)
	for i, f := range fields {
		if ruleResults[i].Confidence >= e.opts.AIThreshold {
			continue
		}
		g.Go(func() error {
			aiResults[i] = e.ai.Match(gCtx, f)
			return nil
		})
	}
	_ = g.Wait()

	results := make([]types.MatchResult, len(fields))
	for i, f := range fields {
		results[i] = Resolve(f.ID, ruleResults[i], aiResults[i], e.opts.MinAcceptConfidence)
	}
	return results
}

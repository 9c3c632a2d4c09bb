// Package preview assembles the reviewable fill plan for one form and
// gates injection behind an explicit approval. Nothing is ever written
// into a page from a preview alone; fill strategies demand an Approval,
// and the only way to mint one is Preview.Approve.
package preview

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/jonathan/application-autofill/internal/render"
	"github.com/jonathan/application-autofill/internal/types"
)

// FillAction is one approved write for the fill strategy to perform.
type FillAction struct {
	FieldID uuid.UUID           `json:"field_id"`
	Label   string              `json:"label"`
	Control types.ControlKind   `json:"control"`
	Locator types.Locator       `json:"locator"`
	Value   types.RenderedValue `json:"value"`
}

// Preview is the complete fill plan for one form, in detection order.
// It is read-only once built; approval binds to its exact content.
type Preview struct {
	RunID   uuid.UUID
	Site    string
	Entries []types.PreviewEntry

	actions []FillAction
}

// Build renders every matched field and assembles the preview. Fields
// and results pair up by field ID; a field without a result is shown
// unmatched. A render refusal flags the entry and never aborts the
// rest of the form.
func Build(runID uuid.UUID, site string, fields []types.FormField, results []types.MatchResult, rd *render.Renderer) *Preview {
	byField := make(map[uuid.UUID]types.MatchResult, len(results))
	for _, r := range results {
		byField[r.FieldID] = r
	}

	p := &Preview{
		RunID:   runID,
		Site:    site,
		Entries: make([]types.PreviewEntry, 0, len(fields)),
	}

	for _, f := range fields {
		result, ok := byField[f.ID]
		if !ok {
			result = types.NewUnmatched(f.ID)
		}

		entry := types.PreviewEntry{
			FieldID:    f.ID,
			Label:      f.Label,
			Attribute:  result.Attribute,
			Confidence: result.Confidence,
			Source:     result.Source,
		}

		if !result.IsMatched() {
			entry.Status = types.StatusUnmatched
			p.Entries = append(p.Entries, entry)
			continue
		}

		value, err := rd.Render(result.Attribute, f)
		if err != nil {
			entry.Status = types.StatusSkipped
			var noValue *render.NoValueError
			if errors.As(err, &noValue) {
				entry.Note = noValue.Reason
			} else {
				entry.Note = err.Error()
			}
			p.Entries = append(p.Entries, entry)
			continue
		}

		entry.Status = types.StatusFilled
		entry.Value = value.Value
		p.Entries = append(p.Entries, entry)
		p.actions = append(p.actions, FillAction{
			FieldID: f.ID,
			Label:   f.Label,
			Control: f.Kind,
			Locator: f.Locator,
			Value:   value,
		})
	}
	return p
}

// Actions returns the writes an approved fill performs, in detection
// order. The slice is a copy; callers cannot alter the preview.
func (p *Preview) Actions() []FillAction {
	out := make([]FillAction, len(p.actions))
	copy(out, p.actions)
	return out
}

// Counts reports how many entries are filled, unmatched and skipped.
func (p *Preview) Counts() (filled, unmatched, skipped int) {
	for _, e := range p.Entries {
		switch e.Status {
		case types.StatusFilled:
			filled++
		case types.StatusSkipped:
			skipped++
		default:
			unmatched++
		}
	}
	return filled, unmatched, skipped
}

// Fingerprint digests the ordered (locator, value) pairs the fill will
// write. Approval binds to this digest, so any change to what would be
// injected invalidates a previously granted approval.
func (p *Preview) Fingerprint() string {
	h := sha256.New()
	for _, a := range p.actions {
		io.WriteString(h, a.Locator.String())
		h.Write([]byte{0x1f})
		io.WriteString(h, a.Value.Value)
		h.Write([]byte{0x1e})
	}
	return hex.EncodeToString(h.Sum(nil))
}

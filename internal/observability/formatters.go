// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/application-autofill/internal/schema"
	"github.com/jonathan/application-autofill/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxLabelLen truncates long OCR labels in list output
	maxLabelLen = 30
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncateLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "(no label)"
	}
	if len(label) > maxLabelLen {
		return label[:maxLabelLen-3] + "..."
	}
	return label
}

// PrintFields outputs the controls detection found, in detection order.
func (p *Printer) PrintFields(fields []types.FormField) {
	if len(fields) == 0 {
		return
	}

	var sb strings.Builder
	for i, f := range fields {
		sb.WriteString(fmt.Sprintf("%2d. %-*s %-8s %s\n",
			i+1, maxLabelLen, truncateLabel(f.Label), f.Kind, f.Locator.String()))
		if len(f.Options) > 0 {
			sb.WriteString(fmt.Sprintf("    options: %s\n", strings.Join(f.Options, " | ")))
		}
	}

	p.printBox(fmt.Sprintf("DETECTED FIELDS (%d)", len(fields)), strings.TrimRight(sb.String(), "\n"))
}

// PrintMatchSummary outputs per-field match decisions alongside their labels.
// Fields and results pair up positionally, the order both came out of the
// engine in.
func (p *Printer) PrintMatchSummary(fields []types.FormField, results []types.MatchResult) {
	if len(fields) == 0 || len(fields) != len(results) {
		return
	}

	var sb strings.Builder
	matched := 0
	for i, f := range fields {
		r := results[i]
		if r.IsMatched() {
			matched++
			sb.WriteString(fmt.Sprintf("%-*s → %-22s %.2f (%s)\n",
				maxLabelLen, truncateLabel(f.Label), r.Attribute, r.Confidence, r.Source))
		} else {
			sb.WriteString(fmt.Sprintf("%-*s → unmatched\n", maxLabelLen, truncateLabel(f.Label)))
		}
	}

	p.printBox(fmt.Sprintf("FIELD MATCHING (%d/%d matched)", matched, len(fields)), strings.TrimRight(sb.String(), "\n"))
}

// maskedAttributes are hidden in preview output unless unmasked; their
// values still get injected, they just don't belong on a shared screen.
var maskedAttributes = map[schema.Attribute]bool{
	schema.Phone:             true,
	schema.SalaryExpectation: true,
}

// Sensitive reports whether an attribute's value is masked by default.
func Sensitive(attr schema.Attribute) bool {
	return maskedAttributes[attr]
}

// MaskValue hides the middle of a sensitive value, keeping just enough to
// recognize it ("5<...>0100").
func MaskValue(v string) string {
	if len(v) <= 2 {
		return strings.Repeat("*", len(v))
	}
	return v[:1] + "<...>" + v[len(v)-1:]
}

// PrintPreview outputs the reviewable fill plan. Entries keep detection
// order; sensitive values are masked unless unmask is set.
func (p *Printer) PrintPreview(entries []types.PreviewEntry, unmask bool) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	for i, e := range entries {
		switch e.Status {
		case types.StatusFilled:
			value := e.Value
			if !unmask && maskedAttributes[e.Attribute] {
				value = MaskValue(value)
			}
			sb.WriteString(fmt.Sprintf("%2d. %-*s %-22s = %q\n",
				i+1, maxLabelLen, truncateLabel(e.Label), e.Attribute, value))
		case types.StatusSkipped:
			sb.WriteString(fmt.Sprintf("%2d. %-*s %-22s SKIPPED: %s\n",
				i+1, maxLabelLen, truncateLabel(e.Label), e.Attribute, e.Note))
		default:
			sb.WriteString(fmt.Sprintf("%2d. %-*s unmatched (fill manually)\n",
				i+1, maxLabelLen, truncateLabel(e.Label)))
		}
	}

	p.printBox("FILL PREVIEW", strings.TrimRight(sb.String(), "\n"))
}

// PrintRunSummary outputs the final accounting for a fill run.
func (p *Printer) PrintRunSummary(target string, filled, unmatched, skipped int, injected bool) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target:    %s\n", target))
	sb.WriteString(fmt.Sprintf("Filled:    %d\n", filled))
	sb.WriteString(fmt.Sprintf("Unmatched: %d\n", unmatched))
	sb.WriteString(fmt.Sprintf("Skipped:   %d\n", skipped))
	if injected {
		sb.WriteString("Values written. Review the form and submit it yourself.")
	} else {
		sb.WriteString("Nothing written.")
	}

	p.printBox("RUN SUMMARY", sb.String())
}

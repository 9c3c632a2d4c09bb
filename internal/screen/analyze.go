package screen

import (
	"sort"
	"strings"

	"github.com/jonathan/application-autofill/internal/match"
	"github.com/jonathan/application-autofill/internal/types"
)

// Estimated control geometry. OCR sees the label text, not the input
// box; the box is assumed to sit right of the label (or under it when
// nothing fits to the right on a narrow window).
const (
	fieldGapX       = 12
	fieldGapY       = 6
	fieldWidth      = 220
	fieldHeight     = 28
	textareaHeight  = 90
	textareaMinGapY = 80
)

// Label plausibility bounds from the original analyzer.
const (
	minLabelLen = 3
	maxLabelLen = 50
)

// uploadKeywords mark a line as a file-picker control rather than a
// label next to a text box.
var uploadKeywords = []string{
	"upload", "choose file", "browse", "attach", "select file", "resume", "cv",
}

// line is one visual text line assembled from OCR words.
type line struct {
	text   string
	x, y   int
	w, h   int
	conf   float64 // mean word confidence
	gapY   int     // vertical distance to the next line, -1 for the last
	isLast bool
}

// labelMatcher checks whether a line reads like a known field label.
// Zero penalty: only pattern hits matter here, not control kinds.
var labelMatcher = match.NewRuleMatcher(0)

// AnalyzeLayout turns OCR words into detected form fields, in reading
// order. A line qualifies as a field label when it carries an upload
// keyword, ends with a colon, or matches the rule table; everything
// else on screen (headings, prose, window chrome) is ignored.
func AnalyzeLayout(words []Word) []types.FormField {
	lines := groupLines(words)

	var fields []types.FormField
	for _, ln := range lines {
		label := cleanLabel(ln.text)
		if len(label) < minLabelLen || len(label) > maxLabelLen {
			continue
		}

		switch {
		case hasUploadKeyword(ln.text):
			// The line itself is the click target for a file picker.
			f := types.NewFormField(label, types.ControlFile,
				types.ScreenLocator(ln.x, ln.y, ln.w, ln.h))
			f.Confidence = ln.conf / 100
			fields = append(fields, f)

		case looksLikeLabel(ln.text, label):
			kind := types.ControlText
			height := fieldHeight
			// A tall empty band under the label reads as a multi-line box.
			if !ln.isLast && ln.gapY > textareaMinGapY {
				kind = types.ControlTextarea
				height = textareaHeight
			}
			f := types.NewFormField(label, kind,
				types.ScreenLocator(ln.x+ln.w+fieldGapX, ln.y-fieldGapY/2, fieldWidth, height))
			f.Confidence = ln.conf / 100
			fields = append(fields, f)
		}
	}

	return dedupeOverlaps(fields)
}

// groupLines merges words sharing tesseract's block/paragraph/line
// numbering into visual lines, ordered top to bottom.
func groupLines(words []Word) []line {
	type key struct{ block, par, ln int }
	groups := make(map[key][]Word)
	var order []key
	for _, w := range words {
		k := key{w.Block, w.Par, w.Line}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], w)
	}

	lines := make([]line, 0, len(order))
	for _, k := range order {
		ws := groups[k]
		sort.Slice(ws, func(i, j int) bool { return ws[i].X < ws[j].X })

		var texts []string
		var confSum float64
		minX, minY := ws[0].X, ws[0].Y
		maxX, maxY := 0, 0
		for _, w := range ws {
			texts = append(texts, w.Text)
			confSum += w.Conf
			if w.X < minX {
				minX = w.X
			}
			if w.Y < minY {
				minY = w.Y
			}
			if w.X+w.Width > maxX {
				maxX = w.X + w.Width
			}
			if w.Y+w.Height > maxY {
				maxY = w.Y + w.Height
			}
		}

		lines = append(lines, line{
			text: strings.Join(texts, " "),
			x:    minX, y: minY,
			w: maxX - minX, h: maxY - minY,
			conf: confSum / float64(len(ws)),
		})
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y < lines[j].y })

	for i := range lines {
		if i == len(lines)-1 {
			lines[i].gapY = -1
			lines[i].isLast = true
			continue
		}
		lines[i].gapY = lines[i+1].y - (lines[i].y + lines[i].h)
	}
	return lines
}

// cleanLabel strips OCR junk the way the label normalizer does, but
// keeps the original casing for display.
func cleanLabel(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func hasUploadKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range uploadKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// looksLikeLabel accepts lines that end with a colon or that the rule
// table recognizes. Prose sentences fail both tests.
func looksLikeLabel(raw, cleaned string) bool {
	if strings.HasSuffix(strings.TrimSpace(raw), ":") {
		return true
	}
	// Long word runs are prose even when a rule pattern hides inside.
	if len(strings.Fields(cleaned)) > 5 {
		return false
	}
	candidate := labelMatcher.Match(cleaned, types.ControlText)
	return candidate.Confidence > 0
}

// dedupeOverlaps drops the lower-confidence field whenever two estimated
// boxes overlap by more than half of the smaller one.
func dedupeOverlaps(fields []types.FormField) []types.FormField {
	var kept []types.FormField
	for _, f := range fields {
		replaced := false
		dropped := false
		for i, k := range kept {
			if overlapRatio(f.Locator, k.Locator) <= 0.5 {
				continue
			}
			if f.Confidence > k.Confidence {
				kept[i] = f
				replaced = true
			} else {
				dropped = true
			}
			break
		}
		if !replaced && !dropped {
			kept = append(kept, f)
		}
	}
	return kept
}

func overlapRatio(a, b types.Locator) float64 {
	ix := max(0, min(a.X+a.Width, b.X+b.Width)-max(a.X, b.X))
	iy := max(0, min(a.Y+a.Height, b.Y+b.Height)-max(a.Y, b.Y))
	inter := ix * iy
	if inter == 0 {
		return 0
	}
	areaA := a.Width * a.Height
	areaB := b.Width * b.Height
	smaller := min(areaA, areaB)
	if smaller == 0 {
		return 0
	}
	return float64(inter) / float64(smaller)
}

package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ControlKind classifies a detected form control by how it accepts input.
type ControlKind string

const (
	ControlText     ControlKind = "text"
	ControlTextarea ControlKind = "textarea"
	ControlSelect   ControlKind = "select"
	ControlCheckbox ControlKind = "checkbox"
	ControlRadio    ControlKind = "radio"
	ControlFile     ControlKind = "file"
)

// ParseControlKind maps an HTML element/type name to a ControlKind.
// Unrecognized input types (email, tel, url, number, date, ...) behave
// like plain text inputs, which is how browsers treat them for typing.
func ParseControlKind(tag, inputType string) ControlKind {
	switch strings.ToLower(tag) {
	case "textarea":
		return ControlTextarea
	case "select":
		return ControlSelect
	}
	switch strings.ToLower(inputType) {
	case "checkbox":
		return ControlCheckbox
	case "radio":
		return ControlRadio
	case "file":
		return ControlFile
	default:
		return ControlText
	}
}

// LocatorKind distinguishes how a field is addressed when filling.
type LocatorKind string

const (
	// LocatorCSS addresses an element in a live DOM by CSS selector.
	LocatorCSS LocatorKind = "css"
	// LocatorScreen addresses a field by screen coordinates, used when
	// no DOM is available and fields come from screenshot analysis.
	LocatorScreen LocatorKind = "screen"
)

// Locator identifies where a form field lives so a fill strategy can
// reach it. Exactly one addressing mode is populated per Kind.
type Locator struct {
	Kind     LocatorKind `json:"kind"`
	Selector string      `json:"selector,omitempty"`
	X        int         `json:"x,omitempty"`
	Y        int         `json:"y,omitempty"`
	Width    int         `json:"width,omitempty"`
	Height   int         `json:"height,omitempty"`
}

// CSSLocator builds a DOM locator for the given selector.
func CSSLocator(selector string) Locator {
	return Locator{Kind: LocatorCSS, Selector: selector}
}

// ScreenLocator builds a coordinate locator for a screen region.
func ScreenLocator(x, y, width, height int) Locator {
	return Locator{Kind: LocatorScreen, X: x, Y: y, Width: width, Height: height}
}

// Center returns the midpoint of a screen locator's region, the point a
// pointer-based fill strategy clicks before typing.
func (l Locator) Center() (int, int) {
	return l.X + l.Width/2, l.Y + l.Height/2
}

// String renders the locator in the compact form used by saved mappings
// and run logs: "css:#first_name" or "screen:120,340,200,28".
func (l Locator) String() string {
	switch l.Kind {
	case LocatorScreen:
		return fmt.Sprintf("screen:%d,%d,%d,%d", l.X, l.Y, l.Width, l.Height)
	default:
		return "css:" + l.Selector
	}
}

// ParseLocator is the inverse of Locator.String.
func ParseLocator(s string) (Locator, error) {
	kind, rest, ok := strings.Cut(s, ":")
	if !ok {
		return Locator{}, fmt.Errorf("locator %q: missing kind prefix", s)
	}
	switch LocatorKind(kind) {
	case LocatorCSS:
		if rest == "" {
			return Locator{}, fmt.Errorf("locator %q: empty selector", s)
		}
		return CSSLocator(rest), nil
	case LocatorScreen:
		parts := strings.Split(rest, ",")
		if len(parts) != 4 {
			return Locator{}, fmt.Errorf("locator %q: want 4 coordinates, got %d", s, len(parts))
		}
		nums := make([]int, 4)
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return Locator{}, fmt.Errorf("locator %q: bad coordinate %q", s, p)
			}
			nums[i] = n
		}
		return ScreenLocator(nums[0], nums[1], nums[2], nums[3]), nil
	default:
		return Locator{}, fmt.Errorf("locator %q: unknown kind %q", s, kind)
	}
}

// FormField is one fillable control discovered on an application form,
// carrying everything downstream stages need: the label text shown to
// the applicant, the control kind, selectable options when the control
// offers a fixed choice, and a locator for the fill step.
type FormField struct {
	ID      uuid.UUID   `json:"id"`
	Label   string      `json:"label"`
	Kind    ControlKind `json:"kind"`
	Options []string    `json:"options,omitempty"`
	Locator Locator     `json:"locator"`
	// Confidence reflects how sure detection is that this is a real
	// form field. DOM detection always reports 1.0; screenshot
	// analysis reports its heuristic score.
	Confidence float64 `json:"confidence"`
}

// NewFormField assigns a fresh identity to a detected control.
func NewFormField(label string, kind ControlKind, loc Locator) FormField {
	return FormField{
		ID:         uuid.New(),
		Label:      label,
		Kind:       kind,
		Locator:    loc,
		Confidence: 1.0,
	}
}

// HasOptions reports whether the control restricts input to a fixed set
// of choices that rendered values must be checked against.
func (f FormField) HasOptions() bool {
	return (f.Kind == ControlSelect || f.Kind == ControlRadio) && len(f.Options) > 0
}

// Package render turns resolved attributes into injection-ready values.
// Rendering is where the record meets the concrete control: the same
// attribute becomes a typed string on a text input, a verified option
// on a select, a document path on a file input. A field the record
// cannot serve fails with NoValueError and is skipped, never fatal to
// the run.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/jonathan/application-autofill/internal/record"
	"github.com/jonathan/application-autofill/internal/schema"
	"github.com/jonathan/application-autofill/internal/types"
)

// Renderer produces fill-ready values from one loaded record. It only
// reads the record, so one renderer can serve concurrent fill runs.
type Renderer struct {
	record *record.PersonalRecord
}

// NewRenderer builds a renderer over rec.
func NewRenderer(rec *record.PersonalRecord) *Renderer {
	return &Renderer{record: rec}
}

// Render produces the concrete value to put into field for attr.
func (rd *Renderer) Render(attr schema.Attribute, field types.FormField) (types.RenderedValue, error) {
	spec, ok := schema.Lookup(attr)
	if !ok {
		return types.RenderedValue{}, &NoValueError{Attribute: attr, Reason: "attribute not in schema"}
	}

	switch spec.Kind {
	case schema.KindFile:
		return rd.renderFile(attr, field)
	case schema.KindBoolean:
		return rd.renderBool(attr, field)
	default:
		return rd.renderText(attr, field)
	}
}

func (rd *Renderer) renderText(attr schema.Attribute, field types.FormField) (types.RenderedValue, error) {
	value, ok := rd.record.Value(attr)
	if !ok {
		return types.RenderedValue{}, &NoValueError{Attribute: attr, Reason: "record holds no value"}
	}

	switch field.Kind {
	case types.ControlText, types.ControlTextarea:
		return types.RenderedValue{FieldID: field.ID, Value: value, Kind: types.ValueText}, nil
	case types.ControlSelect, types.ControlRadio:
		option, ok := matchOption(value, field.Options)
		if !ok {
			return types.RenderedValue{}, &NoValueError{Attribute: attr, Reason: fmt.Sprintf("no option matches %q", value)}
		}
		return types.RenderedValue{FieldID: field.ID, Value: option, Kind: types.ValueOption}, nil
	case types.ControlFile:
		return types.RenderedValue{}, &NoValueError{Attribute: attr, Reason: "file inputs take document attributes only"}
	case types.ControlCheckbox:
		return types.RenderedValue{}, &NoValueError{Attribute: attr, Reason: "checkboxes take boolean attributes only"}
	default:
		return types.RenderedValue{}, &NoValueError{Attribute: attr, Reason: fmt.Sprintf("unsupported control kind %q", field.Kind)}
	}
}

func (rd *Renderer) renderBool(attr schema.Attribute, field types.FormField) (types.RenderedValue, error) {
	value, ok := rd.record.Bool(attr)
	if !ok {
		return types.RenderedValue{}, &NoValueError{Attribute: attr, Reason: "attribute is not boolean-typed"}
	}

	switch field.Kind {
	case types.ControlCheckbox:
		return types.RenderedValue{FieldID: field.ID, Value: strconv.FormatBool(value), Kind: types.ValueOption}, nil
	case types.ControlSelect, types.ControlRadio:
		option, ok := matchBoolOption(value, field.Options)
		if !ok {
			return types.RenderedValue{}, &NoValueError{Attribute: attr, Reason: fmt.Sprintf("no yes/no option for %t", value)}
		}
		return types.RenderedValue{FieldID: field.ID, Value: option, Kind: types.ValueOption}, nil
	case types.ControlText, types.ControlTextarea:
		text := "No"
		if value {
			text = "Yes"
		}
		return types.RenderedValue{FieldID: field.ID, Value: text, Kind: types.ValueText}, nil
	default:
		return types.RenderedValue{}, &NoValueError{Attribute: attr, Reason: "boolean attributes do not upload"}
	}
}

func (rd *Renderer) renderFile(attr schema.Attribute, field types.FormField) (types.RenderedValue, error) {
	if field.Kind != types.ControlFile {
		return types.RenderedValue{}, &NoValueError{Attribute: attr, Reason: "document attributes need a file input"}
	}

	path, ok := rd.record.FilePath(attr)
	if !ok {
		return types.RenderedValue{}, &NoValueError{Attribute: attr, Reason: "record holds no document path"}
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	// Existence is checked here rather than at record load, so a stale
	// cover letter path does not block filling unrelated fields.
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return types.RenderedValue{}, &NoValueError{Attribute: attr, Reason: fmt.Sprintf("document %s does not exist", path)}
	}
	return types.RenderedValue{FieldID: field.ID, Value: path, Kind: types.ValueFilePath}, nil
}

// matchOption matches value against the control's options: first exact
// under case folding, then whole-token containment in either direction,
// so "Citizen" picks "US Citizen" but "CA" never picks "California".
// Abbreviation expansion is out of scope here; a wrong answer on a real
// application is worse than a blank one.
func matchOption(value string, options []string) (string, bool) {
	for _, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(value)) {
			return opt, true
		}
	}

	want := tokens(value)
	if len(want) == 0 {
		return "", false
	}
	for _, opt := range options {
		have := tokens(opt)
		if containsRun(have, want) || containsRun(want, have) {
			return opt, true
		}
	}
	return "", false
}

// matchBoolOption picks the option that answers yes or no. Only the
// leading token decides, so "Yes, I require sponsorship" reads as yes
// while "Prefer not to say" matches nothing.
func matchBoolOption(value bool, options []string) (string, bool) {
	want := "no"
	if value {
		want = "yes"
	}
	if opt, ok := leadingToken(options, want); ok {
		return opt, true
	}

	// Some ATS-generated selects carry bare true/false options.
	alt := "false"
	if value {
		alt = "true"
	}
	return leadingToken(options, alt)
}

func leadingToken(options []string, want string) (string, bool) {
	for _, opt := range options {
		if ts := tokens(opt); len(ts) > 0 && ts[0] == want {
			return opt, true
		}
	}
	return "", false
}

// tokens lowercases and splits on anything that is not a letter or
// digit, so "Yes, I do" and "yes i do" compare equal.
func tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsRun reports whether needle occurs in haystack as a contiguous
// token run.
func containsRun(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		matched := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

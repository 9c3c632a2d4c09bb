package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/application-autofill/internal/types"
)

// Detect parses HTML and returns the fillable controls in document
// order. pageURL narrows the search to the ATS application-form
// container when the platform is recognized, keeping site chrome
// (search boxes, newsletter signups) out of the results. Zero fields
// is not an error.
func Detect(htmlContent, pageURL string) ([]types.FormField, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &ExtractionError{Message: "failed to parse HTML", Cause: err}
	}

	root := doc.Selection
	for _, sel := range PlatformFormSelectors(DetectPlatform(pageURL)) {
		if container := doc.Find(sel); container.Length() > 0 {
			root = container.First()
			break
		}
	}

	var fields []types.FormField
	seenRadioGroups := make(map[string]bool)

	root.Find("input, textarea, select").Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		inputType, _ := s.Attr("type")

		if skipControl(s, tag, inputType) {
			return
		}

		// Radios sharing a name are one field with one option per
		// radio, surfaced at the group's first document position.
		if tag == "input" && strings.EqualFold(inputType, "radio") {
			name, _ := s.Attr("name")
			if name == "" || seenRadioGroups[name] {
				return
			}
			seenRadioGroups[name] = true
			if f, ok := radioGroupField(doc, root, name); ok {
				fields = append(fields, f)
			}
			return
		}

		selector, ok := buildSelector(s, tag)
		if !ok {
			// Nothing stable to address the control with at fill time.
			return
		}

		kind := types.ParseControlKind(tag, inputType)
		f := types.NewFormField(fieldLabel(doc, s), kind, types.CSSLocator(selector))
		if kind == types.ControlSelect {
			f.Options = selectOptions(s)
		}
		fields = append(fields, f)
	})

	return fields, nil
}

var skippedInputTypes = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
	"reset":  true,
	"image":  true,
}

func skipControl(s *goquery.Selection, tag, inputType string) bool {
	if tag == "input" && skippedInputTypes[strings.ToLower(inputType)] {
		return true
	}
	if _, disabled := s.Attr("disabled"); disabled {
		return true
	}
	if v, ok := s.Attr("aria-hidden"); ok && v == "true" {
		return true
	}
	// Static HTML cannot be style-resolved; inline hiding is the common
	// case on prerendered boards and is all that is checked here.
	if style, ok := s.Attr("style"); ok {
		compact := strings.ReplaceAll(strings.ToLower(style), " ", "")
		if strings.Contains(compact, "display:none") || strings.Contains(compact, "visibility:hidden") {
			return true
		}
	}
	return false
}

// fieldLabel resolves the text shown next to a control: the explicit
// label element, a wrapping label, the nearest preceding sibling, the
// control's own descriptive attributes, and finally a humanized
// name/id.
func fieldLabel(doc *goquery.Document, s *goquery.Selection) string {
	id, _ := s.Attr("id")
	if id != "" {
		if text := collapseText(doc.Find(fmt.Sprintf("label[for=%q]", id)).First().Text()); text != "" {
			return text
		}
	}

	if wrapping := s.Closest("label"); wrapping.Length() > 0 {
		// Drop the control's own text so a wrapped select does not
		// leak its options into the label.
		if text := collapseText(strings.Replace(wrapping.Text(), s.Text(), "", 1)); text != "" {
			return text
		}
	}

	if text := collapseText(s.Prev().Text()); text != "" {
		return text
	}

	if placeholder, ok := s.Attr("placeholder"); ok {
		if text := collapseText(placeholder); text != "" {
			return text
		}
	}
	if aria, ok := s.Attr("aria-label"); ok {
		if text := collapseText(aria); text != "" {
			return text
		}
	}

	if name, ok := s.Attr("name"); ok && name != "" {
		return humanize(name)
	}
	if id != "" {
		return humanize(id)
	}
	return ""
}

// selectOptions collects the option texts a rendered value must match.
// Prompt rows with an explicitly empty value ("Select one...") are not
// real choices and are left out.
func selectOptions(s *goquery.Selection) []string {
	var opts []string
	s.Find("option").Each(func(_ int, o *goquery.Selection) {
		text := collapseText(o.Text())
		if text == "" {
			return
		}
		if v, ok := o.Attr("value"); ok && v == "" {
			return
		}
		opts = append(opts, text)
	})
	return opts
}

// radioGroupField folds all radios sharing a name into one field whose
// options are the individual radio labels. The group's own label comes
// from the enclosing fieldset legend or radiogroup aria-label.
func radioGroupField(doc *goquery.Document, root *goquery.Selection, name string) (types.FormField, bool) {
	groupSelector := fmt.Sprintf("input[type='radio'][name=%q]", name)
	radios := root.Find(groupSelector)
	if radios.Length() == 0 {
		return types.FormField{}, false
	}

	var options []string
	radios.Each(func(_ int, r *goquery.Selection) {
		if text := radioOptionLabel(doc, r); text != "" {
			options = append(options, text)
		}
	})

	label := collapseText(radios.First().Closest("fieldset").Find("legend").First().Text())
	if label == "" {
		if aria, ok := radios.First().Closest("[role='radiogroup']").Attr("aria-label"); ok {
			label = collapseText(aria)
		}
	}
	if label == "" {
		label = humanize(name)
	}

	f := types.NewFormField(label, types.ControlRadio, types.CSSLocator(groupSelector))
	f.Options = options
	return f, true
}

func radioOptionLabel(doc *goquery.Document, r *goquery.Selection) string {
	if id, ok := r.Attr("id"); ok && id != "" {
		if text := collapseText(doc.Find(fmt.Sprintf("label[for=%q]", id)).First().Text()); text != "" {
			return text
		}
	}
	if wrapping := r.Closest("label"); wrapping.Length() > 0 {
		if text := collapseText(wrapping.Text()); text != "" {
			return text
		}
	}
	if v, ok := r.Attr("value"); ok {
		return humanize(v)
	}
	return ""
}

var simpleIdent = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// buildSelector derives the CSS locator used at fill time, preferring
// stable attributes: id, then name, then placeholder. A control with
// none of those can still be addressed by position under an identified
// parent; otherwise it is dropped as unreachable.
func buildSelector(s *goquery.Selection, tag string) (string, bool) {
	if id, ok := s.Attr("id"); ok && id != "" {
		if simpleIdent.MatchString(id) {
			return "#" + id, true
		}
		return fmt.Sprintf("[id=%q]", id), true
	}
	if name, ok := s.Attr("name"); ok && name != "" {
		return fmt.Sprintf("%s[name=%q]", tag, name), true
	}
	if placeholder, ok := s.Attr("placeholder"); ok && placeholder != "" {
		return fmt.Sprintf("%s[placeholder=%q]", tag, placeholder), true
	}

	if parentID, ok := s.Parent().Attr("id"); ok && simpleIdent.MatchString(parentID) {
		nth := s.PrevAllFiltered(tag).Length() + 1
		return fmt.Sprintf("#%s > %s:nth-of-type(%d)", parentID, tag, nth), true
	}
	return "", false
}

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// humanize turns attribute names like "first_name", "firstName" or
// "user[email]" into label-ish text.
func humanize(s string) string {
	s = camelBoundary.ReplaceAllString(s, "$1 $2")
	s = strings.NewReplacer("_", " ", "-", " ", "[", " ", "]", " ").Replace(s)
	return collapseText(s)
}

func collapseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

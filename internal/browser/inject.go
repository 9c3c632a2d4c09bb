package browser

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/application-autofill/internal/preview"
	"github.com/jonathan/application-autofill/internal/types"
)

// interActionDelay paces the writes. Instant filling of a whole form
// trips the same bot heuristics the session flags are working around.
const interActionDelay = 300 * time.Millisecond

// InjectError reports a failed write to one field. The fill loop keeps
// going; one stubborn control must not waste the rest of an approved
// form.
type InjectError struct {
	Locator string
	Message string
	Cause   error
}

func (e *InjectError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("inject error at %s: %s: %v", e.Locator, e.Message, e.Cause)
	}
	return fmt.Sprintf("inject error at %s: %s", e.Locator, e.Message)
}

func (e *InjectError) Unwrap() error {
	return e.Cause
}

// Inject writes every approved action into the live page, strictly in
// preview order. The approval is re-verified against the preview before
// anything is touched; this is the only path from a match decision to
// the DOM. Per-field failures are collected and returned together, and
// the form is never submitted.
func (s *Session) Inject(cfg preview.ApprovalConfig, p *preview.Preview, approval preview.Approval) []error {
	if err := approval.Verify(cfg, p); err != nil {
		return []error{err}
	}

	var errs []error
	for _, action := range p.Actions() {
		if action.Locator.Kind != types.LocatorCSS {
			errs = append(errs, &InjectError{Locator: action.Locator.String(), Message: "locator is not DOM-addressable"})
			continue
		}
		if err := s.injectOne(action); err != nil {
			errs = append(errs, err)
		}
		time.Sleep(interActionDelay)
	}
	return errs
}

func (s *Session) injectOne(action preview.FillAction) error {
	sel := action.Locator.Selector

	switch {
	case action.Value.Kind == types.ValueFilePath:
		err := s.run(actionTimeout,
			chromedp.SetUploadFiles(sel, []string{action.Value.Value}),
		)
		if err != nil {
			return &InjectError{Locator: action.Locator.String(), Message: "file upload failed", Cause: err}
		}
		return nil

	case action.Control == types.ControlSelect:
		return s.evalFieldScript(action, selectOptionScript)

	case action.Control == types.ControlCheckbox:
		return s.evalFieldScript(action, setCheckboxScript)

	case action.Control == types.ControlRadio:
		return s.evalFieldScript(action, pickRadioScript)

	default:
		return s.evalFieldScript(action, setTextScript)
	}
}

// evalFieldScript runs one of the injection scripts with (selector,
// value) bound in. Values go through JSON so quoting in labels and
// paths cannot break out of the script.
func (s *Session) evalFieldScript(action preview.FillAction, script string) error {
	selJSON, _ := json.Marshal(action.Locator.Selector)
	valJSON, _ := json.Marshal(action.Value.Value)
	code := fmt.Sprintf(script, selJSON, valJSON)

	var outcome string
	if err := s.run(actionTimeout, chromedp.Evaluate(code, &outcome)); err != nil {
		return &InjectError{Locator: action.Locator.String(), Message: "script evaluation failed", Cause: err}
	}
	if outcome != "ok" {
		return &InjectError{Locator: action.Locator.String(), Message: outcome}
	}
	if s.verbose {
		fmt.Printf("[FILL] %s ← %s\n", action.Locator.String(), action.Value.Kind)
	}
	return nil
}

// The scripts set values the way the page's own framework would see
// them: through the native property setter, followed by input and
// change events. Assigning el.value directly is invisible to React and
// Vue controlled inputs.
const (
	setTextScript = `(() => {
		const el = document.querySelector(%s);
		if (!el) return "element not found";
		const proto = el.tagName === "TEXTAREA" ? HTMLTextAreaElement.prototype : HTMLInputElement.prototype;
		const setter = Object.getOwnPropertyDescriptor(proto, "value").set;
		setter.call(el, %s);
		el.dispatchEvent(new Event("input", {bubbles: true}));
		el.dispatchEvent(new Event("change", {bubbles: true}));
		return "ok";
	})()`

	selectOptionScript = `(() => {
		const el = document.querySelector(%s);
		if (!el) return "element not found";
		const want = %s;
		for (const opt of el.options) {
			if (opt.text.trim() === want || opt.value === want) {
				el.value = opt.value;
				el.dispatchEvent(new Event("change", {bubbles: true}));
				return "ok";
			}
		}
		return "option not present";
	})()`

	setCheckboxScript = `(() => {
		const el = document.querySelector(%s);
		if (!el) return "element not found";
		const want = %s === "true";
		if (el.checked !== want) {
			el.click();
		}
		return "ok";
	})()`

	pickRadioScript = `(() => {
		const first = document.querySelector(%s);
		if (!first) return "element not found";
		const want = %s;
		const group = first.name
			? document.querySelectorAll('input[type="radio"][name="' + CSS.escape(first.name) + '"]')
			: [first];
		for (const radio of group) {
			const label = radio.labels && radio.labels.length
				? radio.labels[0].textContent.trim()
				: radio.value;
			if (label === want || radio.value === want) {
				radio.click();
				return "ok";
			}
		}
		return "option not present";
	})()`
)

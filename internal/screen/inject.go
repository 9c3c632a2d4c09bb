package screen

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/jonathan/application-autofill/internal/preview"
	"github.com/jonathan/application-autofill/internal/types"
)

// Injection pacing. Clicking and typing at machine speed loses
// characters in slow UI toolkits, and the applicant should be able to
// watch what is being written where.
const (
	injectActionTimeout = 15 * time.Second
	postClickDelay      = 400 * time.Millisecond
	fileDialogDelay     = 1500 * time.Millisecond
	typeDelayMs         = 40
)

// CheckInjector verifies xdotool is installed.
func CheckInjector() error {
	if _, err := exec.LookPath("xdotool"); err != nil {
		return &InjectError{
			Locator: "(none)",
			Message: "xdotool not found in PATH. Install xdotool to use screen mode",
			Cause:   err,
		}
	}
	return nil
}

// Injector delivers synthetic pointer and keyboard input.
type Injector struct {
	verbose bool
}

// NewInjector builds an injector after probing for xdotool.
func NewInjector(verbose bool) (*Injector, error) {
	if err := CheckInjector(); err != nil {
		return nil, err
	}
	return &Injector{verbose: verbose}, nil
}

// Inject types every approved value into its on-screen field, strictly
// in preview order. The approval is re-verified first; like the browser
// path, there is no way to reach synthetic input from a match decision
// except through an approved preview. Nothing is ever submitted.
func (inj *Injector) Inject(ctx context.Context, cfg preview.ApprovalConfig, p *preview.Preview, approval preview.Approval) []error {
	if err := approval.Verify(cfg, p); err != nil {
		return []error{err}
	}

	var errs []error
	for _, action := range p.Actions() {
		if action.Locator.Kind != types.LocatorScreen {
			errs = append(errs, &InjectError{Locator: action.Locator.String(), Message: "locator is not screen-addressable"})
			continue
		}
		if err := inj.injectOne(ctx, action); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (inj *Injector) injectOne(ctx context.Context, action preview.FillAction) error {
	x, y := action.Locator.Center()

	if err := inj.xdotool(ctx, "mousemove", strconv.Itoa(x), strconv.Itoa(y)); err != nil {
		return &InjectError{Locator: action.Locator.String(), Message: "mouse move failed", Cause: err}
	}
	if err := inj.xdotool(ctx, "click", "1"); err != nil {
		return &InjectError{Locator: action.Locator.String(), Message: "click failed", Cause: err}
	}

	if action.Value.Kind == types.ValueFilePath {
		// The click opened a file dialog; give it time to appear, then
		// type the path and confirm. Confirming the dialog selects a
		// file, it does not submit the form.
		time.Sleep(fileDialogDelay)
		if err := inj.typeText(ctx, action.Value.Value); err != nil {
			return &InjectError{Locator: action.Locator.String(), Message: "typing file path failed", Cause: err}
		}
		if err := inj.xdotool(ctx, "key", "Return"); err != nil {
			return &InjectError{Locator: action.Locator.String(), Message: "confirming file dialog failed", Cause: err}
		}
		return nil
	}

	time.Sleep(postClickDelay)

	// Replace whatever the field holds rather than appending to it.
	if err := inj.xdotool(ctx, "key", "ctrl+a"); err != nil {
		return &InjectError{Locator: action.Locator.String(), Message: "select-all failed", Cause: err}
	}
	if err := inj.typeText(ctx, action.Value.Value); err != nil {
		return &InjectError{Locator: action.Locator.String(), Message: "typing failed", Cause: err}
	}

	if inj.verbose {
		fmt.Printf("[FILL] %s ← %s\n", action.Locator.String(), action.Value.Kind)
	}
	return nil
}

func (inj *Injector) typeText(ctx context.Context, text string) error {
	return inj.xdotool(ctx, "type", "--delay", strconv.Itoa(typeDelayMs), "--", text)
}

func (inj *Injector) xdotool(ctx context.Context, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, injectActionTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "xdotool", args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("xdotool %s: %s: %w", args[0], string(output), err)
	}
	return nil
}

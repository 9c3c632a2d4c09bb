package fill

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/application-autofill/internal/db"
	"github.com/jonathan/application-autofill/internal/preview"
	"github.com/jonathan/application-autofill/internal/render"
	"github.com/jonathan/application-autofill/internal/screen"
)

// captureCountdown gives the applicant time to bring the form window to
// the front before the screenshot fires.
const captureCountdown = 5 * time.Second

// RunScreen fills whatever form is visible on screen: screenshot, OCR,
// layout heuristics, then the same match → preview → approve → inject
// pipeline as the web path, delivered through synthetic input.
func RunScreen(ctx context.Context, opts Options) error {
	// Probe the external tools before the countdown, not after.
	if err := screen.CheckOCR(); err != nil {
		return err
	}
	injector, err := screen.NewInjector(opts.Verbose)
	if err != nil {
		return err
	}

	r, err := newRun(ctx, &opts, db.ModeScreen)
	if err != nil {
		return err
	}
	defer r.close()

	out := opts.output()
	fmt.Fprintf(out, "Switch to the form window. Capturing in %d seconds...\n", int(captureCountdown.Seconds()))
	select {
	case <-time.After(captureCountdown):
	case <-ctx.Done():
		return ctx.Err()
	}

	imagePath, err := screen.Capture(ctx)
	if err != nil {
		return err
	}
	words, err := screen.Recognize(ctx, imagePath)
	if err != nil {
		return err
	}

	fields := screen.AnalyzeLayout(words)
	if len(fields) == 0 {
		fmt.Fprintln(out, "Nothing to fill: no form fields recognized on screen.")
		return nil
	}
	if opts.Verbose {
		r.printer.PrintFields(fields)
	}

	results := r.matchFields(ctx, fields)
	if opts.Verbose {
		r.printer.PrintMatchSummary(fields, results)
	}

	p := preview.Build(r.id, opts.Target, fields, results, render.NewRenderer(r.record))
	r.printer.PrintPreview(p.Entries, opts.Unmask)

	if opts.DryRun {
		fmt.Fprintln(out, "Dry run: stopping after preview.")
		r.finish(ctx, p, db.StatusCancelled, "", false)
		return nil
	}

	if !confirm(opts.input(), out) {
		fmt.Fprintln(out, "Cancelled. Nothing was written.")
		r.finish(ctx, p, db.StatusCancelled, "", false)
		return nil
	}

	approvalCfg := preview.ApprovalConfigFromEnv()
	approval, err := p.Approve(approvalCfg)
	if err != nil {
		r.finish(ctx, p, db.StatusFailed, "", false)
		return err
	}

	fmt.Fprintln(out, "Filling. Keep the form window in front and hands off the mouse.")
	if errs := injector.Inject(ctx, approvalCfg, p, approval); len(errs) > 0 {
		for _, injErr := range errs {
			fmt.Fprintf(out, "Warning: %v\n", injErr)
		}
	}

	r.finish(ctx, p, db.StatusInjected, approval.JTI(approvalCfg), true)
	return nil
}

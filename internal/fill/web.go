package fill

import (
	"context"
	"fmt"

	"github.com/jonathan/application-autofill/internal/browser"
	"github.com/jonathan/application-autofill/internal/db"
	"github.com/jonathan/application-autofill/internal/detect"
	"github.com/jonathan/application-autofill/internal/preview"
	"github.com/jonathan/application-autofill/internal/render"
)

// RunWeb fills a form at a URL. The page is driven in a visible Chrome
// window: the applicant watches the fill happen and submits by hand
// afterwards, or not at all.
func RunWeb(ctx context.Context, opts Options) error {
	r, err := newRun(ctx, &opts, db.ModeWeb)
	if err != nil {
		return err
	}
	defer r.close()

	out := opts.output()
	fmt.Fprintf(out, "Opening %s\n", opts.Target)

	session, err := browser.NewSession(ctx, browser.Options{Headless: opts.DryRun, Verbose: opts.Verbose})
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Navigate(opts.Target); err != nil {
		return err
	}
	html, err := session.FormHTML()
	if err != nil {
		return err
	}

	fields, err := detect.Detect(html, opts.Target)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		fmt.Fprintln(out, "Nothing to fill: no form fields detected on this page.")
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

	if errs := session.Inject(approvalCfg, p, approval); len(errs) > 0 {
		for _, injErr := range errs {
			fmt.Fprintf(out, "Warning: %v\n", injErr)
		}
	}

	r.finish(ctx, p, db.StatusInjected, approval.JTI(approvalCfg), true)
	return nil
}

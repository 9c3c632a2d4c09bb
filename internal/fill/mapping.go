package fill

import (
	"context"
	"fmt"

	"github.com/jonathan/application-autofill/internal/detect"
	"github.com/jonathan/application-autofill/internal/fetch"
	"github.com/jonathan/application-autofill/internal/mapping"
)

// CreateMapping runs detection and matching against a URL and saves the
// confident decisions as that site's mapping. No record is loaded and
// nothing is injected; this is a pure classification pass, reviewed in
// the printed summary, that later fills reuse.
func CreateMapping(ctx context.Context, opts Options) error {
	out := opts.output()

	html, err := fetchPage(ctx, opts.Target, opts.UseBrowser, opts.Verbose)
	if err != nil {
		return err
	}

	fields, err := detect.Detect(html, opts.Target)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		fmt.Fprintln(out, "Nothing to map: no form fields detected on this page.")
		return nil
	}

	engine, client, err := newEngine(ctx, &opts, out)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	results := engine.MatchFields(ctx, fields)

	m := mapping.New(opts.Target, fields, results)
	if len(m.Fields) == 0 {
		fmt.Fprintln(out, "No field matched confidently enough to save a mapping.")
		return nil
	}

	for _, warning := range m.Check(engine.Rules()) {
		fmt.Fprintf(out, "Warning: %s\n", warning)
	}

	store := mapping.NewStore(opts.MappingsDir)
	if err := store.Save(m); err != nil {
		return err
	}

	fmt.Fprintf(out, "Saved mapping for %d fields to %s\n", len(m.Fields), store.Path(opts.Target))
	return nil
}

// fetchPage retrieves a form page, rendering it in the headless browser
// when forced or when the static HTML carries no form controls.
func fetchPage(ctx context.Context, url string, forceBrowser, verbose bool) (string, error) {
	if forceBrowser {
		return fetch.WithBrowser(ctx, url, fetch.RenderTimeout, verbose)
	}
	result, err := fetch.URL(ctx, url, nil)
	if err != nil {
		return "", err
	}
	if fetch.ShouldUseBrowser(result.HTML) {
		return fetch.WithBrowser(ctx, url, fetch.RenderTimeout, verbose)
	}
	return result.HTML, nil
}

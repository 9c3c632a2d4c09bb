// Package browser drives the Chrome session a web fill happens in. The
// window the applicant watches is the window that gets filled; this
// package never submits a form, it only writes into fields after the
// preview gate has passed.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	navigateTimeout = 60 * time.Second
	actionTimeout   = 20 * time.Second
	// settleDelay gives client-side frameworks time to build the form
	// after the document is ready.
	settleDelay = 3 * time.Second
)

// Options configures the browser session.
type Options struct {
	Headless bool
	Verbose  bool
}

// Session is one Chrome instance driven for the duration of a fill run.
type Session struct {
	ctx     context.Context
	cancels []context.CancelFunc
	verbose bool
}

// NewSession launches Chrome. The automation-control flags matter: job
// boards serve challenge pages to sessions that announce themselves as
// automated, so the session presents itself as a plain browser.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	flags := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("exclude-switches", "enable-automation"),
		chromedp.Flag("disable-infobars", true),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, flags...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc},
		verbose: opts.Verbose,
	}

	// Chrome launches lazily; run an empty task list so a missing
	// binary fails here instead of mid-run.
	if err := chromedp.Run(browserCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	return s, nil
}

// Close shuts the browser down.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

func (s *Session) run(timeout time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// Navigate opens url and waits for the page to settle. The webdriver
// flag is cleared afterwards the way the boards' own probes read it.
func (s *Session) Navigate(url string) error {
	err := s.run(navigateTimeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`, nil),
		chromedp.Sleep(settleDelay),
	)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// FormHTML snapshots the rendered page for field detection.
func (s *Session) FormHTML() (string, error) {
	var html string
	if err := s.run(actionTimeout, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}
	return html, nil
}

// CurrentURL reports where the session ended up after redirects.
func (s *Session) CurrentURL() (string, error) {
	var url string
	if err := s.run(actionTimeout, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("failed to read page location: %w", err)
	}
	return url, nil
}

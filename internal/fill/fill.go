// Package fill orchestrates a complete run: detection, matching,
// rendering, the preview gate, and (only after explicit approval)
// injection. It owns the order of operations the safety model depends
// on: nothing is written anywhere until the applicant has seen the full
// preview and said yes to it.
package fill

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/application-autofill/internal/db"
	"github.com/jonathan/application-autofill/internal/llm"
	"github.com/jonathan/application-autofill/internal/mapping"
	"github.com/jonathan/application-autofill/internal/match"
	"github.com/jonathan/application-autofill/internal/observability"
	"github.com/jonathan/application-autofill/internal/preview"
	"github.com/jonathan/application-autofill/internal/record"
	"github.com/jonathan/application-autofill/internal/types"
)

// Options holds everything a fill run needs. It is passed explicitly,
// never read from process-wide state, so tests can run the pipeline
// with exact configurations.
type Options struct {
	Target      string // URL for web runs; free-form description for screen runs
	RecordPath  string
	Passphrase  []byte
	MappingsDir string

	MinAcceptConfidence float64
	AIThreshold         float64
	KindMismatchPenalty float64
	AITimeoutSeconds    int
	AIParallelism       int

	APIKey      string
	DatabaseURL string
	UseBrowser  bool // force the headless render even when static HTML has controls
	DryRun      bool
	Unmask      bool
	Verbose     bool

	// Input and Output carry the approval prompt. Nil means stdin and
	// stdout.
	Input  io.Reader
	Output io.Writer
}

func (o *Options) input() io.Reader {
	if o.Input != nil {
		return o.Input
	}
	return os.Stdin
}

func (o *Options) output() io.Writer {
	if o.Output != nil {
		return o.Output
	}
	return os.Stdout
}

func (o *Options) matchOptions() match.Options {
	opts := match.DefaultOptions()
	if o.MinAcceptConfidence > 0 {
		opts.MinAcceptConfidence = o.MinAcceptConfidence
	}
	if o.AIThreshold > 0 {
		opts.AIThreshold = o.AIThreshold
	}
	if o.KindMismatchPenalty > 0 {
		opts.KindMismatchPenalty = o.KindMismatchPenalty
	}
	if o.AITimeoutSeconds > 0 {
		opts.AITimeout = time.Duration(o.AITimeoutSeconds) * time.Second
	}
	if o.AIParallelism > 0 {
		opts.AIParallelism = o.AIParallelism
	}
	return opts
}

// newEngine builds the matching engine, attaching the AI stage only
// when an API key is configured. A client that fails to construct is a
// warning, not an error: rule-only mode is always available.
func newEngine(ctx context.Context, opts *Options, out io.Writer) (*match.Engine, llm.Client, error) {
	var ai match.Matcher
	var client llm.Client
	if opts.APIKey != "" {
		c, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
		if err != nil {
			fmt.Fprintf(out, "Warning: AI matcher unavailable: %v\n", err)
		} else {
			client = c
			ai = match.NewLLMMatcher(c, opts.matchOptions().AITimeout)
		}
	}
	return match.NewEngine(ai, opts.matchOptions()), client, nil
}

// run is the shared state one fill run carries between stages.
type run struct {
	id      uuid.UUID
	opts    *Options
	printer *observability.Printer
	record  *record.PersonalRecord
	engine  *match.Engine
	client  llm.Client
	audit   *db.DB
	mode    string
}

// newRun loads the record, builds the engine, and opens the optional
// audit store. A SchemaViolation from the record store is the one fatal
// error; everything downstream degrades per field.
func newRun(ctx context.Context, opts *Options, mode string) (*run, error) {
	r := &run{
		id:      uuid.New(),
		opts:    opts,
		printer: observability.NewPrinter(opts.output()),
		mode:    mode,
	}

	store := record.NewStore(opts.RecordPath, opts.Passphrase)
	rec, err := store.Load()
	if err != nil {
		return nil, err
	}
	r.record = rec

	engine, client, err := newEngine(ctx, opts, opts.output())
	if err != nil {
		return nil, err
	}
	r.engine = engine
	r.client = client

	if opts.DatabaseURL != "" {
		database, err := db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Fprintf(opts.output(), "Warning: failed to connect to audit database: %v\n", err)
			fmt.Fprintf(opts.output(), "Continuing without audit persistence...\n")
		} else if err := database.EnsureSchema(ctx); err != nil {
			fmt.Fprintf(opts.output(), "Warning: audit schema unavailable: %v\n", err)
			database.Close()
		} else {
			r.audit = database
			if err := database.CreateRun(ctx, r.id, opts.Target, mode); err != nil {
				fmt.Fprintf(opts.output(), "Warning: %v\n", err)
			}
		}
	}

	return r, nil
}

func (r *run) close() {
	if r.client != nil {
		_ = r.client.Close()
	}
	if r.audit != nil {
		r.audit.Close()
	}
}

// matchFields resolves every field, letting a saved site mapping claim
// its fields before the engine runs. Results come back in detection
// order regardless of which path resolved each field.
func (r *run) matchFields(ctx context.Context, fields []types.FormField) []types.MatchResult {
	toMatch := fields
	var preResolved []types.MatchResult

	if r.opts.MappingsDir != "" {
		store := mapping.NewStore(r.opts.MappingsDir)
		m, err := store.Load(r.opts.Target)
		if err != nil {
			fmt.Fprintf(r.opts.output(), "Warning: ignoring saved mapping: %v\n", err)
		} else if m != nil {
			preResolved, toMatch = m.Resolve(fields)
			if r.opts.Verbose && len(preResolved) > 0 {
				fmt.Fprintf(r.opts.output(), "[VERBOSE] Saved mapping resolved %d of %d fields\n", len(preResolved), len(fields))
			}
		}
	}

	matched := r.engine.MatchFields(ctx, toMatch)
	return mergeResults(fields, preResolved, matched)
}

// mergeResults reorders results from both resolution paths back into
// detection order, one per field.
func mergeResults(fields []types.FormField, a, b []types.MatchResult) []types.MatchResult {
	byField := make(map[uuid.UUID]types.MatchResult, len(a)+len(b))
	for _, res := range a {
		byField[res.FieldID] = res
	}
	for _, res := range b {
		byField[res.FieldID] = res
	}

	out := make([]types.MatchResult, len(fields))
	for i, f := range fields {
		res, ok := byField[f.ID]
		if !ok {
			res = types.NewUnmatched(f.ID)
		}
		out[i] = res
	}
	return out
}

// confirm shows the original's two-option prompt and reports whether
// the applicant approved the preview.
func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Review the preview above. Nothing has been written yet.")
	fmt.Fprintln(out, "  1. Fill the fields")
	fmt.Fprintln(out, "  2. Cancel")
	fmt.Fprint(out, "Choice [2]: ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	return strings.TrimSpace(scanner.Text()) == "1"
}

// finish records the outcome in the audit store and prints the summary.
func (r *run) finish(ctx context.Context, p *preview.Preview, status, approvalJTI string, injected bool) {
	filled, unmatched, skipped := p.Counts()

	if r.audit != nil {
		if err := r.audit.SaveDecisions(ctx, db.DecisionsFromPreview(r.id, p.Entries)); err != nil {
			fmt.Fprintf(r.opts.output(), "Warning: %v\n", err)
		}
		if err := r.audit.CompleteRun(ctx, r.id, status, filled, unmatched, skipped, approvalJTI); err != nil {
			fmt.Fprintf(r.opts.output(), "Warning: %v\n", err)
		}
	}

	r.printer.PrintRunSummary(r.opts.Target, filled, unmatched, skipped, injected)
}

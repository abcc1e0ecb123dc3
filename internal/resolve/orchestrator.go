package resolve

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"sortd/internal/crawler"
	"sortd/internal/history"
	"sortd/internal/oracle"
	"sortd/internal/taxonomy"
)

// Statuses attached to resolution outcomes. The strings double as the
// labels written to the journal and the CSV report.
const (
	StatusSuggested = "AI suggested"
	StatusRefined   = "AI suggested → Refined"
	StatusCached    = "Cached"
	StatusFailed    = "Failed"
	StatusCancelled = "Cancelled"
)

// Outcome is the final result of resolving one file.
type Outcome struct {
	File      crawler.FileMeta
	Path      string // final destination, relative to the scan parent
	FirstPath string // first-pass result, before any refinement
	Status    string
	Hint      string
}

// Journal receives one line per protocol step, in completion order.
// Implementations must be safe for concurrent use.
type Journal interface {
	Record(source, hint, firstPath string, refinedPath *string, status string)
}

// Options tune one orchestrated scan.
type Options struct {
	Workers          int  // pool size; <= 0 uses DefaultWorkers
	Refine           bool // run the second, refinement pass
	IgnoreCache      bool // skip cache lookups for this run only
	ContextSignature bool // extend signatures with a context fingerprint
	Journal          Journal
}

// DefaultWorkers sizes the pool from the available processing units,
// with a floor of four.
func DefaultWorkers() int {
	if n := runtime.NumCPU(); n > 4 {
		return n
	}
	return 4
}

// Orchestrator drives the two-pass suggest/refine protocol for every
// file of a scan under a fixed-size worker pool.
type Orchestrator struct {
	session *Session
	oracle  oracle.Oracle
	opts    Options

	projectKind string
}

// NewOrchestrator creates an orchestrator over a session and an oracle.
func NewOrchestrator(session *Session, o oracle.Oracle, opts Options) *Orchestrator {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers()
	}
	return &Orchestrator{
		session:     session,
		oracle:      o,
		opts:        opts,
		projectKind: taxonomy.DetectProjectKind(session.snapshot.Root()),
	}
}

// Run resolves all files through the worker pool, invoking onDone for
// each result on the calling goroutine and returning every outcome.
// Results arrive in completion order, not input order.
func (o *Orchestrator) Run(ctx context.Context, files []crawler.FileMeta, onDone func(Outcome)) []Outcome {
	jobs := make(chan crawler.FileMeta)
	results := make(chan Outcome)

	var wg sync.WaitGroup
	for i := 0; i < o.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for meta := range jobs {
				results <- o.ResolveFile(ctx, meta)
			}
		}()
	}

	go func() {
		for _, meta := range files {
			jobs <- meta
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	outcomes := make([]Outcome, 0, len(files))
	for outcome := range results {
		outcomes = append(outcomes, outcome)
		if onDone != nil {
			onDone(outcome)
		}
	}
	return outcomes
}

// ResolveFile runs the two-pass protocol for a single file. Cancellation
// is observed at three checkpoints: on entry, before the first oracle
// call and between the passes. It never fails; the worst case is the
// sentinel path with a failure status.
func (o *Orchestrator) ResolveFile(ctx context.Context, meta crawler.FileMeta) Outcome {
	if o.session.Cancelled() {
		return Outcome{File: meta, Path: Sentinel, Status: StatusCancelled}
	}

	sig, contextDesc := o.identity(meta)
	hint := meta.Hint()

	// First pass, served from cache when possible. A hit is treated as
	// already refined and skips both oracle calls.
	if !o.opts.IgnoreCache {
		if rec, ok := o.session.store.Lookup(sig); ok {
			o.record(meta, hint, rec.Path, nil, StatusCached)
			return Outcome{File: meta, Path: rec.Path, FirstPath: rec.Path, Status: StatusCached, Hint: hint}
		}
	}

	if o.session.Cancelled() {
		return Outcome{File: meta, Path: Sentinel, Status: StatusCancelled, Hint: hint}
	}

	promptCtx := o.promptContext(meta, hint)
	status := StatusSuggested

	raw, err := o.oracle.Suggest(ctx, promptCtx)
	if err != nil || isErrorText(raw) {
		raw = ""
		status = StatusFailed
	}
	firstPath, _ := o.session.Resolve(meta.Name, raw)
	o.record(meta, hint, firstPath, nil, status)

	if o.session.Cancelled() {
		return Outcome{File: meta, Path: Sentinel, FirstPath: firstPath, Status: StatusCancelled, Hint: hint}
	}

	finalPath := firstPath
	if o.opts.Refine && status != StatusFailed {
		refinedRaw, rerr := o.oracle.Refine(ctx, promptCtx, firstPath)
		if rerr == nil && !isErrorText(refinedRaw) {
			// Keep the first-pass value, casing included, unless the
			// refinement produced a genuinely different usable path.
			if refined, ok := o.session.Resolve(meta.Name, refinedRaw); ok && !strings.EqualFold(refined, firstPath) {
				finalPath = refined
			}
		}
		status = StatusRefined
		o.record(meta, hint, firstPath, &finalPath, status)
	}

	rec := history.NewRecord(finalPath, meta.Path, contextDesc)
	if putErr := o.session.store.Put(sig, rec); putErr != nil {
		log.Printf("⚠️  failed to persist suggestion for %s: %v", meta.Name, putErr)
	}

	return Outcome{File: meta, Path: finalPath, FirstPath: firstPath, Status: status, Hint: hint}
}

// identity derives the cache key for a file, plus the human-readable
// context snapshot stored alongside the record.
func (o *Orchestrator) identity(meta crawler.FileMeta) (sig, contextDesc string) {
	if !o.opts.ContextSignature {
		return meta.Signature(), ""
	}
	category := crawler.Categorize(meta.Path)
	desc := fmt.Sprintf("%s|%s|%s", o.projectKind, category, filepath.Base(filepath.Dir(meta.Path)))
	return meta.ContextSignature(o.projectKind, category), desc
}

func (o *Orchestrator) promptContext(meta crawler.FileMeta, hint string) oracle.PromptContext {
	return oracle.PromptContext{
		RootName:       o.session.snapshot.RootName(),
		FileName:       meta.Name,
		Hint:           hint,
		TaxonomySample: o.session.snapshot.Sample(12, 8),
		Neighbors:      meta.NeighborContext(12),
		ProjectKind:    o.projectKind,
	}
}

func (o *Orchestrator) record(meta crawler.FileMeta, hint, firstPath string, refinedPath *string, status string) {
	if o.opts.Journal != nil {
		o.opts.Journal.Record(meta.Path, hint, firstPath, refinedPath, status)
	}
}

// isErrorText spots providers that surface failures in the response
// body; such text is never parsed as a path.
func isErrorText(s string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), "error:")
}

package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/quantronics/arxiv-digest/internal/digest"
	"github.com/quantronics/arxiv-digest/internal/fetcher"
	"github.com/quantronics/arxiv-digest/internal/keywords"
	"github.com/quantronics/arxiv-digest/internal/listing"
	"github.com/quantronics/arxiv-digest/internal/publisher"
	"github.com/quantronics/arxiv-digest/internal/scoring"
	"github.com/quantronics/arxiv-digest/internal/storage"
)

// Outcome describes how a run ended.
type Outcome int

const (
	// Published means the digest was written and handed to the publishers.
	Published Outcome = iota
	// SkippedNoPublishing means the target day is a non-publishing day.
	SkippedNoPublishing
	// SkippedNoListing means the fetched page had no listing section;
	// the raw page was archived instead.
	SkippedNoListing
)

func (o Outcome) String() string {
	switch o {
	case Published:
		return "published"
	case SkippedNoPublishing:
		return "skipped (no publishing day)"
	case SkippedNoListing:
		return "skipped (no listing found)"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result summarizes one completed run.
type Result struct {
	Outcome    Outcome
	Considered int
	OutputPath string
}

// KeywordSource supplies fresh keyword tables for each run.
type KeywordSource interface {
	Load() (*keywords.Tables, error)
}

// Runner orchestrates the load -> fetch -> parse -> score -> format ->
// persist -> deliver pipeline. One run is fully synchronous.
type Runner struct {
	keywords        KeywordSource
	fetcher         fetcher.Fetcher
	store           *storage.Store
	publishers      []publisher.Publisher
	threshold       int
	includeAbstract bool
	skipDays        map[time.Weekday]bool
}

func New(kw KeywordSource, f fetcher.Fetcher, store *storage.Store, pubs []publisher.Publisher, threshold int, includeAbstract bool, skipDays map[time.Weekday]bool) *Runner {
	return &Runner{
		keywords:        kw,
		fetcher:         f,
		store:           store,
		publishers:      pubs,
		threshold:       threshold,
		includeAbstract: includeAbstract,
		skipDays:        skipDays,
	}
}

// Run executes the full pipeline for the given day. Delivery failures are
// logged and do not fail the run; every other error aborts the current
// invocation only.
func (r *Runner) Run(ctx context.Context, day time.Time) (*Result, error) {
	if r.skipDays[day.Weekday()] {
		log.Printf("No listing published on %s, skipping run", day.Weekday())
		return &Result{Outcome: SkippedNoPublishing}, nil
	}

	log.Printf("Starting digest run for %s", day.Format("2006-01-02"))

	// Tables are reloaded every run so keyword edits apply without restart.
	tables, err := r.keywords.Load()
	if err != nil {
		return nil, fmt.Errorf("runner: load keywords: %w", err)
	}

	log.Println("Fetching listing page...")
	page, err := r.fetcher.Fetch(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("runner: fetch listing: %w", err)
	}

	records, err := listing.Parse(page)
	if errors.Is(err, listing.ErrNoListing) {
		path, werr := r.store.WriteErrorPage(day, page)
		if werr != nil {
			log.Printf("WARNING: no listing found and archiving the page failed: %v", werr)
			return &Result{Outcome: SkippedNoListing}, nil
		}
		log.Printf("WARNING: no listing found on the fetched page, raw page saved to %s", path)
		return &Result{Outcome: SkippedNoListing, OutputPath: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("runner: parse listing: %w", err)
	}

	d := digest.New(day)
	for _, rec := range records {
		scored := scoring.Score(rec, tables.Keywords, tables.Authors, r.threshold)
		d.Considered++
		if scored.Relevant {
			d.Add(scored)
		}
	}

	path, err := r.store.WriteDigest(day, d.Render(digest.Markdown, r.includeAbstract))
	if err != nil {
		return nil, fmt.Errorf("runner: persist digest: %w", err)
	}
	log.Printf("Considered %d papers, %d relevant, digest saved to %s", d.Considered, len(d.Papers), path)

	for _, pub := range r.publishers {
		if err := pub.Publish(ctx, d); err != nil {
			log.Printf("WARNING: publish via %T failed: %v", pub, err)
		}
	}

	return &Result{Outcome: Published, Considered: d.Considered, OutputPath: path}, nil
}

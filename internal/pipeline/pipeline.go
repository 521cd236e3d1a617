package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pfrederiksen/clubmap/internal/club"
	"github.com/pfrederiksen/clubmap/internal/discovery"
	"github.com/pfrederiksen/clubmap/internal/extract"
	"github.com/pfrederiksen/clubmap/internal/geocode"
	"github.com/pfrederiksen/clubmap/internal/logger"
	"github.com/pfrederiksen/clubmap/internal/pace"
	"github.com/pfrederiksen/clubmap/internal/registry"
	"github.com/pfrederiksen/clubmap/internal/scraper"
)

// Default pacing
const (
	DefaultPageDelay  = 3 * time.Second
	DefaultRetryDelay = 2 * time.Second
	DefaultAttempts   = 3
)

// Store loads and saves the registry
type Store interface {
	Load() (*registry.Registry, error)
	Save(reg *registry.Registry) error
}

// Locator resolves a record's coordinates
type Locator interface {
	LocateRecord(ctx context.Context, rec *club.Record) (geocode.Result, error)
}

// Options controls a run
type Options struct {
	// PageDelay is the pause between the end of one request to the site and
	// the start of the next. Zero disables it.
	PageDelay time.Duration
	// RetryDelay separates fetch attempts of one page
	RetryDelay time.Duration
	// Attempts bounds fetch attempts per page; values below 1 mean 1
	Attempts int
	// MaxClubs caps the club links taken from each source; 0 is no cap
	MaxClubs int
	// Extract is passed to the field extractor
	Extract extract.Options
}

// DefaultOptions returns the production pacing
func DefaultOptions() Options {
	return Options{
		PageDelay:  DefaultPageDelay,
		RetryDelay: DefaultRetryDelay,
		Attempts:   DefaultAttempts,
	}
}

// Pipeline runs sources through discovery, extraction, geocoding and
// reconciliation
type Pipeline struct {
	fetcher scraper.Fetcher
	locator Locator
	store   Store
	opts    Options
	gap     *pace.Gap
}

// New creates a Pipeline. A nil locator leaves coordinates unset.
func New(fetcher scraper.Fetcher, locator Locator, store Store, opts Options) *Pipeline {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	return &Pipeline{
		fetcher: fetcher,
		locator: locator,
		store:   store,
		opts:    opts,
		gap:     pace.NewGap(opts.PageDelay),
	}
}

// run holds the accumulators of one Run call
type run struct {
	registry *registry.Registry
	summary  *Summary
	seen     map[string]bool // ids extracted during this run
}

// Run processes sources in order. It returns the summary together with the
// first error that stopped the run: a persistence failure or ctx's error.
// Page-level failures are reported in the summary only.
func (p *Pipeline) Run(ctx context.Context, sources []Source) (*Summary, error) {
	reg, err := p.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}

	r := &run{
		registry: reg,
		summary:  &Summary{},
		seen:     make(map[string]bool),
	}

	logger.Info("Starting run", logger.Fields{
		"sources":  len(sources),
		"existing": reg.Len(),
	})

	var runErr error
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		if err := p.runSource(ctx, r, src); err != nil {
			runErr = err
			break
		}

		if err := p.checkpoint(r); err != nil {
			return p.finish(r), err
		}
	}

	if runErr != nil && !isCancel(runErr) {
		return p.finish(r), runErr
	}

	// final flush, also on interrupt
	if err := p.checkpoint(r); err != nil {
		return p.finish(r), err
	}

	summary := p.finish(r)
	logger.LogMetrics("Run metrics")
	if runErr != nil {
		summary.Interrupted = true
		logger.Warn("Run interrupted, registry flushed", logger.Fields{"persisted": summary.Persisted})
		return summary, runErr
	}

	logger.Info("Run complete", logger.Fields{
		"discovered": summary.Discovered,
		"extracted":  summary.Extracted,
		"added":      summary.Added,
		"persisted":  summary.Persisted,
	})
	return summary, nil
}

// Discover fetches listing pages and returns their club links, without
// visiting any club page. Links are deduplicated across pages by identifier.
func (p *Pipeline) Discover(ctx context.Context, listingPages []string) ([]discovery.Link, error) {
	all := discovery.NewIndex()
	for _, page := range listingPages {
		idx, err := p.discoverListing(ctx, page)
		if err != nil {
			if isCancel(err) {
				return all.Links(), err
			}
			logger.Error("Listing page failed", logger.Fields{"url": page}, err)
			continue
		}
		for _, l := range idx.Links() {
			all.Add(l)
		}
	}
	return all.Links(), nil
}

func (p *Pipeline) runSource(ctx context.Context, r *run, src Source) error {
	var idx *discovery.Index
	if src.IsListing() {
		var err error
		idx, err = p.discoverListing(ctx, src.ListingURL)
		if err != nil {
			if isCancel(err) {
				return err
			}
			r.summary.ListingFailures++
			logger.Error("Listing page failed", logger.Fields{"url": src.ListingURL}, err)
			return nil
		}
	} else {
		idx = clubLinks(src.ClubURLs, p.opts.MaxClubs)
	}

	links := idx.Links()
	r.summary.Discovered += len(links)
	logger.Info("Processing source", logger.Fields{"source": src.Name, "clubs": len(links)})

	for i, link := range links {
		if err := ctx.Err(); err != nil {
			return err
		}

		logger.Info("Processing club page", logger.Fields{
			"source": src.Name,
			"index":  i + 1,
			"total":  len(links),
			"url":    link.URL,
		})

		report, err := p.processPage(ctx, r, src.Name, link)
		if report != nil {
			r.summary.record(report)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) discoverListing(ctx context.Context, url string) (*discovery.Index, error) {
	body, _, err := p.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	idx, err := discovery.DiscoverHTML(body, url, p.opts.MaxClubs)
	if err != nil {
		return nil, fmt.Errorf("discovering %s: %w", url, err)
	}
	logger.Debug("Discovered club links", logger.Fields{"url": url, "links": idx.Len()})
	return idx, nil
}

// processPage walks one club page through the state machine. The error is
// non-nil only when the run must stop.
func (p *Pipeline) processPage(ctx context.Context, r *run, source string, link discovery.Link) (*PageReport, error) {
	start := time.Now()
	report := newReport(link.URL, source)
	report.ID = link.ID
	defer func() {
		report.Duration = time.Since(start)
		logger.RecordTiming("page.process", report.Duration)
	}()

	report.advance(StateFetching)
	body, attempts, err := p.fetch(ctx, link.URL)
	report.Attempts = attempts
	if err != nil {
		if isCancel(err) {
			return nil, err
		}
		report.fail(StateFetchFailed, err)
		logger.Error("Club page fetch failed", logger.Fields{"url": link.URL, "attempts": attempts}, err)
		return report, nil
	}
	report.advance(StateParsed)

	rec, err := extract.ExtractHTML(body, link.URL, p.opts.Extract)
	if err != nil {
		report.fail(StateExtractFailed, err)
		logger.IncrCounter("pages.extract_failed")
		if errors.Is(err, extract.ErrNoName) {
			logger.Warn("No club name found", logger.Fields{"url": link.URL})
		} else {
			logger.Error("Club page extraction failed", logger.Fields{"url": link.URL}, err)
		}
		return report, nil
	}
	report.advance(StateExtracted)
	report.ID = rec.ID
	report.Name = rec.Name
	r.summary.Extracted++
	r.seen[rec.ID] = true

	known := r.registry.Contains(rec.ID)
	if !known && p.locator != nil {
		res, err := p.locator.LocateRecord(ctx, rec)
		if err != nil {
			return nil, err
		}
		if res.Found() {
			rec.Coordinates = res.Coordinates
			report.Located = true
		} else {
			r.summary.GeocodeMisses++
			logger.Info("No coordinates found", logger.Fields{"url": link.URL, "club": rec.Name})
		}
	}
	report.advance(StateGeocoded)

	merged := registry.Merge(r.registry, []*club.Record{rec})
	r.registry = merged.Registry
	report.advance(StateReconciled)
	if len(merged.Added) > 0 {
		report.Outcome = OutcomeAdded
		r.summary.Added++
	} else {
		report.Outcome = OutcomeKnown
	}

	logger.Debug("Club page reconciled", logger.Fields{
		"url":     link.URL,
		"id":      rec.ID,
		"club":    rec.Name,
		"outcome": string(report.Outcome),
	})
	return report, nil
}

func (p *Pipeline) checkpoint(r *run) error {
	logger.SetGauge("registry.size", float64(r.registry.Len()))
	if err := p.store.Save(r.registry); err != nil {
		logger.Error("Saving registry failed", logger.Fields{"records": r.registry.Len()}, err)
		return err
	}
	logger.Debug("Registry saved", logger.Fields{"records": r.registry.Len()})
	return nil
}

func (p *Pipeline) finish(r *run) *Summary {
	s := r.summary
	s.Persisted = r.registry.Len()
	s.Saved = 0
	for id := range r.seen {
		if r.registry.Contains(id) {
			s.Saved++
		}
	}
	return s
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

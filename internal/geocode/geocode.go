package geocode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/clubmap/internal/club"
	"github.com/pfrederiksen/clubmap/internal/logger"
	"github.com/pfrederiksen/clubmap/internal/pace"
)

const (
	DefaultCountry = "Portugal"
	// DefaultDelay is the minimum spacing between provider calls
	DefaultDelay = 1 * time.Second
)

// Provider looks up one free-text query. A nil result with a nil error
// means the query matched nothing.
type Provider interface {
	Lookup(ctx context.Context, query string) (*club.Coordinates, error)
}

// Attempt records one candidate query and its outcome
type Attempt struct {
	Query string
	Found bool
	Err   error
}

// Result is the outcome of locating one club
type Result struct {
	Coordinates *club.Coordinates
	Query       string // the query that resolved, if any
	Attempts    []Attempt
}

// Found reports whether any candidate resolved
func (r Result) Found() bool {
	return r.Coordinates != nil
}

// Options configures a Geocoder
type Options struct {
	Country string
	Delay   time.Duration
	// NameFallback adds "<club name> FC" as a last candidate
	NameFallback bool
}

// Geocoder resolves clues through a Provider with pacing and caching
type Geocoder struct {
	provider Provider
	pacer    *pace.Pacer
	cache    *Cache
	opts     Options
}

// New creates a Geocoder. A zero Delay uses DefaultDelay; negative disables
// pacing and is only meant for tests.
func New(provider Provider, opts Options) *Geocoder {
	if opts.Country == "" {
		opts.Country = DefaultCountry
	}
	delay := opts.Delay
	if delay == 0 {
		delay = DefaultDelay
	}
	return &Geocoder{
		provider: provider,
		pacer:    pace.New(delay),
		cache:    NewCache(),
		opts:     opts,
	}
}

// Clues returns the geocoding clues for a record in priority order:
// venue, then address, then (optionally) the club name
func (g *Geocoder) Clues(rec *club.Record) []string {
	var clues []string
	if rec.Venue != "" {
		clues = append(clues, rec.Venue)
	}
	if rec.Address != "" {
		clues = append(clues, rec.Address)
	}
	if g.opts.NameFallback && rec.Name != "" {
		clues = append(clues, rec.Name+" FC")
	}
	return clues
}

// Queries builds the ordered candidate queries for clues. Blank and
// repeated candidates are dropped.
func (g *Geocoder) Queries(clues []string) []string {
	seen := make(map[string]bool)
	queries := make([]string, 0, len(clues))
	for _, clue := range clues {
		clue = strings.Join(strings.Fields(clue), " ")
		if clue == "" {
			continue
		}
		q := fmt.Sprintf("%s, %s", clue, g.opts.Country)
		key := strings.ToLower(q)
		if seen[key] {
			continue
		}
		seen[key] = true
		queries = append(queries, q)
	}
	return queries
}

// Locate tries each candidate query in order and stops at the first hit.
// Only context cancellation is returned as an error; every other failure
// is recorded in Result.Attempts.
func (g *Geocoder) Locate(ctx context.Context, clues []string) (Result, error) {
	var result Result

	for _, q := range g.Queries(clues) {
		coords, err := g.lookup(ctx, q)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}

		result.Attempts = append(result.Attempts, Attempt{Query: q, Found: coords != nil, Err: err})
		if err != nil {
			logger.Warn("Geocoding query failed", logger.Fields{"query": q, "error": err.Error()})
			continue
		}
		if coords != nil {
			result.Coordinates = coords
			result.Query = q
			return result, nil
		}
	}

	if len(result.Attempts) > 0 {
		logger.IncrCounter("geocode.misses")
	}
	return result, nil
}

// LocateRecord geocodes a record from its own clues
func (g *Geocoder) LocateRecord(ctx context.Context, rec *club.Record) (Result, error) {
	return g.Locate(ctx, g.Clues(rec))
}

// lookup answers from the cache or makes one paced provider call.
// Failed calls are not cached so a later record may retry the query.
func (g *Geocoder) lookup(ctx context.Context, query string) (*club.Coordinates, error) {
	if coords, ok := g.cache.Get(query); ok {
		return coords, nil
	}

	if err := g.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	logger.IncrCounter("geocode.calls")
	start := time.Now()
	coords, err := g.provider.Lookup(ctx, query)
	logger.RecordTiming("geocode.lookup", time.Since(start))
	if err != nil {
		return nil, err
	}

	g.cache.Set(query, coords)
	return coords, nil
}

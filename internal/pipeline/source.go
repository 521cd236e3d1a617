package pipeline

import (
	"github.com/pfrederiksen/clubmap/internal/club"
	"github.com/pfrederiksen/clubmap/internal/discovery"
)

// SeedSourceName names the source holding fixed club URLs
const SeedSourceName = "seed"

// Source is one unit of work checkpointed as a whole. A listing source is
// fetched and its club links discovered; a club-list source names its club
// pages directly.
type Source struct {
	Name       string
	ListingURL string
	ClubURLs   []string
}

// IsListing reports whether the source needs discovery
func (s Source) IsListing() bool {
	return s.ListingURL != ""
}

// Sources builds one source per listing page followed by a single source
// for the seed club URLs, if any
func Sources(listingPages, seedURLs []string) []Source {
	sources := make([]Source, 0, len(listingPages)+1)
	for _, page := range listingPages {
		sources = append(sources, Source{Name: page, ListingURL: page})
	}
	if len(seedURLs) > 0 {
		sources = append(sources, Source{Name: SeedSourceName, ClubURLs: seedURLs})
	}
	return sources
}

// clubLinks indexes a source's direct club URLs, first URL per identifier
// winning
func clubLinks(urls []string, limit int) *discovery.Index {
	idx := discovery.NewIndex()
	for _, u := range urls {
		if limit > 0 && idx.Len() >= limit {
			break
		}
		if u == "" {
			continue
		}
		idx.Add(discovery.Link{ID: club.IDFor(u), URL: u})
	}
	return idx
}

// Package registry holds the deduplicated collection of club records and
// merges newly extracted batches into it.
//
// The registry is append-only: a record is accepted only when its identifier
// is not already present, so stored records are never overwritten or
// removed. Existing entries are always considered before new ones, which
// makes "first occurrence wins" well defined across runs.
package registry

import "github.com/pfrederiksen/clubmap/internal/club"

// Registry is an ordered, identifier-unique collection of records
type Registry struct {
	records []*club.Record
	byID    map[string]int
}

// New creates an empty registry
func New() *Registry {
	return &Registry{byID: make(map[string]int)}
}

// FromRecords builds a registry from stored records. Later duplicates of an
// identifier are dropped.
func FromRecords(records []*club.Record) *Registry {
	r := New()
	for _, rec := range records {
		r.add(rec)
	}
	return r
}

// add appends rec unless its identifier is taken or empty
func (r *Registry) add(rec *club.Record) bool {
	if rec == nil || rec.ID == "" {
		return false
	}
	if _, exists := r.byID[rec.ID]; exists {
		return false
	}
	r.byID[rec.ID] = len(r.records)
	r.records = append(r.records, rec)
	return true
}

// Contains reports whether an identifier is stored
func (r *Registry) Contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Get returns the stored record for an identifier
func (r *Registry) Get(id string) (*club.Record, bool) {
	i, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return r.records[i], true
}

// Records returns the records in registry order
func (r *Registry) Records() []*club.Record {
	return append([]*club.Record(nil), r.records...)
}

// Len returns the number of records
func (r *Registry) Len() int {
	return len(r.records)
}

// MergeResult describes the outcome of a merge
type MergeResult struct {
	Registry *Registry
	Added    []*club.Record
	Dropped  []*club.Record // identifier already present
}

// Merge returns a new registry holding every existing record followed by
// the batch records whose identifiers were not seen before. Neither input
// is modified. Nil batch entries (failed extractions) are skipped.
func Merge(existing *Registry, batch []*club.Record) MergeResult {
	merged := New()
	if existing != nil {
		for _, rec := range existing.records {
			merged.add(rec)
		}
	}

	result := MergeResult{Registry: merged}
	for _, rec := range batch {
		if rec == nil {
			continue
		}
		if merged.add(rec.Clone()) {
			result.Added = append(result.Added, rec)
		} else {
			result.Dropped = append(result.Dropped, rec)
		}
	}
	return result
}

package pipeline

import (
	"fmt"

	"github.com/pfrederiksen/clubmap/internal/club"
	"github.com/pfrederiksen/clubmap/internal/logger"
	"github.com/pfrederiksen/clubmap/internal/registry"
)

// RunFixture reconciles a fixed record set into the stored registry and
// saves it, without fetching or geocoding anything
func RunFixture(store Store, records []*club.Record) (*Summary, error) {
	reg, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}

	summary := &Summary{Discovered: len(records)}
	batch := make([]*club.Record, 0, len(records))
	for _, rec := range records {
		report := newReport(rec.SourceURL, "fixture")
		report.ID = rec.ID
		report.Name = rec.Name
		report.advance(StateFetching)
		report.advance(StateParsed)
		report.advance(StateExtracted)
		report.advance(StateGeocoded)
		report.advance(StateReconciled)
		report.Located = rec.HasCoordinates()
		if reg.Contains(rec.ID) {
			report.Outcome = OutcomeKnown
		} else {
			report.Outcome = OutcomeAdded
		}
		summary.record(report)
		batch = append(batch, rec)
	}
	summary.Extracted = len(batch)

	merged := registry.Merge(reg, batch)
	logger.SetGauge("registry.size", float64(merged.Registry.Len()))
	if err := store.Save(merged.Registry); err != nil {
		return summary, err
	}

	summary.Added = len(merged.Added)
	summary.Persisted = merged.Registry.Len()
	for _, rec := range batch {
		if merged.Registry.Contains(rec.ID) {
			summary.Saved++
		}
	}

	logger.Info("Fixture saved", logger.Fields{
		"saved":     summary.Saved,
		"added":     summary.Added,
		"persisted": summary.Persisted,
	})
	logger.LogMetrics("Run metrics")
	return summary, nil
}

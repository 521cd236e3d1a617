package fixture

import (
	"testing"

	"github.com/pfrederiksen/clubmap/internal/club"
)

func TestRecords(t *testing.T) {
	records := Records()
	if len(records) != 8 {
		t.Fatalf("Records() returned %d records, want 8", len(records))
	}

	seen := make(map[string]bool)
	for _, rec := range records {
		if rec.ID == "" || rec.Name == "" {
			t.Errorf("record missing id or name: %+v", rec)
		}
		if seen[rec.ID] {
			t.Errorf("duplicate id %q", rec.ID)
		}
		seen[rec.ID] = true

		if got := club.IDFor(rec.SourceURL); got != rec.ID {
			t.Errorf("IDFor(%q) = %q, want %q", rec.SourceURL, got, rec.ID)
		}
	}
}

func TestRecords_Fresh(t *testing.T) {
	a := Records()
	a[0].Name = "changed"

	if b := Records(); b[0].Name == "changed" {
		t.Error("Records() should return a new set on every call")
	}
}

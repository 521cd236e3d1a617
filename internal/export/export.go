// Package export renders the registry as a GeoJSON FeatureCollection for
// the map front-end. Only records with coordinates become features.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pfrederiksen/clubmap/internal/club"
)

// FeatureCollection is a GeoJSON feature collection
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one GeoJSON point feature
type Feature struct {
	Type       string     `json:"type"`
	ID         string     `json:"id"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry is a GeoJSON point; coordinates are [longitude, latitude]
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Properties are the popup fields shown for each club
type Properties struct {
	Club    string `json:"club"`
	Stadium string `json:"stadium,omitempty"`
	Logo    string `json:"logo,omitempty"`
	URL     string `json:"url"`
}

// Build converts records into a feature collection, keeping registry order
func Build(records []*club.Record) FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: []Feature{},
	}

	for _, rec := range records {
		if rec == nil || !rec.HasCoordinates() {
			continue
		}
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			ID:   rec.ID,
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: [2]float64{rec.Coordinates.Longitude, rec.Coordinates.Latitude},
			},
			Properties: Properties{
				Club:    rec.Name,
				Stadium: rec.Venue,
				Logo:    rec.Crest,
				URL:     rec.SourceURL,
			},
		})
	}

	return fc
}

// Write encodes the feature collection of records to w
func Write(w io.Writer, records []*club.Record) (int, error) {
	fc := Build(records)

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(fc); err != nil {
		return 0, fmt.Errorf("encoding geojson: %w", err)
	}
	return len(fc.Features), nil
}

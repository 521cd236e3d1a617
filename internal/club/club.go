package club

import "strings"

// MaxKits is the maximum number of kit variants stored per club
const MaxKits = 5

// KitType classifies a kit image
type KitType string

const (
	KitHome      KitType = "home"
	KitAway      KitType = "away"
	KitAlternate KitType = "alternate"
	KitUnknown   KitType = "unknown"
)

// Kit represents one kit (equipment) image found on a club page
type Kit struct {
	Type  KitType `json:"type"`
	Image string  `json:"image"`
	Alt   string  `json:"alt"`
}

// Coordinates is an approximate geographic position
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Record represents one club in the registry
type Record struct {
	ID          string
	Name        string
	SourceURL   string
	Crest       string
	Venue       string
	Address     string
	Coordinates *Coordinates
	Kits        []Kit
}

// HasCoordinates reports whether the record was geocoded
func (r *Record) HasCoordinates() bool {
	return r != nil && r.Coordinates != nil
}

// Clone returns a deep copy of the record
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	if r.Coordinates != nil {
		coords := *r.Coordinates
		c.Coordinates = &coords
	}
	if r.Kits != nil {
		c.Kits = append([]Kit(nil), r.Kits...)
	}
	return &c
}

// DedupeKits removes exact (type, image, alt) duplicates and caps the list at
// MaxKits, keeping discovery order
func DedupeKits(kits []Kit) []Kit {
	seen := make(map[Kit]bool)
	out := make([]Kit, 0, len(kits))
	for _, k := range kits {
		k.Image = strings.TrimSpace(k.Image)
		if k.Image == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
		if len(out) == MaxKits {
			break
		}
	}
	return out
}

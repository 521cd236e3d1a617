package club

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// recordJSON is the on-disk shape of a Record. Field names follow the
// clubes.json files consumed by the map front-end.
type recordJSON struct {
	ID        string   `json:"id"`
	Club      string   `json:"club"`
	Stadium   *string  `json:"stadium"`
	Logo      *string  `json:"logo"`
	Kits      []Kit    `json:"equipamentos"`
	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	URL       string   `json:"url"`
}

// MarshalJSON encodes optional fields as null when empty
func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{
		ID:      r.ID,
		Club:    r.Name,
		Stadium: optional(r.Venue),
		Logo:    optional(r.Crest),
		Kits:    r.Kits,
		Address: optional(r.Address),
		URL:     r.SourceURL,
	}
	if out.Kits == nil {
		out.Kits = []Kit{}
	}
	if r.Coordinates != nil {
		lat, lon := r.Coordinates.Latitude, r.Coordinates.Longitude
		out.Latitude = &lat
		out.Longitude = &lon
	}

	// URLs keep their & unescaped
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes a record, treating null optional fields as empty.
// A record is only given coordinates when both latitude and longitude are set.
// Registries written without ids get one derived from the source URL.
func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.ID == "" {
		if in.URL == "" {
			return fmt.Errorf("record without id or url (club %q)", in.Club)
		}
		in.ID = IDFor(in.URL)
	}

	*r = Record{
		ID:        in.ID,
		Name:      in.Club,
		SourceURL: in.URL,
		Crest:     deref(in.Logo),
		Venue:     deref(in.Stadium),
		Address:   deref(in.Address),
		Kits:      in.Kits,
	}
	if in.Latitude != nil && in.Longitude != nil {
		r.Coordinates = &Coordinates{Latitude: *in.Latitude, Longitude: *in.Longitude}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

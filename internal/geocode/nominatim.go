package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pfrederiksen/clubmap/internal/club"
)

const (
	NominatimURL       = "https://nominatim.openstreetmap.org"
	NominatimUserAgent = "clubmap/1.0 (github.com/pfrederiksen/clubmap)"
	NominatimTimeout   = 10 * time.Second
)

// Nominatim is a Provider backed by the OpenStreetMap Nominatim search API
type Nominatim struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatim creates a Nominatim client. Empty arguments use the public
// endpoint and the default user agent.
func NewNominatim(baseURL, userAgent string) *Nominatim {
	if baseURL == "" {
		baseURL = NominatimURL
	}
	if userAgent == "" {
		userAgent = NominatimUserAgent
	}
	return &Nominatim{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: NominatimTimeout,
		},
	}
}

// place is one entry of a Nominatim search response. Coordinates are
// returned as strings.
type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Lookup searches for a free-text query and returns the best match
func (n *Nominatim) Lookup(ctx context.Context, query string) (*club.Coordinates, error) {
	// Build query parameters
	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "jsonv2")
	params.Add("limit", "1")

	reqURL := fmt.Sprintf("%s/search?%s", n.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Nominatim's usage policy requires an identifying user agent
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept-Language", "pt-PT,pt;q=0.9")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude %q: %w", places[0].Lon, err)
	}

	return &club.Coordinates{Latitude: lat, Longitude: lon}, nil
}

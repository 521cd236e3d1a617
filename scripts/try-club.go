package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/clubmap/internal/extract"
	"github.com/pfrederiksen/clubmap/internal/geocode"
	"github.com/pfrederiksen/clubmap/internal/scraper"
)

// Fetches one club page, extracts it and geocodes it, printing the record
// as it would be stored. Usage: go run ./scripts/try-club.go <club page url>
func main() {
	url := "https://www.zerozero.pt/equipa/torreense/2178"
	if len(os.Args) > 1 {
		url = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	body, err := scraper.New().Fetch(ctx, url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching page: %v\n", err)
		os.Exit(1)
	}

	rec, err := extract.ExtractHTML(body, url, extract.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting club: %v\n", err)
		os.Exit(1)
	}

	gc := geocode.New(geocode.NewNominatim(geocode.NominatimURL, geocode.NominatimUserAgent), geocode.Options{})
	res, err := gc.LocateRecord(ctx, rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error geocoding: %v\n", err)
		os.Exit(1)
	}
	rec.Coordinates = res.Coordinates
	for _, a := range res.Attempts {
		fmt.Fprintf(os.Stderr, "geocode %q found=%v\n", a.Query, a.Found)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(rec); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding record: %v\n", err)
		os.Exit(1)
	}
}

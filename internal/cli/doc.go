// Package cli implements the command-line interface for clubmap.
//
// The cli package provides the Cobra-based CLI: the root command runs the
// scrape pipeline (or the network-free fixture mode) and reports a summary
// as text or JSON, discover writes the clubs found on listing pages to a
// seed list, and export renders the stored registry as GeoJSON for the map
// front-end. It wires config, scraper, geocode, storage and pipeline
// together and maps run outcomes to exit codes.
package cli

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/clubmap/internal/export"
	"github.com/pfrederiksen/clubmap/internal/logger"
	"github.com/pfrederiksen/clubmap/internal/pipeline"
	"github.com/pfrederiksen/clubmap/internal/storage"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	RanAt    time.Time `json:"ran_at"`
	Mode     string    `json:"mode"`
	Registry string    `json:"registry"`
	*pipeline.Summary
	Metrics *logger.MetricsSnapshot `json:"metrics,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	if result.RanAt.IsZero() {
		result.RanAt = time.Now().UTC()
	}
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	s := result.Summary

	if s.Interrupted {
		fmt.Fprintln(w, "Interrupted. Progress so far was saved.")
	}

	fmt.Fprintf(w, "Discovered:  %d club pages\n", s.Discovered)
	fmt.Fprintf(w, "Extracted:   %d clubs\n", s.Extracted)
	fmt.Fprintf(w, "Saved:       %d clubs (%d new)\n", s.Saved, s.Added)
	fmt.Fprintf(w, "Registry:    %d clubs in %s\n", s.Persisted, result.Registry)

	if s.FetchFailures+s.ExtractFailures+s.GeocodeMisses+s.ListingFailures > 0 {
		fmt.Fprintf(w, "Problems:    %d fetch, %d extraction, %d without coordinates",
			s.FetchFailures, s.ExtractFailures, s.GeocodeMisses)
		if s.ListingFailures > 0 {
			fmt.Fprintf(w, ", %d listing pages", s.ListingFailures)
		}
		fmt.Fprintln(w)
	}

	if verbose {
		if len(s.Pages) > 0 {
			fmt.Fprintln(w, "\nPages:")
		}
		for _, r := range s.Pages {
			fmt.Fprintf(w, "  %-14s %s\n", r.State(), r.URL)
			if r.Name != "" {
				fmt.Fprintf(w, "       Club: %s (id %s)\n", r.Name, r.ID)
			}
			if r.Located {
				fmt.Fprintln(w, "       Located: yes")
			}
			if r.Error != "" {
				fmt.Fprintf(w, "       Error: %s\n", r.Error)
			}
		}
		return nil
	}

	if len(s.Failed) > 0 {
		fmt.Fprintln(w, "\nFailed pages:")
		for _, r := range s.Pages {
			if r.Outcome == pipeline.OutcomeFailed {
				fmt.Fprintf(w, "  %-14s %s\n", r.State(), r.URL)
			}
		}
	}

	return nil
}

// exportRegistry writes the registry at path as GeoJSON to output
func exportRegistry(cmd *cobra.Command, path, output string) error {
	store, err := storage.New(path)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	reg, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading registry: %w", err)
	}

	w := cmd.OutOrStdout()
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	n, err := export.Write(w, reg.Records())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d of %d clubs\n", n, reg.Len())
	return nil
}

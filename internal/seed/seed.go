// Package seed reads and writes the club seed list, a CSV file with a
// display name column (nome) and a club page URL column (url).
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column names of the seed list header
const (
	NameColumn = "nome"
	URLColumn  = "url"
)

// ErrMissingURLColumn is returned when the header has no url column
var ErrMissingURLColumn = errors.New("seed list has no url column")

// Entry is one row of the seed list
type Entry struct {
	Name string
	URL  string
}

// Read parses a seed list. Header names are matched ignoring case and
// surrounding whitespace; rows with an empty URL are skipped.
func Read(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading seed header: %w", err)
	}

	nameIdx, urlIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))) {
		case NameColumn:
			nameIdx = i
		case URLColumn:
			urlIdx = i
		}
	}
	if urlIdx < 0 {
		return nil, ErrMissingURLColumn
	}

	var entries []Entry
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading seed row: %w", err)
		}

		url := field(row, urlIdx)
		if url == "" {
			continue
		}
		entries = append(entries, Entry{Name: field(row, nameIdx), URL: url})
	}

	return entries, nil
}

// ReadFile reads a seed list from path
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed list: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Write renders entries as a seed list with a header row
func Write(w io.Writer, entries []Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{NameColumn, URLColumn}); err != nil {
		return fmt.Errorf("writing seed header: %w", err)
	}
	for _, e := range entries {
		if err := writer.Write([]string{e.Name, e.URL}); err != nil {
			return fmt.Errorf("writing seed row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile writes entries to path, replacing any existing file
func WriteFile(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating seed list: %w", err)
	}
	if err := Write(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// URLs returns the URL of every entry in order
func URLs(entries []Entry) []string {
	urls := make([]string, 0, len(entries))
	for _, e := range entries {
		urls = append(urls, e.URL)
	}
	return urls
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

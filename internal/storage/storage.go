package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/clubmap/internal/club"
	"github.com/pfrederiksen/clubmap/internal/registry"
)

// DefaultRegistryPath is used when no registry path is configured
const DefaultRegistryPath = "clubes.json"

// PersistenceError is returned when the registry cannot be written.
// It is fatal for a run.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("writing registry %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// RegistryFile handles persistence of the registry
type RegistryFile struct {
	path string
}

// New creates a RegistryFile for path, expanding a leading ~/
func New(path string) (*RegistryFile, error) {
	if path == "" {
		path = DefaultRegistryPath
	}

	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	return &RegistryFile{
		path: path,
	}, nil
}

// Path returns the registry file path
func (s *RegistryFile) Path() string {
	return s.path
}

// Load reads the registry from disk. A missing file is an empty registry.
func (s *RegistryFile) Load() (*registry.Registry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// No previous registry, return empty one
			return registry.New(), nil
		}
		return nil, fmt.Errorf("reading registry: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return registry.New(), nil
	}

	var records []*club.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", s.path, err)
	}

	return registry.FromRecords(records), nil
}

// Save writes the registry to disk, replacing the previous file
func (s *RegistryFile) Save(reg *registry.Registry) error {
	data, err := Encode(reg.Records())
	if err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &PersistenceError{Path: s.path, Err: fmt.Errorf("creating data directory: %w", err)}
		}
	}

	if err := writeAtomic(s.path, data); err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}

	return nil
}

// Encode renders records in the registry file format
func Encode(records []*club.Record) ([]byte, error) {
	if records == nil {
		records = []*club.Record{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding registry: %w", err)
	}
	return buf.Bytes(), nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing registry: %w", err)
	}
	return nil
}

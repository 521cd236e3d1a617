package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfrederiksen/clubmap/internal/club"
	"github.com/pfrederiksen/clubmap/internal/registry"
)

func testRecords() []*club.Record {
	return []*club.Record{
		{
			ID:          "4",
			Name:        "Benfica",
			SourceURL:   "https://www.zerozero.pt/team.php?id=4",
			Crest:       "https://www.zerozero.pt/img/logos/equipas/4_imgbank.png",
			Venue:       "Estádio da Luz",
			Address:     "Lisboa",
			Coordinates: &club.Coordinates{Latitude: 38.7527, Longitude: -9.1847},
			Kits:        []club.Kit{{Type: club.KitHome, Image: "https://www.zerozero.pt/img/k.png", Alt: "Principal"}},
		},
		{
			ID:        "3598",
			Name:      "Lourinhanense",
			SourceURL: "https://www.zerozero.pt/equipa/lourinhanense/3598",
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "clubes.json")

	store, err := New(path)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	reg := registry.FromRecords(testRecords())
	if err := store.Save(reg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if loaded.Len() != 2 {
		t.Fatalf("Load() returned %d records, want 2", loaded.Len())
	}

	got := loaded.Records()
	if got[0].ID != "4" || got[1].ID != "3598" {
		t.Errorf("order not preserved: %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Venue != "Estádio da Luz" || !got[0].HasCoordinates() || len(got[0].Kits) != 1 {
		t.Errorf("record 4 not round-tripped: %+v", got[0])
	}
	if got[1].HasCoordinates() || got[1].Venue != "" {
		t.Errorf("record 3598 should keep null fields: %+v", got[1])
	}
}

func TestSave_FileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clubes.json")
	store, _ := New(path)

	records := append(testRecords(), &club.Record{
		ID:        "team_psv",
		Name:      "PSV",
		SourceURL: "https://www.zerozero.pt/equipa/psv?epoca_id=155&lang=pt",
	})
	if err := store.Save(registry.FromRecords(records)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		`"club": "Benfica"`,
		`"stadium": "Estádio da Luz"`, // UTF-8 kept, not \u escaped
		`"equipamentos": [`,
		`"latitude": null`,
		`"url": "https://www.zerozero.pt/team.php?id=4"`,
		"\n    {",
		`epoca_id=155&lang=pt`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("registry file should contain %q:\n%s", want, content)
		}
	}
	if strings.Contains(content, `\u00`) {
		t.Error("registry file should not escape non-ASCII text")
	}
	if strings.Contains(content, `\u0026`) {
		t.Error("registry file should not HTML-escape URLs")
	}

	// no temp files left behind
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

func TestLoad_Missing(t *testing.T) {
	store, _ := New(filepath.Join(t.TempDir(), "missing.json"))

	reg, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Load() of missing file returned %d records, want 0", reg.Len())
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		wantLen int
	}{
		{name: "empty file", content: "", wantLen: 0},
		{name: "empty array", content: "[]", wantLen: 0},
		{name: "malformed", content: "[{", wantErr: true},
		{name: "record without id or url", content: `[{"club":"X"}]`, wantErr: true},
		{name: "ids derived from urls", content: `[{"club":"Benfica","url":"https://www.zerozero.pt/team.php?id=4"},{"club":"FC Porto","url":"https://www.zerozero.pt/team.php?id=16"}]`, wantLen: 2},
		{name: "duplicate ids keep first", content: `[{"id":"1","club":"A"},{"id":"1","club":"B"}]`, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "clubes.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			store, _ := New(path)

			reg, err := store.Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && reg.Len() != tt.wantLen {
				t.Errorf("Load() returned %d records, want %d", reg.Len(), tt.wantLen)
			}
		})
	}
}

func TestSave_PersistenceError(t *testing.T) {
	dir := t.TempDir()
	// a directory where the file should be makes the rename fail
	path := filepath.Join(dir, "clubes.json")
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(path, "keep"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	store, _ := New(path)
	err := store.Save(registry.New())

	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("Save() error = %v, want *PersistenceError", err)
	}
	if pe.Path != path {
		t.Errorf("PersistenceError.Path = %q, want %q", pe.Path, path)
	}
}

func TestNew_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	store, err := New("~/clubmap/clubes.json")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if store.Path() != filepath.Join(home, "clubmap", "clubes.json") {
		t.Errorf("Path() = %q", store.Path())
	}

	store, _ = New("")
	if store.Path() != DefaultRegistryPath {
		t.Errorf("Path() = %q, want %q", store.Path(), DefaultRegistryPath)
	}
}

func TestEncode_Empty(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("Encode(nil) = %q, want []", data)
	}
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfrederiksen/clubmap/internal/pipeline"
	"github.com/pfrederiksen/clubmap/internal/storage"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestFixtureMode(t *testing.T) {
	registry := filepath.Join(t.TempDir(), "clubes.json")

	code, out, errOut := runCLI(t, "--fixture", "--registry", registry)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	if !strings.Contains(out, "Saved:       8 clubs (8 new)") {
		t.Errorf("first run output:\n%s", out)
	}

	code, out, _ = runCLI(t, "--fixture", "--registry", registry)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "Saved:       8 clubs (0 new)") {
		t.Errorf("second run output:\n%s", out)
	}

	store, _ := storage.New(registry)
	reg, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if reg.Len() != 8 {
		t.Errorf("registry has %d records, want 8", reg.Len())
	}
}

func TestFixtureMode_JSON(t *testing.T) {
	registry := filepath.Join(t.TempDir(), "clubes.json")

	code, out, errOut := runCLI(t, "--fixture", "--registry", registry, "--format", "json", "--sort", "club")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}

	var result struct {
		Mode  string `json:"mode"`
		Saved int    `json:"saved"`
		Added int    `json:"added"`
		Pages []struct {
			Club   string   `json:"club"`
			States []string `json:"states"`
		} `json:"pages"`
		Metrics struct {
			Gauges map[string]float64 `json:"gauges"`
		} `json:"metrics"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if result.Mode != "fixture" || result.Saved != 8 || result.Added != 8 {
		t.Errorf("result = %+v", result)
	}
	if len(result.Pages) != 8 || result.Pages[0].Club != "Benfica" {
		t.Fatalf("pages not sorted by club: %+v", result.Pages)
	}
	if got := result.Pages[0].States; got[len(got)-1] != "RECONCILED" {
		t.Errorf("states = %v", got)
	}
	if got := result.Metrics.Gauges["registry.size"]; got != 8 {
		t.Errorf("registry.size gauge = %v, want 8", got)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	registry := filepath.Join(dir, "clubes.json")
	if code, _, errOut := runCLI(t, "--fixture", "--registry", registry); code != ExitSuccess {
		t.Fatalf("fixture run failed: %s", errOut)
	}

	output := filepath.Join(dir, "clubes.geojson")
	code, _, errOut := runCLI(t, "export", "--registry", registry, "-o", output)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	if !strings.Contains(errOut, "Exported 6 of 8 clubs") {
		t.Errorf("stderr = %q", errOut)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), `"FeatureCollection"`) {
		t.Errorf("export is not a feature collection:\n%s", data)
	}
}

func TestExport_Stdout(t *testing.T) {
	registry := filepath.Join(t.TempDir(), "missing.json")

	code, out, _ := runCLI(t, "export", "--registry", registry)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, `"features": []`) {
		t.Errorf("empty registry export = %s", out)
	}
}

func TestInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "format", args: []string{"--fixture", "--format", "xml"}, want: "invalid format"},
		{name: "sort", args: []string{"--fixture", "--sort", "size"}, want: "invalid sort order"},
		{name: "log format", args: []string{"--fixture", "--log-format", "plain"}, want: "invalid log format"},
		{name: "pages", args: []string{"--fixture", "--pages=-2"}, want: "invalid config"},
		{name: "config file", args: []string{"--fixture", "--config", "/nonexistent/clubmap.yaml"}, want: "loading config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--registry", filepath.Join(t.TempDir(), "clubes.json"))
			code, _, errOut := runCLI(t, args...)
			if code != ExitError {
				t.Errorf("exit code = %d, want %d", code, ExitError)
			}
			if !strings.Contains(errOut, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", errOut, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "interrupted", err: fmt.Errorf("run: %w", context.Canceled), wantCode: ExitInterrupted},
		{name: "persistence", err: &storage.PersistenceError{Path: "clubes.json", Err: errors.New("disk full")}, wantCode: ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var se *StatusError
			if !errors.As(classify(tt.err), &se) {
				t.Fatalf("classify(%v) is not a StatusError", tt.err)
			}
			if se.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", se.Code, tt.wantCode)
			}
		})
	}

	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}
	plain := errors.New("boom")
	if classify(plain) != plain {
		t.Error("classify should pass other errors through")
	}
}

func TestSortReports(t *testing.T) {
	ok := &pipeline.PageReport{URL: "a", Name: "Benfica", States: []pipeline.PageState{pipeline.StateReconciled}}
	failed := &pipeline.PageReport{URL: "b", States: []pipeline.PageState{pipeline.StateFetchFailed}}
	porto := &pipeline.PageReport{URL: "c", Name: "FC Porto", States: []pipeline.PageState{pipeline.StateReconciled}}

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortByRun, []string{"a", "b", "c"}},
		{SortByState, []string{"b", "a", "c"}},
		{SortByClub, []string{"a", "c", "b"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			reports := []*pipeline.PageReport{ok, failed, porto}
			sortReports(reports, tt.order)
			var got []string
			for _, r := range reports {
				got = append(got, r.URL)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("sortReports(%s) = %v, want %v", tt.order, got, tt.want)
			}
		})
	}
}

func TestWriteOutput_TextFailures(t *testing.T) {
	result := &OutputResult{
		Registry: "clubes.json",
		Summary: &pipeline.Summary{
			Discovered:    2,
			FetchFailures: 1,
			Failed:        []string{"https://www.zerozero.pt/equipa/torreense/2178"},
			Pages: []*pipeline.PageReport{{
				URL:     "https://www.zerozero.pt/equipa/torreense/2178",
				States:  []pipeline.PageState{pipeline.StatePending, pipeline.StateFetching, pipeline.StateFetchFailed},
				Outcome: pipeline.OutcomeFailed,
			}},
		},
	}

	var buf bytes.Buffer
	if err := WriteOutput(&buf, result, FormatText, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Problems:    1 fetch", "Failed pages:", "FETCH_FAILED", "torreense/2178"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if err := WriteOutput(&buf, result, OutputFormat("yaml"), false); err == nil {
		t.Error("WriteOutput() should reject unknown formats")
	}
}

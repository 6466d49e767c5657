package emit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vd09-projects/v8toistanbul/internal/model"
)

func fileCoverage(path string, count int) *model.FileCoverage {
	loc := model.Location{Start: model.Position{Line: 1}, End: model.Position{Line: 1, Column: 3}}
	return &model.FileCoverage{
		Path:         path,
		StatementMap: model.Indexed[model.Location]{loc},
		S:            model.Indexed[int]{count},
		BranchMap:    model.Indexed[model.BranchMapping]{},
		B:            model.Indexed[[]int]{},
		FnMap:        model.Indexed[model.FunctionMapping]{},
		F:            model.Indexed[int]{},
	}
}

func TestJSONEmitter(t *testing.T) {
	out := filepath.Join(t.TempDir(), "coverage-final.json")
	files := []*model.FileCoverage{fileCoverage("/a.js", 1), fileCoverage("/b.js", 0)}
	if err := (JSONEmitter{OutPath: out, Pretty: true}).Emit(files); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "\n  \"/a.js\": {") {
		t.Errorf("output is not indented:\n%s", b)
	}
	var got model.CoverageMap
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := model.CoverageMap{"/a.js": files[0], "/b.js": files[1]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONLEmitter(t *testing.T) {
	out := filepath.Join(t.TempDir(), "coverage.jsonl")
	files := []*model.FileCoverage{fileCoverage("/a.js", 1), fileCoverage("/b.js", 0)}
	if err := (JSONLEmitter{OutPath: out}).Emit(files); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		var m model.CoverageMap
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if _, ok := m[files[i].Path]; !ok || len(m) != 1 {
			t.Errorf("line %d = %s, want only %s", i, line, files[i].Path)
		}
	}
}

func TestJSONLEmitterEmptyRunTruncates(t *testing.T) {
	out := filepath.Join(t.TempDir(), "coverage.jsonl")
	if err := os.WriteFile(out, []byte("{\"stale\":{}}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := (JSONLEmitter{OutPath: out}).Emit(nil); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 0 {
		t.Errorf("output = %q, want empty", b)
	}
}

func TestDirEmitter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".nyc_output")
	n := 0
	e := DirEmitter{Dir: dir, NewName: func() string { n++; return fmt.Sprintf("run-%d", n) }}
	if err := e.Emit([]*model.FileCoverage{fileCoverage("/a.js", 1), fileCoverage("/b.js", 2)}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	for i, path := range []string{"/a.js", "/b.js"} {
		b, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("run-%d.json", i+1)))
		if err != nil {
			t.Fatal(err)
		}
		var m model.CoverageMap
		if err := json.Unmarshal(b, &m); err != nil {
			t.Fatal(err)
		}
		if m[path] == nil || m[path].S[0] != i+1 {
			t.Errorf("file %d = %s", i+1, b)
		}
	}
}

func TestDirEmitterDefaultNames(t *testing.T) {
	dir := t.TempDir()
	if err := (DirEmitter{Dir: dir}).Emit([]*model.FileCoverage{fileCoverage("/a.js", 1)}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || len(strings.TrimSuffix(entries[0].Name(), ".json")) != 36 {
		t.Errorf("entries = %v, want one <uuid>.json", entries)
	}
}

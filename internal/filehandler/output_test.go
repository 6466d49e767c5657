package filehandler

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "coverage.json")
	if err := os.WriteFile(out, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := WriteOutput(out, func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	})
	if err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	got, _ := os.ReadFile(out)
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}

	boom := errors.New("boom")
	err = WriteOutput(out, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
	got, _ = os.ReadFile(out)
	if string(got) != "new" {
		t.Errorf("failed write replaced content with %q", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

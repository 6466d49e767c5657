// Package emit writes converted file coverage in the supported layouts.
package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/vd09-projects/v8toistanbul/internal/filehandler"
	"github.com/vd09-projects/v8toistanbul/internal/model"
	"github.com/vd09-projects/v8toistanbul/internal/stream"
)

type Emitter interface {
	Emit(files []*model.FileCoverage) error
}

// JSONEmitter writes every file into one coverage map object.
type JSONEmitter struct {
	OutPath string
	Pretty  bool
}

func (e JSONEmitter) Emit(files []*model.FileCoverage) error {
	return filehandler.WriteOutput(e.OutPath, func(w io.Writer) error {
		return encode(w, coverageMap(files...), e.Pretty)
	})
}

// JSONLEmitter writes one single-file coverage map per line. An empty run
// leaves an empty file.
type JSONLEmitter struct {
	OutPath string
}

func (e JSONLEmitter) Emit(files []*model.FileCoverage) error {
	maps := make([]model.CoverageMap, len(files))
	for i, fc := range files {
		maps[i] = coverageMap(fc)
	}
	return filehandler.WriteOutput(e.OutPath, func(w io.Writer) error {
		je := stream.NewJSONLEmitter[model.CoverageMap](w, func(m model.CoverageMap) ([]byte, error) {
			return m.ToJSON()
		})
		if err := je.Emit(maps); err != nil {
			return err
		}
		return je.Close()
	})
}

// DirEmitter writes each file's coverage map to its own <uuid>.json inside
// Dir, the layout nyc keeps in .nyc_output.
type DirEmitter struct {
	Dir    string
	Pretty bool
	// NewName returns a file name stem; defaults to a random UUID.
	NewName func() string
}

func (e DirEmitter) Emit(files []*model.FileCoverage) error {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return err
	}
	newName := e.NewName
	if newName == nil {
		newName = uuid.NewString
	}
	for _, fc := range files {
		out := filepath.Join(e.Dir, newName()+".json")
		err := filehandler.WriteOutput(out, func(w io.Writer) error {
			return encode(w, coverageMap(fc), e.Pretty)
		})
		if err != nil {
			return fmt.Errorf("writing %s for %s: %w", out, fc.Path, err)
		}
	}
	return nil
}

func coverageMap(files ...*model.FileCoverage) model.CoverageMap {
	m := make(model.CoverageMap, len(files))
	for _, fc := range files {
		m[fc.Path] = fc
	}
	return m
}

func encode(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

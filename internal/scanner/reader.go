package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vd09-projects/v8toistanbul/internal/model"
	"github.com/vd09-projects/v8toistanbul/internal/stream"
)

// CoverageReader discovers V8 coverage files among its inputs. A directory
// contributes every coverage file directly inside it (NODE_V8_COVERAGE is
// flat); "-" is stdin.
type CoverageReader struct {
	Inputs []string
}

func NewCoverageReader(inputs []string) *CoverageReader {
	return &CoverageReader{Inputs: inputs}
}

// List returns the coverage files to read, directories expanded in name
// order, inputs in the order given.
func (r *CoverageReader) List() ([]string, error) {
	if len(r.Inputs) == 0 {
		return nil, fmt.Errorf("no coverage inputs given")
	}
	var out []string
	for _, in := range r.Inputs {
		if in == "-" {
			out = append(out, in)
			continue
		}
		fi, err := os.Stat(in)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			out = append(out, in)
			continue
		}
		entries, err := os.ReadDir(in)
		if err != nil {
			return nil, err
		}
		var names []string
		for _, e := range entries {
			if e.Type().IsRegular() && isCoverageFile(e.Name()) {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, n := range names {
			out = append(out, filepath.Join(in, n))
		}
	}
	return out, nil
}

// Read loads the script entries of one listed file.
func (r *CoverageReader) Read(file string) ([]model.ScriptCoverage, error) {
	scripts, err := stream.ReadScripts(file)
	if err != nil {
		return nil, fmt.Errorf("error processing %s: %w", file, err)
	}
	return scripts, nil
}

func isCoverageFile(name string) bool {
	switch stream.BaseExt(name) {
	case ".json", ".jsonl":
		return true
	}
	return false
}

package stream

import (
	"encoding/json"
	"fmt"

	"github.com/vd09-projects/v8toistanbul/internal/model"
)

// ReadScripts loads the script coverage entries stored at path. ".jsonl"
// files hold one ScriptCoverage per line; anything else is a single
// ProcessCoverage document as written to NODE_V8_COVERAGE.
func ReadScripts(path string) ([]model.ScriptCoverage, error) {
	if BaseExt(path) == ".jsonl" {
		jr, err := NewJSONLReader[model.ScriptCoverage](path, nil)
		if err != nil {
			return nil, err
		}
		defer jr.Close()
		return jr.ReadAll()
	}

	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var doc model.ProcessCoverage
	if err := json.NewDecoder(rc).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc.Result, nil
}

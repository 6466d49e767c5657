package model

import (
	"encoding/json"
	"fmt"
)

// ProcessCoverage is the document a runtime writes per process into
// NODE_V8_COVERAGE (Profiler.takePreciseCoverage result).
type ProcessCoverage struct {
	Result []ScriptCoverage `json:"result"`
}

// ScriptCoverage holds the coverage blocks of one script.
type ScriptCoverage struct {
	ScriptID  string             `json:"scriptId"`
	URL       string             `json:"url"`
	Functions []FunctionCoverage `json:"functions"`
}

// FunctionCoverage is a block: a group of ranges, optionally tied to a
// function, optionally carrying block-level (branch) granularity.
type FunctionCoverage struct {
	FunctionName    string          `json:"functionName,omitempty"`
	IsBlockCoverage bool            `json:"isBlockCoverage"`
	Ranges          []CoverageRange `json:"ranges"`
}

// CoverageRange is a raw offset interval with its execution count. Offsets
// are as reported by the runtime, before wrapper correction.
type CoverageRange struct {
	StartOffset int `json:"startOffset"`
	EndOffset   int `json:"endOffset"`
	Count       int `json:"count"`
}

func (p *ProcessCoverage) UnmarshalJSON(b []byte) error {
	var raw struct {
		Result []json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	result, err := decodeList[ScriptCoverage]("result", raw.Result)
	if err != nil {
		return err
	}
	*p = ProcessCoverage{Result: result}
	return nil
}

func (s *ScriptCoverage) UnmarshalJSON(b []byte) error {
	var raw struct {
		ScriptID  string             `json:"scriptId"`
		URL       *string            `json:"url"`
		Functions *[]json.RawMessage `json:"functions"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.URL == nil:
		return &FieldError{Type: "script", Field: "url"}
	case raw.Functions == nil:
		return &FieldError{Type: "script", Field: "functions"}
	}
	functions, err := decodeList[FunctionCoverage]("functions", *raw.Functions)
	if err != nil {
		return err
	}
	*s = ScriptCoverage{ScriptID: raw.ScriptID, URL: *raw.URL, Functions: functions}
	return nil
}

func (f *FunctionCoverage) UnmarshalJSON(b []byte) error {
	var raw struct {
		FunctionName    string             `json:"functionName"`
		IsBlockCoverage *bool              `json:"isBlockCoverage"`
		Ranges          *[]json.RawMessage `json:"ranges"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.IsBlockCoverage == nil:
		return &FieldError{Type: "block", Field: "isBlockCoverage"}
	case raw.Ranges == nil:
		return &FieldError{Type: "block", Field: "ranges"}
	}
	ranges, err := decodeList[CoverageRange]("ranges", *raw.Ranges)
	if err != nil {
		return err
	}
	*f = FunctionCoverage{
		FunctionName:    raw.FunctionName,
		IsBlockCoverage: *raw.IsBlockCoverage,
		Ranges:          ranges,
	}
	return nil
}

func (r *CoverageRange) UnmarshalJSON(b []byte) error {
	var raw struct {
		StartOffset *int `json:"startOffset"`
		EndOffset   *int `json:"endOffset"`
		Count       *int `json:"count"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.StartOffset == nil:
		return &FieldError{Type: "range", Field: "startOffset"}
	case raw.EndOffset == nil:
		return &FieldError{Type: "range", Field: "endOffset"}
	case raw.Count == nil:
		return &FieldError{Type: "range", Field: "count"}
	case *raw.Count < 0:
		return &FieldError{Type: "range", Field: "count", Value: *raw.Count}
	}
	*r = CoverageRange{StartOffset: *raw.StartOffset, EndOffset: *raw.EndOffset, Count: *raw.Count}
	return nil
}

// decodeList decodes each element of a JSON array, prefixing errors with
// the element's position, e.g. "functions[2]: ranges[0]: ...".
func decodeList[T any](name string, raw []json.RawMessage) ([]T, error) {
	if raw == nil {
		return nil, nil
	}
	out := make([]T, len(raw))
	for i, b := range raw {
		if err := json.Unmarshal(b, &out[i]); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
	}
	return out, nil
}

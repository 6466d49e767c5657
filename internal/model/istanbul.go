package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// BranchMapping is a single-armed branch group: Locations always holds
// exactly one copy of Loc.
type BranchMapping struct {
	Type      string     `json:"type"`
	Line      int        `json:"line"`
	Loc       Location   `json:"loc"`
	Locations []Location `json:"locations"`
}

type FunctionMapping struct {
	Name string   `json:"name"`
	Decl Location `json:"decl"`
	Loc  Location `json:"loc"`
	Line int      `json:"line"`
}

// FileCoverage is the Istanbul per-file coverage object.
type FileCoverage struct {
	Path         string                   `json:"path"`
	StatementMap Indexed[Location]        `json:"statementMap"`
	S            Indexed[int]             `json:"s"`
	BranchMap    Indexed[BranchMapping]   `json:"branchMap"`
	B            Indexed[[]int]           `json:"b"`
	FnMap        Indexed[FunctionMapping] `json:"fnMap"`
	F            Indexed[int]             `json:"f"`
}

// CoverageMap is keyed by file path.
type CoverageMap map[string]*FileCoverage

func (m CoverageMap) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// Indexed is a JSON object whose keys are the decimal positions "0", "1", ...
// of its elements. Keys are written in numeric order.
type Indexed[T any] []T

func (ix Indexed[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range ix {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`":`)
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (ix *Indexed[T]) UnmarshalJSON(b []byte) error {
	var m map[string]T
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	out := make(Indexed[T], len(m))
	for k, v := range m {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i >= len(m) {
			return fmt.Errorf("%w: index key %q", ErrMalformed, k)
		}
		out[i] = v
	}
	*ix = out
	return nil
}

// Package cov maps runtime offset-range coverage of a single script onto
// its lines and serializes the result as Istanbul file coverage.
package cov

import (
	"errors"
	"strings"
)

// ErrEmptyPath is returned by New when no script path is given.
var ErrEmptyPath = errors.New("cov: script path is empty")

// Script accumulates coverage for one source file. It is not safe for
// concurrent ApplyCoverage calls; ToIstanbul only reads.
type Script struct {
	path          string
	wrapperLength int
	shebangLength int

	lines     []Line
	eof       int
	branches  []Branch
	functions []Function
}

type options struct {
	length func(string) int
}

type Option func(*options)

// WithUTF16Offsets measures offsets and columns in UTF-16 code units
// instead of bytes.
func WithUTF16Offsets() Option {
	return func(o *options) { o.length = utf16Len }
}

// New indexes source for the script at path. wrapperLength is subtracted
// from every offset passed to ApplyCoverage. A "file://" prefix on path is
// dropped.
func New(path, source string, wrapperLength int, opts ...Option) (*Script, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	o := options{length: byteLen}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Script{
		path:          strings.TrimPrefix(path, "file://"),
		wrapperLength: wrapperLength,
		shebangLength: ShebangLength(source),
	}
	s.lines, s.eof = buildLines(source, s.shebangLength, o.length)
	return s, nil
}

func (s *Script) Path() string { return s.path }

// EOF is the end offset of the last line.
func (s *Script) EOF() int { return s.eof }

func (s *Script) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Script) Branches() []Branch {
	out := make([]Branch, len(s.branches))
	copy(out, s.branches)
	return out
}

func (s *Script) Functions() []Function {
	out := make([]Function, len(s.functions))
	copy(out, s.functions)
	return out
}

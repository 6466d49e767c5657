package model

import (
	"errors"
	"fmt"
)

// ErrMalformed is returned for coverage documents that lack required fields
// or carry values no runtime would produce.
var ErrMalformed = errors.New("malformed coverage data")

// FieldError reports a required field that is missing or out of range in a
// decoded object.
type FieldError struct {
	Type  string // object kind, e.g. "range"
	Field string // JSON field name
	// Value is the rejected value; nil when the field is missing.
	Value any
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: missing required field %q", e.Type, e.Field)
	}
	return fmt.Sprintf("%s: invalid %q: %v", e.Type, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error { return ErrMalformed }

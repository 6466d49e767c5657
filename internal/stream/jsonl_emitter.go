package stream

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONLEmitter writes one JSON object per line (JSONL).
type JSONLEmitter[T any] struct {
	encode EncoderFunc[T]
	w      *bufio.Writer
}

var _ Emitter[any] = (*JSONLEmitter[any])(nil)

// NewJSONLEmitter creates a JSONLEmitter writing to w. Output is buffered
// until Close. If encode is nil, it falls back to json.Marshal.
func NewJSONLEmitter[T any](w io.Writer, encode EncoderFunc[T]) *JSONLEmitter[T] {
	if encode == nil {
		encode = func(v T) ([]byte, error) { return json.Marshal(v) }
	}
	return &JSONLEmitter[T]{
		encode: encode,
		w:      bufio.NewWriter(w),
	}
}

// Emit writes a slice of records.
func (je *JSONLEmitter[T]) Emit(records []T) error {
	for _, rec := range records {
		if err := je.EmitOne(rec); err != nil {
			return err
		}
	}
	return nil
}

// EmitOne writes a single record.
func (je *JSONLEmitter[T]) EmitOne(record T) error {
	b, err := je.encode(record)
	if err != nil {
		return err
	}
	if _, err := je.w.Write(b); err != nil {
		return err
	}
	return je.w.WriteByte('\n')
}

// Close flushes buffered output. The underlying writer is left open.
func (je *JSONLEmitter[T]) Close() error {
	return je.w.Flush()
}

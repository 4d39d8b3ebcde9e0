// Package patch models merge-patch payload fields that distinguish an absent
// key from an explicit null.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is set when its key appeared in the payload. Value is nil for an
// explicit null.
type Field[T any] struct {
	Set   bool
	Value *T
}

func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

func (f Field[T]) IsNull() bool {
	return f.Set && f.Value == nil
}

// Apply overwrites dst when the field was present.
func (f Field[T]) Apply(dst **T) {
	if !f.Set {
		return
	}
	if f.Value == nil {
		*dst = nil
		return
	}
	v := *f.Value
	*dst = &v
}

// ApplyValue overwrites dst when the field was present with a non-null value.
func (f Field[T]) ApplyValue(dst *T) {
	if f.Set && f.Value != nil {
		*dst = *f.Value
	}
}

package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a patch field. Set reports whether the key was present in the
// request at all; Null reports that it was present with a JSON null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON is only invoked for keys present in the document, which is
// what separates "absent" from "null".
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON writes null for absent or null values.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns nil for null, otherwise a pointer to the value. Only meaningful when Set.
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}

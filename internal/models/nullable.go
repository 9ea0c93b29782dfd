package models

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Nullable is an update field that remembers whether the client sent it. An explicit
// JSON null sets it with a nil Value, which clears the stored field.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Some returns a Nullable set to v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a Nullable that clears the field.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// Apply writes the value into dst when the field was sent.
func (n Nullable[T]) Apply(dst **T) {
	if n.Set {
		*dst = n.Value
	}
}

// Interface exposes the wrapped value to the validator; nil when unset or null.
func (n Nullable[T]) Interface() interface{} {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}

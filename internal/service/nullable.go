package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Nullable is a request field that tells an absent key apart from an
// explicit null. Set is false when the key was not sent.
type Nullable[T string | uint] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a present, non-null field.
func Some[T string | uint](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: v}
}

// Null returns a field that was sent as null.
func Null[T string | uint]() Nullable[T] {
	return Nullable[T]{Set: true, Null: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Null = true
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// UnmarshalParam decodes form values; an empty value is null.
func (n *Nullable[T]) UnmarshalParam(param string) error {
	n.Set = true
	if param == "" {
		n.Null = true
		return nil
	}
	switch v := any(&n.Value).(type) {
	case *string:
		*v = param
	case *uint:
		id, err := strconv.ParseUint(param, 10, 0)
		if err != nil {
			return fmt.Errorf("parse %q: %w", param, err)
		}
		*v = uint(id)
	}
	return nil
}

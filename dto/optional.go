package dto

import "encoding/json"

// Optional is a JSON field that distinguishes "absent" from "present as
// null" from "present with a value". Update payloads use it to reproduce
// exclude-unset semantics: only fields that appeared in the request body are
// applied to the entity.
type Optional[T any] struct {
	Set   bool // field appeared in the payload
	Valid bool // field carried a non-null value
	Value T
}

// UnmarshalJSON is only invoked for fields present in the payload, so Set
// records presence and Valid records nullness.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON round-trips the value; unset or null fields encode as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Some builds a set, non-null Optional. Mostly useful in tests and the CLI.
func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: value}
}

package models

import "encoding/json"

// Optional records whether a JSON field was present at all, so a patch
// can tell an explicit null apart from an omitted field.
type Optional[T any] struct {
	Set   bool
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// UnmarshalJSON is only called for keys present in the document,
// including ones whose value is null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

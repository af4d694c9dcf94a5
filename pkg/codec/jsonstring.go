package codec

import (
	"encoding/json"
	"fmt"
)

// JSONString wraps a value that travels as a JSON document embedded in
// a JSON string. Marshaling encodes Value and emits the result as a
// string; unmarshaling expects a string and decodes its contents into
// Value.
type JSONString[T any] struct {
	Value T
}

// MarshalJSON implements json.Marshaler.
func (s JSONString[T]) MarshalJSON() ([]byte, error) {
	inner, err := json.Marshal(s.Value)
	if err != nil {
		return nil, fmt.Errorf("encode inner value: %w", err)
	}
	return json.Marshal(string(inner))
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *JSONString[T]) UnmarshalJSON(data []byte) error {
	var inner string
	if err := json.Unmarshal(data, &inner); err != nil {
		return fmt.Errorf("decode wrapper string: %w", err)
	}
	if err := json.Unmarshal([]byte(inner), &s.Value); err != nil {
		return fmt.Errorf("decode inner value: %w", err)
	}
	return nil
}

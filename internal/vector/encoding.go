package vector

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformedVector is returned when a stored vector is not a JSON array of numbers.
	ErrMalformedVector = errors.New("malformed vector")
	// ErrEmptyVector is returned when a vector has no components.
	ErrEmptyVector = errors.New("empty vector")
)

// ParseVector decodes the JSON text form of an embedding, e.g. "[0.1, -0.2, 0.3]".
// Entries must be JSON numbers; strings are not coerced.
func ParseVector(raw string) ([]float64, error) {
	var vec []float64
	if err := json.Unmarshal([]byte(raw), &vec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedVector, err)
	}
	if len(vec) == 0 {
		return nil, ErrEmptyVector
	}
	return vec, nil
}

package models

import (
	"fmt"
	"strings"
)

// QueryRequest is the body of a query or search API call.
type QueryRequest struct {
	Query string `json:"query"`
	// Vector, when set, skips the embedding call (search endpoint only).
	Vector []float64 `json:"vector,omitempty"`
}

// Validate rejects a blank query unless a vector is supplied. The query text is left
// as sent since it also drives the name boost.
func (q *QueryRequest) Validate() error {
	if strings.TrimSpace(q.Query) == "" && len(q.Vector) == 0 {
		return fmt.Errorf("query cannot be empty")
	}
	return nil
}

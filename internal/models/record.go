// Package models defines core data structures for records, matches, and answers.
package models

// Record is a loaded document embedding. IDs are not required to be unique.
type Record struct {
	ID      string    `json:"id"`
	Vector  []float64 `json:"-"`
	Content string    `json:"content"`
}

// Dimensions returns the length of the record vector.
func (r *Record) Dimensions() int {
	return len(r.Vector)
}

// RecordRow is a raw row read from the record source, before the vector is parsed.
type RecordRow struct {
	ID         string
	VectorJSON string
	Content    string
}

package models

import "time"

// QueryMatch is the outcome of a relevance search. When Found is false, ID and Content
// are empty and Score holds the best score seen (0 for an empty store).
type QueryMatch struct {
	Found   bool    `json:"found"`
	ID      string  `json:"id,omitempty"`
	Content string  `json:"content,omitempty"`
	Score   float64 `json:"score"`
	Cosine  float64 `json:"cosine"`
	Boost   float64 `json:"boost"`
	// Index is the store position of the best record, -1 when nothing was scanned.
	Index int `json:"-"`
	// Scanned counts the records compared; Mismatched and Degenerate count the
	// comparisons that scored 0 for a dimension mismatch or a zero-magnitude vector.
	Scanned    int `json:"scanned"`
	Mismatched int `json:"mismatched,omitempty"`
	Degenerate int `json:"degenerate,omitempty"`
}

// Answer is the result of a full query: retrieval plus generation.
type Answer struct {
	QueryID  string        `json:"query_id"`
	Query    string        `json:"query"`
	Match    QueryMatch    `json:"match"`
	Response string        `json:"response,omitempty"`
	Memory   []string      `json:"memory"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

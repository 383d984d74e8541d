package vector

import (
	"errors"

	"github.com/hyperjump/kotae/internal/models"
)

// ErrStoreSealed is returned by Add once the store has been frozen.
var ErrStoreSealed = errors.New("store is sealed")

// Store is an append-only, in-memory list of records scanned exhaustively by search.
// It is filled once at startup and then frozen; after Freeze it is safe for concurrent reads.
type Store struct {
	records []models.Record
	sealed  bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{records: make([]models.Record, 0)}
}

// Add appends a record. An empty vector is rejected with ErrEmptyVector and the record
// never takes part in ranking. The vector is copied.
func (s *Store) Add(id string, vec []float64, content string) error {
	if s.sealed {
		return ErrStoreSealed
	}
	if len(vec) == 0 {
		return ErrEmptyVector
	}
	v := make([]float64, len(vec))
	copy(v, vec)
	s.records = append(s.records, models.Record{ID: id, Vector: v, Content: content})
	return nil
}

// Freeze seals the store against further additions.
func (s *Store) Freeze() {
	s.sealed = true
}

// Sealed reports whether Freeze has been called.
func (s *Store) Sealed() bool {
	return s.sealed
}

// Size returns the number of records.
func (s *Store) Size() int {
	return len(s.records)
}

// At returns the record at position i in insertion order.
func (s *Store) At(i int) *models.Record {
	return &s.records[i]
}

// Records returns the records in insertion order. The slice must not be modified.
func (s *Store) Records() []models.Record {
	return s.records
}

// DimensionCounts returns how many records have each vector length.
func (s *Store) DimensionCounts() map[int]int {
	counts := make(map[int]int)
	for i := range s.records {
		counts[s.records[i].Dimensions()]++
	}
	return counts
}

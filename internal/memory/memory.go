// Package memory keeps a bounded record of recently matched document IDs.
package memory

import (
	"container/list"
	"fmt"
	"sync"
)

// QueryMemory is a fixed-capacity FIFO of matched document IDs. When full, remembering
// a new ID evicts the oldest one. Duplicates are kept. It is bookkeeping only and is
// never consulted by ranking.
type QueryMemory struct {
	capacity int
	entries  *list.List
	mu       sync.RWMutex
}

// NewQueryMemory creates an empty memory holding at most capacity IDs.
func NewQueryMemory(capacity int) (*QueryMemory, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("memory limit must be positive, got %d", capacity)
	}
	return &QueryMemory{capacity: capacity, entries: list.New()}, nil
}

// Remember appends id, evicting the oldest entry first when the memory is full.
func (m *QueryMemory) Remember(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.entries.Len() == m.capacity {
		m.entries.Remove(m.entries.Front())
	}
	m.entries.PushBack(id)
}

// Entries returns the remembered IDs, oldest first.
func (m *QueryMemory) Entries() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, m.entries.Len())
	for e := m.entries.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(string))
	}
	return out
}

// Len returns the number of remembered IDs.
func (m *QueryMemory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries.Len()
}

// Capacity returns the configured memory limit.
func (m *QueryMemory) Capacity() int {
	return m.capacity
}

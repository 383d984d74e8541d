package memory

import (
	"fmt"
	"testing"
)

func TestNewQueryMemory_InvalidCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		if _, err := NewQueryMemory(c); err == nil {
			t.Errorf("NewQueryMemory(%d): expected error", c)
		}
	}
}

func TestQueryMemory_FillsThenEvictsOldest(t *testing.T) {
	const capacity = 3
	m, err := NewQueryMemory(capacity)
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 0 {
		t.Fatalf("new memory should be empty, got %d", m.Len())
	}

	for k := 1; k <= 4; k++ {
		m.Remember("a")
		m.Remember("b")
		m.Remember("c")
		for i := 0; i < k; i++ {
			m.Remember(fmt.Sprintf("x%d", i))
		}
		if m.Len() != capacity {
			t.Fatalf("k=%d: Len=%d, want %d", k, m.Len(), capacity)
		}
	}

	got := m.Entries()
	want := []string{"x1", "x2", "x3"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Entries=%v, want %v", got, want)
	}
}

func TestQueryMemory_LastCapacityInOrder(t *testing.T) {
	m, _ := NewQueryMemory(2)
	for _, id := range []string{"d1", "d2", "d3", "d4", "d5"} {
		m.Remember(id)
	}
	got := m.Entries()
	if len(got) != 2 || got[0] != "d4" || got[1] != "d5" {
		t.Errorf("Entries=%v, want [d4 d5]", got)
	}
}

func TestQueryMemory_KeepsDuplicates(t *testing.T) {
	m, _ := NewQueryMemory(3)
	m.Remember("doc")
	m.Remember("doc")
	got := m.Entries()
	if len(got) != 2 || got[0] != "doc" || got[1] != "doc" {
		t.Errorf("Entries=%v, want [doc doc]", got)
	}
}

func TestQueryMemory_EntriesIsACopy(t *testing.T) {
	m, _ := NewQueryMemory(1)
	m.Remember("a")
	e := m.Entries()
	e[0] = "mutated"
	if m.Entries()[0] != "a" {
		t.Error("Entries should return a copy")
	}
	if m.Capacity() != 1 {
		t.Errorf("Capacity=%d, want 1", m.Capacity())
	}
}

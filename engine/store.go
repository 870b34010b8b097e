package engine

import "github.com/lixenwraith/lizard-arena/core"

// Store is a sparse-set container for one component type
// Dense slices keep iteration cache-friendly; removal swaps with the last element
// Not safe for concurrent use: the simulation runs on a single goroutine
type Store[T any] struct {
	index    map[core.Entity]int
	entities []core.Entity
	values   []T
}

// NewStore creates an empty store for component type T
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		index:    make(map[core.Entity]int),
		entities: make([]core.Entity, 0, 32),
		values:   make([]T, 0, 32),
	}
}

// Set inserts or replaces the component for e
func (s *Store[T]) Set(e core.Entity, val T) {
	if i, ok := s.index[e]; ok {
		s.values[i] = val
		return
	}
	s.index[e] = len(s.entities)
	s.entities = append(s.entities, e)
	s.values = append(s.values, val)
}

// Get returns the component for e
func (s *Store[T]) Get(e core.Entity) (T, bool) {
	i, ok := s.index[e]
	if !ok {
		var zero T
		return zero, false
	}
	return s.values[i], true
}

// Ptr returns a pointer into the dense slice, valid until the next Set or Remove
func (s *Store[T]) Ptr(e core.Entity) *T {
	i, ok := s.index[e]
	if !ok {
		return nil
	}
	return &s.values[i]
}

// Has reports whether e has a component in this store
func (s *Store[T]) Has(e core.Entity) bool {
	_, ok := s.index[e]
	return ok
}

// Remove deletes the component for e, no-op if absent
func (s *Store[T]) Remove(e core.Entity) bool {
	i, ok := s.index[e]
	if !ok {
		return false
	}
	last := len(s.entities) - 1
	if i != last {
		moved := s.entities[last]
		s.entities[i] = moved
		s.values[i] = s.values[last]
		s.index[moved] = i
	}
	var zero T
	s.values[last] = zero
	s.entities = s.entities[:last]
	s.values = s.values[:last]
	delete(s.index, e)
	return true
}

// Entities returns a copy of the entity list, safe to hold across removals
func (s *Store[T]) Entities() []core.Entity {
	out := make([]core.Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Len returns the number of stored components
func (s *Store[T]) Len() int {
	return len(s.entities)
}

// Clear removes every component
func (s *Store[T]) Clear() {
	clear(s.index)
	s.entities = s.entities[:0]
	s.values = s.values[:0]
}

package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// entity is satisfied by the value types in the entities package.
type entity[T any] interface {
	EntityID() string
	Clone() T
}

// Options carries the id and clock sources shared by the memory repositories.
type Options struct {
	Now   func() time.Time
	NewID func() string
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return o
}

// memoryStore is an ordered, mutex-guarded collection. Each method runs to
// completion under the lock, so no partial mutation is ever observable.
type memoryStore[T entity[T]] struct {
	mu    sync.RWMutex
	seed  []T
	items []T
}

func newMemoryStore[T entity[T]]() *memoryStore[T] {
	return &memoryStore[T]{}
}

func cloneAll[T entity[T]](in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = v.Clone()
	}
	return out
}

func (s *memoryStore[T]) init(seed []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = cloneAll(seed)
	s.items = cloneAll(seed)
}

// reset restores the collection to the last seed.
func (s *memoryStore[T]) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = cloneAll(s.seed)
}

func (s *memoryStore[T]) list() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.items)
}

func (s *memoryStore[T]) filter(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, v := range s.items {
		if keep(v) {
			out = append(out, v.Clone())
		}
	}
	return out
}

func (s *memoryStore[T]) count(keep func(T) bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, v := range s.items {
		if keep(v) {
			n++
		}
	}
	return n
}

func (s *memoryStore[T]) indexOf(id string) int {
	for i, v := range s.items {
		if v.EntityID() == id {
			return i
		}
	}
	return -1
}

func (s *memoryStore[T]) get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i].Clone(), true
	}
	var zero T
	return zero, false
}

func (s *memoryStore[T]) insert(v T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, v.Clone())
	return v.Clone()
}

// update applies fn to a copy of the stored value and commits the copy.
func (s *memoryStore[T]) update(id string, fn func(*T)) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	next := s.items[i].Clone()
	fn(&next)
	s.items[i] = next
	return next.Clone(), true
}

// updateAll applies fn to every item and returns all items as they stand
// afterwards, in one critical section.
func (s *memoryStore[T]) updateAll(fn func(*T) bool) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	for i := range s.items {
		next := s.items[i].Clone()
		if fn(&next) {
			s.items[i] = next
		}
		out[i] = s.items[i].Clone()
	}
	return out
}

func (s *memoryStore[T]) remove(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	removed := s.items[i]
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return removed, true
}

func (s *memoryStore[T]) clear() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	cleared := s.items
	s.items = nil
	return cleared
}

func (s *memoryStore[T]) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func pointers[T any](in []T) []*T {
	out := make([]*T, len(in))
	for i := range in {
		out[i] = &in[i]
	}
	return out
}

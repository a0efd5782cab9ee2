package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/eslsoft/studytrack/internal/entity"
	"github.com/eslsoft/studytrack/internal/repository"
)

// MemoryStore is a mutex-guarded map keyed by entity id. All returns entities
// in insertion order so that traversals are deterministic. Entities that
// implement Clone are copied on the way in and out, so callers never share
// slices with the stored value.
type MemoryStore[T repository.Entity] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]T
	order []uuid.UUID
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore[T repository.Entity]() *MemoryStore[T] {
	return &MemoryStore[T]{items: make(map[uuid.UUID]T)}
}

// Add inserts or replaces item. Replacing keeps the original position.
func (s *MemoryStore[T]) Add(ctx context.Context, item *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if item == nil {
		return entity.ErrInvalidID
	}
	id := (*item).GetID()
	if id == uuid.Nil {
		return entity.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		s.order = append(s.order, id)
	}
	s.items[id] = clone(*item)
	return nil
}

func (s *MemoryStore[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	item = clone(item)
	return &item, nil
}

func (s *MemoryStore[T]) All(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.items[id]))
	}
	return out, nil
}

// Delete removes id; deleting an unknown id is a no-op.
func (s *MemoryStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return nil
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len reports the number of stored entities.
func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Reset drops every stored entity.
func (s *MemoryStore[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[uuid.UUID]T)
	s.order = nil
}

// update applies fn to the stored entity under the write lock. Unknown ids are ignored.
func (s *MemoryStore[T]) update(ctx context.Context, id uuid.UUID, fn func(*T)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil
	}
	fn(&item)
	s.items[id] = item
	return nil
}

type cloner[T any] interface {
	Clone() T
}

func clone[T any](item T) T {
	if c, ok := any(item).(cloner[T]); ok {
		return c.Clone()
	}
	return item
}

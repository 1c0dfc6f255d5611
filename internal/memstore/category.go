package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-faster/errors"

	"github.com/snapmen/storefront/internal/domain/product"
)

// ErrCategoryNotFound is returned when a category ID has no entry.
var ErrCategoryNotFound = errors.New("category not found")

var _ product.CategoryRepository = (*CategoryStore)(nil)

// CategoryStore implements product.CategoryRepository in memory.
type CategoryStore struct {
	mu         sync.RWMutex
	categories []product.Category
	nextSeq    int
}

// NewCategoryStore returns a CategoryStore seeded with the given hubs.
func NewCategoryStore(seed []product.Category) *CategoryStore {
	s := &CategoryStore{categories: make([]product.Category, len(seed))}
	copy(s.categories, seed)
	return s
}

// List returns all categories in insertion order.
func (s *CategoryStore) List(_ context.Context) ([]product.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]product.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// Upsert replaces the category with a matching ID, or appends a new one
// (generating an ID when empty).
func (s *CategoryStore) Upsert(_ context.Context, c product.Category) (*product.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID != "" {
		for i := range s.categories {
			if s.categories[i].ID == c.ID {
				s.categories[i] = c
				return &c, nil
			}
		}
	} else {
		s.nextSeq++
		c.ID = fmt.Sprintf("CAT-%d", s.nextSeq)
	}
	s.categories = append(s.categories, c)
	return &c, nil
}

// Delete removes the category; products mapped to it keep their (now
// dangling) category name, as the original admin flow warns.
func (s *CategoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return ErrCategoryNotFound
}

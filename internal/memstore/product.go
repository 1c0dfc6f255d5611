// Package memstore provides the in-memory repositories behind the storefront.
// All state lives in process memory for the life of the server; nothing
// survives a restart. Every store is safe for concurrent use.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/snapmen/storefront/internal/domain/product"
)

var _ product.Repository = (*ProductStore)(nil)

// ProductStore implements product.Repository over an ordered in-memory slice.
type ProductStore struct {
	mu       sync.RWMutex
	products []product.Product
	nextSeq  int
}

// NewProductStore returns a ProductStore seeded with the given catalog.
func NewProductStore(seed []product.Product) *ProductStore {
	s := &ProductStore{products: make([]product.Product, len(seed))}
	copy(s.products, seed)
	return s
}

// List returns the catalog in insertion order, newest admin additions first.
func (s *ProductStore) List(_ context.Context) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]product.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// GetByID returns a single product by its identifier.
func (s *ProductStore) GetByID(_ context.Context, id string) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, product.ErrNotFound
}

// GetByIDs returns the products matching any of the given IDs, preserving
// catalog order. Missing IDs are skipped.
func (s *ProductStore) GetByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	var out []product.Product
	for _, p := range s.products {
		if _, ok := want[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Create prepends the product to the catalog, generating an ID when the
// admin form left it empty.
func (s *ProductStore) Create(_ context.Context, p product.Product) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		s.nextSeq++
		p.ID = fmt.Sprintf("P-%d", s.nextSeq)
	}
	s.products = append([]product.Product{p}, s.products...)
	return &p, nil
}

// Update replaces the stored product with the same ID.
func (s *ProductStore) Update(_ context.Context, p product.Product) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			return &p, nil
		}
	}
	return nil, product.ErrNotFound
}

// Delete removes the product with the given ID.
func (s *ProductStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return product.ErrNotFound
}

// DecrementStock lowers the stock count by qty, floored at zero.
func (s *ProductStore) DecrementStock(_ context.Context, id string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			if s.products[i].StockCount -= qty; s.products[i].StockCount < 0 {
				s.products[i].StockCount = 0
			}
			return nil
		}
	}
	return product.ErrNotFound
}

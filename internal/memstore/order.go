package memstore

import (
	"context"
	"sync"

	"github.com/snapmen/storefront/internal/domain/order"
)

var _ order.Repository = (*OrderStore)(nil)

// OrderStore implements order.Repository in memory, newest order first.
type OrderStore struct {
	mu     sync.RWMutex
	orders []order.Order
}

// NewOrderStore returns an empty OrderStore.
func NewOrderStore() *OrderStore {
	return &OrderStore{}
}

// Insert prepends the order so History lists newest first.
func (s *OrderStore) Insert(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = append([]order.Order{*o}, s.orders...)
	return nil
}

// List returns all orders, newest first.
func (s *OrderStore) List(_ context.Context) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]order.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

// GetByID returns the order with the given identifier.
func (s *OrderStore) GetByID(_ context.Context, id string) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			o := s.orders[i]
			return &o, nil
		}
	}
	return nil, order.ErrNotFound
}

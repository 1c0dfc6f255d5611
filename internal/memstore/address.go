package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/snapmen/storefront/internal/domain/address"
)

var _ address.Book = (*AddressStore)(nil)

// AddressStore implements address.Book in memory.
type AddressStore struct {
	mu    sync.RWMutex
	addrs []address.Address
}

// NewAddressStore returns an AddressStore seeded with the given entries.
func NewAddressStore(seed []address.Address) *AddressStore {
	s := &AddressStore{addrs: make([]address.Address, len(seed))}
	copy(s.addrs, seed)
	return s
}

// List returns all addresses in insertion order.
func (s *AddressStore) List(_ context.Context) ([]address.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]address.Address, len(s.addrs))
	copy(out, s.addrs)
	return out, nil
}

// Add appends the address, generating an ID when empty. The first address
// ever added becomes the default.
func (s *AddressStore) Add(_ context.Context, a address.Address) (*address.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.IsDefault = len(s.addrs) == 0
	s.addrs = append(s.addrs, a)
	return &a, nil
}

// Default returns the entry marked default, falling back to the first in
// insertion order when none is marked.
func (s *AddressStore) Default(_ context.Context) (*address.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.addrs) == 0 {
		return nil, address.ErrNoAddress
	}
	for i := range s.addrs {
		if s.addrs[i].IsDefault {
			a := s.addrs[i]
			return &a, nil
		}
	}
	a := s.addrs[0]
	return &a, nil
}

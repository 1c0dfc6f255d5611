package memstore

import (
	"context"
	"sync"

	"github.com/snapmen/storefront/internal/domain/store"
)

var _ store.Repository = (*ConfigStore)(nil)

// ConfigStore implements store.Repository over a single in-memory value.
type ConfigStore struct {
	mu  sync.RWMutex
	cfg store.Config
}

// NewConfigStore returns a ConfigStore holding the given configuration.
func NewConfigStore(cfg store.Config) *ConfigStore {
	return &ConfigStore{cfg: cfg}
}

// Get returns the current configuration.
func (s *ConfigStore) Get(_ context.Context) (store.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg, nil
}

// Update replaces the configuration wholesale, as the admin system tab does.
func (s *ConfigStore) Update(_ context.Context, c store.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = c
	return nil
}

// FreeShippingMin returns the current free-shipping threshold for the
// pricing engine.
func (s *ConfigStore) FreeShippingMin(_ context.Context) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.FreeShippingMin
}

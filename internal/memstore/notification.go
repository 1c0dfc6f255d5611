package memstore

import (
	"context"
	"sync"

	"github.com/snapmen/storefront/internal/domain/notification"
)

var _ notification.Feed = (*NotificationStore)(nil)

// NotificationStore implements notification.Feed in memory.
type NotificationStore struct {
	mu    sync.RWMutex
	items []notification.Notification
}

// NewNotificationStore returns a NotificationStore seeded with the given feed.
func NewNotificationStore(seed []notification.Notification) *NotificationStore {
	s := &NotificationStore{items: make([]notification.Notification, len(seed))}
	copy(s.items, seed)
	return s
}

// List returns the inbox feed, most recent first.
func (s *NotificationStore) List(_ context.Context) ([]notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]notification.Notification, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Clear empties the inbox.
func (s *NotificationStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}

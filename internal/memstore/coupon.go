package memstore

import (
	"context"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/google/uuid"

	"github.com/snapmen/storefront/internal/domain/coupon"
)

// Sized for bulk promo-code imports; the handful of admin-created coupons
// never gets near this.
const (
	couponFilterCapacity = 1_000_000
	couponFilterFPR      = 0.001
)

var _ coupon.Repository = (*CouponStore)(nil)

// CouponStore implements coupon.Repository in memory. Lookups go through a
// bloom filter over the codes first: a negative test settles "no such code"
// without touching the map, and false positives simply fall through to the
// map, so deleted coupons stay correctly invisible.
type CouponStore struct {
	mu      sync.RWMutex
	order  []string // uppercase codes in insertion order
	byCode map[string]coupon.Coupon
	filter *bloom.BloomFilter
}

// NewCouponStore returns a CouponStore seeded with the given coupons.
func NewCouponStore(seed []coupon.Coupon) *CouponStore {
	s := &CouponStore{
		byCode: make(map[string]coupon.Coupon, len(seed)),
		filter: bloom.NewWithEstimates(couponFilterCapacity, couponFilterFPR),
	}
	for _, c := range seed {
		s.put(c)
	}
	return s
}

// put stores the coupon under its uppercase code. Caller holds the lock (or
// is the constructor).
func (s *CouponStore) put(c coupon.Coupon) {
	key := strings.ToUpper(c.Code)
	if _, exists := s.byCode[key]; !exists {
		s.order = append(s.order, key)
		s.filter.AddString(key)
	}
	s.byCode[key] = c
}

// List returns all coupons in insertion order.
func (s *CouponStore) List(_ context.Context) ([]coupon.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]coupon.Coupon, 0, len(s.order))
	for _, key := range s.order {
		if c, ok := s.byCode[key]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// FindByCode looks up a coupon by its code, case-insensitively. Returns
// coupon.ErrInvalidCoupon when no such code exists.
func (s *CouponStore) FindByCode(_ context.Context, code string) (*coupon.Coupon, error) {
	key := strings.ToUpper(code)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.filter.TestString(key) {
		return nil, coupon.ErrInvalidCoupon
	}
	c, ok := s.byCode[key]
	if !ok {
		return nil, coupon.ErrInvalidCoupon
	}
	return &c, nil
}

// Create adds a new coupon, generating an ID when the admin form left it
// empty. An existing code is overwritten, matching last-write-wins admin
// semantics.
func (s *CouponStore) Create(_ context.Context, c coupon.Coupon) (*coupon.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Code = strings.ToUpper(c.Code)
	s.put(c)
	return &c, nil
}

// Update replaces the coupon with the matching ID.
func (s *CouponStore) Update(_ context.Context, c coupon.Coupon) (*coupon.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.Code = strings.ToUpper(c.Code)
	for key, existing := range s.byCode {
		if existing.ID == c.ID {
			// A code change moves the entry; the old code stays in the
			// bloom filter but resolves to nothing, which is harmless.
			if key != c.Code {
				delete(s.byCode, key)
				s.removeFromOrder(key)
			}
			s.put(c)
			return &c, nil
		}
	}
	return nil, coupon.ErrInvalidCoupon
}

// Delete removes the coupon with the given ID.
func (s *CouponStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, existing := range s.byCode {
		if existing.ID == id {
			delete(s.byCode, key)
			s.removeFromOrder(key)
			return nil
		}
	}
	return coupon.ErrInvalidCoupon
}

// Import bulk-adds coupons produced by the promo-ingest tool. Existing codes
// are left untouched so admin-curated rules win over imported defaults.
func (s *CouponStore) Import(_ context.Context, coupons []coupon.Coupon) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, c := range coupons {
		key := strings.ToUpper(c.Code)
		if _, exists := s.byCode[key]; exists {
			continue
		}
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		c.Code = key
		s.put(c)
		added++
	}
	return added
}

func (s *CouponStore) removeFromOrder(key string) {
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// Package cart holds the single-session working state of the storefront:
// the cart lines, the applied coupon, and the wishlist. The engine packages
// are invoked against snapshots of this state.
package cart

import (
	"sync"

	"github.com/snapmen/storefront/internal/domain/coupon"
	"github.com/snapmen/storefront/internal/domain/pricing"
	"github.com/snapmen/storefront/internal/domain/product"
)

// Line is a product snapshot plus the ordered quantity.
type Line struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Session is the mutable cart state. All methods are safe for concurrent
// use; reads return copies so callers never observe a torn mutation.
type Session struct {
	mu      sync.Mutex
	lines   []Line
	applied *coupon.Coupon
}

// NewSession returns an empty cart session.
func NewSession() *Session {
	return &Session{}
}

// Add puts one unit of the product into the cart, or bumps the quantity of
// an existing line. Zero-stock products are rejected with
// product.ErrOutOfStock; the caller surfaces that to the user.
func (s *Session) Add(p product.Product) error {
	if !p.InStock() {
		return product.ErrOutOfStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID == p.ID {
			s.lines[i].Quantity++
			return nil
		}
	}
	s.lines = append(s.lines, Line{Product: p, Quantity: 1})
	return nil
}

// UpdateQuantity adjusts a line's quantity by delta, never dropping below 1.
// Unknown product IDs are a no-op.
func (s *Session) UpdateQuantity(productID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			if s.lines[i].Quantity += delta; s.lines[i].Quantity < 1 {
				s.lines[i].Quantity = 1
			}
			return
		}
	}
}

// Remove deletes the line for the given product. Unknown IDs are a no-op.
// The applied coupon is deliberately left untouched even if the remaining
// subtotal falls below its minimum order threshold.
func (s *Session) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a snapshot of the cart contents.
func (s *Session) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// PricingItems projects the cart lines into the pricing engine's input.
func (s *Session) PricingItems() []pricing.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]pricing.LineItem, len(s.lines))
	for i, l := range s.lines {
		items[i] = pricing.LineItem{
			ProductID: l.Product.ID,
			MRP:       l.Product.MRP,
			Price:     l.Product.Price,
			Quantity:  l.Quantity,
		}
	}
	return items
}

// Count returns the number of distinct lines in the cart.
func (s *Session) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// ApplyCoupon selects the coupon for this session, replacing any previous
// selection. Eligibility (active flag and minimum order against the current
// merchandise subtotal) is checked here and only here.
func (s *Session) ApplyCoupon(c coupon.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var base int64
	for _, l := range s.lines {
		base += l.Product.Price * int64(l.Quantity)
	}
	if !c.EligibleFor(base) {
		return coupon.ErrNotEligible
	}

	s.applied = &c
	return nil
}

// ClearCoupon deselects the applied coupon, if any.
func (s *Session) ClearCoupon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = nil
}

// AppliedCoupon returns a copy of the currently applied coupon, or nil.
func (s *Session) AppliedCoupon() *coupon.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.applied == nil {
		return nil
	}
	c := *s.applied
	return &c
}

// Clear empties the cart and resets the coupon selection. Called after a
// successful order placement.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.applied = nil
}

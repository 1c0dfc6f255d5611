package cart

import "sync"

// Wishlist is the session's set of saved product IDs.
type Wishlist struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewWishlist returns an empty wishlist.
func NewWishlist() *Wishlist {
	return &Wishlist{ids: make(map[string]struct{})}
}

// Toggle flips membership for the given product ID and reports whether the
// product is wishlisted after the call.
func (w *Wishlist) Toggle(productID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.ids[productID]; ok {
		delete(w.ids, productID)
		return false
	}
	w.ids[productID] = struct{}{}
	return true
}

// Has reports whether the product is on the wishlist.
func (w *Wishlist) Has(productID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.ids[productID]
	return ok
}

// IDs returns a snapshot of the wishlisted product IDs.
func (w *Wishlist) IDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.ids))
	for id := range w.ids {
		out = append(out, id)
	}
	return out
}

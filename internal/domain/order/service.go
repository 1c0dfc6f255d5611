package order

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/snapmen/storefront/internal/cart"
	"github.com/snapmen/storefront/internal/domain/address"
	"github.com/snapmen/storefront/internal/domain/pricing"
	"github.com/snapmen/storefront/internal/domain/product"
)

// ShippingConfig supplies the free-shipping threshold at placement time,
// so admin edits to the store configuration take effect immediately.
type ShippingConfig interface {
	FreeShippingMin(ctx context.Context) int64
}

// Service owns order placement: it prices the cart snapshot, assembles the
// order record, applies the stock decrement, and records the order.
type Service struct {
	session  *cart.Session
	builder  *Builder
	products product.Repository
	book     address.Book
	orders   Repository
	shipping ShippingConfig
}

// NewService creates an order Service with the required collaborators.
func NewService(
	session *cart.Session,
	builder *Builder,
	products product.Repository,
	book address.Book,
	orders Repository,
	shipping ShippingConfig,
) *Service {
	return &Service{
		session:  session,
		builder:  builder,
		products: products,
		book:     book,
		orders:   orders,
		shipping: shipping,
	}
}

// Place turns the current cart session into an order.
//
// The stock decrement and order insert happen back to back with nothing in
// between; in this single-process design that pair is effectively atomic. A
// port to shared storage must wrap the two in one transaction. The cart and
// coupon selection are cleared only after assembly succeeds.
func (s *Service) Place(ctx context.Context, paymentMethod string) (*Order, error) {
	lines := s.session.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	applied := s.session.AppliedCoupon()
	bd := pricing.Compute(s.session.PricingItems(), applied, s.shipping.FreeShippingMin(ctx))

	addr, err := s.book.Default(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "resolve delivery address")
	}

	o := s.builder.Build(lines, bd, applied, *addr, paymentMethod)

	for _, l := range lines {
		if err := s.products.DecrementStock(ctx, l.Product.ID, l.Quantity); err != nil {
			return nil, errors.Wrapf(err, "decrement stock for %s", l.Product.ID)
		}
	}

	if err := s.orders.Insert(ctx, o); err != nil {
		return nil, errors.Wrap(err, "record order")
	}

	s.session.Clear()
	return o, nil
}

// History returns all orders, newest first.
func (s *Service) History(ctx context.Context) ([]Order, error) {
	return s.orders.List(ctx)
}

// Get returns a single order by ID.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}

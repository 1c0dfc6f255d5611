package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapmen/storefront/internal/cart"
	"github.com/snapmen/storefront/internal/domain/address"
	"github.com/snapmen/storefront/internal/domain/coupon"
	"github.com/snapmen/storefront/internal/domain/product"
)

// --- Mock implementations ---

type mockProductRepo struct {
	stock map[string]int
}

func (m *mockProductRepo) List(_ context.Context) ([]product.Product, error) { return nil, nil }
func (m *mockProductRepo) GetByID(_ context.Context, _ string) (*product.Product, error) {
	return nil, product.ErrNotFound
}
func (m *mockProductRepo) GetByIDs(_ context.Context, _ []string) ([]product.Product, error) {
	return nil, nil
}
func (m *mockProductRepo) Create(_ context.Context, p product.Product) (*product.Product, error) {
	return &p, nil
}
func (m *mockProductRepo) Update(_ context.Context, p product.Product) (*product.Product, error) {
	return &p, nil
}
func (m *mockProductRepo) Delete(_ context.Context, _ string) error { return nil }

func (m *mockProductRepo) DecrementStock(_ context.Context, id string, qty int) error {
	if next := m.stock[id] - qty; next > 0 {
		m.stock[id] = next
	} else {
		m.stock[id] = 0
	}
	return nil
}

type mockBook struct {
	addrs []address.Address
}

func (m *mockBook) List(_ context.Context) ([]address.Address, error) { return m.addrs, nil }
func (m *mockBook) Add(_ context.Context, a address.Address) (*address.Address, error) {
	m.addrs = append(m.addrs, a)
	return &a, nil
}

func (m *mockBook) Default(_ context.Context) (*address.Address, error) {
	if len(m.addrs) == 0 {
		return nil, address.ErrNoAddress
	}
	for _, a := range m.addrs {
		if a.IsDefault {
			return &a, nil
		}
	}
	return &m.addrs[0], nil
}

type mockOrderRepo struct {
	orders []Order
}

func (m *mockOrderRepo) Insert(_ context.Context, o *Order) error {
	m.orders = append([]Order{*o}, m.orders...)
	return nil
}
func (m *mockOrderRepo) List(_ context.Context) ([]Order, error) { return m.orders, nil }
func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*Order, error) {
	for i := range m.orders {
		if m.orders[i].ID == id {
			return &m.orders[i], nil
		}
	}
	return nil, ErrNotFound
}

type fixedShipping int64

func (f fixedShipping) FreeShippingMin(_ context.Context) int64 { return int64(f) }

// --- Helpers ---

type fixture struct {
	session  *cart.Session
	products *mockProductRepo
	book     *mockBook
	orders   *mockOrderRepo
	svc      *Service
}

func newFixture(t *testing.T, addrs ...address.Address) *fixture {
	t.Helper()

	at := time.Date(2026, time.March, 5, 16, 5, 0, 0, time.UTC)
	f := &fixture{
		session:  cart.NewSession(),
		products: &mockProductRepo{stock: map[string]int{"c1": 10, "g1": 3}},
		book:     &mockBook{addrs: addrs},
		orders:   &mockOrderRepo{},
	}
	f.svc = NewService(
		f.session,
		fixedBuilder(at, 0),
		f.products,
		f.book,
		f.orders,
		fixedShipping(499),
	)
	return f
}

func (f *fixture) addShirt(t *testing.T, qty int) {
	t.Helper()
	for range qty {
		require.NoError(t, f.session.Add(product.Product{
			ID: "c1", Title: "Casual White Shirt", MRP: 1499, Price: 899, StockCount: 10,
		}))
	}
}

func TestService_Place(t *testing.T) {
	f := newFixture(t, testAddr)
	f.addShirt(t, 1)

	o, err := f.svc.Place(context.Background(), "UPI")
	require.NoError(t, err)

	assert.Equal(t, int64(944), o.Total)
	assert.Equal(t, "UPI", o.PaymentMethod)
	assert.Equal(t, testAddr, o.Address)

	// Stock decremented, order recorded, session reset.
	assert.Equal(t, 9, f.products.stock["c1"])
	require.Len(t, f.orders.orders, 1)
	assert.Zero(t, f.session.Count())
	assert.Nil(t, f.session.AppliedCoupon())
}

func TestService_PlaceEmptyCart(t *testing.T) {
	f := newFixture(t, testAddr)

	_, err := f.svc.Place(context.Background(), "UPI")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, f.orders.orders)
}

func TestService_PlaceWithCoupon(t *testing.T) {
	f := newFixture(t, testAddr)
	f.addShirt(t, 1)
	require.NoError(t, f.session.ApplyCoupon(coupon.Coupon{
		Code: "ELITE15", Kind: coupon.KindPercent, Value: 15, MinOrder: 500, Active: true,
	}))

	o, err := f.svc.Place(context.Background(), "CARD")
	require.NoError(t, err)

	assert.Equal(t, "ELITE15", o.CouponCode)
	assert.Equal(t, int64(135), o.CouponDiscount)
	assert.Equal(t, int64(802), o.Total)
}

func TestService_StockDecrementFloorsAtZero(t *testing.T) {
	f := newFixture(t, testAddr)
	// Order more units than the 3 in stock.
	for range 5 {
		require.NoError(t, f.session.Add(product.Product{
			ID: "g1", Title: "Charcoal Face Wash", MRP: 349, Price: 249, StockCount: 3,
		}))
	}

	_, err := f.svc.Place(context.Background(), "COD")
	require.NoError(t, err)
	assert.Equal(t, 0, f.products.stock["g1"])
}

func TestService_DefaultAddressFallback(t *testing.T) {
	first := address.Address{ID: "a1", Name: "First", Mobile: "1", Pincode: "1"}
	second := address.Address{ID: "a2", Name: "Second", Mobile: "2", Pincode: "2"}

	// No entry is marked default: the first in insertion order wins.
	f := newFixture(t, first, second)
	f.addShirt(t, 1)

	o, err := f.svc.Place(context.Background(), "UPI")
	require.NoError(t, err)
	assert.Equal(t, "a1", o.Address.ID)
}

func TestService_PlaceWithoutAddress(t *testing.T) {
	f := newFixture(t)
	f.addShirt(t, 1)

	_, err := f.svc.Place(context.Background(), "UPI")
	assert.ErrorIs(t, err, address.ErrNoAddress)

	// Failed placement must leave the cart intact.
	assert.Equal(t, 1, f.session.Count())
	assert.Empty(t, f.orders.orders)
}

func TestService_HistoryNewestFirst(t *testing.T) {
	f := newFixture(t, testAddr)

	f.addShirt(t, 1)
	first, err := f.svc.Place(context.Background(), "UPI")
	require.NoError(t, err)

	f.addShirt(t, 1)
	second, err := f.svc.Place(context.Background(), "COD")
	require.NoError(t, err)

	history, err := f.svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.PaymentMethod, history[0].PaymentMethod)
	assert.Equal(t, first.PaymentMethod, history[1].PaymentMethod)
}

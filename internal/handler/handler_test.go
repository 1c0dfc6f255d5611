package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapmen/storefront/internal/cart"
	"github.com/snapmen/storefront/internal/domain/address"
	"github.com/snapmen/storefront/internal/domain/coupon"
	"github.com/snapmen/storefront/internal/domain/notification"
	"github.com/snapmen/storefront/internal/domain/order"
	"github.com/snapmen/storefront/internal/domain/product"
	"github.com/snapmen/storefront/internal/domain/store"
	"github.com/snapmen/storefront/internal/memstore"
)

const testAdminKey = "test-admin-key"

// newTestRouter assembles the full API on in-memory stores with a small
// fixture catalog. The order builder is pinned so IDs and dates are stable.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	products := memstore.NewProductStore([]product.Product{
		{ID: "P1", Title: "Air Max Sneakers", Brand: "Nike", Category: "Footwear", SubCategory: "Sneakers", Price: 899, MRP: 1199, StockCount: 10},
		{ID: "P2", Title: "Denim Jacket", Brand: "Levis", Category: "Apparel", SubCategory: "Jackets", Price: 1499, MRP: 1999, StockCount: 5},
		{ID: "P3", Title: "Gone Phone Case", Brand: "Spigen", Category: "Accessories", SubCategory: "Cases", Price: 299, MRP: 499, StockCount: 0},
	})
	categories := memstore.NewCategoryStore([]product.Category{
		{ID: "CAT-1", Name: "Footwear", SubCategories: []product.SubCategory{{ID: "SC-1", Name: "Sneakers"}}},
	})
	coupons := memstore.NewCouponStore([]coupon.Coupon{
		{ID: "C1", Code: "SNAP200", Kind: coupon.KindFlat, Value: 200, MinOrder: 1000, Active: true},
		{ID: "C2", Code: "ELITE15", Kind: coupon.KindPercent, Value: 15, MinOrder: 500, Active: true},
	})
	addresses := memstore.NewAddressStore(nil)
	orderStore := memstore.NewOrderStore()
	config := memstore.NewConfigStore(store.Config{AppName: "SnapMEN", FreeShippingMin: 499})
	feed := memstore.NewNotificationStore([]notification.Notification{
		{ID: "N1", Title: "Welcome", Desc: "Fresh drops every Friday", Kind: "promo"},
	})

	session := cart.NewSession()
	builder := order.NewBuilderAt(
		func() time.Time { return time.Date(2026, time.March, 5, 16, 5, 0, 0, time.UTC) },
		func(int) int { return 623456 },
	)
	service := order.NewService(session, builder, products, addresses, orderStore, config)

	h := NewHandler(
		Config{AdminKey: testAdminKey},
		products, categories, coupons,
		service, session, cart.NewWishlist(),
		addresses, config, feed,
	)
	return h.Routes()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestListProductsFilters(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"all", "/api/products", []string{"P1", "P2", "P3"}},
		{"by category", "/api/products?category=Footwear", []string{"P1"}},
		{"by subcategory", "/api/products?category=Apparel&subcategory=Jackets", []string{"P2"}},
		{"text search matches title", "/api/products?q=denim", []string{"P2"}},
		{"text search matches brand", "/api/products?q=nike", []string{"P1"}},
		{"no match", "/api/products?q=sofa", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, rec.Code)

			got := decode[[]product.Product](t, rec)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			if tt.want == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.want, ids)
			}
		})
	}
}

func TestGetProduct(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/products/P1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Air Max Sneakers", decode[product.Product](t, rec).Title)

	rec = doJSON(t, router, http.MethodGet, "/api/products/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartFlowWithBreakdown(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", map[string]string{"productId": "P1"})
	require.Equal(t, http.StatusOK, rec.Code)

	view := decode[cartView](t, rec)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Count)
	assert.Equal(t, int64(1199), view.Breakdown.RawSubtotal)
	assert.Equal(t, int64(300), view.Breakdown.ItemDiscount)
	assert.Equal(t, int64(45), view.Breakdown.Tax)
	assert.Equal(t, int64(0), view.Breakdown.Shipping)
	assert.Equal(t, int64(944), view.Breakdown.Total)

	// Same product again merges into the existing line.
	rec = doJSON(t, router, http.MethodPost, "/api/cart/items", map[string]string{"productId": "P1"})
	view = decode[cartView](t, rec)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)

	// Stepper down, then remove.
	rec = doJSON(t, router, http.MethodPatch, "/api/cart/items/P1", map[string]int{"delta": -1})
	view = decode[cartView](t, rec)
	assert.Equal(t, 1, view.Items[0].Quantity)

	rec = doJSON(t, router, http.MethodDelete, "/api/cart/items/P1", nil)
	view = decode[cartView](t, rec)
	assert.Empty(t, view.Items)
	assert.Equal(t, int64(0), view.Breakdown.Total)
}

func TestAddOutOfStockProduct(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", map[string]string{"productId": "P3"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	view := decode[cartView](t, doJSON(t, router, http.MethodGet, "/api/cart", nil))
	assert.Empty(t, view.Items)
}

func TestCouponListEligibility(t *testing.T) {
	router := newTestRouter(t)

	// 899 taxable: ELITE15 (min 500) eligible, SNAP200 (min 1000) not.
	doJSON(t, router, http.MethodPost, "/api/cart/items", map[string]string{"productId": "P1"})

	rec := doJSON(t, router, http.MethodGet, "/api/coupons", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[[]couponView](t, rec)
	require.Len(t, got, 2)
	byCode := map[string]bool{}
	for _, c := range got {
		byCode[c.Code] = c.Eligible
	}
	assert.False(t, byCode["SNAP200"])
	assert.True(t, byCode["ELITE15"])
}

func TestApplyAndClearCoupon(t *testing.T) {
	router := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/cart/items", map[string]string{"productId": "P1"})

	rec := doJSON(t, router, http.MethodPut, "/api/cart/coupon", map[string]string{"code": "elite15"})
	require.Equal(t, http.StatusOK, rec.Code)

	view := decode[cartView](t, rec)
	require.NotNil(t, view.Coupon)
	assert.Equal(t, "ELITE15", view.Coupon.Code)
	assert.Equal(t, int64(135), view.Breakdown.CouponDiscount)
	assert.Equal(t, int64(802), view.Breakdown.Total)

	rec = doJSON(t, router, http.MethodDelete, "/api/cart/coupon", nil)
	view = decode[cartView](t, rec)
	assert.Nil(t, view.Coupon)
	assert.Equal(t, int64(944), view.Breakdown.Total)
}

func TestApplyCouponRejections(t *testing.T) {
	router := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/cart/items", map[string]string{"productId": "P1"})

	rec := doJSON(t, router, http.MethodPut, "/api/cart/coupon", map[string]string{"code": "BOGUS"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/cart/coupon", map[string]string{"code": "SNAP200"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCheckoutQuote(t *testing.T) {
	router := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/cart/items", map[string]string{"productId": "P1"})

	rec := doJSON(t, router, http.MethodGet, "/api/checkout/quote?method=upi", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]int64](t, rec)
	assert.Equal(t, int64(50), got["methodOffer"])
	assert.Equal(t, int64(849), got["payable"])

	rec = doJSON(t, router, http.MethodGet, "/api/checkout/quote?method=card", nil)
	got = decode[map[string]int64](t, rec)
	assert.Equal(t, int64(0), got["methodOffer"])
	assert.Equal(t, int64(899), got["payable"])
}

func TestPlaceOrderFlow(t *testing.T) {
	router := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/cart/items", map[string]string{"productId": "P1"})

	// No address yet: placement fails and the cart survives.
	rec := doJSON(t, router, http.MethodPost, "/api/orders", map[string]string{"paymentMethod": "upi"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	view := decode[cartView](t, doJSON(t, router, http.MethodGet, "/api/cart", nil))
	require.Len(t, view.Items, 1)

	rec = doJSON(t, router, http.MethodPost, "/api/addresses", map[string]string{
		"name": "Aryan Sharma", "mobile": "9876543210", "pincode": "400001",
		"house": "B-204, Sunrise Apartments", "area": "Andheri West", "type": "HOME",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/orders", map[string]string{"paymentMethod": "upi"})
	require.Equal(t, http.StatusCreated, rec.Code)

	placed := decode[order.Order](t, rec)
	assert.Equal(t, "ORD723456", placed.ID)
	assert.Equal(t, int64(944), placed.Total)
	assert.Equal(t, "5 Mar 2026", placed.Date)
	require.Len(t, placed.Timeline, 1)
	assert.Equal(t, "Confirmed", placed.Timeline[0].Status)

	// Cart cleared, stock decremented, order visible in history.
	view = decode[cartView](t, doJSON(t, router, http.MethodGet, "/api/cart", nil))
	assert.Empty(t, view.Items)

	p := decode[product.Product](t, doJSON(t, router, http.MethodGet, "/api/products/P1", nil))
	assert.Equal(t, 9, p.StockCount)

	history := decode[[]order.Order](t, doJSON(t, router, http.MethodGet, "/api/orders", nil))
	require.Len(t, history, 1)
	assert.Equal(t, "ORD723456", history[0].ID)

	rec = doJSON(t, router, http.MethodGet, "/api/orders/ORD723456", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodGet, "/api/orders/ORD000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/orders", map[string]string{"paymentMethod": "cod"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddAddressValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/addresses", map[string]string{
		"name": "A", "mobile": "12345", "pincode": "400001",
		"house": "x", "area": "y",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mobile")

	// Nothing was persisted.
	addrs := decode[[]address.Address](t, doJSON(t, router, http.MethodGet, "/api/addresses", nil))
	assert.Empty(t, addrs)
}

func TestFirstAddressBecomesDefault(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/addresses", map[string]string{
		"name": "Aryan Sharma", "mobile": "9876543210", "pincode": "400001",
		"house": "B-204", "area": "Andheri West",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decode[address.Address](t, rec).IsDefault)
}

func TestWishlistToggle(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/wishlist/P2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[wishlistToggleResp](t, rec).Wished)

	got := decode[[]product.Product](t, doJSON(t, router, http.MethodGet, "/api/wishlist", nil))
	require.Len(t, got, 1)
	assert.Equal(t, "P2", got[0].ID)

	rec = doJSON(t, router, http.MethodPost, "/api/wishlist/P2", nil)
	assert.False(t, decode[wishlistToggleResp](t, rec).Wished)

	rec = doJSON(t, router, http.MethodPost, "/api/wishlist/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotifications(t *testing.T) {
	router := newTestRouter(t)

	got := decode[[]notification.Notification](t, doJSON(t, router, http.MethodGet, "/api/notifications", nil))
	require.Len(t, got, 1)

	rec := doJSON(t, router, http.MethodDelete, "/api/notifications", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	got = decode[[]notification.Notification](t, doJSON(t, router, http.MethodGet, "/api/notifications", nil))
	assert.Empty(t, got)
}

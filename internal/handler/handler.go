// Package handler exposes the storefront and admin HTTP API. Handlers stay
// thin: decode, validate, delegate to the domain, encode. All money fields
// are whole rupees.
package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/snapmen/storefront/internal/cart"
	"github.com/snapmen/storefront/internal/domain/address"
	"github.com/snapmen/storefront/internal/domain/coupon"
	"github.com/snapmen/storefront/internal/domain/notification"
	"github.com/snapmen/storefront/internal/domain/order"
	"github.com/snapmen/storefront/internal/domain/product"
	"github.com/snapmen/storefront/internal/domain/store"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// AdminKey guards the /api/admin subtree. Empty disables admin routes.
	AdminKey string
}

// Handler wires the HTTP surface to the domain services and repositories.
type Handler struct {
	cfg Config

	products   product.Repository
	categories product.CategoryRepository
	coupons    coupon.Repository
	orders     *order.Service
	session    *cart.Session
	wishlist   *cart.Wishlist
	addresses  address.Book
	config     store.Repository
	feed       notification.Feed

	validate *validator.Validate
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	cfg Config,
	products product.Repository,
	categories product.CategoryRepository,
	coupons coupon.Repository,
	orders *order.Service,
	session *cart.Session,
	wishlist *cart.Wishlist,
	addresses address.Book,
	config store.Repository,
	feed notification.Feed,
) *Handler {
	return &Handler{
		cfg:        cfg,
		products:   products,
		categories: categories,
		coupons:    coupons,
		orders:     orders,
		session:    session,
		wishlist:   wishlist,
		addresses:  addresses,
		config:     config,
		feed:       feed,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Routes returns the full API router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/api", func(api chi.Router) {
		api.Get("/products", h.listProducts)
		api.Get("/products/{id}", h.getProduct)
		api.Get("/categories", h.listCategories)
		api.Get("/config", h.getConfig)

		api.Get("/cart", h.getCart)
		api.Post("/cart/items", h.addCartItem)
		api.Patch("/cart/items/{id}", h.updateCartItem)
		api.Delete("/cart/items/{id}", h.removeCartItem)

		api.Get("/coupons", h.listCoupons)
		api.Put("/cart/coupon", h.applyCoupon)
		api.Delete("/cart/coupon", h.clearCoupon)

		api.Get("/checkout/quote", h.checkoutQuote)
		api.Post("/orders", h.placeOrder)
		api.Get("/orders", h.listOrders)
		api.Get("/orders/{id}", h.getOrder)

		api.Get("/addresses", h.listAddresses)
		api.Post("/addresses", h.addAddress)

		api.Post("/wishlist/{id}", h.toggleWishlist)
		api.Get("/wishlist", h.listWishlist)

		api.Get("/notifications", h.listNotifications)
		api.Delete("/notifications", h.clearNotifications)

		if h.cfg.AdminKey != "" {
			api.Route("/admin", func(admin chi.Router) {
				admin.Use(h.requireAdmin)
				admin.Post("/products", h.adminCreateProduct)
				admin.Put("/products/{id}", h.adminUpdateProduct)
				admin.Delete("/products/{id}", h.adminDeleteProduct)
				admin.Post("/categories", h.adminUpsertCategory)
				admin.Put("/categories/{id}", h.adminUpsertCategory)
				admin.Delete("/categories/{id}", h.adminDeleteCategory)
				admin.Post("/coupons", h.adminCreateCoupon)
				admin.Put("/coupons/{id}", h.adminUpdateCoupon)
				admin.Delete("/coupons/{id}", h.adminDeleteCoupon)
				admin.Put("/config", h.adminUpdateConfig)
				admin.Get("/orders", h.adminListOrders)
			})
		}
	})

	return r
}

// fieldErrors flattens validator output into field→tag pairs for the
// response body.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}

package handler

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/snapmen/storefront/internal/domain/coupon"
	"github.com/snapmen/storefront/internal/domain/product"
	"github.com/snapmen/storefront/internal/domain/store"
)

// requireAdmin guards the admin subtree with a shared key, compared in
// constant time to avoid timing side-channels.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	want := sha256.Sum256([]byte(h.cfg.AdminKey))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := sha256.Sum256([]byte(r.Header.Get("X-Admin-Key")))
		if subtle.ConstantTimeCompare(want[:], got[:]) != 1 {
			respondError(w, r, http.StatusUnauthorized, "unauthorized", "invalid admin key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type adminProductReq struct {
	Title       string  `json:"title" validate:"required"`
	Price       int64   `json:"price" validate:"required,gt=0"`
	MRP         int64   `json:"mrp" validate:"required,gtefield=Price"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	Image       string  `json:"image"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category" validate:"required"`
	SubCategory string  `json:"subCategory"`
	Description string  `json:"description"`
	StockCount  int     `json:"stockCount" validate:"gte=0"`
}

// discountPct derives the badge percentage from mrp and price, rounding
// half away from zero the way the admin form shows it.
func discountPct(mrp, price int64) int {
	if mrp <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(mrp - price).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(mrp)).
		Round(0)
	return int(pct.IntPart())
}

func (req adminProductReq) toProduct() product.Product {
	return product.Product{
		Title:       req.Title,
		Price:       req.Price,
		MRP:         req.MRP,
		DiscountPct: discountPct(req.MRP, req.Price),
		Rating:      req.Rating,
		Image:       req.Image,
		Brand:       req.Brand,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Description: req.Description,
		StockCount:  req.StockCount,
	}
}

func (h *Handler) adminCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req adminProductReq
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, r, fieldErrors(err))
		return
	}

	created, err := h.products.Create(r.Context(), req.toProduct())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "internal", "could not create product")
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (h *Handler) adminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req adminProductReq
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, r, fieldErrors(err))
		return
	}

	p := req.toProduct()
	p.ID = chi.URLParam(r, "id")
	updated, err := h.products.Update(r.Context(), p)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, r, http.StatusInternalServerError, "internal", "could not update product")
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (h *Handler) adminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, r, http.StatusInternalServerError, "internal", "could not delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type adminCategoryReq struct {
	Name          string                `json:"name" validate:"required"`
	Icon          string                `json:"icon"`
	Banner        string                `json:"banner"`
	SubCategories []product.SubCategory `json:"subCategories"`
}

func (h *Handler) adminUpsertCategory(w http.ResponseWriter, r *http.Request) {
	var req adminCategoryReq
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, r, fieldErrors(err))
		return
	}

	saved, err := h.categories.Upsert(r.Context(), product.Category{
		ID:            chi.URLParam(r, "id"),
		Name:          req.Name,
		Icon:          req.Icon,
		Banner:        req.Banner,
		SubCategories: req.SubCategories,
	})
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "internal", "could not save category")
		return
	}
	respondJSON(w, r, http.StatusOK, saved)
}

func (h *Handler) adminDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, http.StatusNotFound, "not_found", "category not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type adminCouponReq struct {
	Code        string `json:"code" validate:"required,min=3,max=20"`
	Kind        string `json:"discountType" validate:"required,oneof=FLAT PERCENT"`
	Value       int64  `json:"value" validate:"required,gt=0"`
	MinOrder    int64  `json:"minOrder" validate:"gte=0"`
	Active      bool   `json:"isActive"`
	Description string `json:"description"`
}

func (req adminCouponReq) toCoupon() coupon.Coupon {
	return coupon.Coupon{
		Code:        req.Code,
		Kind:        coupon.Kind(req.Kind),
		Value:       req.Value,
		MinOrder:    req.MinOrder,
		Active:      req.Active,
		Description: req.Description,
	}
}

func (h *Handler) adminCreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req adminCouponReq
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, r, fieldErrors(err))
		return
	}

	created, err := h.coupons.Create(r.Context(), req.toCoupon())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "internal", "could not create coupon")
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (h *Handler) adminUpdateCoupon(w http.ResponseWriter, r *http.Request) {
	var req adminCouponReq
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, r, fieldErrors(err))
		return
	}

	c := req.toCoupon()
	c.ID = chi.URLParam(r, "id")
	updated, err := h.coupons.Update(r.Context(), c)
	if err != nil {
		respondError(w, r, http.StatusNotFound, "not_found", "coupon not found")
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (h *Handler) adminDeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.coupons.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, http.StatusNotFound, "not_found", "coupon not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) adminUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg store.Config
	if !decodeBody(w, r, &cfg) {
		return
	}
	details := make(map[string]string)
	if cfg.AppName == "" {
		details["appName"] = "required"
	}
	if cfg.FreeShippingMin < 0 {
		details["freeShippingMin"] = "gte=0"
	}
	if len(details) > 0 {
		respondValidationError(w, r, details)
		return
	}

	if err := h.config.Update(r.Context(), cfg); err != nil {
		respondError(w, r, http.StatusInternalServerError, "internal", "could not update config")
		return
	}
	respondJSON(w, r, http.StatusOK, cfg)
}

func (h *Handler) adminListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.History(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "internal", "could not load orders")
		return
	}
	respondJSON(w, r, http.StatusOK, orders)
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/snapmen/storefront/internal/cart"
	"github.com/snapmen/storefront/internal/domain/coupon"
	"github.com/snapmen/storefront/internal/domain/pricing"
	"github.com/snapmen/storefront/internal/domain/product"
)

// cartView is the cart screen payload: the lines plus a live breakdown
// computed against the current free-shipping threshold.
type cartView struct {
	Items     []cart.Line       `json:"items"`
	Count     int               `json:"count"`
	Coupon    *coupon.Coupon    `json:"coupon,omitempty"`
	Breakdown pricing.Breakdown `json:"breakdown"`
}

func (h *Handler) currentCart(r *http.Request) cartView {
	return cartView{
		Items:     h.session.Lines(),
		Count:     h.session.Count(),
		Coupon:    h.session.AppliedCoupon(),
		Breakdown: pricing.Compute(h.session.PricingItems(), h.session.AppliedCoupon(), h.config.FreeShippingMin(r.Context())),
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.currentCart(r))
}

type addCartItemReq struct {
	ProductID string `json:"productId" validate:"required"`
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemReq
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, r, fieldErrors(err))
		return
	}

	p, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, r, http.StatusInternalServerError, "internal", "could not load product")
		return
	}

	if err := h.session.Add(*p); err != nil {
		respondError(w, r, http.StatusConflict, "out_of_stock", "item is out of stock")
		return
	}

	respondJSON(w, r, http.StatusOK, h.currentCart(r))
}

type updateCartItemReq struct {
	// Delta is the quantity change, +1 or -1 from the stepper buttons.
	Delta int `json:"delta" validate:"required"`
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemReq
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, r, fieldErrors(err))
		return
	}

	h.session.UpdateQuantity(chi.URLParam(r, "id"), req.Delta)
	respondJSON(w, r, http.StatusOK, h.currentCart(r))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	h.session.Remove(chi.URLParam(r, "id"))
	respondJSON(w, r, http.StatusOK, h.currentCart(r))
}

// couponView is a coupon plus its eligibility against the current cart, so
// the coupon sheet can grey out entries below their minimum.
type couponView struct {
	coupon.Coupon
	Eligible bool `json:"eligible"`
}

func (h *Handler) listCoupons(w http.ResponseWriter, r *http.Request) {
	all, err := h.coupons.List(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "internal", "could not load coupons")
		return
	}

	base := pricing.Base(h.session.PricingItems())
	out := make([]couponView, 0, len(all))
	for _, c := range all {
		if !c.Active {
			continue
		}
		out = append(out, couponView{Coupon: c, Eligible: c.EligibleFor(base)})
	}
	respondJSON(w, r, http.StatusOK, out)
}

type applyCouponReq struct {
	Code string `json:"code" validate:"required"`
}

func (h *Handler) applyCoupon(w http.ResponseWriter, r *http.Request) {
	var req applyCouponReq
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, r, fieldErrors(err))
		return
	}

	c, err := h.coupons.FindByCode(r.Context(), req.Code)
	if err != nil {
		respondError(w, r, http.StatusNotFound, "invalid_coupon", "invalid coupon code")
		return
	}

	if err := h.session.ApplyCoupon(*c); err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, "not_eligible", "cart does not meet the coupon minimum")
		return
	}

	respondJSON(w, r, http.StatusOK, h.currentCart(r))
}

func (h *Handler) clearCoupon(w http.ResponseWriter, r *http.Request) {
	h.session.ClearCoupon()
	respondJSON(w, r, http.StatusOK, h.currentCart(r))
}

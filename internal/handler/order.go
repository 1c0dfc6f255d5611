package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/snapmen/storefront/internal/domain/address"
	"github.com/snapmen/storefront/internal/domain/order"
	"github.com/snapmen/storefront/internal/domain/pricing"
)

// checkoutQuote prices the payment screen. The quote is display-only: the
// UPI incentive it carries never reaches the placed order.
func (h *Handler) checkoutQuote(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Query().Get("method")
	q := pricing.ComputeQuote(h.session.PricingItems(), method)
	respondJSON(w, r, http.StatusOK, q)
}

type placeOrderReq struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderReq
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, r, fieldErrors(err))
		return
	}

	placed, err := h.orders.Place(r.Context(), req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			respondError(w, r, http.StatusBadRequest, "empty_cart", "cart is empty")
		case errors.Is(err, address.ErrNoAddress):
			respondError(w, r, http.StatusUnprocessableEntity, "no_address", "add a delivery address first")
		default:
			zctx.From(r.Context()).Error("place order", zap.Error(err))
			respondError(w, r, http.StatusInternalServerError, "internal", "could not place order")
		}
		return
	}

	respondJSON(w, r, http.StatusCreated, placed)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.History(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "internal", "could not load orders")
		return
	}
	respondJSON(w, r, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "not_found", "order not found")
			return
		}
		respondError(w, r, http.StatusInternalServerError, "internal", "could not load order")
		return
	}
	respondJSON(w, r, http.StatusOK, o)
}

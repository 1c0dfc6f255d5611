package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/snapmen/storefront/internal/domain/address"
	"github.com/snapmen/storefront/internal/domain/product"
)

func (h *Handler) listAddresses(w http.ResponseWriter, r *http.Request) {
	addrs, err := h.addresses.List(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "internal", "could not load addresses")
		return
	}
	respondJSON(w, r, http.StatusOK, addrs)
}

type addAddressReq struct {
	Name    string `json:"name" validate:"required"`
	Mobile  string `json:"mobile" validate:"required,len=10,numeric"`
	Pincode string `json:"pincode" validate:"required,len=6,numeric"`
	House   string `json:"house" validate:"required"`
	Area    string `json:"area" validate:"required"`
	Type    string `json:"type" validate:"omitempty,oneof=HOME OFFICE"`
}

func (h *Handler) addAddress(w http.ResponseWriter, r *http.Request) {
	var req addAddressReq
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, r, fieldErrors(err))
		return
	}

	typ := address.Type(req.Type)
	if typ == "" {
		typ = address.TypeHome
	}

	added, err := h.addresses.Add(r.Context(), address.Address{
		Name:    req.Name,
		Mobile:  req.Mobile,
		Pincode: req.Pincode,
		House:   req.House,
		Area:    req.Area,
		Type:    typ,
	})
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "internal", "could not save address")
		return
	}
	respondJSON(w, r, http.StatusCreated, added)
}

type wishlistToggleResp struct {
	ProductID string `json:"productId"`
	Wished    bool   `json:"wished"`
}

func (h *Handler) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.products.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, r, http.StatusInternalServerError, "internal", "could not load product")
		return
	}
	respondJSON(w, r, http.StatusOK, wishlistToggleResp{ProductID: id, Wished: h.wishlist.Toggle(id)})
}

func (h *Handler) listWishlist(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.GetByIDs(r.Context(), h.wishlist.IDs())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "internal", "could not load wishlist")
		return
	}
	respondJSON(w, r, http.StatusOK, products)
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	ns, err := h.feed.List(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "internal", "could not load notifications")
		return
	}
	respondJSON(w, r, http.StatusOK, ns)
}

func (h *Handler) clearNotifications(w http.ResponseWriter, r *http.Request) {
	if err := h.feed.Clear(r.Context()); err != nil {
		respondError(w, r, http.StatusInternalServerError, "internal", "could not clear notifications")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/snapmen/storefront/internal/domain/product"
)

// listProducts serves the catalog, optionally narrowed by ?category=,
// ?subcategory= and a free-text ?q= over title and brand.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	all, err := h.products.List(r.Context())
	if err != nil {
		zctx.From(r.Context()).Error("list products", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "internal", "could not load products")
		return
	}

	category := r.URL.Query().Get("category")
	subCategory := r.URL.Query().Get("subcategory")
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))

	out := make([]product.Product, 0, len(all))
	for _, p := range all {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if subCategory != "" && !strings.EqualFold(p.SubCategory, subCategory) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Brand), query) {
			continue
		}
		out = append(out, p)
	}

	respondJSON(w, r, http.StatusOK, out)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, r, http.StatusInternalServerError, "internal", "could not load product")
		return
	}
	respondJSON(w, r, http.StatusOK, p)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "internal", "could not load categories")
		return
	}
	respondJSON(w, r, http.StatusOK, cats)
}

func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.config.Get(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "internal", "could not load config")
		return
	}
	respondJSON(w, r, http.StatusOK, cfg)
}

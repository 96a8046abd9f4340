package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/kshop/internal/catalog"
	"github.com/fjod/kshop/internal/session"
	"github.com/fjod/kshop/internal/view"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	lookup  catalog.Lookup
	session *session.Session
	timeout time.Duration
}

func NewProductHandler(lookup catalog.Lookup, s *session.Session, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		lookup:  lookup,
		session: s,
		timeout: timeout,
	}
}

// GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.lookup.List(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]ProductResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	respondJSON(w, http.StatusOK, &ProductsResponse{Products: resp})
}

// GET /api/v1/products/{product_id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ticket := h.session.Detail().Enter(ctx, productID)
	product, err := ticket.Wait(ctx)
	if err != nil {
		loggerFor(r).Debug("product detail lookup failed",
			zap.Int64("product_id", productID),
			zap.Error(err))
		handleError(w, r, err)
		return
	}

	resp := toProductResponse(*product)
	respondJSON(w, http.StatusOK, DetailResponse{Status: view.Loaded.String(), Product: &resp})
}

// GET /api/v1/products/view
func (h *ProductHandler) CurrentView(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toDetailResponse(h.session.Detail().Current()))
}

// DELETE /api/v1/products/view
func (h *ProductHandler) ExitView(w http.ResponseWriter, r *http.Request) {
	h.session.Detail().Exit()
	w.WriteHeader(http.StatusNoContent)
}

func parseProductID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}

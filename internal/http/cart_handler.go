package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/kshop/internal/cart"
	"github.com/fjod/kshop/internal/catalog"
	"github.com/fjod/kshop/internal/session"
	"go.uber.org/zap"
)

type CartHandler struct {
	lookup  catalog.Lookup
	session *session.Session
	timeout time.Duration
}

func NewCartHandler(lookup catalog.Lookup, s *session.Session, timeout time.Duration) *CartHandler {
	return &CartHandler{
		lookup:  lookup,
		session: s,
		timeout: timeout,
	}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	var resp CartResponse
	h.session.Read(func(c *cart.Cart) {
		resp = toCartResponse(c)
	})
	respondJSON(w, http.StatusOK, resp)
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	// the catalog call stays outside the session lock
	product, err := h.lookup.Fetch(ctx, req.ProductID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var resp CartResponse
	h.session.Mutate(func(c *cart.Cart) {
		c.AddItem(*product)
		resp = toCartResponse(c)
	})

	loggerFor(r).Debug("item added to cart",
		zap.Int64("product_id", product.ID),
		zap.Int("total_items", resp.TotalItems))
	respondJSON(w, http.StatusCreated, resp)
}

// POST /api/v1/cart/items/{product_id}/increase
func (h *CartHandler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, (*cart.Cart).IncreaseQuantity)
}

// POST /api/v1/cart/items/{product_id}/decrease
func (h *CartHandler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, (*cart.Cart).DecreaseQuantity)
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, (*cart.Cart).RemoveItem)
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	var resp CartResponse
	h.session.Mutate(func(c *cart.Cart) {
		c.Clear()
		resp = toCartResponse(c)
	})
	respondJSON(w, http.StatusOK, resp)
}

// mutateLine applies op to the line named in the path. Unknown products
// leave the cart unchanged.
func (h *CartHandler) mutateLine(w http.ResponseWriter, r *http.Request, op func(*cart.Cart, int64)) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	var resp CartResponse
	h.session.Mutate(func(c *cart.Cart) {
		op(c, productID)
		resp = toCartResponse(c)
	})
	respondJSON(w, http.StatusOK, resp)
}

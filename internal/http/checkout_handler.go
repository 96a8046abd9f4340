package http

import (
	"encoding/json"
	"net/http"

	"github.com/fjod/kshop/internal/cart"
	"github.com/fjod/kshop/internal/checkout"
	"github.com/fjod/kshop/internal/display"
	"github.com/fjod/kshop/internal/domain"
	"github.com/fjod/kshop/internal/session"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	session *session.Session
	service *checkout.Service
}

func NewCheckoutHandler(s *session.Session, service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		session: s,
		service: service,
	}
}

// GET /api/v1/checkout
func (h *CheckoutHandler) Form(w http.ResponseWriter, r *http.Request) {
	var resp CheckoutFormResponse
	h.session.Read(func(c *cart.Cart) {
		resp.Available = h.service.Available(c)
		resp.Cart = toCartResponse(c)
	})
	if !resp.Available {
		resp.Message = emptyCartMessage
	}
	respondJSON(w, http.StatusOK, resp)
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var info domain.UserInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	var (
		order *domain.Order
		err   error
	)
	h.session.Mutate(func(c *cart.Cart) {
		order, err = h.service.Submit(r.Context(), c, info)
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	loggerFor(r).Info("checkout completed",
		zap.String("order_id", order.ID.String()),
		zap.Int("total_items", order.TotalItems))

	respondJSON(w, http.StatusCreated, OrderConfirmationResponse{
		OrderID:      order.ID.String(),
		Message:      thankYouMessage,
		TotalItems:   order.TotalItems,
		DisplayTotal: display.Format(order.TotalPrice),
		PlacedAt:     order.PlacedAt,
	})
}

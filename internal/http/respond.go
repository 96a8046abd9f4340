package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fjod/kshop/internal/catalog"
	"github.com/fjod/kshop/internal/checkout"
	"github.com/fjod/kshop/internal/view"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleError maps lookup and checkout failures to HTTP statuses.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *checkout.ValidationError

	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "please correct the highlighted fields",
			Code:   "validation_failed",
			Fields: verr.Fields,
		})
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", emptyCartMessage)
	case errors.Is(err, view.ErrStale):
		respondError(w, http.StatusConflict, "superseded", "product view was replaced by a newer one")
	case errors.Is(err, catalog.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Product not found.")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "request timed out")
	case errors.Is(err, catalog.ErrTransport):
		respondJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:   "catalog is unavailable",
			Code:    "catalog_unavailable",
			Details: err.Error(),
		})
	default:
		loggerFor(r).Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fjod/cart-store/internal/inventory"
	"github.com/fjod/cart-store/internal/service"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// statusFor maps a cart or inventory error to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, inventory.ErrProductNotFound):
		return http.StatusNotFound, "product_not_found"
	case errors.Is(err, service.ErrOutOfStock):
		return http.StatusConflict, "out_of_stock"
	case errors.Is(err, service.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid_amount"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrLookupFailure):
		return http.StatusBadGateway, "inventory_unavailable"
	case errors.Is(err, service.ErrPersistFailure):
		return http.StatusInternalServerError, "persist_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

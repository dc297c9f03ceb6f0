package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/loader"
	"github.com/fjod/go_storefront/internal/receipt"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, log *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, log *zap.Logger, status int, code, message string) {
	respondJSON(w, log, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps storefront errors to HTTP status codes.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error) {
	var (
		httpStatus int
		code       string
		details    string
	)

	var loadErr *loader.LoadError
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		httpStatus = http.StatusBadRequest
		code = "invalid_quantity"
	case errors.Is(err, catalog.ErrItemNotFound), errors.Is(err, receipt.ErrReceiptNotFound):
		httpStatus = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, checkout.ErrEmptyCart):
		httpStatus = http.StatusUnprocessableEntity
		code = "empty_cart"
	case errors.Is(err, checkout.ErrIllegalTransition):
		httpStatus = http.StatusConflict
		code = "checkout_in_progress"
	case errors.As(err, &loadErr):
		httpStatus = http.StatusServiceUnavailable
		code = "catalog_unavailable"
		details = loadErr.Source
	default:
		log.Error("unhandled service error", zap.Error(err))
		respondError(w, log, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, log, httpStatus, ErrorResponse{
		Error:   err.Error(),
		Code:    code,
		Details: details,
	})
}

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/receipt"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const receiptsPath = "/api/v1/receipts/"

type CheckoutHandler struct {
	storefront Storefront
	timeout    time.Duration
	log        *zap.Logger
}

func NewCheckoutHandler(storefront Storefront, timeout time.Duration, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		storefront: storefront,
		timeout:    timeout,
		log:        orNop(log),
	}
}

type CheckoutResponseDTO struct {
	CheckoutID    string          `json:"checkout_id"`
	ReceiptName   string          `json:"receipt_name"`
	ReceiptURL    string          `json:"receipt_url,omitempty"`
	ReceiptError  string          `json:"receipt_error,omitempty"`
	TotalQuantity int             `json:"total_quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Message       string          `json:"message"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.storefront.Checkout(ctx)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	resp := CheckoutResponseDTO{
		CheckoutID:    result.Receipt.CheckoutID,
		ReceiptName:   result.Receipt.Name(),
		TotalQuantity: result.Receipt.TotalQuantity,
		TotalPrice:    result.Receipt.TotalPrice,
		Message:       result.Confirmation,
	}
	if result.FormatErr != nil {
		resp.ReceiptError = result.FormatErr.Error()
	} else {
		resp.ReceiptURL = receiptsPath + receipt.FileName(result.Receipt)
	}

	h.log.Debug("checkout response",
		zap.String("checkout_id", resp.CheckoutID),
		zap.String("request_id", getRequestID(r.Context())))
	respondJSON(w, h.log, http.StatusCreated, resp)
}

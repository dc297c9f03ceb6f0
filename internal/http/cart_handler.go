package http

import (
	"encoding/json"
	"net/http"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CartHandler struct {
	storefront Storefront
	log        *zap.Logger
}

func NewCartHandler(storefront Storefront, log *zap.Logger) *CartHandler {
	return &CartHandler{storefront: storefront, log: orNop(log)}
}

type AddItemRequestDTO struct {
	Code     int64 `json:"code"`
	Quantity int   `json:"quantity"`
}

type CartEntryResponse struct {
	Code      int64           `json:"code"`
	Title     string          `json:"title"`
	ImageRef  string          `json:"image_ref"`
	LogoRef   string          `json:"logo_ref,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	Entries       []CartEntryResponse `json:"entries"`
	TotalQuantity int                 `json:"total_quantity"`
	TotalPrice    decimal.Decimal     `json:"total_price"`
}

func toCartResponse(summary domain.CartSummary) CartResponse {
	resp := CartResponse{
		Entries:       make([]CartEntryResponse, len(summary.Entries)),
		TotalQuantity: summary.TotalQuantity,
		TotalPrice:    summary.TotalPrice,
	}
	for i, e := range summary.Entries {
		resp.Entries[i] = CartEntryResponse{
			Code:      e.Code,
			Title:     e.Title(),
			ImageRef:  e.ImageRef,
			LogoRef:   e.LogoRef,
			UnitPrice: e.UnitPrice,
			Quantity:  e.Quantity,
			Subtotal:  e.Subtotal(),
		}
	}
	return resp
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	summary, err := h.storefront.AddToCart(req.Code, req.Quantity)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	respondJSON(w, h.log, http.StatusCreated, toCartResponse(summary))
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.log, http.StatusOK, toCartResponse(h.storefront.Cart()))
}

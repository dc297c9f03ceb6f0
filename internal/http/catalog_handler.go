package http

import (
	"net/http"
	"strconv"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	storefront Storefront
	log        *zap.Logger
}

func NewCatalogHandler(storefront Storefront, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{storefront: storefront, log: orNop(log)}
}

type ItemResponse struct {
	Code      int64           `json:"code"`
	Title     string          `json:"title"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	Category  string          `json:"category"`
	Type      string          `json:"type"`
	ImageRef  string          `json:"image_ref"`
	LogoRef   string          `json:"logo_ref,omitempty"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

type ItemsResponse struct {
	Items []ItemResponse `json:"items"`
	Count int            `json:"count"`
}

func toItemResponse(item domain.Item) ItemResponse {
	return ItemResponse{
		Code:      item.Code,
		Title:     item.Title(),
		Brand:     item.Brand,
		Model:     item.Model,
		Category:  item.Category,
		Type:      item.DisplayType(),
		ImageRef:  item.ImageRef,
		LogoRef:   item.LogoRef,
		SalePrice: item.SalePrice,
	}
}

// GET /api/v1/catalog?q=
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.storefront.Search(r.URL.Query().Get("q"))
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	resp := ItemsResponse{
		Items: make([]ItemResponse, len(items)),
		Count: len(items),
	}
	for i, item := range items {
		resp.Items[i] = toItemResponse(item)
	}
	respondJSON(w, h.log, http.StatusOK, resp)
}

// GET /api/v1/catalog/{code}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.ParseInt(chi.URLParam(r, "code"), 10, 64)
	if err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid_code", "code must be an integer")
		return
	}

	item, err := h.storefront.Item(code)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, toItemResponse(item))
}

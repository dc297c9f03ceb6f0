package http

import (
	"net/http"

	"go.uber.org/zap"
)

type HealthHandler struct {
	storefront Storefront
	log        *zap.Logger
}

func NewHealthHandler(storefront Storefront, log *zap.Logger) *HealthHandler {
	return &HealthHandler{storefront: storefront, log: orNop(log)}
}

type HealthResponse struct {
	Status         string `json:"status"`
	Catalog        string `json:"catalog"`
	CatalogError   string `json:"catalog_error,omitempty"`
	CheckoutStatus string `json:"checkout_status"`
}

// GET /health
// A failed catalog load reports "degraded" with status 200.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:         "ok",
		Catalog:        "ready",
		CheckoutStatus: h.storefront.CheckoutStatus().String(),
	}
	if err := h.storefront.CatalogError(); err != nil {
		resp.Status = "degraded"
		resp.Catalog = "unavailable"
		resp.CatalogError = err.Error()
	}
	respondJSON(w, h.log, http.StatusOK, resp)
}

package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReceiptHandler struct {
	receipts ReceiptStore
	log      *zap.Logger
}

func NewReceiptHandler(receipts ReceiptStore, log *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts, log: orNop(log)}
}

type ReceiptsResponse struct {
	Receipts []ReceiptLink `json:"receipts"`
}

type ReceiptLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// GET /api/v1/receipts
func (h *ReceiptHandler) List(w http.ResponseWriter, r *http.Request) {
	names := h.receipts.Names()

	resp := ReceiptsResponse{Receipts: make([]ReceiptLink, len(names))}
	for i, name := range names {
		resp.Receipts[i] = ReceiptLink{Name: name, URL: receiptsPath + name}
	}
	respondJSON(w, h.log, http.StatusOK, resp)
}

// GET /api/v1/receipts/{name}
func (h *ReceiptHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	doc, err := h.receipts.Get(name)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		h.log.Warn("failed to write receipt", zap.String("name", name), zap.Error(err))
	}
}

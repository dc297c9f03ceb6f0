package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type RouterConfig struct {
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

func NewRouter(storefront Storefront, receipts ReceiptStore, cfg RouterConfig) http.Handler {
	log := orNop(cfg.Logger)
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	healthHandler := NewHealthHandler(storefront, log)
	catalogHandler := NewCatalogHandler(storefront, log)
	cartHandler := NewCartHandler(storefront, log)
	checkoutHandler := NewCheckoutHandler(storefront, timeout, log)
	receiptHandler := NewReceiptHandler(receipts, log)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(AccessLogMiddleware(log))
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", healthHandler.Get)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", catalogHandler.List)
			r.Get("/{code}", catalogHandler.Get)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
		})
		r.Post("/checkout", checkoutHandler.Checkout)
		r.Route("/receipts", func(r chi.Router) {
			r.Get("/", receiptHandler.List)
			r.Get("/{name}", receiptHandler.Download)
		})
	})

	return r
}

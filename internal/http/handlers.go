package http

import (
	"context"

	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/domain"
	"go.uber.org/zap"
)

// Storefront is the session the handlers drive.
type Storefront interface {
	Search(query string) ([]domain.Item, error)
	Item(code int64) (domain.Item, error)
	AddToCart(code int64, quantity int) (domain.CartSummary, error)
	Cart() domain.CartSummary
	Checkout(ctx context.Context) (*checkout.Result, error)
	CatalogError() error
	CheckoutStatus() domain.CheckoutStatus
}

type ReceiptStore interface {
	Get(name string) ([]byte, error)
	Names() []string
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

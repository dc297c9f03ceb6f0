package service

import (
	"context"
	"sync"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/domain"
	"go.uber.org/zap"
)

type CatalogLoader interface {
	Load(ctx context.Context) ([]domain.Item, error)
	Source() string
}

type CheckoutPublisher interface {
	Publish(ctx context.Context, receipt domain.Receipt) error
}

// Storefront is one shopping session. Every call takes the session lock, so
// the stores underneath never see interleaved operations.
type Storefront struct {
	mu sync.Mutex

	loader      CatalogLoader
	catalog     *catalog.Store
	cart        *cart.Store
	coordinator *checkout.Coordinator
	publisher   CheckoutPublisher
	loadErr     error
	log         *zap.Logger
}

type Option func(*config)

type config struct {
	publisher    CheckoutPublisher
	log          *zap.Logger
	checkoutOpts []checkout.Option
}

func WithPublisher(p CheckoutPublisher) Option {
	return func(c *config) { c.publisher = p }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithCheckoutOptions forwards options to the checkout coordinator.
func WithCheckoutOptions(opts ...checkout.Option) Option {
	return func(c *config) { c.checkoutOpts = append(c.checkoutOpts, opts...) }
}

func NewStorefront(loader CatalogLoader, formatter checkout.Formatter, opts ...Option) *Storefront {
	cfg := config{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	log := cfg.log
	checkoutOpts := append([]checkout.Option{
		checkout.WithTransitionHook(func(from, to domain.CheckoutStatus) {
			log.Debug("checkout transition", zap.Stringer("from", from), zap.Stringer("to", to))
		}),
	}, cfg.checkoutOpts...)

	cartStore := cart.NewStore()
	return &Storefront{
		loader:      loader,
		catalog:     catalog.NewStore(),
		cart:        cartStore,
		coordinator: checkout.NewCoordinator(cartStore, formatter, checkoutOpts...),
		publisher:   cfg.publisher,
		log:         log,
	}
}

// LoadCatalog fetches the catalog and applies it only after the fetch
// resolves. On failure the catalog keeps its prior contents (empty before the
// first successful load) and the error is kept for CatalogError and Search.
func (s *Storefront) LoadCatalog(ctx context.Context) error {
	items, err := s.loader.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.loadErr = err
		s.log.Warn("catalog unavailable", zap.String("source", s.loader.Source()), zap.Error(err))
		return err
	}

	s.loadErr = nil
	s.catalog.Load(items)
	s.log.Info("catalog ready", zap.String("source", s.loader.Source()), zap.Int("items", s.catalog.Len()))
	return nil
}

func (s *Storefront) CatalogError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Search returns the load error instead of results while no catalog has been loaded.
func (s *Storefront) Search(query string) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadErr != nil && !s.catalog.Loaded() {
		return nil, s.loadErr
	}
	return s.catalog.Search(query), nil
}

func (s *Storefront) Item(code int64) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadErr != nil && !s.catalog.Loaded() {
		return domain.Item{}, s.loadErr
	}
	return s.catalog.FindByCode(code)
}

// AddToCart resolves code against the catalog and adds quantity units to the cart.
func (s *Storefront) AddToCart(code int64, quantity int) (domain.CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.catalog.FindByCode(code)
	if err != nil {
		return domain.CartSummary{}, err
	}
	if err := s.cart.AddItem(item, quantity); err != nil {
		return domain.CartSummary{}, err
	}

	s.log.Debug("item added to cart", zap.Int64("code", code), zap.Int("quantity", quantity))
	return s.cart.Summary(), nil
}

func (s *Storefront) Cart() domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Summary()
}

// Checkout runs the checkout under the session lock and publishes the
// completed receipt after releasing it. Formatter and publish failures are
// logged; the cart is cleared regardless.
func (s *Storefront) Checkout(ctx context.Context) (*checkout.Result, error) {
	s.mu.Lock()
	result, err := s.coordinator.Checkout()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("checkout_id", result.Receipt.CheckoutID),
		zap.String("receipt", result.Receipt.Name()),
		zap.Int("total_quantity", result.Receipt.TotalQuantity),
		zap.Stringer("total_price", result.Receipt.TotalPrice),
	}
	if result.FormatErr != nil {
		s.log.Error("receipt formatting failed", append(fields, zap.Error(result.FormatErr))...)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, result.Receipt); err != nil {
			s.log.Error("failed to publish checkout event", append(fields, zap.Error(err))...)
		}
	}

	s.log.Info("checkout completed", fields...)
	return result, nil
}

func (s *Storefront) CheckoutStatus() domain.CheckoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coordinator.Status()
}

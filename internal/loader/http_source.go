package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/cache"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	// DefaultURL is the public vehicle catalog the storefront was built around.
	DefaultURL = "https://raw.githubusercontent.com/JUANCITOPENA/Pagina_Vehiculos_Ventas/refs/heads/main/vehiculos.json"

	maxDocumentSize = 10 << 20 // 10MB
	defaultTimeout  = 10 * time.Second
)

// HTTPSource downloads the catalog document. A fetch is attempted once; repeated
// failures open the circuit breaker so later loads fail fast instead of hanging.
type HTTPSource struct {
	url     string
	client  *http.Client
	timeout time.Duration
	cache   cache.DocumentCache
	breaker *gobreaker.CircuitBreaker[[]byte]
	log     *zap.Logger
}

type HTTPOption func(*HTTPSource)

func WithCache(c cache.DocumentCache) HTTPOption {
	return func(s *HTTPSource) { s.cache = c }
}

func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = client }
}

func WithTimeout(timeout time.Duration) HTTPOption {
	return func(s *HTTPSource) { s.timeout = timeout }
}

func WithLogger(log *zap.Logger) HTTPOption {
	return func(s *HTTPSource) { s.log = log }
}

func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url:     url,
		client:  &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		timeout: defaultTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "catalog-http",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return s
}

func (s *HTTPSource) Name() string {
	return s.url
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.Item, error) {
	if items, ok := s.fromCache(ctx); ok {
		return items, nil
	}

	doc, err := s.breaker.Execute(func() ([]byte, error) {
		return s.download(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if err != nil {
		return nil, err
	}

	items, err := DecodeItems(doc)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if errSet := s.cache.Set(ctx, s.url, doc); errSet != nil {
			s.log.Warn("catalog cache set failed", zap.Error(errSet))
		}
	}
	return items, nil
}

func (s *HTTPSource) fromCache(ctx context.Context) ([]domain.Item, bool) {
	if s.cache == nil {
		return nil, false
	}

	doc, err := s.cache.Get(ctx, s.url)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("catalog cache get failed", zap.Error(err)) // continue with a download
		}
		return nil, false
	}

	items, err := DecodeItems(doc)
	if err != nil {
		s.log.Warn("dropping malformed cached catalog", zap.Error(err))
		if errDel := s.cache.Delete(ctx, s.url); errDel != nil {
			s.log.Warn("catalog cache delete failed", zap.Error(errDel))
		}
		return nil, false
	}

	s.log.Debug("catalog served from cache", zap.Int("items", len(items)))
	return items, true
}

func (s *HTTPSource) download(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	doc, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrSourceUnavailable, err)
	}
	return doc, nil
}

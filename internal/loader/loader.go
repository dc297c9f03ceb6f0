package loader

import (
	"context"

	"github.com/fjod/go_storefront/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Loader retrieves the catalog from its source. It never retries; a failure is
// returned as *LoadError and the caller keeps its previous (empty) catalog.
type Loader struct {
	source Source
	sfg    singleflight.Group // concurrent loads share one fetch
	tracer trace.Tracer
	log    *zap.Logger
}

func NewLoader(source Source, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		source: source,
		tracer: otel.Tracer("github.com/fjod/go_storefront/internal/loader"),
		log:    log,
	}
}

func (l *Loader) Source() string {
	return l.source.Name()
}

func (l *Loader) Load(ctx context.Context) ([]domain.Item, error) {
	name := l.source.Name()
	ctx, span := l.tracer.Start(ctx, "catalog.load",
		trace.WithAttributes(attribute.String("catalog.source", name)))
	defer span.End()

	v, err, shared := l.sfg.Do(name, func() (interface{}, error) {
		return l.source.Fetch(ctx)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l.log.Error("catalog load failed", zap.String("source", name), zap.Error(err))
		return nil, &LoadError{Source: name, Err: err}
	}

	fetched, _ := v.([]domain.Item)
	items := make([]domain.Item, len(fetched))
	copy(items, fetched)

	span.SetAttributes(attribute.Int("catalog.items", len(items)))
	l.log.Info("catalog loaded",
		zap.String("source", name),
		zap.Int("items", len(items)),
		zap.Bool("shared", shared))
	return items, nil
}

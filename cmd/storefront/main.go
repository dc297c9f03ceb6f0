package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/go_storefront/internal/cache"
	"github.com/fjod/go_storefront/internal/config"
	h "github.com/fjod/go_storefront/internal/http"
	"github.com/fjod/go_storefront/internal/loader"
	"github.com/fjod/go_storefront/internal/logger"
	"github.com/fjod/go_storefront/internal/publisher"
	"github.com/fjod/go_storefront/internal/receipt"
	"github.com/fjod/go_storefront/internal/repository"
	"github.com/fjod/go_storefront/internal/service"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("storefront", cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("storefront stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	source, closeSource, err := newSource(cfg, log)
	if err != nil {
		return err
	}
	defer closeSource()

	archive := receipt.NewArchive()
	formatter := receipt.NewPDFFormatter(archive,
		receipt.WithTitle(cfg.Receipt.Title),
		receipt.WithDirectory(cfg.Receipt.Dir),
		receipt.WithLogger(log.Named("receipt")),
	)

	opts := []service.Option{service.WithLogger(log.Named("storefront"))}
	if len(cfg.Kafka.Brokers) > 0 {
		pub := publisher.NewCheckoutPublisher(cfg.Kafka.Topic, cfg.Kafka.Brokers...)
		defer func() {
			if err := pub.Close(); err != nil {
				log.Warn("failed to close kafka writer", zap.Error(err))
			}
		}()
		opts = append(opts, service.WithPublisher(pub))
		log.Info("publishing checkout events",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
	}

	storefront := service.NewStorefront(loader.NewLoader(source, log.Named("loader")), formatter, opts...)

	// A failed load is a display state, not a startup failure.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Catalog.FetchTimeout)
	_ = storefront.LoadCatalog(loadCtx)
	cancelLoad()

	router := h.NewRouter(storefront, archive, h.RouterConfig{
		RequestTimeout: cfg.RequestTimeout,
		Logger:         log.Named("http"),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("storefront starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exited")
	return nil
}

func newSource(cfg *config.Config, log *zap.Logger) (loader.Source, func(), error) {
	switch cfg.Catalog.Source {
	case config.SourceFile:
		return loader.NewFileSource(cfg.Catalog.FilePath), func() {}, nil

	case config.SourceSQLite:
		repo, err := repository.NewRepository(cfg.Catalog.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := repo.RunMigrations(); err != nil {
			_ = repo.Close()
			return nil, nil, err
		}
		closeRepo := func() {
			if err := repo.Close(); err != nil {
				log.Warn("failed to close catalog database", zap.Error(err))
			}
		}
		return loader.NewRepositorySource(cfg.Catalog.DBPath, repo), closeRepo, nil

	default:
		opts := []loader.HTTPOption{
			loader.WithTimeout(cfg.Catalog.FetchTimeout),
			loader.WithLogger(log.Named("catalog-http")),
		}
		closeCache := func() {}
		if cfg.Redis.Addr != "" {
			client := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			closeCache = func() { _ = client.Close() }
			opts = append(opts, loader.WithCache(cache.NewRedisCache(client, cfg.Redis.TTL)))
			log.Info("catalog cache enabled", zap.String("redis", cfg.Redis.Addr))
		}
		return loader.NewHTTPSource(cfg.Catalog.URL, opts...), closeCache, nil
	}
}

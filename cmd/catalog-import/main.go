// Command catalog-import copies a remote catalog document into the SQLite
// repository used by the storefront's sqlite source.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fjod/go_storefront/internal/loader"
	"github.com/fjod/go_storefront/internal/logger"
	"github.com/fjod/go_storefront/internal/repository"
	"go.uber.org/zap"
)

func main() {
	var (
		url     = flag.String("url", loader.DefaultURL, "catalog document URL")
		file    = flag.String("file", "", "read the catalog from a local file instead of url")
		dbPath  = flag.String("db", "catalog.db", "SQLite database path")
		timeout = flag.Duration("timeout", 30*time.Second, "fetch timeout")
	)
	flag.Parse()

	log, err := logger.New("catalog-import", os.Getenv("LOG_LEVEL"), false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	var source loader.Source = loader.NewHTTPSource(*url, loader.WithTimeout(*timeout), loader.WithLogger(log))
	if *file != "" {
		source = loader.NewFileSource(*file)
	}

	if err := run(source, *dbPath, *timeout, log); err != nil {
		log.Fatal("catalog import failed", zap.Error(err))
	}
}

func run(source loader.Source, dbPath string, timeout time.Duration, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	items, err := loader.NewLoader(source, log).Load(ctx)
	if err != nil {
		return err
	}

	repo, err := repository.NewRepository(dbPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.RunMigrations(); err != nil {
		return err
	}
	if err := repo.ReplaceAll(ctx, items); err != nil {
		return err
	}

	log.Info("catalog imported",
		zap.String("source", source.Name()),
		zap.String("db", dbPath),
		zap.Int("items", len(items)))
	return nil
}

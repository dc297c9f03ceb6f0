package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

const selectItems = `
	SELECT code, brand, model, category, type, image_ref, logo_ref, sale_price
	FROM items
`

// ListItems returns the stored catalog in the order it was written.
func (r *Repository) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, selectItems+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// ReplaceAll swaps the stored catalog for items in one transaction.
// Repeated codes keep their first occurrence.
func (r *Repository) ReplaceAll(ctx context.Context, items []domain.Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO items (code, brand, model, category, type, image_ref, logo_ref, sale_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		_, err := stmt.ExecContext(ctx,
			item.Code,
			item.Brand,
			item.Model,
			item.Category,
			item.Type,
			item.ImageRef,
			item.LogoRef,
			item.SalePrice.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert item %d: %w", item.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit items: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*domain.Item, error) {
	item := &domain.Item{}
	err := s.Scan(
		&item.Code,
		&item.Brand,
		&item.Model,
		&item.Category,
		&item.Type,
		&item.ImageRef,
		&item.LogoRef,
		&item.SalePrice,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}
	return item, nil
}

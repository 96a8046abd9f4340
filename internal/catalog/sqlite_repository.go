package catalog

import (
	"context"
	"database/sql"
	"embed"

	"github.com/fjod/kshop/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteRepository serves the catalog from a local database so the
// storefront can run without the remote API.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &SQLiteRepository{db: db}, nil
}

// RunMigrations creates the products table and seeds it.
func (r *SQLiteRepository) RunMigrations() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "could not open embedded migrations")
	}

	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return errors.Wrap(err, "could not create migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return errors.Wrap(err, "could not create migrate instance")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "could not run migrations")
	}

	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, title, price, description, image, category
		FROM products
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, newTransportError(errors.Wrap(err, "failed to query products"))
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, newTransportError(err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, newTransportError(errors.Wrap(err, "row iteration error"))
	}

	return products, nil
}

func (r *SQLiteRepository) Fetch(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, title, price, description, image, category
		FROM products
		WHERE id = ?
	`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, newTransportError(err)
	}
	return p, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

// Prices are stored as text to keep them exact.
func scanProduct(s scanner) (*domain.Product, error) {
	var (
		p     domain.Product
		price string
	)
	if err := s.Scan(&p.ID, &p.Title, &price, &p.Description, &p.Image, &p.Category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to scan product")
	}

	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid price %q for product %d", price, p.ID)
	}
	p.Price = d
	return &p, nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bpsoft/catalog/internal/catalog"
	serrors "github.com/bpsoft/catalog/internal/server/errors"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new ProductStore backed by a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// FindAll returns all products in insertion order.
func (s *PgStore) FindAll(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, description, logo, date_release, date_revision
		 FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]catalog.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a product by id.
// Returns ErrProductNotFound if no product exists with the given id.
func (s *PgStore) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, name, description, logo, date_release, date_revision
		 FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, serrors.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Exists reports whether the id is taken.
func (s *PgStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

// Create adds a new product.
// Returns ErrProductExists if the id is already taken.
func (s *PgStore) Create(ctx context.Context, p catalog.Product) (*catalog.Product, error) {
	_, err := s.db.Exec(ctx,
		`INSERT INTO products (id, name, description, logo, date_release, date_revision)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Description, p.Logo, p.DateRelease.Time, p.DateRevision.Time)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, serrors.ErrProductExists
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &p, nil
}

// Update replaces the stored product with the same id.
// Returns ErrProductNotFound if no product exists with the given id.
func (s *PgStore) Update(ctx context.Context, p catalog.Product) (*catalog.Product, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE products
		 SET name = $2, description = $3, logo = $4, date_release = $5, date_revision = $6
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Logo, p.DateRelease.Time, p.DateRevision.Time)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, serrors.ErrProductNotFound
	}
	return &p, nil
}

// Delete removes a product by id.
// Returns ErrProductNotFound if no product exists with the given id.
func (s *PgStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return serrors.ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (catalog.Product, error) {
	var p catalog.Product
	var release, revision time.Time
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Logo, &release, &revision); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Product{}, pgx.ErrNoRows
		}
		return catalog.Product{}, fmt.Errorf("failed to scan product: %w", err)
	}
	p.DateRelease = catalog.DateOf(release)
	p.DateRevision = catalog.DateOf(revision)
	return p, nil
}

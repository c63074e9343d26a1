// Package store provides the backend's product persistence contract.
package store

import (
	"context"

	"github.com/bpsoft/catalog/internal/catalog"
)

// ProductStore is the persistence contract of the catalog backend.
// It abstracts the underlying data store, allowing for different
// implementations (in-memory, PostgreSQL).
type ProductStore interface {
	// FindAll returns all products in insertion order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]catalog.Product, error)

	// FindByID retrieves a single product by id.
	// Returns ErrProductNotFound if no product exists with the given id.
	FindByID(ctx context.Context, id string) (*catalog.Product, error)

	// Exists reports whether a product with the given id is stored.
	Exists(ctx context.Context, id string) (bool, error)

	// Create adds a new product.
	// Returns ErrProductExists if the id is already taken.
	Create(ctx context.Context, p catalog.Product) (*catalog.Product, error)

	// Update replaces the stored product with the same id.
	// Returns ErrProductNotFound if no product exists with the given id.
	Update(ctx context.Context, p catalog.Product) (*catalog.Product, error)

	// Delete removes a product by id.
	// Returns ErrProductNotFound if no product exists with the given id.
	Delete(ctx context.Context, id string) error
}

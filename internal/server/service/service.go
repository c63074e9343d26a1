// Package service implements the catalog backend's business rules.
package service

import (
	"context"
	"fmt"

	"github.com/bpsoft/catalog/internal/catalog"
	serrors "github.com/bpsoft/catalog/internal/server/errors"
	"github.com/bpsoft/catalog/internal/server/store"
)

// ProductService defines the operations the REST layer exposes.
type ProductService interface {
	// List returns all products in insertion order.
	List(ctx context.Context) ([]catalog.Product, error)

	// IDExists reports whether a product with the given id is stored.
	IDExists(ctx context.Context, id string) (bool, error)

	// Create adds a new product.
	// Returns ErrProductExists when the id is taken and ErrRevisionMismatch
	// when the date invariant does not hold.
	Create(ctx context.Context, p catalog.Product) (*catalog.Product, error)

	// Update replaces the product with the same id. The id itself is immutable.
	// Returns ErrProductNotFound or ErrRevisionMismatch.
	Update(ctx context.Context, p catalog.Product) (*catalog.Product, error)

	// Delete removes the product with the given id.
	// Returns ErrProductNotFound if there is none.
	Delete(ctx context.Context, id string) error
}

// Service implements ProductService over the store contract.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{repository: repo}
}

// List returns all products.
func (s *Service) List(ctx context.Context) ([]catalog.Product, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// IDExists reports whether the id is taken.
func (s *Service) IDExists(ctx context.Context, id string) (bool, error) {
	exists, err := s.repository.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to verify product id %s: %w", id, err)
	}
	return exists, nil
}

// Create adds a new product after re-checking the invariants the client
// already validated: the id must be free and the revision date must be one
// year after the release date.
func (s *Service) Create(ctx context.Context, p catalog.Product) (*catalog.Product, error) {
	if !p.RevisionConsistent() {
		return nil, serrors.ErrRevisionMismatch
	}
	exists, err := s.repository.Exists(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify product id %s: %w", p.ID, err)
	}
	if exists {
		return nil, serrors.ErrProductExists
	}
	created, err := s.repository.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

// Update replaces an existing product. The caller fixes the id from the
// request path, so the id can never change through this operation.
func (s *Service) Update(ctx context.Context, p catalog.Product) (*catalog.Product, error) {
	if !p.RevisionConsistent() {
		return nil, serrors.ErrRevisionMismatch
	}
	updated, err := s.repository.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", p.ID, err)
	}
	return updated, nil
}

// Delete removes a product by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

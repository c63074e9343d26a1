package store

import (
	"context"
	"sync"

	"github.com/bpsoft/catalog/internal/catalog"
	serrors "github.com/bpsoft/catalog/internal/server/errors"
)

// MemoryStore implements ProductStore with an in-process map. It keeps
// insertion order so list responses are stable, and is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]catalog.Product
	order []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]catalog.Product),
	}
}

// FindAll returns all products in insertion order.
func (s *MemoryStore) FindAll(_ context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]catalog.Product, 0, len(s.order))
	for _, id := range s.order {
		products = append(products, s.byID[id])
	}
	return products, nil
}

// FindByID retrieves a product by id.
func (s *MemoryStore) FindByID(_ context.Context, id string) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, serrors.ErrProductNotFound
	}
	return &p, nil
}

// Exists reports whether the id is taken.
func (s *MemoryStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok, nil
}

// Create adds a new product.
func (s *MemoryStore) Create(_ context.Context, p catalog.Product) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[p.ID]; ok {
		return nil, serrors.ErrProductExists
	}
	s.byID[p.ID] = p
	s.order = append(s.order, p.ID)
	return &p, nil
}

// Update replaces the stored product with the same id.
func (s *MemoryStore) Update(_ context.Context, p catalog.Product) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[p.ID]; !ok {
		return nil, serrors.ErrProductNotFound
	}
	s.byID[p.ID] = p
	return &p, nil
}

// Delete removes a product by id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return serrors.ErrProductNotFound
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Package store holds the single authoritative copy of the product
// collection on the client side.
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bpsoft/catalog/internal/catalog"
)

// Lister is the slice of the gateway the store needs for refreshing.
// It never fails: transport errors degrade to an empty list upstream.
type Lister interface {
	List(ctx context.Context) []catalog.Product
}

// Snapshot is a point-in-time view of the store state handed to readers and
// subscribers. The products slice is a copy; mutating it does not affect the store.
type Snapshot struct {
	Products []catalog.Product
	Loading  bool
}

// Store owns the product collection and the loading flag. All writes go
// through SetAll and SetLoading; every other component only reads snapshots.
// Subscribers are notified after each mutation.
type Store struct {
	mu       sync.RWMutex
	products []catalog.Product
	loading  bool
	subs     []func(Snapshot)

	lister Lister
	logger *slog.Logger
}

// New creates an empty store that refreshes through the given lister.
// Ownership is explicit: the composition root constructs the store and hands
// it to whoever needs to read it.
func New(lister Lister, logger *slog.Logger) *Store {
	return &Store{
		products: []catalog.Product{},
		lister:   lister,
		logger:   logger.With("component", "store"),
	}
}

// SetAll replaces the product collection. Order is the server-provided order.
func (s *Store) SetAll(products []catalog.Product) {
	s.mu.Lock()
	if products == nil {
		products = []catalog.Product{}
	}
	s.products = products
	s.mu.Unlock()
	s.notify()
}

// SetLoading sets the busy indicator. The gateway toggles it around mutating
// calls; Refresh toggles it around the list fetch.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
	s.notify()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]catalog.Product, len(s.products))
	copy(products, s.products)
	return Snapshot{Products: products, Loading: s.loading}
}

// Products returns a copy of the current collection.
func (s *Store) Products() []catalog.Product {
	return s.Snapshot().Products
}

// Loading reports whether a store-relevant network operation is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe registers fn to run after every mutation, starting with the
// current state. The returned function removes the subscription; callers
// should invoke it when the owning view is torn down so late completions
// cannot reach a discarded view.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1
	s.mu.Unlock()

	fn(s.Snapshot())

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.subs) {
			s.subs[idx] = nil
		}
	}
}

// Refresh re-fetches the canonical product list. It is called once at
// controller initialization and after every confirmed mutation; the fetched
// list fully replaces local state, so no reconciliation is ever needed.
func (s *Store) Refresh(ctx context.Context) {
	s.SetLoading(true)
	defer s.SetLoading(false)

	products := s.lister.List(ctx)
	s.logger.Debug("store refreshed", "count", len(products))
	s.SetAll(products)
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	snap := s.Snapshot()
	for _, fn := range subs {
		if fn != nil {
			fn(snap)
		}
	}
}

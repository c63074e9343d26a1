package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpsoft/catalog/internal/catalog"
	serrors "github.com/bpsoft/catalog/internal/server/errors"
)

// mockProductStore implements store.ProductStore with canned behavior.
type mockProductStore struct {
	products []catalog.Product
	exists   bool

	findAllErr error
	existsErr  error
	createErr  error
	updateErr  error
	deleteErr  error

	created []catalog.Product
	updated []catalog.Product
	deleted []string
}

func (m *mockProductStore) FindAll(_ context.Context) ([]catalog.Product, error) {
	return m.products, m.findAllErr
}

func (m *mockProductStore) FindByID(_ context.Context, id string) (*catalog.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, serrors.ErrProductNotFound
}

func (m *mockProductStore) Exists(_ context.Context, _ string) (bool, error) {
	return m.exists, m.existsErr
}

func (m *mockProductStore) Create(_ context.Context, p catalog.Product) (*catalog.Product, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, p)
	return &p, nil
}

func (m *mockProductStore) Update(_ context.Context, p catalog.Product) (*catalog.Product, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.updated = append(m.updated, p)
	return &p, nil
}

func (m *mockProductStore) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func validProduct() catalog.Product {
	release := catalog.NewDate(2026, time.September, 1)
	return catalog.Product{
		ID:           "trj-crd",
		Name:         "Visa Gold",
		Description:  "Premium credit card with travel insurance",
		Logo:         "https://cdn.example.com/visa-gold.png",
		DateRelease:  release,
		DateRevision: release.AddYears(1),
	}
}

func Test_Service_List(t *testing.T) {
	t.Run("Returns products from the repository", func(t *testing.T) {
		// given
		repo := &mockProductStore{products: []catalog.Product{validProduct()}}
		svc := NewService(repo)
		// when
		products, err := svc.List(context.Background())
		// then
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("Wraps repository failures", func(t *testing.T) {
		repo := &mockProductStore{findAllErr: errors.New("db down")}
		_, err := NewService(repo).List(context.Background())
		assert.ErrorContains(t, err, "failed to fetch products")
	})
}

func Test_Service_Create(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(*catalog.Product)
		repo        *mockProductStore
		expectedErr error
	}{
		{
			name: "Valid product is stored",
			repo: &mockProductStore{},
		},
		{
			name:        "Taken id is rejected",
			repo:        &mockProductStore{exists: true},
			expectedErr: serrors.ErrProductExists,
		},
		{
			name:        "Revision mismatch is rejected before touching the store",
			mutate:      func(p *catalog.Product) { p.DateRevision = p.DateRelease },
			repo:        &mockProductStore{},
			expectedErr: serrors.ErrRevisionMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			p := validProduct()
			if tc.mutate != nil {
				tc.mutate(&p)
			}
			svc := NewService(tc.repo)
			// when
			created, err := svc.Create(context.Background(), p)
			// then
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Empty(t, tc.repo.created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, p.ID, created.ID)
			assert.Len(t, tc.repo.created, 1)
		})
	}
}

func Test_Service_Update(t *testing.T) {
	t.Run("Replaces an existing product", func(t *testing.T) {
		// given
		repo := &mockProductStore{}
		p := validProduct()
		p.Name = "Visa Plat"
		// when
		updated, err := NewService(repo).Update(context.Background(), p)
		// then
		require.NoError(t, err)
		assert.Equal(t, "Visa Plat", updated.Name)
	})

	t.Run("Missing product surfaces as ErrProductNotFound", func(t *testing.T) {
		repo := &mockProductStore{updateErr: serrors.ErrProductNotFound}
		_, err := NewService(repo).Update(context.Background(), validProduct())
		assert.ErrorIs(t, err, serrors.ErrProductNotFound)
	})

	t.Run("Revision mismatch is rejected", func(t *testing.T) {
		repo := &mockProductStore{}
		p := validProduct()
		p.DateRevision = p.DateRelease
		_, err := NewService(repo).Update(context.Background(), p)
		assert.ErrorIs(t, err, serrors.ErrRevisionMismatch)
		assert.Empty(t, repo.updated)
	})
}

func Test_Service_Delete(t *testing.T) {
	t.Run("Removes the product", func(t *testing.T) {
		repo := &mockProductStore{}
		require.NoError(t, NewService(repo).Delete(context.Background(), "trj-crd"))
		assert.Equal(t, []string{"trj-crd"}, repo.deleted)
	})

	t.Run("Missing product surfaces as ErrProductNotFound", func(t *testing.T) {
		repo := &mockProductStore{deleteErr: serrors.ErrProductNotFound}
		err := NewService(repo).Delete(context.Background(), "missing-id")
		assert.ErrorIs(t, err, serrors.ErrProductNotFound)
	})
}

func Test_Service_IDExists(t *testing.T) {
	repo := &mockProductStore{exists: true}
	exists, err := NewService(repo).IDExists(context.Background(), "trj-crd")
	require.NoError(t, err)
	assert.True(t, exists)
}

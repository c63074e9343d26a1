package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bpsoft/catalog/internal/catalog"
	serrors "github.com/bpsoft/catalog/internal/server/errors"
	pkgserver "github.com/bpsoft/catalog/pkg/server"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// mockService implements service.ProductService with canned responses.
type mockService struct {
	products  []catalog.Product
	exists    bool
	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func (m *mockService) List(_ context.Context) ([]catalog.Product, error) {
	return m.products, m.listErr
}

func (m *mockService) IDExists(_ context.Context, _ string) (bool, error) {
	return m.exists, nil
}

func (m *mockService) Create(_ context.Context, p catalog.Product) (*catalog.Product, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &p, nil
}

func (m *mockService) Update(_ context.Context, p catalog.Product) (*catalog.Product, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &p, nil
}

func (m *mockService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

func newTestRouter(svc *mockService) http.Handler {
	mux := pkgserver.NewChiRouter(testLogger)
	NewHandler(svc, testLogger).RegisterRoutes(mux)
	return mux
}

func validProductJSON() string {
	return `{
		"id": "trj-crd",
		"name": "Visa Gold",
		"description": "Premium credit card with travel insurance",
		"logo": "https://cdn.example.com/visa-gold.png",
		"date_release": "2026-09-01",
		"date_revision": "2027-09-01"
	}`
}

func Test_Handler_List(t *testing.T) {
	t.Run("Wraps products in the data envelope", func(t *testing.T) {
		// given
		release := catalog.NewDate(2026, time.September, 1)
		svc := &mockService{products: []catalog.Product{{ID: "trj-crd", Name: "Visa Gold", DateRelease: release, DateRevision: release.AddYears(1)}}}
		router := newTestRouter(svc)
		rec := httptest.NewRecorder()
		// when
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bp/products", nil))
		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":[{"id":"trj-crd","name":"Visa Gold","description":"","logo":"","date_release":"2026-09-01","date_revision":"2027-09-01"}]}`, rec.Body.String())
	})

	t.Run("Service failure is a 500", func(t *testing.T) {
		router := newTestRouter(&mockService{listErr: errors.New("db down")})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bp/products", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func Test_Handler_Verify(t *testing.T) {
	testCases := []struct {
		name     string
		exists   bool
		expected string
	}{
		{name: "Taken id", exists: true, expected: "true"},
		{name: "Free id", exists: false, expected: "false"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			router := newTestRouter(&mockService{exists: tc.exists})
			rec := httptest.NewRecorder()
			// when
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bp/products/verification/trj-crd", nil))
			// then: the contract is a bare JSON boolean
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.expected, strings.TrimSpace(rec.Body.String()))
		})
	}
}

func Test_Handler_Create(t *testing.T) {
	t.Run("Valid product is created", func(t *testing.T) {
		// given
		router := newTestRouter(&mockService{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bp/products", strings.NewReader(validProductJSON()))
		// when
		router.ServeHTTP(rec, req)
		// then
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"message":"Product added successfully"`)
		assert.Contains(t, rec.Body.String(), `"id":"trj-crd"`)
	})

	t.Run("Invalid body yields the validation error map", func(t *testing.T) {
		router := newTestRouter(&mockService{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bp/products", strings.NewReader(`{"id":"trj-crd"}`))
		// when
		router.ServeHTTP(rec, req)
		// then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "validation_errors")
		assert.Contains(t, rec.Body.String(), "failed on rule: required")
	})

	t.Run("Undecodable body is a 400", func(t *testing.T) {
		router := newTestRouter(&mockService{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bp/products", strings.NewReader("not-json"))
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Duplicate id is a 400", func(t *testing.T) {
		router := newTestRouter(&mockService{createErr: serrors.ErrProductExists})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bp/products", strings.NewReader(validProductJSON()))
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "already exists")
	})

	t.Run("Revision mismatch is a 400", func(t *testing.T) {
		router := newTestRouter(&mockService{createErr: serrors.ErrRevisionMismatch})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bp/products", strings.NewReader(validProductJSON()))
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "one year after release date")
	})
}

func Test_Handler_Update(t *testing.T) {
	t.Run("Path id wins over body id", func(t *testing.T) {
		// given
		router := newTestRouter(&mockService{})
		rec := httptest.NewRecorder()
		body := strings.Replace(validProductJSON(), "trj-crd", "other-id", 1)
		req := httptest.NewRequest(http.MethodPut, "/bp/products/trj-crd", strings.NewReader(body))
		// when
		router.ServeHTTP(rec, req)
		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"message":"Product updated successfully"`)
		assert.Contains(t, rec.Body.String(), `"id":"trj-crd"`)
	})

	t.Run("Missing product is a 404", func(t *testing.T) {
		router := newTestRouter(&mockService{updateErr: serrors.ErrProductNotFound})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/bp/products/trj-crd", strings.NewReader(validProductJSON()))
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Out-of-bounds id is a 400", func(t *testing.T) {
		router := newTestRouter(&mockService{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/bp/products/ab", strings.NewReader(validProductJSON()))
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_Handler_Delete(t *testing.T) {
	t.Run("Success is an empty 200", func(t *testing.T) {
		// given
		router := newTestRouter(&mockService{})
		rec := httptest.NewRecorder()
		// when
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/bp/products/trj-crd", nil))
		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("Missing product is a 404", func(t *testing.T) {
		router := newTestRouter(&mockService{deleteErr: serrors.ErrProductNotFound})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/bp/products/trj-crd", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_Handler_HealthCheck(t *testing.T) {
	router := newTestRouter(&mockService{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

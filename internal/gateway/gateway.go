// Package gateway wraps the remote /bp product API. Transport failures never
// escape this package: every operation degrades to its documented fallback
// value (empty list, nil result, fail-safe true for the uniqueness check) and
// the underlying error is logged instead of returned.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bpsoft/catalog/internal/catalog"
)

const defaultTimeout = 10 * time.Second

// Busy receives the in-flight indicator around every mutating call.
// The product store implements it with its loading flag.
type Busy interface {
	SetLoading(bool)
}

// Gateway is an HTTP client for the remote product API.
type Gateway struct {
	baseURL string
	hc      *http.Client
	logger  *slog.Logger
	busy    Busy
}

// New creates a gateway for the API rooted at baseURL (e.g. "http://localhost:8080").
// A non-positive timeout falls back to the default.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Gateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Gateway{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
		logger:  logger.With("component", "gateway"),
	}
}

// BindBusy attaches the busy sink toggled around mutating operations.
// Wired after construction because the store needs the gateway first.
func (g *Gateway) BindBusy(b Busy) {
	g.busy = b
}

// MutationResult carries the server echo of a successful create or update.
// The store re-fetches the canonical list afterwards, so the payload is only
// used for the confirmation message.
type MutationResult struct {
	Message string
	Product catalog.Product
}

// envelope is the {message, data} response shape some deployments return for
// mutations; others echo the bare product.
type envelope struct {
	Message string          `json:"message"`
	Data    catalog.Product `json:"data"`
}

type listEnvelope struct {
	Data []catalog.Product `json:"data"`
}

// List fetches all products. On any transport failure it returns an empty
// slice; the caller's loading flag handling is unaffected by the outcome.
func (g *Gateway) List(ctx context.Context) []catalog.Product {
	body, err := g.do(ctx, http.MethodGet, "/bp/products", nil)
	if err != nil {
		g.logger.Error("failed to fetch products", "error", err)
		return []catalog.Product{}
	}
	var resp listEnvelope
	if err := json.Unmarshal(body, &resp); err != nil {
		g.logger.Error("failed to decode product list", "error", err)
		return []catalog.Product{}
	}
	if resp.Data == nil {
		return []catalog.Product{}
	}
	return resp.Data
}

// Create submits a new product. Returns nil on failure.
func (g *Gateway) Create(ctx context.Context, p catalog.Product) *MutationResult {
	release := g.setBusy()
	defer release()

	body, err := g.do(ctx, http.MethodPost, "/bp/products", p)
	if err != nil {
		g.logger.Error("failed to create product", "id", p.ID, "error", err)
		return nil
	}
	return g.decodeMutation(body, p, "Product added successfully")
}

// Update replaces the product identified by p.ID. Returns nil on failure.
func (g *Gateway) Update(ctx context.Context, p catalog.Product) *MutationResult {
	release := g.setBusy()
	defer release()

	body, err := g.do(ctx, http.MethodPut, "/bp/products/"+url.PathEscape(p.ID), p)
	if err != nil {
		g.logger.Error("failed to update product", "id", p.ID, "error", err)
		return nil
	}
	return g.decodeMutation(body, p, "Product updated successfully")
}

// Delete removes the product. Returns false on failure.
func (g *Gateway) Delete(ctx context.Context, p catalog.Product) bool {
	release := g.setBusy()
	defer release()

	if _, err := g.do(ctx, http.MethodDelete, "/bp/products/"+url.PathEscape(p.ID), nil); err != nil {
		g.logger.Error("failed to delete product", "id", p.ID, "error", err)
		return false
	}
	return true
}

// IDExists checks whether an id is already taken. If the check itself fails
// it reports true: under network error a collision is assumed rather than
// risking a duplicate id.
func (g *Gateway) IDExists(ctx context.Context, id string) bool {
	body, err := g.do(ctx, http.MethodGet, "/bp/products/verification/"+url.PathEscape(id), nil)
	if err != nil {
		g.logger.Warn("id verification failed, assuming id exists", "id", id, "error", err)
		return true
	}
	var exists bool
	if err := json.Unmarshal(body, &exists); err != nil {
		g.logger.Warn("failed to decode id verification, assuming id exists", "id", id, "error", err)
		return true
	}
	return exists
}

// decodeMutation accepts either the {message, data} envelope or a bare
// product echo and normalizes both into a MutationResult.
func (g *Gateway) decodeMutation(body []byte, sent catalog.Product, defaultMsg string) *MutationResult {
	res := &MutationResult{Message: defaultMsg, Product: sent}
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && (env.Message != "" || env.Data.ID != "") {
		if env.Message != "" {
			res.Message = env.Message
		}
		if env.Data.ID != "" {
			res.Product = env.Data
		}
		return res
	}
	var bare catalog.Product
	if err := json.Unmarshal(body, &bare); err == nil && bare.ID != "" {
		res.Product = bare
	}
	return res
}

// do performs one HTTP exchange and returns the raw response body.
// Non-2xx statuses are errors.
func (g *Gateway) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := g.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status %d for %s %s", resp.StatusCode, method, path)
	}
	return body, nil
}

// setBusy raises the busy indicator and returns the matching release.
// The release runs on both success and failure paths via defer.
func (g *Gateway) setBusy() func() {
	if g.busy == nil {
		return func() {}
	}
	g.busy.SetLoading(true)
	return func() { g.busy.SetLoading(false) }
}

// Package rest exposes the /bp product API the client gateway consumes.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bpsoft/catalog/internal/catalog"
	serrors "github.com/bpsoft/catalog/internal/server/errors"
	"github.com/bpsoft/catalog/internal/server/service"
	"github.com/bpsoft/catalog/pkg/web"
)

// Handler serves the /bp product routes.
type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new Handler with the provided service.
func NewHandler(svc service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  svc,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes of the product API.
// Paths are fixed by the wire contract the client depends on.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/bp/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/verification/{id}", h.Verify)

		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// List returns every product wrapped in the {data} envelope.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	products, err := h.service.List(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(products))
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{"data": products})
}

// Verify reports id availability as a bare JSON boolean.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := r.PathValue("id")
	exists, err := h.service.IDExists(r.Context(), id)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error verifying product id", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to verify product id")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, exists)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !h.validBody(w, r, mLogger, p) {
		return
	}

	created, err := h.service.Create(r.Context(), p)
	if err != nil {
		switch {
		case errors.Is(err, serrors.ErrProductExists):
			mLogger.WarnContext(r.Context(), "Duplicate product id", "ID", p.ID)
			web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Product with id %s already exists", p.ID))
		case errors.Is(err, serrors.ErrRevisionMismatch):
			mLogger.WarnContext(r.Context(), "Revision date mismatch", "ID", p.ID)
			web.RespondError(w, mLogger, http.StatusBadRequest, "Revision date must be one year after release date")
		default:
			mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		}
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, map[string]any{
		"message": "Product added successfully",
		"data":    created,
	})
}

// Update replaces the product named by the path id. The body id is ignored:
// the path wins, which keeps ids immutable.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseProductID(w, r, mLogger)
	if !ok {
		return
	}
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	p.ID = id
	if !h.validBody(w, r, mLogger, p) {
		return
	}

	updated, err := h.service.Update(r.Context(), p)
	if err != nil {
		switch {
		case errors.Is(err, serrors.ErrProductNotFound):
			mLogger.WarnContext(r.Context(), "Product not found for update", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with id %s not found", id))
		case errors.Is(err, serrors.ErrRevisionMismatch):
			mLogger.WarnContext(r.Context(), "Revision date mismatch", "ID", id)
			web.RespondError(w, mLogger, http.StatusBadRequest, "Revision date must be one year after release date")
		default:
			mLogger.ErrorContext(r.Context(), "Error updating product", "ID", id, "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update product with id %s", id))
		}
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{
		"message": "Product updated successfully",
		"data":    updated,
	})
}

// Delete removes the product named by the path id. Success is an empty 200,
// per the wire contract.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseProductID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, serrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for delete", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with id %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete product with id %s", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusOK, nil)
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// validBody runs the struct rules and renders field errors as a map of
// field name to the violated rule.
func (h *Handler) validBody(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, p catalog.Product) bool {
	err := h.validate.Struct(p)
	if err == nil {
		return true
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		errorResponse := make(map[string]string)
		for _, fieldErr := range validationErrors {
			errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
		}
		mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
		web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
		return false
	}
	mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
	web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
	return false
}

func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	if reqID, ok := web.GetRequestID(r.Context()); ok {
		return h.logger.With("request_id", reqID)
	}
	return h.logger
}

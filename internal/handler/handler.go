// Package handler provides the HTTP API for the storefront.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"offer-storefront/internal/checkout"
	"offer-storefront/internal/commerce"
	"offer-storefront/internal/model"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	workflow *checkout.Workflow
	backend  commerce.Backend
	logger   *slog.Logger

	// observePurchase, when set, records each finished purchase request.
	observePurchase func(err error)
}

// Option configures optional Handler dependencies.
type Option func(*Handler)

// WithPurchaseObserver wires the metrics hook for purchase outcomes.
func WithPurchaseObserver(fn func(err error)) Option {
	return func(h *Handler) { h.observePurchase = fn }
}

// New creates a Handler with the given workflow, backend, and logger.
func New(workflow *checkout.Workflow, backend commerce.Backend, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		workflow: workflow,
		backend:  backend,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers all HTTP routes with the given ServeMux.
// Uses Go 1.22+ method routing patterns.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Purchase workflow - the single write endpoint
	mux.HandleFunc("POST /api/add-to-cart", h.handleAddToCart)

	// Catalog reads consumed by the listing UI
	mux.HandleFunc("GET /api/stores", h.handleListStores)
	mux.HandleFunc("GET /api/stores/{id}", h.handleGetStore)
	mux.HandleFunc("GET /api/variants/{id}/pricing", h.handleVariantPricing)

	// MCP transport exposing the same operations as tools
	mux.Handle("/mcp", h.NewMCPHandler())

	// Health check
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

// healthResponse is the JSON structure for health checks.
type healthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// === Response Helpers ===

// MaxRequestBodySize limits JSON request bodies to 1MB to prevent DoS.
const MaxRequestBodySize = 1 << 20 // 1MB

// writeJSON sends a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError sends a read-path error response, extracting status/code
// from APIError if present. Uses errors.As() to unwrap error chains.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError

	if errors.As(err, &apiErr) {
		// Found APIError in error chain - use it
	} else {
		apiErr = &model.APIError{
			Code:       "INTERNAL_ERROR",
			Message:    "an internal error occurred",
			StatusCode: http.StatusInternalServerError,
		}
		h.logger.Error("internal error", slog.String("error", err.Error()))
	}

	h.writeJSON(w, apiErr.StatusCode, errorResponse{
		Error: errorBody{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		},
	})
}

// errorResponse is the JSON structure for read-path error responses.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeJSON reads JSON from request body into v.
// Limits body size to MaxRequestBodySize to prevent memory exhaustion.
func decodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Don't expose internal error details to client
		return model.NewValidationError("body", "invalid JSON")
	}
	return nil
}

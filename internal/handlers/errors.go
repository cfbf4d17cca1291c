package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"notekeeper/internal/contextutil"
	"notekeeper/internal/service"
	"notekeeper/internal/viewsync"
)

// ErrorResponse represents an error response. Patches is set when the request
// replaced an expired view session; the page must be redrawn even though the
// operation failed.
type ErrorResponse struct {
	Error   string           `json:"error"`
	Patches []viewsync.Patch `json:"patches,omitempty"`
}

// ViewResponse carries the result of a UI operation and the patches that show it.
type ViewResponse struct {
	Data    any              `json:"data,omitempty"`
	Patches []viewsync.Patch `json:"patches"`
}

// writeJSON writes a JSON response.
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeView writes data with its patches. A nil patch list is sent as [].
func writeView(ctx context.Context, w http.ResponseWriter, statusCode int, data any, patches []viewsync.Patch) {
	if patches == nil {
		patches = []viewsync.Patch{}
	}
	writeJSON(ctx, w, statusCode, ViewResponse{Data: data, Patches: patches})
}

// writeError writes an error response together with any patches that were
// already computed for the page.
func writeError(w http.ResponseWriter, statusCode int, message string, patches []viewsync.Patch) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   message,
		Patches: patches,
	})
}

// handleServiceError maps store and view errors to HTTP responses.
func handleServiceError(ctx context.Context, w http.ResponseWriter, err error, defaultMsg string) {
	handleViewError(ctx, w, err, defaultMsg, nil)
}

// handleViewError is handleServiceError for requests bound to a view session.
// Bootstrap patches of a replaced session are kept in the error response.
func handleViewError(ctx context.Context, w http.ResponseWriter, err error, defaultMsg string, patches []viewsync.Patch) {
	status, msg := errorStatus(ctx, err, defaultMsg)
	writeError(w, status, msg, patches)
}

// errorStatus picks the status code and message for err.
func errorStatus(ctx context.Context, err error, defaultMsg string) (int, string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}

	var notFoundErr *service.NotFoundError
	if errors.As(err, &notFoundErr) {
		return http.StatusNotFound, notFoundErr.Error()
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, viewsync.ErrModalResolved):
		return http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrSerialization):
		logger.ErrorContext(ctx, "stored document is unreadable", "error", err)
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, service.ErrStorageUnavailable):
		logger.ErrorContext(ctx, "slot store unavailable", "error", err)
		return http.StatusServiceUnavailable, "Storage unavailable"
	default:
		logger.ErrorContext(ctx, defaultMsg, "error", err)
		return http.StatusInternalServerError, defaultMsg
	}
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/boardstack/boardstack/internal/domain"
)

// WriteJSONError writes a JSON error response with the given message and status code.
// The response body is {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps a service error onto its HTTP status. Unrecognized
// errors become opaque 500s so storage details never leak to clients.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		unauthorized *domain.ErrUnauthorized
		forbidden    *domain.ErrForbidden
		notFound     *domain.ErrNotFound
		invariant    *domain.ErrInvariantViolation
		assignee     *domain.ErrInvalidAssignee
		crossBatch   *domain.ErrCrossWorkspaceBatch
		validation   domain.ValidationError
	)

	switch {
	case errors.As(err, &unauthorized):
		WriteJSONError(w, unauthorized.Error(), http.StatusUnauthorized)
	case errors.As(err, &forbidden):
		WriteJSONError(w, forbidden.Error(), http.StatusForbidden)
	case errors.As(err, &notFound):
		WriteJSONError(w, notFound.Error(), http.StatusNotFound)
	case errors.As(err, &invariant):
		WriteJSONError(w, invariant.Error(), http.StatusConflict)
	case errors.As(err, &assignee):
		WriteJSONError(w, assignee.Error(), http.StatusBadRequest)
	case errors.As(err, &crossBatch):
		WriteJSONError(w, crossBatch.Error(), http.StatusBadRequest)
	case errors.As(err, &validation):
		WriteJSONError(w, validation.Error(), http.StatusBadRequest)
	default:
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}

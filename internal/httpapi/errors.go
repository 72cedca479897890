package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"lingod/internal/conversation"
	"lingod/internal/manager"
	"lingod/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var he HTTPError
	switch {
	case errors.As(err, &he):
		return he.StatusCode()
	case errors.Is(err, conversation.ErrEmptyText), errors.Is(err, conversation.ErrInvalidTarget):
		return http.StatusBadRequest
	case errors.Is(err, conversation.ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, conversation.ErrInProgress):
		return http.StatusConflict
	case errors.Is(err, conversation.ErrNotDetected):
		return http.StatusUnprocessableEntity
	case manager.IsTooBusy(err):
		return http.StatusTooManyRequests
	case manager.IsFeatureUnavailable(err):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError answers with the mapped status and notes backpressure.
func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusTooManyRequests {
		IncrementBackpressure("session_queue")
	}
	writeJSONError(w, code, err.Error())
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logError("encode response", err)
	}
}

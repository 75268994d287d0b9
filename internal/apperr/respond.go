// apperr/respond.go
package apperr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// DetailedErrorResponse is the envelope for domain errors.
type DetailedErrorResponse struct {
	Detail    string `json:"detail"`
	ErrorCode string `json:"error_code"`
	Timestamp string `json:"timestamp"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError maps an error to its HTTP representation. Tagged errors get
// their kind-specific envelope; anything untagged is treated as a remote
// failure.
func WriteError(w http.ResponseWriter, err error) {
	var ae *Error
	if !errors.As(err, &ae) {
		ae = &Error{Kind: Remote, Message: err.Error()}
	}

	switch ae.Kind {
	case AuthRequired:
		// Redirect hint for the client's login entry point
		w.Header().Set("Location", "/login")
		status := http.StatusUnauthorized
		if ae.Status != 0 {
			status = ae.Status
		}
		WriteJSON(w, status, map[string]string{"detail": ae.Message})
	case Validation:
		status := http.StatusBadRequest
		if ae.Status != 0 {
			status = ae.Status
		}
		WriteJSON(w, status, map[string]string{"detail": ae.Message})
	case Domain:
		status := http.StatusBadRequest
		if ae.Status != 0 {
			status = ae.Status
		}
		WriteJSON(w, status, DetailedErrorResponse{
			Detail:    ae.Message,
			ErrorCode: ae.Code,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	default:
		status := http.StatusInternalServerError
		if ae.Status != 0 {
			status = ae.Status
		}
		WriteJSON(w, status, map[string]string{"detail": ae.Error()})
	}
}

// File: internal/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dishcovery/go-dishcovery/internal/services/recipeapi"
)

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeBackendError turns a recipe API failure into the envelope the
// browser shows as an alert. Network failures map to 502, everything
// else keeps the backend's own message.
func writeBackendError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	message := recipeapi.MsgConnectFailed

	var apiErr *recipeapi.APIError
	if errors.As(err, &apiErr) {
		message = apiErr.Message
		switch apiErr.Type {
		case recipeapi.ErrTypeValidation:
			status = http.StatusBadRequest
		case recipeapi.ErrTypeBackend:
			status = http.StatusBadGateway
			if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
				status = apiErr.StatusCode
			}
		}
	}

	writeJSON(w, status, map[string]string{"status": "error", "message": message})
}

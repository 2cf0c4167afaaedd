// Package handlers provides HTTP response utilities for JSON APIs.
// These stateless functions standardize response formatting across handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Failure is the uniform error body returned by every endpoint.
// The original cause is logged server-side and never leaks to the caller.
type Failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RespondJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondFailure logs the underlying error and writes the uniform
// {"success": false, "message": ...} body with the given status code.
// The message is what the caller sees; err is what the log sees.
func RespondFailure(w http.ResponseWriter, logger *slog.Logger, status int, message string, err error) {
	if err != nil {
		logger.Error("handler error", "error", err, "status", status)
	} else {
		logger.Warn("request rejected", "message", message, "status", status)
	}
	RespondJSON(w, status, Failure{Success: false, Message: message})
}

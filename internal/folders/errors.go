package folders

import (
	"errors"
	"net/http"
)

// Domain errors for folder operations.
var (
	ErrNotFound    = errors.New("folder not found")
	ErrDuplicate   = errors.New("folder already exists")
	ErrNameMissing = errors.New("folder name required")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrNameMissing) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

package files

import (
	"errors"
	"net/http"
)

// Domain errors for file operations.
var (
	ErrNotFound     = errors.New("file not found")
	ErrDuplicate    = errors.New("file already exists")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrInvalidFile  = errors.New("invalid file")
	ErrInvalidTags  = errors.New("invalid tags payload")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) || errors.Is(err, ErrInvalidTags) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

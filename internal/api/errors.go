package api

import (
	"errors"
	"net/http"

	"github.com/1510Jeet/user-registry/internal/domain"
	"github.com/1510Jeet/user-registry/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Empty update payloads are a malformed request, not a contract violation
	case errors.Is(err, domain.ErrEmptyPatch):
		return http.StatusBadRequest

	// Data contract violations
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Default: internal server error (includes *store.StoreError)
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal
// details such as connection strings or query text.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrEmptyPatch):
		return "Update payload is empty"

	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"

	case errors.Is(err, store.ErrUserNotFound):
		return "User Not Found"

	case errors.Is(err, store.ErrEmailExists):
		return "A user with this email address already exists"

	default:
		return "An unexpected error occurred"
	}
}

// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidGender is returned when a gender value is outside the allowed set.
	ErrInvalidGender = errors.New("invalid gender")

	// ErrInvalidRole is returned when a role value is outside the allowed set.
	ErrInvalidRole = errors.New("invalid role")

	// ErrEmptyPatch is returned when an update payload contains no
	// recognized fields. An empty patch is rejected before the store
	// is contacted.
	ErrEmptyPatch = errors.New("update payload is empty")
)

// FieldError describes a single offending field in a validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError itemizes every field that failed validation so callers
// receive a machine-readable breakdown rather than a single opaque message.
// It wraps ErrValidation for errors.Is checks.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap supports errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is usually wrapped by a *ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when the caller has no verified identity.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError describes a single field that failed validation.
// It always matches ErrValidation via errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Message)
}

// Unwrap returns ErrValidation so callers can match on the sentinel.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

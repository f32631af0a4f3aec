package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers use errors.Is to check for them; the API layer maps them to HTTP
// status codes.
var (
	// ErrInvalidLimit is matched, together with domain.ErrValidation, by the
	// error List returns for a limit outside 1..MaxHistoryLimit.
	ErrInvalidLimit = errors.New("invalid history limit")

	// ErrInvalidCredentials is returned by Authenticate for an unknown email or a
	// wrong password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// GenerationServiceError wraps errors from the generation service with
// the operation that failed.
type GenerationServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for GenerationServiceError.
func (e *GenerationServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("generation service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GenerationServiceError) Unwrap() error {
	return e.Err
}

// NewGenerationServiceError creates a new GenerationServiceError.
func NewGenerationServiceError(operation, message string, err error) *GenerationServiceError {
	return &GenerationServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

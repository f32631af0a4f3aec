package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/kaabil/contentgen-api/internal/api/shared"
	"github.com/kaabil/contentgen-api/internal/domain"
	"github.com/kaabil/contentgen-api/internal/generation"
	"github.com/kaabil/contentgen-api/internal/service"
	"github.com/kaabil/contentgen-api/internal/service/auth"
	"github.com/kaabil/contentgen-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, shared.ErrInvalidJSON),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Generation errors
	case errors.Is(err, generation.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	var validatorErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Invalid token"
	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Incorrect email or password"

	case errors.Is(err, store.ErrGenerationNotFound):
		return "Generation not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"

	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
	case errors.As(err, &validatorErrs):
		return SanitizeValidationError(validatorErrs)
	case errors.Is(err, service.ErrInvalidLimit):
		return fmt.Sprintf("Invalid limit: must be between 1 and %d", service.MaxHistoryLimit)
	case errors.Is(err, domain.ErrInvalidEmail):
		return "Invalid email: invalid email format"
	case errors.Is(err, domain.ErrPasswordTooShort):
		return "Invalid password: must be at least 8 characters"
	case errors.Is(err, domain.ErrPasswordTooLong):
		return "Invalid password: must be at most 72 characters"
	case errors.Is(err, domain.ErrEmptyPassword), errors.Is(err, domain.ErrEmptyEmail):
		return "Invalid credentials: email and password are required"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"
	case errors.Is(err, shared.ErrInvalidJSON):
		return "Invalid request format"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Validation error"

	case errors.Is(err, generation.ErrProviderUnavailable):
		return "No content generation provider is available"
	case errors.Is(err, generation.ErrGenerationFailed):
		return "Content generation failed"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a message naming the
// first failing field, without exposing struct names.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the mapped status and safe message for err and logs
// the redacted error. A non-empty message overrides the mapped one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

package generation

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by the generation package
var (
	// ErrProviderUnavailable is returned when no configured provider can serve a request.
	ErrProviderUnavailable = errors.New("no content generation provider available")

	// ErrGenerationFailed is returned when a configured provider call fails.
	ErrGenerationFailed = errors.New("content generation failed")

	// ErrEmptyCompletion is returned by providers when the vendor answered without text.
	ErrEmptyCompletion = errors.New("provider returned an empty completion")

	// ErrInvalidConfig is returned when a provider configuration is invalid.
	ErrInvalidConfig = errors.New("invalid provider configuration")
)

// ProviderUnavailableError names the providers the gateway checked before giving up.
type ProviderUnavailableError struct {
	Preferred ProviderID
	Checked   []ProviderID
}

func (e *ProviderUnavailableError) Error() string {
	names := make([]string, len(e.Checked))
	for i, id := range e.Checked {
		names[i] = string(id)
	}
	return fmt.Sprintf("%s: preferred %q, checked [%s]",
		ErrProviderUnavailable, e.Preferred, strings.Join(names, ", "))
}

// Is reports whether target is ErrProviderUnavailable.
func (e *ProviderUnavailableError) Is(target error) bool {
	return target == ErrProviderUnavailable
}

// GenerationFailedError wraps the cause of a failed provider call.
type GenerationFailedError struct {
	Provider ProviderID
	Err      error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrGenerationFailed, e.Provider, e.Err)
}

// Is reports whether target is ErrGenerationFailed.
func (e *GenerationFailedError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// Unwrap returns the provider's original error.
func (e *GenerationFailedError) Unwrap() error {
	return e.Err
}

// Cause returns the provider's error message, for diagnostics.
func (e *GenerationFailedError) Cause() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

package store

import (
	"errors"
	"fmt"
)

// Errors shared by the SQL and in-memory stores.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store,
	// or exists but belongs to another user.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity wraps a domain validation failure caught before a write.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInvalidLimit is returned when a list limit is not positive.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrGenerationNotFound indicates that the generation does not exist or is not
	// owned by the requesting user. The two cases are deliberately indistinguishable.
	ErrGenerationNotFound = fmt.Errorf("%w: generation", ErrNotFound)

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError records which entity and operation failed.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("store: %s %s: %s", e.Entity, e.Operation, e.Message)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

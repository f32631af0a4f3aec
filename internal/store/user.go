package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It validates the user and hashes the plaintext password.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email, case-insensitively.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

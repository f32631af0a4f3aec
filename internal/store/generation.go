package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/domain"
)

// GenerationStore persists generation records. Every read and delete is
// scoped by the owning user: a record owned by someone else behaves exactly
// like a missing one.
type GenerationStore interface {
	// Create saves a new generation. It assigns ID and CreatedAt when they are unset.
	Create(ctx context.Context, generation *domain.Generation) error

	// ListByUser returns up to limit of the user's generations, most recent first.
	// An empty result is an empty slice, not an error.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Generation, error)

	// GetByIDForUser returns the generation with the given ID if userID owns it.
	// Returns ErrGenerationNotFound otherwise.
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Generation, error)

	// DeleteByIDForUser removes the generation with the given ID if userID owns it.
	// Returns ErrGenerationNotFound otherwise.
	DeleteByIDForUser(ctx context.Context, id, userID uuid.UUID) error
}

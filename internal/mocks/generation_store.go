package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/domain"
	"github.com/kaabil/contentgen-api/internal/store"
)

// MockGenerationStore implements store.GenerationStore in memory for testing
type MockGenerationStore struct {
	// Function fields for customizable behavior
	CreateFn            func(ctx context.Context, g *domain.Generation) error
	ListByUserFn        func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Generation, error)
	GetByIDForUserFn    func(ctx context.Context, id, userID uuid.UUID) (*domain.Generation, error)
	DeleteByIDForUserFn func(ctx context.Context, id, userID uuid.UUID) error

	// CreateError is returned by Create when set
	CreateError error

	mu          sync.Mutex
	generations []*domain.Generation // insertion order
	CreateCount int
}

var _ store.GenerationStore = (*MockGenerationStore)(nil)

// NewMockGenerationStore creates an empty in-memory store
func NewMockGenerationStore() *MockGenerationStore {
	return &MockGenerationStore{}
}

// Create implements store.GenerationStore
func (m *MockGenerationStore) Create(ctx context.Context, g *domain.Generation) error {
	m.mu.Lock()
	m.CreateCount++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, g)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}

	stored := *g
	m.mu.Lock()
	m.generations = append(m.generations, &stored)
	m.mu.Unlock()
	return nil
}

// ListByUser implements store.GenerationStore
func (m *MockGenerationStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Generation, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, limit)
	}
	if limit <= 0 {
		return nil, store.ErrInvalidLimit
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Generation, 0)
	for i := len(m.generations) - 1; i >= 0 && len(result) < limit; i-- {
		if g := m.generations[i]; g.UserID == userID {
			copied := *g
			result = append(result, &copied)
		}
	}
	return result, nil
}

// GetByIDForUser implements store.GenerationStore
func (m *MockGenerationStore) GetByIDForUser(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.Generation, error) {
	if m.GetByIDForUserFn != nil {
		return m.GetByIDForUserFn(ctx, id, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, g := range m.generations {
		if g.ID == id && g.UserID == userID {
			copied := *g
			return &copied, nil
		}
	}
	return nil, store.ErrGenerationNotFound
}

// DeleteByIDForUser implements store.GenerationStore
func (m *MockGenerationStore) DeleteByIDForUser(ctx context.Context, id, userID uuid.UUID) error {
	if m.DeleteByIDForUserFn != nil {
		return m.DeleteByIDForUserFn(ctx, id, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, g := range m.generations {
		if g.ID == id && g.UserID == userID {
			m.generations = append(m.generations[:i], m.generations[i+1:]...)
			return nil
		}
	}
	return store.ErrGenerationNotFound
}

// Len returns the number of stored generations
func (m *MockGenerationStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.generations)
}

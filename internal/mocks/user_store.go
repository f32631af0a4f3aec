package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/domain"
	"github.com/kaabil/contentgen-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// Data for default implementation, keyed by normalized email
	Users           map[string]*domain.User
	LastUserID      uuid.UUID
	CreateError     error
	GetByEmailError error

	mu sync.Mutex
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// AddUser stores a user directly, bypassing Create
func (m *MockUserStore) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users[domain.NormalizeEmail(user.Email)] = user
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	email := domain.NormalizeEmail(user.Email)
	if _, exists := m.Users[email]; exists {
		return store.ErrEmailExists
	}

	// Stand-in for bcrypt; only the mock password verifier reads it.
	if user.Password != "" {
		user.HashedPassword = "hashed:" + user.Password
		user.Password = ""
	}

	m.Users[email] = user
	m.LastUserID = user.ID
	return nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.Users[domain.NormalizeEmail(email)]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	return user, nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, store.ErrUserNotFound
}

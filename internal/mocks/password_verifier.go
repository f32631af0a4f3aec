package mocks

import (
	"sync"

	"github.com/kaabil/contentgen-api/internal/service/auth"
)

// MockPasswordVerifier implements auth.PasswordVerifier against the
// "hashed:<password>" values produced by MockUserStore.
type MockPasswordVerifier struct {
	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	mu               sync.Mutex
	CompareCallCount int
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements auth.PasswordVerifier
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.mu.Lock()
	m.CompareCallCount++
	m.mu.Unlock()

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword != "hashed:"+password {
		return auth.ErrPasswordMismatch
	}
	return nil
}

package mocks

import (
	"context"
	"sync"

	"github.com/kaabil/contentgen-api/internal/generation"
)

// MockProvider implements generation.Provider for testing
type MockProvider struct {
	// ProviderID is returned by ID
	ProviderID generation.ProviderID

	// IsAvailable is returned by Available
	IsAvailable bool

	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, prompt generation.Prompt) (generation.Completion, error)

	// Default response values
	Completion generation.Completion
	Err        error

	// Call tracking for verification
	GenerateCalls struct {
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Prompts contains all prompts passed to Generate calls
		Prompts []generation.Prompt
	}
}

var _ generation.Provider = (*MockProvider)(nil)

// NewMockProvider creates an available provider that answers with text and
// reports model as the vendor model.
func NewMockProvider(id generation.ProviderID, text, model string) *MockProvider {
	return &MockProvider{
		ProviderID:  id,
		IsAvailable: true,
		Completion:  generation.Completion{Text: text, Model: model},
	}
}

// NewUnavailableMockProvider creates a provider without credentials.
func NewUnavailableMockProvider(id generation.ProviderID) *MockProvider {
	return &MockProvider{ProviderID: id}
}

// NewFailingMockProvider creates an available provider whose calls fail with err.
func NewFailingMockProvider(id generation.ProviderID, err error) *MockProvider {
	return &MockProvider{ProviderID: id, IsAvailable: true, Err: err}
}

// ID implements generation.Provider
func (m *MockProvider) ID() generation.ProviderID {
	return m.ProviderID
}

// Available implements generation.Provider
func (m *MockProvider) Available() bool {
	return m.IsAvailable
}

// Generate implements generation.Provider
func (m *MockProvider) Generate(
	ctx context.Context,
	prompt generation.Prompt,
) (generation.Completion, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Prompts = append(m.GenerateCalls.Prompts, prompt)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, prompt)
	}

	if m.Err != nil {
		return generation.Completion{}, m.Err
	}
	return m.Completion, nil
}

// CallCount returns how many times Generate was called
func (m *MockProvider) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// Reset resets the call tracking state
func (m *MockProvider) Reset() {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	m.GenerateCalls.Count = 0
	m.GenerateCalls.Prompts = nil
}

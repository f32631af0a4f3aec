package generation

import (
	"context"
	"fmt"
)

// ProviderID identifies a content generation vendor.
type ProviderID string

// Known providers. The set is closed: adding a vendor means adding a constant
// here and a slot in Precedence.
const (
	ProviderOpenAI    ProviderID = "openai"
	ProviderAnthropic ProviderID = "anthropic"
	ProviderGemini    ProviderID = "gemini"
)

// Precedence is the fixed fallback order used when the preferred provider
// cannot serve a request. The first available provider wins.
var Precedence = []ProviderID{ProviderOpenAI, ProviderAnthropic, ProviderGemini}

// Valid reports whether id is a known provider.
func (id ProviderID) Valid() bool {
	switch id {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
		return true
	default:
		return false
	}
}

// ParseProviderID converts a configuration string into a ProviderID.
// "claude" is accepted as an alias of anthropic.
func ParseProviderID(s string) (ProviderID, error) {
	switch s {
	case "openai":
		return ProviderOpenAI, nil
	case "anthropic", "claude":
		return ProviderAnthropic, nil
	case "gemini":
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, s)
	}
}

// Budget bounds a single completion.
type Budget struct {
	MaxTokens   int
	Temperature float32
}

// DefaultBudget is applied to every provider call.
var DefaultBudget = Budget{MaxTokens: 2000, Temperature: 0.7}

// Prompt is what a provider receives.
type Prompt struct {
	System string
	User   string
	Budget Budget
}

// Completion is what a provider returns: the text and the vendor's model name.
type Completion struct {
	Text  string
	Model string
}

// Provider is a single vendor adapter.
type Provider interface {
	// ID returns the provider's identity.
	ID() ProviderID

	// Available reports whether the provider has credentials. The gateway
	// reads it once at construction.
	Available() bool

	// Generate sends the prompt to the vendor and returns its completion.
	Generate(ctx context.Context, prompt Prompt) (Completion, error)
}

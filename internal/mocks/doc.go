// Package mocks provides centralized mock implementations for testing.
//
// Each mock exposes function fields (CreateFn, GenerateFn, ...) that override
// the default behavior, plus simple default data so most tests need no setup:
//
//	provider := mocks.NewMockProvider(generation.ProviderOpenAI, "text", "gpt-4o-mini")
//	gateway := generation.NewGateway([]generation.Provider{provider})
//
// MockGenerationStore and MockUserStore keep their data in memory and honor
// the same ownership and not-found semantics as the SQL stores.
package mocks

// Package domain contains the core business entities and value objects of the
// content generation service: users, generation requests with their enumerated
// content types, tones and lengths, and persisted generation records. It is
// independent of any storage, transport or provider details.
package domain

// Package generation turns a content request into text. It owns the prompt
// templates sent to large language model providers, the deterministic demo
// content used when no provider is configured, and the Gateway that picks a
// provider by preference and fixed precedence.
//
// Vendor adapters live under internal/platform and implement Provider.
package generation

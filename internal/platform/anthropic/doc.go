// Package anthropic implements generation.Provider for Anthropic's Claude
// models through the cloudwego/eino claude chat model component.
package anthropic

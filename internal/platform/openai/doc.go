// Package openai implements generation.Provider with the OpenAI chat
// completions API via github.com/sashabaranov/go-openai.
//
// The request carries the system prompt and the user prompt as two chat
// messages. OpenAIBaseURL in config.LLMConfig redirects the client to any
// OpenAI-compatible endpoint.
package openai

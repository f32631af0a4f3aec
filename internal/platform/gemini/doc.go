// Package gemini implements generation.Provider on top of Google's Gemini API
// using the google.golang.org/genai client.
//
// The provider is an infrastructure adapter: it turns a generation.Prompt into
// a GenerateContent call with the system prompt as the system instruction and
// the user prompt as the only content, applies the fixed token and temperature
// budget, and returns the concatenated text of the first candidate.
//
// A Provider built without an API key reports itself unavailable and is never
// invoked by the gateway. Calls are not retried; any vendor error is returned
// to the caller as-is.
package gemini

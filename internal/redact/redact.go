// Package redact removes sensitive information from strings before they are
// logged or returned in error responses: provider API keys, connection
// strings, credentials, tokens, file paths and similar fragments that vendor
// SDKs and database drivers like to embed in their error messages.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; earlier rules win on overlapping text.
var rules = []rule{
	// OpenAI and Anthropic secret keys, Google API keys
	{
		regexp.MustCompile(`\b(?:sk-(?:ant-|proj-)?[A-Za-z0-9_\-]{16,}|AIza[0-9A-Za-z_\-]{35})`),
		RedactedKeyPlaceholder,
	},
	// Database connection strings with user info
	{
		regexp.MustCompile(`(?i)(postgresql|postgres|sqlite|mysql|db|database|connection)://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)(api[_-]?key|token|secret|key|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		"[REDACTED_JWT]",
	},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`), RedactedPathPlaceholder},
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), "[STACK_TRACE_REDACTED]"},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[REDACTED_EMAIL]"},
	{
		regexp.MustCompile(
			`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE)(?:[\s\w,*()='"$?]+)?`,
		),
		"[REDACTED_SQL]",
	},
	{
		regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`),
		"[REDACTED_HOST]",
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

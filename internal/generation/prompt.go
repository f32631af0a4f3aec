package generation

import (
	"fmt"
	"strings"

	"github.com/kaabil/contentgen-api/internal/domain"
)

// contentNoun names the kind of copy in the system prompt.
func contentNoun(contentType domain.ContentType) string {
	switch contentType {
	case domain.ContentTypeBlog:
		return "blog post"
	case domain.ContentTypeEmail:
		return "marketing email"
	case domain.ContentTypeSocial:
		return "social media post"
	default:
		return "content"
	}
}

// lengthInstruction returns the size guidance for a length, or "" when unknown.
func lengthInstruction(length domain.Length) string {
	switch length {
	case domain.LengthShort:
		return "Keep it concise (1-2 short paragraphs or 100-200 words)."
	case domain.LengthMedium:
		return "Make it moderate length (3-4 paragraphs or 300-500 words)."
	case domain.LengthLong:
		return "Make it comprehensive (5+ paragraphs or 600-1000 words)."
	default:
		return ""
	}
}

// BuildSystemPrompt returns the instructions that set the writer persona,
// the kind of copy, its tone and its length. It never fails.
func BuildSystemPrompt(contentType domain.ContentType, tone domain.Tone, length domain.Length) string {
	return fmt.Sprintf(
		"You are a professional marketing copywriter AI. You write %s in a %s tone.\n%s\n"+
			"Output only the final content, no explanations or meta-commentary. "+
			"Make it engaging and actionable.",
		contentNoun(contentType), tone, lengthInstruction(length),
	)
}

// BuildUserPrompt returns the product and audience block, followed by the
// caller's extra instructions when present.
func BuildUserPrompt(product, audience, extra string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product/Brand: %s\nTarget Audience: %s", product, audience)
	if strings.TrimSpace(extra) != "" {
		fmt.Fprintf(&b, "\n\nAdditional Instructions: %s", extra)
	}
	return b.String()
}

// NewPrompt builds the full provider prompt for a request with the default budget.
func NewPrompt(req domain.GenerationRequest) Prompt {
	return Prompt{
		System: BuildSystemPrompt(req.ContentType, req.Tone, req.Length),
		User:   BuildUserPrompt(req.Product, req.Audience, req.ExtraInstructions),
		Budget: DefaultBudget,
	}
}

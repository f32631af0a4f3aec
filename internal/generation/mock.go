package generation

import (
	"fmt"
	"strings"

	"github.com/kaabil/contentgen-api/internal/domain"
)

// MockModel is recorded as model_used for demo content.
const MockModel = "mock-demo-model"

// DemoNotice terminates every piece of demo content.
const DemoNotice = "*This is demo content. Configure an OpenAI, Anthropic or Gemini API key for AI-generated content.*"

// GenerateMock returns deterministic demo content for the given inputs. It is
// used when no provider is configured and never fails, whatever the content type.
func GenerateMock(contentType domain.ContentType, tone domain.Tone, product, audience string) string {
	var body string
	switch contentType {
	case domain.ContentTypeBlog:
		body = mockBlog(product, audience)
	case domain.ContentTypeEmail:
		body = mockEmail(product, audience)
	case domain.ContentTypeSocial:
		body = mockSocial(product, audience)
	default:
		body = mockGeneric(contentType, tone, product, audience)
	}
	return body + "\n\n" + DemoNotice
}

func mockBlog(product, audience string) string {
	return fmt.Sprintf(`# %[1]s: A Game-Changer for %[2]s

In today's fast-paced world, %[2]s are constantly looking for innovative solutions. Enter %[1]s - a revolutionary offering that's transforming the landscape.

## Why %[1]s Matters

%[1]s addresses key challenges faced by %[2]s with its unique approach. Here's what makes it special:

- **Innovative Design**: Built with %[2]s in mind
- **User-Friendly**: Easy to implement and use
- **Results-Driven**: Proven track record of success

## The Impact

Organizations using %[1]s have reported significant improvements in efficiency and satisfaction. %[2]s particularly appreciate how it simplifies complex processes.

## Getting Started

Ready to experience the difference? %[1]s is designed to help %[2]s achieve their goals faster and more effectively.`,
		product, audience)
}

func mockEmail(product, audience string) string {
	return fmt.Sprintf(`Subject: Discover How %[1]s Can Transform Your Workflow

Hi there,

I wanted to reach out to %[2]s like you who are looking for better solutions.

%[1]s is designed specifically with your needs in mind. Here's what you can expect:

• Streamlined processes
• Time-saving features
• Measurable results

Many %[2]s have already experienced the benefits. Here's what one customer said:

"%[1]s changed the way we work. Highly recommended!"

Ready to learn more? Click here to get started.

Best regards,
The %[1]s Team`,
		product, audience)
}

func mockSocial(product, audience string) string {
	return fmt.Sprintf(`🚀 Exciting news for %[2]s!

Introducing %[1]s - the solution you've been waiting for!

✨ Perfect for %[2]s who want to:
• Save time
• Increase efficiency
• Achieve better results

Join thousands who have already made the switch!

#%[3]s #%[4]s #Innovation`,
		product, audience, hashtag(product), hashtag(audience))
}

func mockGeneric(contentType domain.ContentType, tone domain.Tone, product, audience string) string {
	return fmt.Sprintf(`**%[1]s for %[2]s**

This is demo content showcasing %[1]s. It's tailored for %[2]s and demonstrates the platform's capabilities.

Key benefits:
- Professional quality
- Quick delivery
- Customizable output

Content type: %[3]s
Tone: %[4]s`,
		product, audience, contentType, tone)
}

func hashtag(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

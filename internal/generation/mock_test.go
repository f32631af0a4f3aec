package generation_test

import (
	"strings"
	"testing"

	"github.com/kaabil/contentgen-api/internal/domain"
	"github.com/kaabil/contentgen-api/internal/generation"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMockIsDeterministic(t *testing.T) {
	t.Parallel()

	for _, ct := range append(allContentTypes, "newsletter", "") {
		for _, tone := range allTones {
			first := generation.GenerateMock(ct, tone, "Acme Widgets", "small business owners")
			second := generation.GenerateMock(ct, tone, "Acme Widgets", "small business owners")
			assert.Equal(t, first, second, "content type %q tone %q", ct, tone)
		}
	}
}

func TestGenerateMockEndsWithDemoNotice(t *testing.T) {
	t.Parallel()

	inputs := append(allContentTypes, "newsletter", "", "💥", domain.ContentType(strings.Repeat("x", 500)))
	for _, ct := range inputs {
		got := generation.GenerateMock(ct, domain.ToneCasual, "Acme Widgets", "small business owners")
		assert.True(t, strings.HasSuffix(got, generation.DemoNotice), "content type %q", ct)
		assert.Contains(t, got, "Acme Widgets")
		assert.Contains(t, got, "small business owners")
	}
}

func TestGenerateMockTemplates(t *testing.T) {
	t.Parallel()

	blog := generation.GenerateMock(domain.ContentTypeBlog, domain.ToneCasual, "Acme Widgets", "small business owners")
	assert.True(t, strings.HasPrefix(blog, "# Acme Widgets: A Game-Changer for small business owners"))
	assert.Contains(t, blog, "## Why Acme Widgets Matters")

	email := generation.GenerateMock(domain.ContentTypeEmail, domain.ToneFormal, "Acme Widgets", "founders")
	assert.True(t, strings.HasPrefix(email, "Subject: Discover How Acme Widgets Can Transform Your Workflow"))
	assert.Contains(t, email, "The Acme Widgets Team")

	social := generation.GenerateMock(domain.ContentTypeSocial, domain.ToneFunny, "Acme Widgets", "small business owners")
	assert.Contains(t, social, "#AcmeWidgets #smallbusinessowners #Innovation")

	generic := generation.GenerateMock("newsletter", domain.TonePersuasive, "Acme Widgets", "founders")
	assert.Contains(t, generic, "Content type: newsletter")
	assert.Contains(t, generic, "Tone: persuasive")
}

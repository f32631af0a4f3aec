package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kaabil/contentgen-api/internal/config"
	"github.com/kaabil/contentgen-api/internal/generation"
	"google.golang.org/genai"
)

// ErrBlocked is returned when Gemini stops a candidate for safety reasons.
var ErrBlocked = errors.New("gemini blocked the response")

// contentGenerator is the subset of *genai.Models used by Provider.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Provider generates content with a Gemini model.
type Provider struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

var _ generation.Provider = (*Provider)(nil)

// NewProvider creates a Gemini provider from cfg. When cfg.GeminiAPIKey is
// empty the returned provider is unavailable and no client is created.
func NewProvider(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	p := &Provider{
		model:   cfg.GeminiModel,
		timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		logger:  logger.With(slog.String("provider", string(generation.ProviderGemini))),
	}

	if cfg.GeminiAPIKey == "" {
		return p, nil
	}

	if cfg.GeminiModel == "" {
		return nil, fmt.Errorf("%w: gemini model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}
	p.models = client.Models

	return p, nil
}

// ID implements generation.Provider.
func (p *Provider) ID() generation.ProviderID {
	return generation.ProviderGemini
}

// Available implements generation.Provider.
func (p *Provider) Available() bool {
	return p.models != nil
}

// Generate implements generation.Provider.
func (p *Provider) Generate(ctx context.Context, prompt generation.Prompt) (generation.Completion, error) {
	if p.models == nil {
		return generation.Completion{}, generation.ErrProviderUnavailable
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.logger.DebugContext(ctx, "calling Gemini",
		slog.String("model", p.model),
		slog.Int("system_prompt_length", len(prompt.System)),
		slog.Int("user_prompt_length", len(prompt.User)))

	resp, err := p.models.GenerateContent(ctx, p.model,
		[]*genai.Content{genai.NewContentFromText(prompt.User, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
			Temperature:       genai.Ptr(prompt.Budget.Temperature),
			MaxOutputTokens:   int32(prompt.Budget.MaxTokens),
		},
	)
	if err != nil {
		return generation.Completion{}, err
	}

	text, err := extractText(resp)
	if err != nil {
		return generation.Completion{}, err
	}

	model := resp.ModelVersion
	if model == "" {
		model = p.model
	}

	return generation.Completion{Text: text, Model: model}, nil
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", generation.ErrEmptyCompletion
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", ErrBlocked
	}
	if candidate.Content == nil {
		return "", generation.ErrEmptyCompletion
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", generation.ErrEmptyCompletion
	}
	return sb.String(), nil
}

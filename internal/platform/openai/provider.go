package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kaabil/contentgen-api/internal/config"
	"github.com/kaabil/contentgen-api/internal/generation"
	goopenai "github.com/sashabaranov/go-openai"
)

// chatCompleter is the subset of *goopenai.Client used by Provider.
type chatCompleter interface {
	CreateChatCompletion(
		ctx context.Context,
		request goopenai.ChatCompletionRequest,
	) (goopenai.ChatCompletionResponse, error)
}

// Provider generates content with an OpenAI chat model.
type Provider struct {
	client  chatCompleter
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

var _ generation.Provider = (*Provider)(nil)

// NewProvider creates an OpenAI provider from cfg. When cfg.OpenAIAPIKey is
// empty the returned provider is unavailable.
func NewProvider(logger *slog.Logger, cfg config.LLMConfig) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	p := &Provider{
		model:   cfg.OpenAIModel,
		timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		logger:  logger.With(slog.String("provider", string(generation.ProviderOpenAI))),
	}

	if cfg.OpenAIAPIKey == "" {
		return p, nil
	}

	if cfg.OpenAIModel == "" {
		return nil, fmt.Errorf("%w: openai model name cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := goopenai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	p.client = goopenai.NewClientWithConfig(clientConfig)

	return p, nil
}

// ID implements generation.Provider.
func (p *Provider) ID() generation.ProviderID {
	return generation.ProviderOpenAI
}

// Available implements generation.Provider.
func (p *Provider) Available() bool {
	return p.client != nil
}

// Generate implements generation.Provider.
func (p *Provider) Generate(ctx context.Context, prompt generation.Prompt) (generation.Completion, error) {
	if p.client == nil {
		return generation.Completion{}, generation.ErrProviderUnavailable
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.logger.DebugContext(ctx, "calling OpenAI",
		slog.String("model", p.model),
		slog.Int("system_prompt_length", len(prompt.System)),
		slog.Int("user_prompt_length", len(prompt.User)))

	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: p.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: goopenai.ChatMessageRoleUser, Content: prompt.User},
		},
		MaxTokens:   prompt.Budget.MaxTokens,
		Temperature: prompt.Budget.Temperature,
	})
	if err != nil {
		return generation.Completion{}, err
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return generation.Completion{}, generation.ErrEmptyCompletion
	}

	model := resp.Model
	if model == "" {
		model = p.model
	}

	return generation.Completion{Text: resp.Choices[0].Message.Content, Model: model}, nil
}

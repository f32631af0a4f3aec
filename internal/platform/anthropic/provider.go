package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/kaabil/contentgen-api/internal/config"
	"github.com/kaabil/contentgen-api/internal/generation"
)

// chatModel is the subset of *claude.ChatModel used by Provider.
type chatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Provider generates content with a Claude model.
type Provider struct {
	chat    chatModel
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

var _ generation.Provider = (*Provider)(nil)

// NewProvider creates a Claude provider from cfg. When cfg.AnthropicAPIKey is
// empty the returned provider is unavailable. The chat model defaults to
// generation.DefaultBudget; each call also passes the prompt's budget.
func NewProvider(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	p := &Provider{
		model:   cfg.AnthropicModel,
		timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		logger:  logger.With(slog.String("provider", string(generation.ProviderAnthropic))),
	}

	if cfg.AnthropicAPIKey == "" {
		return p, nil
	}

	if cfg.AnthropicModel == "" {
		return nil, fmt.Errorf("%w: anthropic model name cannot be empty", generation.ErrInvalidConfig)
	}

	temperature := generation.DefaultBudget.Temperature
	chat, err := claude.NewChatModel(ctx, &claude.Config{
		APIKey:      cfg.AnthropicAPIKey,
		Model:       cfg.AnthropicModel,
		MaxTokens:   generation.DefaultBudget.MaxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Claude chat model: %v", generation.ErrInvalidConfig, err)
	}
	p.chat = chat

	return p, nil
}

// ID implements generation.Provider.
func (p *Provider) ID() generation.ProviderID {
	return generation.ProviderAnthropic
}

// Available implements generation.Provider.
func (p *Provider) Available() bool {
	return p.chat != nil
}

// Generate implements generation.Provider.
func (p *Provider) Generate(ctx context.Context, prompt generation.Prompt) (generation.Completion, error) {
	if p.chat == nil {
		return generation.Completion{}, generation.ErrProviderUnavailable
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.logger.DebugContext(ctx, "calling Claude",
		slog.String("model", p.model),
		slog.Int("system_prompt_length", len(prompt.System)),
		slog.Int("user_prompt_length", len(prompt.User)))

	msg, err := p.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(prompt.System),
		schema.UserMessage(prompt.User),
	},
		model.WithMaxTokens(prompt.Budget.MaxTokens),
		model.WithTemperature(prompt.Budget.Temperature),
	)
	if err != nil {
		return generation.Completion{}, err
	}

	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return generation.Completion{}, generation.ErrEmptyCompletion
	}

	return generation.Completion{Text: msg.Content, Model: p.responseModel(msg)}, nil
}

// responseModelKey is the message Extra key carrying the model that served
// the request.
const responseModelKey = "model"

// responseModel returns the vendor-reported model name, or the configured
// one when the response does not carry it.
func (p *Provider) responseModel(msg *schema.Message) string {
	if name, ok := msg.Extra[responseModelKey].(string); ok && name != "" {
		return name
	}
	return p.model
}

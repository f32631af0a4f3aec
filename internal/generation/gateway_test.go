package generation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kaabil/contentgen-api/internal/domain"
	"github.com/kaabil/contentgen-api/internal/generation"
	"github.com/kaabil/contentgen-api/internal/mocks"
	"github.com/kaabil/contentgen-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func validRequest() domain.GenerationRequest {
	return domain.GenerationRequest{
		ContentType: domain.ContentTypeBlog,
		Tone:        domain.ToneCasual,
		Length:      domain.LengthShort,
		Product:     "Acme Widgets",
		Audience:    "small business owners",
	}
}

type recordedCall struct {
	provider generation.ProviderID
	err      error
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (o *recordingObserver) ObserveProviderCall(provider generation.ProviderID, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, recordedCall{provider: provider, err: err})
}

func TestGatewayUsesPreferredProvider(t *testing.T) {
	t.Parallel()

	openai := mocks.NewMockProvider(generation.ProviderOpenAI, "openai copy", "gpt-4o-mini")
	anthropic := mocks.NewMockProvider(generation.ProviderAnthropic, "claude copy", "claude-3-5-sonnet")
	gw := generation.NewGateway([]generation.Provider{openai, anthropic})

	result, err := gw.Generate(context.Background(), validRequest(), generation.ProviderAnthropic)

	require.NoError(t, err)
	assert.Equal(t, "claude copy", result.Text)
	assert.Equal(t, "claude-3-5-sonnet", result.Model)
	assert.Equal(t, generation.ProviderAnthropic, result.Provider)
	assert.Equal(t, 1, anthropic.CallCount())
	assert.Equal(t, 0, openai.CallCount(), "non-preferred provider must not be called")
}

func TestGatewayFallsBackInPrecedenceOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		providers []*mocks.MockProvider
		preferred generation.ProviderID
		want      generation.ProviderID
	}{
		{
			name: "preferred unavailable picks first available",
			providers: []*mocks.MockProvider{
				mocks.NewUnavailableMockProvider(generation.ProviderOpenAI),
				mocks.NewMockProvider(generation.ProviderAnthropic, "claude", "claude"),
				mocks.NewMockProvider(generation.ProviderGemini, "gemini", "gemini"),
			},
			preferred: generation.ProviderOpenAI,
			want:      generation.ProviderAnthropic,
		},
		{
			name: "only the last provider available",
			providers: []*mocks.MockProvider{
				mocks.NewUnavailableMockProvider(generation.ProviderOpenAI),
				mocks.NewUnavailableMockProvider(generation.ProviderAnthropic),
				mocks.NewMockProvider(generation.ProviderGemini, "gemini", "gemini"),
			},
			preferred: generation.ProviderAnthropic,
			want:      generation.ProviderGemini,
		},
		{
			name: "unknown preferred uses precedence",
			providers: []*mocks.MockProvider{
				mocks.NewMockProvider(generation.ProviderOpenAI, "openai", "gpt"),
				mocks.NewMockProvider(generation.ProviderAnthropic, "claude", "claude"),
			},
			preferred: generation.ProviderID("mistral"),
			want:      generation.ProviderOpenAI,
		},
		{
			name: "preferred provider missing entirely",
			providers: []*mocks.MockProvider{
				mocks.NewMockProvider(generation.ProviderGemini, "gemini", "gemini"),
			},
			preferred: generation.ProviderOpenAI,
			want:      generation.ProviderGemini,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			providers := make([]generation.Provider, len(tt.providers))
			for i, p := range tt.providers {
				providers[i] = p
			}
			gw := generation.NewGateway(providers)

			result, err := gw.Generate(context.Background(), validRequest(), tt.preferred)

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Provider)
			for _, p := range tt.providers {
				expected := 0
				if p.ID() == tt.want {
					expected = 1
				}
				assert.Equal(t, expected, p.CallCount(), "calls to %s", p.ID())
			}
		})
	}
}

func TestGatewayProviderUnavailable(t *testing.T) {
	t.Parallel()

	gw := generation.NewGateway([]generation.Provider{
		mocks.NewUnavailableMockProvider(generation.ProviderOpenAI),
		mocks.NewUnavailableMockProvider(generation.ProviderAnthropic),
	})
	assert.False(t, gw.HasAvailable())

	_, err := gw.Generate(context.Background(), validRequest(), generation.ProviderAnthropic)

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrProviderUnavailable)

	var unavailable *generation.ProviderUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, generation.ProviderAnthropic, unavailable.Preferred)
	assert.Equal(t, []generation.ProviderID{
		generation.ProviderAnthropic,
		generation.ProviderOpenAI,
		generation.ProviderGemini,
	}, unavailable.Checked)
	assert.Contains(t, err.Error(), "anthropic, openai, gemini")
}

func TestGatewayWrapsProviderFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("rate limit exceeded")
	failing := mocks.NewFailingMockProvider(generation.ProviderOpenAI, cause)
	backup := mocks.NewMockProvider(generation.ProviderAnthropic, "claude copy", "claude")
	observer := &recordingObserver{}
	gw := generation.NewGateway(
		[]generation.Provider{failing, backup},
		generation.WithCallObserver(observer),
	)

	_, err := gw.Generate(context.Background(), validRequest(), generation.ProviderOpenAI)

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
	assert.ErrorIs(t, err, cause)

	var failed *generation.GenerationFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, generation.ProviderOpenAI, failed.Provider)
	assert.Equal(t, "rate limit exceeded", failed.Cause())

	assert.Equal(t, 1, failing.CallCount(), "failed calls are not retried")
	assert.Equal(t, 0, backup.CallCount(), "failures do not fall through to another provider")

	require.Len(t, observer.calls, 1)
	assert.Equal(t, generation.ProviderOpenAI, observer.calls[0].provider)
	assert.ErrorIs(t, observer.calls[0].err, cause)
}

func TestGatewayRejectsEmptyCompletion(t *testing.T) {
	t.Parallel()

	for name, text := range map[string]string{"empty": "", "whitespace": "  \n\t "} {
		t.Run(name, func(t *testing.T) {
			provider := mocks.NewMockProvider(generation.ProviderGemini, text, "gemini-2.0-flash")
			gw := generation.NewGateway([]generation.Provider{provider})

			_, err := gw.Generate(context.Background(), validRequest(), generation.ProviderGemini)

			var failed *generation.GenerationFailedError
			require.ErrorAs(t, err, &failed)
			assert.Equal(t, generation.ProviderGemini, failed.Provider)
			assert.ErrorIs(t, err, generation.ErrEmptyCompletion)
		})
	}
}

func TestGatewaySendsBuiltPrompt(t *testing.T) {
	t.Parallel()

	provider := mocks.NewMockProvider(generation.ProviderOpenAI, "copy", "gpt-4o-mini")
	gw := generation.NewGateway([]generation.Provider{provider})
	req := validRequest()
	req.ExtraInstructions = "Mention the free trial."

	_, err := gw.Generate(context.Background(), req, generation.ProviderOpenAI)
	require.NoError(t, err)

	require.Len(t, provider.GenerateCalls.Prompts, 1)
	prompt := provider.GenerateCalls.Prompts[0]
	assert.Equal(t, generation.NewPrompt(req), prompt)
	assert.Equal(t, 2000, prompt.Budget.MaxTokens)
	assert.InDelta(t, 0.7, prompt.Budget.Temperature, 0.0001)
	assert.Contains(t, prompt.User, "Mention the free trial.")
}

func TestGatewayPropagatesContext(t *testing.T) {
	t.Parallel()

	provider := &mocks.MockProvider{
		ProviderID:  generation.ProviderOpenAI,
		IsAvailable: true,
		GenerateFn: func(ctx context.Context, _ generation.Prompt) (generation.Completion, error) {
			<-ctx.Done()
			return generation.Completion{}, ctx.Err()
		},
	}
	gw := generation.NewGateway([]generation.Provider{provider})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := gw.Generate(ctx, validRequest(), generation.ProviderOpenAI)

	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGatewayStatus(t *testing.T) {
	t.Parallel()

	buf, log := logger.NewTestLogger(t)
	gw := generation.NewGateway([]generation.Provider{
		mocks.NewMockProvider(generation.ProviderOpenAI, "x", "y"),
		mocks.NewUnavailableMockProvider(generation.ProviderAnthropic),
		nil,
	}, generation.WithLogger(log))

	assert.True(t, gw.HasAvailable())
	assert.Equal(t, map[generation.ProviderID]bool{
		generation.ProviderOpenAI:    true,
		generation.ProviderAnthropic: false,
		generation.ProviderGemini:    false,
	}, gw.Status())

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, len(generation.Precedence))
	for _, entry := range entries {
		assert.Equal(t, "generation_gateway", entry["component"])
		assert.NotContains(t, entry, "api_key")
	}
}

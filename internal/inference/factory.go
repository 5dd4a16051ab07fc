package inference

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"mindscreen/internal/config"
	"mindscreen/internal/metrics"
)

// New builds the configured backend wrapped as
// caller → instrumentation → retry → backend.
func New(ctx context.Context, cfg config.AIConfig, m *metrics.Metrics, logger log.FieldLogger) (Backend, error) {
	base, err := newBase(ctx, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "initializing %s inference backend", cfg.Provider)
	}
	if cfg.Provider == config.ProviderMock {
		return WithInstrumentation(base, m, logger), nil
	}
	return WithInstrumentation(WithRetry(base, cfg.Retry), m, logger), nil
}

func newBase(ctx context.Context, cfg config.AIConfig) (Backend, error) {
	switch cfg.Provider {
	case config.ProviderMock:
		return NewMockBackend(), nil
	case config.ProviderHuggingFace:
		return NewHuggingFaceBackend(cfg.APIKey, cfg.BaseURL, cfg.Models.Chat, cfg.Models.Sentiment, cfg.MaxNewTokens, cfg.Timeout)
	case config.ProviderOpenAI:
		chat, err := NewOpenAIProvider(cfg.APIKey, cfg.Models.Chat, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		sentiment, err := NewOpenAIProvider(cfg.APIKey, cfg.Models.Sentiment, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		return NewLLMBackend(cfg.Provider, chat, sentiment, cfg.MaxNewTokens), nil
	case config.ProviderAnthropic:
		chat, err := NewAnthropicProvider(cfg.APIKey, cfg.Models.Chat, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		sentiment, err := NewAnthropicProvider(cfg.APIKey, cfg.Models.Sentiment, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		return NewLLMBackend(cfg.Provider, chat, sentiment, cfg.MaxNewTokens), nil
	case config.ProviderGemini:
		chat, err := NewGeminiProvider(ctx, cfg.APIKey, cfg.Models.Chat, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		sentiment, err := NewGeminiProvider(ctx, cfg.APIKey, cfg.Models.Sentiment, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		return NewLLMBackend(cfg.Provider, chat, sentiment, cfg.MaxNewTokens), nil
	default:
		return nil, errors.Errorf("unknown inference provider %q", cfg.Provider)
	}
}

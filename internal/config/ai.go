package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
)

// Inference provider names
const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
	ProviderGemini      = "gemini"
	ProviderMock        = "mock"
)

// InferenceModels defines which model serves each capability
type InferenceModels struct {
	// Chat generates conversational replies
	Chat string `yaml:"chat" json:"chat"`

	// Sentiment labels the mood of a text
	Sentiment string `yaml:"sentiment" json:"sentiment"`
}

// RetryConfig configures retries of transient inference failures
type RetryConfig struct {
	MaxAttempts int           `yaml:"maxAttempts"`
	InitialWait time.Duration `yaml:"initialWait"`
	MaxWait     time.Duration `yaml:"maxWait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// AIConfig holds all inference-related configuration
type AIConfig struct {
	Provider     string          `yaml:"provider" json:"provider"`
	APIKey       string          `yaml:"-" json:"-"` // Never serialize
	BaseURL      string          `yaml:"baseUrl" json:"baseUrl"`
	Models       InferenceModels `yaml:"models" json:"models"`
	MaxNewTokens int             `yaml:"maxNewTokens" json:"maxNewTokens"`
	Timeout      time.Duration   `yaml:"timeout" json:"timeout"`
	Retry        RetryConfig     `yaml:"retry" json:"-"`
}

// defaultModels per provider
var defaultModels = map[string]InferenceModels{
	ProviderHuggingFace: {
		Chat:      "facebook/blenderbot-400M-distill",
		Sentiment: "distilbert/distilbert-base-uncased-finetuned-sst-2-english",
	},
	ProviderOpenAI:    {Chat: "gpt-4o-mini", Sentiment: "gpt-4o-mini"},
	ProviderAnthropic: {Chat: "claude-haiku", Sentiment: "claude-haiku"},
	ProviderGemini:    {Chat: "gemini-flash", Sentiment: "gemini-flash"},
	ProviderMock:      {Chat: "mock", Sentiment: "mock"},
}

// DefaultModels returns the default model pair for a provider
func DefaultModels(provider string) InferenceModels {
	return defaultModels[provider]
}

// apiKeyEnv lists the key variable for each provider, in discovery order
var apiKeyEnv = []struct {
	provider string
	env      string
}{
	{ProviderHuggingFace, "HF_API_TOKEN"},
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
}

// DefaultAIConfig returns the default inference configuration
func DefaultAIConfig() AIConfig {
	return AIConfig{
		MaxNewTokens: 50,
		Timeout:      30 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
	}
}

func (c *AIConfig) applyEnv() {
	c.Provider = getEnv("INFERENCE_PROVIDER", c.Provider)
	c.BaseURL = getEnv("INFERENCE_BASE_URL", c.BaseURL)
	c.Models.Chat = getEnv("INFERENCE_CHAT_MODEL", c.Models.Chat)
	c.Models.Sentiment = getEnv("INFERENCE_SENTIMENT_MODEL", c.Models.Sentiment)
	c.MaxNewTokens = getEnvInt("INFERENCE_MAX_NEW_TOKENS", c.MaxNewTokens)
	c.Timeout = getEnvDuration("INFERENCE_TIMEOUT", c.Timeout)

	// An explicit provider reads its own key; otherwise the first key found wins.
	for _, k := range apiKeyEnv {
		key := os.Getenv(k.env)
		if key == "" {
			continue
		}
		if c.Provider == k.provider || (c.Provider == "" && c.APIKey == "") {
			c.Provider = k.provider
			c.APIKey = key
			break
		}
	}

	if _, known := defaultModels[c.Provider]; c.Provider == "" || (known && c.APIKey == "") {
		c.Provider = ProviderMock
	}

	defaults := defaultModels[c.Provider]
	if c.Models.Chat == "" {
		c.Models.Chat = defaults.Chat
	}
	if c.Models.Sentiment == "" {
		c.Models.Sentiment = defaults.Sentiment
	}
}

// IsEnabled returns true if a real inference provider is configured
func (c AIConfig) IsEnabled() bool {
	return c.Provider != ProviderMock && c.APIKey != ""
}

// Validate checks the provider name and limits
func (c AIConfig) Validate() error {
	if _, ok := defaultModels[c.Provider]; !ok {
		return errors.Errorf("unknown inference provider %q", c.Provider)
	}
	if c.MaxNewTokens <= 0 {
		return errors.Errorf("max new tokens must be positive, got %d", c.MaxNewTokens)
	}
	if c.Retry.MaxAttempts < 1 {
		return errors.Errorf("retry attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

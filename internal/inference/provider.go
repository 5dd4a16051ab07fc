package inference

import (
	"context"
	"encoding/json"
)

// TextGenerator produces a conversational reply for an input text
type TextGenerator interface {
	GenerateText(ctx context.Context, input string) (string, error)
}

// SentimentClassifier labels the sentiment of a text with a confidence
type SentimentClassifier interface {
	ClassifySentiment(ctx context.Context, text string) (Sentiment, error)
}

// Backend is an inference service offering both capabilities
type Backend interface {
	TextGenerator
	SentimentClassifier

	// Name identifies the backend in logs, e.g. "openai/gpt-4o-mini"
	Name() string
}

// Sentiment is a classification label and its confidence in [0, 1]
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Provider is a chat-completion style LLM used by LLMBackend.
type Provider interface {
	// Generate sends the request and returns the model output. When the
	// request carries a Schema, Content is JSON validated against it;
	// otherwise Content holds the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// Message is a single conversation turn
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema the response must conform to
type Schema struct {
	// Name identifies the schema; kebab-case, e.g. "mood-sentiment"
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the LLM output
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // "end" or "max_tokens"
}

// Usage tracks token consumption for a single request
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly model name to a provider model ID.
// Unknown names are passed through as direct model IDs.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}

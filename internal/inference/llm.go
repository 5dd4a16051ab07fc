package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const chatSystemPrompt = `You are a calm, supportive companion in a student wellbeing app.
Reply in one or two short sentences. Do not diagnose, do not give medical advice,
and if the user mentions self-harm encourage them to contact local emergency services.`

const sentimentSystemPrompt = `Classify the overall sentiment of the user's text.
Return JSON with "label" set to POSITIVE, NEGATIVE or NEUTRAL and "score" set to
your confidence between 0 and 1.`

var sentimentSchema = &Schema{
	Name:        "mood-sentiment",
	Description: "Sentiment label with confidence",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"label": map[string]any{
				"type": "string",
				"enum": []any{"POSITIVE", "NEGATIVE", "NEUTRAL"},
			},
			"score": map[string]any{
				"type": "number",
			},
		},
		"required":             []any{"label", "score"},
		"additionalProperties": false,
	},
}

// LLMBackend serves both capabilities from chat-completion providers
type LLMBackend struct {
	name      string
	chat      Provider
	sentiment Provider
	maxTokens int
}

// NewLLMBackend combines a chat and a sentiment provider. They may be the same.
func NewLLMBackend(name string, chat, sentiment Provider, maxTokens int) *LLMBackend {
	return &LLMBackend{
		name:      name,
		chat:      chat,
		sentiment: sentiment,
		maxTokens: maxTokens,
	}
}

func (b *LLMBackend) Name() string {
	return b.name + "/" + b.chat.ModelID()
}

// GenerateText asks the chat model for a short reply
func (b *LLMBackend) GenerateText(ctx context.Context, input string) (string, error) {
	resp, err := b.chat.Generate(ctx, Request{
		System:      chatSystemPrompt,
		Messages:    []Message{{Role: RoleUser, Content: input}},
		MaxTokens:   b.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(string(resp.Content))
	if text == "" {
		return "", &ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("empty reply")}
	}
	return text, nil
}

// ClassifySentiment asks the sentiment model for a schema-constrained label
func (b *LLMBackend) ClassifySentiment(ctx context.Context, text string) (Sentiment, error) {
	resp, err := b.sentiment.Generate(ctx, Request{
		System:    sentimentSystemPrompt,
		Messages:  []Message{{Role: RoleUser, Content: text}},
		Schema:    sentimentSchema,
		MaxTokens: 64,
	})
	if err != nil {
		return Sentiment{}, err
	}

	var s Sentiment
	if err := json.Unmarshal(resp.Content, &s); err != nil {
		return Sentiment{}, &ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	// providers' structured output modes don't accept numeric bounds
	if s.Score < 0 || s.Score > 1 {
		return Sentiment{}, &ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("score %v out of range", s.Score)}
	}
	return s, nil
}

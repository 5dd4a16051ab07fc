package inference

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLLMBackend_GenerateText(t *testing.T) {
	chat := NewMockProvider(MockResponse{Content: json.RawMessage("  That sounds hard. Want to talk about it?\n")})
	b := NewLLMBackend("openai", chat, chat, 50)

	out, err := b.GenerateText(context.Background(), "rough day")
	require.NoError(t, err)
	assert.Equal(t, "That sounds hard. Want to talk about it?", out)

	require.Equal(t, 1, chat.CallCount())
	req := chat.Calls[0]
	assert.Equal(t, 50, req.MaxTokens)
	assert.Nil(t, req.Schema)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, RoleUser, req.Messages[0].Role)
	assert.Equal(t, "rough day", req.Messages[0].Content)
	assert.Equal(t, "openai/mock", b.Name())
}

func TestLLMBackend_GenerateTextEmpty(t *testing.T) {
	chat := NewMockProvider(MockResponse{Content: json.RawMessage("   ")})
	b := NewLLMBackend("openai", chat, chat, 50)

	_, err := b.GenerateText(context.Background(), "hello")
	var e *ErrInvalidResponse
	assert.True(t, errors.As(err, &e))
}

func TestLLMBackend_ClassifySentiment(t *testing.T) {
	sentiment := NewMockProvider(MockResponse{Content: json.RawMessage(`{"label":"NEGATIVE","score":0.91}`)})
	b := NewLLMBackend("gemini", NewMockProvider(), sentiment, 50)

	s, err := b.ClassifySentiment(context.Background(), "I can't sleep and I feel hopeless")
	require.NoError(t, err)
	assert.Equal(t, Sentiment{Label: "NEGATIVE", Score: 0.91}, s)
	require.NotNil(t, sentiment.Calls[0].Schema)
	assert.Equal(t, "mood-sentiment", sentiment.Calls[0].Schema.Name)
}

func TestLLMBackend_ClassifySentimentRejectsBadShape(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown label", `{"label":"HAPPY","score":0.5}`},
		{"missing score", `{"label":"POSITIVE"}`},
		{"extra field", `{"label":"POSITIVE","score":0.5,"why":"x"}`},
		{"score out of range", `{"label":"POSITIVE","score":1.5}`},
		{"not json", `POSITIVE`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewMockProvider(MockResponse{Content: json.RawMessage(tt.content)})
			b := NewLLMBackend("openai", p, p, 50)
			_, err := b.ClassifySentiment(context.Background(), "text")
			var e *ErrInvalidResponse
			assert.True(t, errors.As(err, &e), "got %v", err)
		})
	}
}

func TestLLMBackend_ProviderError(t *testing.T) {
	p := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}})
	b := NewLLMBackend("anthropic", p, p, 50)

	_, err := b.GenerateText(context.Background(), "hi")
	var e *ErrRateLimit
	assert.True(t, errors.As(err, &e))
}

func TestMockBackend(t *testing.T) {
	m := NewMockBackend()
	ctx := context.Background()

	reply, err := m.GenerateText(ctx, "  hello there ")
	require.NoError(t, err)
	assert.Equal(t, `You said: "hello there". How are you feeling right now?`, reply)

	again, err := m.GenerateText(ctx, "hello there")
	require.NoError(t, err)
	assert.Equal(t, reply, again)

	s, err := m.ClassifySentiment(ctx, "I am so sad and lonely")
	require.NoError(t, err)
	assert.Equal(t, "NEGATIVE", s.Label)
	assert.Equal(t, 1.0, s.Score)

	s, err = m.ClassifySentiment(ctx, "feeling calm and grateful, a bit tired")
	require.NoError(t, err)
	assert.Equal(t, "POSITIVE", s.Label)
	assert.InDelta(t, 0.6667, s.Score, 0.001)

	s, err = m.ClassifySentiment(ctx, "the bus was on time")
	require.NoError(t, err)
	assert.Equal(t, Sentiment{Label: "POSITIVE", Score: 0.5}, s)
}

package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// MockBackend answers without any model. It is used when no provider key
// is configured so the service still starts in development.
type MockBackend struct{}

// NewMockBackend creates a new mock backend
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

func (MockBackend) Name() string {
	return "mock"
}

// GenerateText echoes the trimmed input back inside a fixed supportive reply.
func (MockBackend) GenerateText(_ context.Context, input string) (string, error) {
	return fmt.Sprintf("You said: %q. How are you feeling right now?", strings.TrimSpace(input)), nil
}

var negativeWords = []string{
	"sad", "anxious", "angry", "tired", "hopeless", "lonely", "stressed",
	"worried", "depressed", "awful", "terrible", "hate", "bad", "cry",
}

var positiveWords = []string{
	"happy", "calm", "good", "great", "relaxed", "grateful", "excited",
	"love", "better", "fine", "hopeful", "proud", "glad",
}

// ClassifySentiment counts keyword hits. Ties are POSITIVE with low confidence,
// matching the two-label output of the default classification model.
func (MockBackend) ClassifySentiment(_ context.Context, text string) (Sentiment, error) {
	lower := strings.ToLower(text)
	neg, pos := 0, 0
	for _, w := range negativeWords {
		neg += strings.Count(lower, w)
	}
	for _, w := range positiveWords {
		pos += strings.Count(lower, w)
	}

	switch {
	case neg > pos:
		return Sentiment{Label: "NEGATIVE", Score: confidence(neg, pos)}, nil
	case pos > neg:
		return Sentiment{Label: "POSITIVE", Score: confidence(pos, neg)}, nil
	default:
		return Sentiment{Label: "POSITIVE", Score: 0.5}, nil
	}
}

func confidence(winner, loser int) float64 {
	return 0.5 + 0.5*float64(winner-loser)/float64(winner+loser)
}

// MockResponse is a canned response for MockProvider
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for tests. It returns canned
// responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response, or ErrProviderUnavailable when
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return nil, resp.Err
	}

	if err := validateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns the number of Generate calls made
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

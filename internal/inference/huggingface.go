package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultHuggingFaceURL is the serverless Hugging Face inference endpoint
const DefaultHuggingFaceURL = "https://router.huggingface.co/hf-inference"

// HuggingFaceBackend calls hosted pipeline models over the Hugging Face
// inference HTTP API: a text2text model for chat and a text-classification
// model for sentiment.
type HuggingFaceBackend struct {
	baseURL        string
	token          string
	chatModel      string
	sentimentModel string
	maxNewTokens   int
	client         *http.Client
}

// NewHuggingFaceBackend creates a new Hugging Face backend
func NewHuggingFaceBackend(token, baseURL, chatModel, sentimentModel string, maxNewTokens int, timeout time.Duration) (*HuggingFaceBackend, error) {
	if token == "" {
		return nil, fmt.Errorf("hugging face API token is required")
	}
	if baseURL == "" {
		baseURL = DefaultHuggingFaceURL
	}
	return &HuggingFaceBackend{
		baseURL:        strings.TrimRight(baseURL, "/"),
		token:          token,
		chatModel:      chatModel,
		sentimentModel: sentimentModel,
		maxNewTokens:   maxNewTokens,
		client:         &http.Client{Timeout: timeout},
	}, nil
}

func (b *HuggingFaceBackend) Name() string {
	return "huggingface/" + b.chatModel
}

type hfRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Options    map[string]any `json:"options,omitempty"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

type hfError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// GenerateText runs the text2text model and returns the first generation
func (b *HuggingFaceBackend) GenerateText(ctx context.Context, input string) (string, error) {
	body, err := b.call(ctx, b.chatModel, hfRequest{
		Inputs:     input,
		Parameters: map[string]any{"max_new_tokens": b.maxNewTokens},
		Options:    map[string]any{"wait_for_model": true},
	})
	if err != nil {
		return "", err
	}

	var gens []hfGeneration
	if err := json.Unmarshal(body, &gens); err != nil {
		return "", &ErrInvalidResponse{Content: body, Err: err}
	}
	if len(gens) == 0 {
		return "", &ErrInvalidResponse{Content: body, Err: fmt.Errorf("no generations in response")}
	}
	return gens[0].GeneratedText, nil
}

// ClassifySentiment runs the text-classification model and returns the
// highest-scoring label
func (b *HuggingFaceBackend) ClassifySentiment(ctx context.Context, text string) (Sentiment, error) {
	body, err := b.call(ctx, b.sentimentModel, hfRequest{
		Inputs:  text,
		Options: map[string]any{"wait_for_model": true},
	})
	if err != nil {
		return Sentiment{}, err
	}

	labels, err := parseClassification(body)
	if err != nil {
		return Sentiment{}, err
	}

	best := labels[0]
	for _, l := range labels[1:] {
		if l.Score > best.Score {
			best = l
		}
	}
	return best, nil
}

// parseClassification accepts both the nested [[...]] shape returned for a
// single input and the flat [...] shape.
func parseClassification(body []byte) ([]Sentiment, error) {
	var nested [][]Sentiment
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}
	var flat []Sentiment
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}
	return nil, &ErrInvalidResponse{Content: body, Err: fmt.Errorf("no labels in classification response")}
}

func (b *HuggingFaceBackend) call(ctx context.Context, model string, payload hfRequest) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s", b.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.token)

	resp, err := b.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ErrProviderUnavailable{Err: err}
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	var apiErr hfError
	_ = json.Unmarshal(body, &apiErr)
	if apiErr.Error == "" {
		apiErr.Error = http.StatusText(resp.StatusCode)
	}
	cause := fmt.Errorf("%s: %s", model, apiErr.Error)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &ErrRateLimit{RetryAfter: retryAfter(resp.Header.Get("Retry-After")), Err: cause}
	case resp.StatusCode >= 500:
		// 503 also means the model is still loading
		return nil, &ErrProviderUnavailable{Err: cause}
	default:
		return nil, &ErrRejected{StatusCode: resp.StatusCode, Err: cause}
	}
}

func retryAfter(header string) time.Duration {
	if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

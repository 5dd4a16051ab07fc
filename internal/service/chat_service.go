package service

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"mindscreen/internal/inference"
)

var (
	ErrMessageRequired = errors.New("message is required")
	ErrTextRequired    = errors.New("text is required")
)

// ChatService relays user messages to the text generation model
type ChatService struct {
	generator inference.TextGenerator
	timeout   time.Duration
}

// NewChatService creates a new chat service. A zero timeout leaves the
// caller's deadline in charge.
func NewChatService(generator inference.TextGenerator, timeout time.Duration) *ChatService {
	return &ChatService{
		generator: generator,
		timeout:   timeout,
	}
}

// Reply returns the model's reply to message, unmodified
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", ErrMessageRequired
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.generator.GenerateText(ctx, message)
	if err != nil {
		return "", errors.Wrap(err, "generating chat reply")
	}
	return reply, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

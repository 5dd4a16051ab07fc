package inference

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"mindscreen/internal/config"
)

// RetryBackend retries transient failures of the inner backend with
// exponential backoff and jitter.
type RetryBackend struct {
	inner  Backend
	config config.RetryConfig
}

// WithRetry wraps a Backend with retry logic
func WithRetry(b Backend, cfg config.RetryConfig) Backend {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryBackend{inner: b, config: cfg}
}

func (r *RetryBackend) Name() string {
	return r.inner.Name()
}

func (r *RetryBackend) GenerateText(ctx context.Context, input string) (string, error) {
	var out string
	err := r.do(ctx, func() error {
		var err error
		out, err = r.inner.GenerateText(ctx, input)
		return err
	})
	return out, err
}

func (r *RetryBackend) ClassifySentiment(ctx context.Context, text string) (Sentiment, error) {
	var out Sentiment
	err := r.do(ctx, func() error {
		var err error
		out, err = r.inner.ClassifySentiment(ctx, text)
		return err
	})
	return out, err
}

func (r *RetryBackend) do(ctx context.Context, fn func() error) error {
	var lastErr error
	invalidRetried := false

	for attempt := range r.config.MaxAttempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err, &invalidRetried) {
			return err
		}
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff(attempt, err)):
		}
	}
	return lastErr
}

// shouldRetry reports whether err is transient. Invalid responses get a
// single retry; rejections and context errors never retry.
func shouldRetry(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var rejected *ErrRejected
	if errors.As(err, &rejected) {
		return false
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	return true
}

func (r *RetryBackend) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// ±20% jitter
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"mindscreen/internal/cache"
	"mindscreen/internal/inference"
	"mindscreen/internal/metrics"
	"mindscreen/internal/model"
)

// MoodService labels the sentiment of free text
type MoodService struct {
	classifier inference.SentimentClassifier
	cache      cache.MoodCache
	metrics    *metrics.Metrics
	logger     log.FieldLogger
	timeout    time.Duration
}

// NewMoodService creates a new mood service. moodCache may be nil when
// Redis is not configured.
func NewMoodService(
	classifier inference.SentimentClassifier,
	moodCache cache.MoodCache,
	m *metrics.Metrics,
	logger log.FieldLogger,
	timeout time.Duration,
) *MoodService {
	return &MoodService{
		classifier: classifier,
		cache:      moodCache,
		metrics:    m,
		logger:     logger,
		timeout:    timeout,
	}
}

// Analyze returns the top sentiment label and its confidence
func (s *MoodService) Analyze(ctx context.Context, text string) (*model.MoodResult, error) {
	if text == "" {
		return nil, ErrTextRequired
	}

	if cached := s.lookup(ctx, text); cached != nil {
		return cached, nil
	}

	callCtx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	sentiment, err := s.classifier.ClassifySentiment(callCtx, text)
	if err != nil {
		return nil, errors.Wrap(err, "classifying mood")
	}

	result := &model.MoodResult{Mood: sentiment.Label, Score: sentiment.Score}
	s.store(ctx, text, result)
	return result, nil
}

func (s *MoodService) lookup(ctx context.Context, text string) *model.MoodResult {
	if s.cache == nil {
		return nil
	}

	result, ok, err := s.cache.Get(ctx, text)
	switch {
	case err != nil:
		s.metrics.MoodCacheLookups.WithLabelValues("error").Inc()
		s.logger.WithError(err).Warn("mood cache lookup failed")
		return nil
	case !ok:
		s.metrics.MoodCacheLookups.WithLabelValues("miss").Inc()
		return nil
	}
	s.metrics.MoodCacheLookups.WithLabelValues("hit").Inc()
	return result
}

func (s *MoodService) store(ctx context.Context, text string, result *model.MoodResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, text, result); err != nil {
		s.logger.WithError(err).Warn("mood cache write failed")
	}
}

package service

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"mindscreen/internal/metrics"
	"mindscreen/internal/screening"
)

// ScreeningService scores questionnaires and records the outcome
type ScreeningService struct {
	metrics *metrics.Metrics
	logger  log.FieldLogger
}

// NewScreeningService creates a new screening service
func NewScreeningService(m *metrics.Metrics, logger log.FieldLogger) *ScreeningService {
	return &ScreeningService{
		metrics: m,
		logger:  logger,
	}
}

// Submit scores answers for the given instrument. Raw answers are never logged.
func (s *ScreeningService) Submit(ctx context.Context, in screening.Instrument, answers []int) (screening.Result, error) {
	entry := s.logger.WithField("instrument", in.Name())
	if id := RequestID(ctx); id != "" {
		entry = entry.WithField("request_id", id)
	}

	result, err := in.Score(answers)
	if err != nil {
		if errors.Is(err, screening.ErrInvalidInput) {
			s.metrics.ScreeningRejections.WithLabelValues(in.Name()).Inc()
			entry.WithField("answers_len", len(answers)).Info("screening rejected")
		}
		return screening.Result{}, err
	}

	s.metrics.Screenings.WithLabelValues(in.Name(), string(result.Severity)).Inc()
	entry.WithFields(log.Fields{
		"score":    result.Score,
		"severity": result.Severity,
	}).Info("screening scored")
	return result, nil
}

package inference

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"mindscreen/internal/metrics"
)

// InstrumentedBackend records latency and outcome of every call
type InstrumentedBackend struct {
	inner   Backend
	metrics *metrics.Metrics
	logger  log.FieldLogger
}

// WithInstrumentation wraps a Backend with metrics and logging
func WithInstrumentation(b Backend, m *metrics.Metrics, logger log.FieldLogger) Backend {
	return &InstrumentedBackend{inner: b, metrics: m, logger: logger}
}

func (i *InstrumentedBackend) Name() string {
	return i.inner.Name()
}

func (i *InstrumentedBackend) GenerateText(ctx context.Context, input string) (string, error) {
	start := time.Now()
	out, err := i.inner.GenerateText(ctx, input)
	i.observe("chat", start, len(input), err)
	return out, err
}

func (i *InstrumentedBackend) ClassifySentiment(ctx context.Context, text string) (Sentiment, error) {
	start := time.Now()
	out, err := i.inner.ClassifySentiment(ctx, text)
	i.observe("sentiment", start, len(text), err)
	return out, err
}

func (i *InstrumentedBackend) observe(capability string, start time.Time, inputLen int, err error) {
	elapsed := time.Since(start)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	i.metrics.InferenceRequests.WithLabelValues(capability, outcome).Inc()
	i.metrics.InferenceDuration.WithLabelValues(capability).Observe(elapsed.Seconds())

	entry := i.logger.WithFields(log.Fields{
		"backend":     i.inner.Name(),
		"capability":  capability,
		"input_len":   inputLen,
		"duration_ms": elapsed.Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("inference call failed")
		return
	}
	entry.Debug("inference call")
}

package inference

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindscreen/internal/config"
	"mindscreen/internal/metrics"
)

func testAIConfig(provider string) config.AIConfig {
	cfg := config.DefaultAIConfig()
	cfg.Provider = provider
	cfg.APIKey = "test-key"
	cfg.Models = config.DefaultModels(provider)
	return cfg
}

func TestNew_Mock(t *testing.T) {
	logger, _ := test.NewNullLogger()
	b, err := New(context.Background(), testAIConfig(config.ProviderMock), metrics.New(), logger)
	require.NoError(t, err)
	assert.Equal(t, "mock", b.Name())

	_, isRetry := b.(*InstrumentedBackend).inner.(*RetryBackend)
	assert.False(t, isRetry)
}

func TestNew_WrapsRemoteBackends(t *testing.T) {
	logger, _ := test.NewNullLogger()
	for _, provider := range []string{
		config.ProviderHuggingFace,
		config.ProviderOpenAI,
		config.ProviderAnthropic,
		config.ProviderGemini,
	} {
		t.Run(provider, func(t *testing.T) {
			b, err := New(context.Background(), testAIConfig(provider), metrics.New(), logger)
			require.NoError(t, err)
			ib, ok := b.(*InstrumentedBackend)
			require.True(t, ok)
			_, ok = ib.inner.(*RetryBackend)
			assert.True(t, ok)
		})
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := New(context.Background(), testAIConfig("llama"), metrics.New(), logger)
	assert.ErrorContains(t, err, "unknown inference provider")
}

func TestNew_MissingKey(t *testing.T) {
	cfg := testAIConfig(config.ProviderOpenAI)
	cfg.APIKey = ""
	logger, _ := test.NewNullLogger()
	_, err := New(context.Background(), cfg, metrics.New(), logger)
	assert.Error(t, err)
}

func TestInstrumentedBackend_RecordsOutcome(t *testing.T) {
	m := metrics.New()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	inner := &scriptedBackend{errs: []error{&ErrProviderUnavailable{}}}
	b := WithInstrumentation(inner, m, logger)

	_, err := b.GenerateText(context.Background(), "hello")
	require.Error(t, err)
	_, err = b.ClassifySentiment(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, 1.0, counterValue(t, m, "chat", "error"))
	assert.Equal(t, 1.0, counterValue(t, m, "sentiment", "ok"))

	require.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, log.WarnLevel, hook.AllEntries()[0].Level)
	assert.Equal(t, "chat", hook.AllEntries()[0].Data["capability"])
	assert.Equal(t, log.DebugLevel, hook.LastEntry().Level)
}

func TestRetryConfigDefaults(t *testing.T) {
	cfg := config.DefaultAIConfig().Retry
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.InitialWait)
}

func counterValue(t *testing.T, m *metrics.Metrics, capability, outcome string) float64 {
	t.Helper()
	return testutil.ToFloat64(m.InferenceRequests.WithLabelValues(capability, outcome))
}

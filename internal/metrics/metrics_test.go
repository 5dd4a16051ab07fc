package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersIndependentPerInstance(t *testing.T) {
	a := New()
	b := New()

	a.Screenings.WithLabelValues("phq9", "severe").Inc()
	a.Screenings.WithLabelValues("phq9", "severe").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(a.Screenings.WithLabelValues("phq9", "severe")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Screenings.WithLabelValues("phq9", "severe")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ScreeningRejections.WithLabelValues("gad7").Inc()
	m.ChatSessions.Set(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `mindscreen_screening_rejections_total{instrument="gad7"} 1`)
	assert.Contains(t, string(body), "mindscreen_chat_sessions 3")
	assert.Contains(t, string(body), "go_goroutines")
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindscreen/internal/metrics"
	"mindscreen/internal/service"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(5)

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow(), "request %d should have been allowed", i+1)
	}
	assert.False(t, rl.Allow(), "6th request should have been denied")
}

func TestRateLimiter_Refill(t *testing.T) {
	rl := NewRateLimiter(10)
	for i := 0; i < 10; i++ {
		rl.Allow()
	}
	require.False(t, rl.Allow())

	rl.mu.Lock()
	rl.lastRefill = time.Now().Add(-1 * time.Second)
	rl.mu.Unlock()

	assert.True(t, rl.Allow())
}

func TestRateLimiter_MaxTokensCapped(t *testing.T) {
	rl := NewRateLimiter(5)
	rl.mu.Lock()
	rl.lastRefill = time.Now().Add(-10 * time.Second)
	rl.mu.Unlock()

	allowed := 0
	for i := 0; i < 10; i++ {
		if rl.Allow() {
			allowed++
		}
	}
	assert.Equal(t, 5, allowed)
}

func TestRateLimit_NilLimiterPassesThrough(t *testing.T) {
	h := RateLimit(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	for range 100 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat_ai", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = service.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := RequestID(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodPost, "/predict_mood", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "request", entry.Message)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, "/predict_mood", entry.Data["path"])
	assert.Equal(t, "req-42", entry.Data["request_id"])
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	m := metrics.New()
	r := mux.NewRouter()
	r.Use(Metrics(m))
	r.HandleFunc("/screening/{instrument}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/screening/bdi", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/screening/xyz", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/screening/{instrument}", "POST", "404")))
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mindscreen"

// Metrics holds the service's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	Screenings          *prometheus.CounterVec
	ScreeningRejections *prometheus.CounterVec
	InferenceRequests   *prometheus.CounterVec
	InferenceDuration   *prometheus.HistogramVec
	MoodCacheLookups    *prometheus.CounterVec
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	ChatSessions        prometheus.Gauge
}

// New creates the collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Screenings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "screenings_total",
			Help:      "Scored questionnaires by instrument and severity band.",
		}, []string{"instrument", "severity"}),
		ScreeningRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "screening_rejections_total",
			Help:      "Answer sets rejected as invalid input.",
		}, []string{"instrument"}),
		InferenceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inference_requests_total",
			Help:      "Calls to the inference provider by capability and outcome.",
		}, []string{"capability", "outcome"}),
		InferenceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inference_duration_seconds",
			Help:      "Latency of inference provider calls.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"capability"}),
		MoodCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mood_cache_lookups_total",
			Help:      "Mood cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route template, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route template.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		ChatSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chat_sessions",
			Help:      "Open WebSocket chat sessions.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Screenings,
		m.ScreeningRejections,
		m.InferenceRequests,
		m.InferenceDuration,
		m.MoodCacheLookups,
		m.HTTPRequests,
		m.HTTPDuration,
		m.ChatSessions,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors of the API. A nil *Metrics is
// valid and records nothing, which keeps unit tests free of registries.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec   // labels: method, route, status
	HTTPDuration *prometheus.HistogramVec // labels: method, route

	UpstreamCalls    *prometheus.CounterVec   // labels: provider, outcome
	UpstreamDuration *prometheus.HistogramVec // labels: provider

	CacheLookups *prometheus.CounterVec // labels: result=hit|miss

	Completions *prometheus.CounterVec // labels: provider, outcome

	RateLimited prometheus.Counter
}

// NewMetrics registers and returns all collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockapi_http_requests_total",
			Help: "HTTP requests served, by route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stockapi_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		UpstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockapi_upstream_calls_total",
			Help: "Outbound provider calls (yahoo, sec, anthropic, openai)",
		}, []string{"provider", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stockapi_upstream_duration_seconds",
			Help:    "Outbound provider call latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"provider"}),

		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockapi_cache_lookups_total",
			Help: "TTL cache reads by result",
		}, []string{"result"}),

		Completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockapi_llm_completions_total",
			Help: "LLM completions requested, by provider and outcome",
		}, []string{"provider", "outcome"}),

		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockapi_rate_limited_total",
			Help: "Inbound requests rejected by the per-IP limiter",
		}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.UpstreamCalls,
		m.UpstreamDuration,
		m.CacheLookups,
		m.Completions,
		m.RateLimited,
	)

	return m
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveUpstream(provider string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamCalls.WithLabelValues(provider, outcome(err)).Inc()
	m.UpstreamDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) ObserveCompletion(provider string, err error) {
	if m == nil {
		return
	}
	m.Completions.WithLabelValues(provider, outcome(err)).Inc()
}

func (m *Metrics) RateLimitRejected() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}

// Handler serves the default gatherer in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

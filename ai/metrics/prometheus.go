// Package metrics provides Prometheus metrics export for generation and reveal.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter exports application metrics in Prometheus format.
// It implements reveal.Observer and format.CacheObserver.
type PrometheusExporter struct {
	registry *prometheus.Registry

	// Generation metrics
	generationLatency  *prometheus.HistogramVec
	generationRequests *prometheus.CounterVec
	llmTokensUsed      *prometheus.CounterVec

	// Reveal metrics
	revealStarted     prometheus.Counter
	revealCompleted   prometheus.Counter
	revealInterrupted *prometheus.CounterVec
	revealDuration    prometheus.Histogram
	revealChars       prometheus.Counter
	revealActive      prometheus.Gauge

	// Format cache metrics
	cacheLookups *prometheus.CounterVec

	// Ad counter
	adClicks *prometheus.CounterVec
}

// Config configures the Prometheus exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}
}

// NewPrometheusExporter creates a new Prometheus metrics exporter.
func NewPrometheusExporter(cfg Config) *PrometheusExporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &PrometheusExporter{registry: registry}

	e.generationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cutverse",
			Subsystem: "generate",
			Name:      "latency_seconds",
			Help:      "Generation request latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"tool"},
	)

	e.generationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cutverse",
			Subsystem: "generate",
			Name:      "requests_total",
			Help:      "Total number of generation requests",
		},
		[]string{"tool", "status"},
	)

	e.llmTokensUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cutverse",
			Subsystem: "generate",
			Name:      "llm_tokens_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"model", "token_type"},
	)

	e.revealStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cutverse",
		Subsystem: "reveal",
		Name:      "started_total",
		Help:      "Reveal animations started",
	})

	e.revealCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cutverse",
		Subsystem: "reveal",
		Name:      "completed_total",
		Help:      "Reveal animations that ran to the end",
	})

	e.revealInterrupted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cutverse",
			Subsystem: "reveal",
			Name:      "interrupted_total",
			Help:      "Reveal animations stopped early, by reason",
		},
		[]string{"reason"},
	)

	e.revealDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cutverse",
		Subsystem: "reveal",
		Name:      "duration_seconds",
		Help:      "Time taken by completed reveal animations",
		Buckets:   cfg.LatencyBuckets,
	})

	e.revealChars = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cutverse",
		Subsystem: "reveal",
		Name:      "characters_total",
		Help:      "Characters disclosed by completed reveals",
	})

	e.revealActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "cutverse",
		Subsystem: "reveal",
		Name:      "active",
		Help:      "Reveal animations currently running",
	})

	e.cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cutverse",
			Subsystem: "format",
			Name:      "cache_lookups_total",
			Help:      "Format cache lookups by result",
		},
		[]string{"result"},
	)

	e.adClicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cutverse",
			Subsystem: "ads",
			Name:      "clicks_total",
			Help:      "Generate clicks by whether an ad was shown",
		},
		[]string{"ad_shown"},
	)

	registry.MustRegister(
		e.generationLatency,
		e.generationRequests,
		e.llmTokensUsed,
		e.revealStarted,
		e.revealCompleted,
		e.revealInterrupted,
		e.revealDuration,
		e.revealChars,
		e.revealActive,
		e.cacheLookups,
		e.adClicks,
	)

	return e
}

// RecordGeneration records one generation request.
func (e *PrometheusExporter) RecordGeneration(tool string, latency time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	e.generationRequests.WithLabelValues(tool, status).Inc()
	e.generationLatency.WithLabelValues(tool).Observe(latency.Seconds())
}

// RecordLLMTokens records LLM token usage.
func (e *PrometheusExporter) RecordLLMTokens(model, tokenType string, count int) {
	if count <= 0 {
		return
	}
	e.llmTokensUsed.WithLabelValues(model, tokenType).Add(float64(count))
}

// RecordAdClick records a generate click seen by the ad counter.
func (e *PrometheusExporter) RecordAdClick(shown bool) {
	label := "false"
	if shown {
		label = "true"
	}
	e.adClicks.WithLabelValues(label).Inc()
}

// RevealStarted implements reveal.Observer.
func (e *PrometheusExporter) RevealStarted(int) {
	e.revealStarted.Inc()
	e.revealActive.Inc()
}

// RevealCompleted implements reveal.Observer.
func (e *PrometheusExporter) RevealCompleted(length int, elapsed time.Duration) {
	e.revealCompleted.Inc()
	e.revealActive.Dec()
	e.revealDuration.Observe(elapsed.Seconds())
	e.revealChars.Add(float64(length))
}

// RevealInterrupted implements reveal.Observer.
func (e *PrometheusExporter) RevealInterrupted(reason string) {
	e.revealInterrupted.WithLabelValues(reason).Inc()
	e.revealActive.Dec()
}

// ObserveFormatCache implements format.CacheObserver.
func (e *PrometheusExporter) ObserveFormatCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	e.cacheLookups.WithLabelValues(result).Inc()
}

// Handler returns the HTTP handler for the metrics endpoint.
func (e *PrometheusExporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// ServeHTTP implements http.Handler for the metrics endpoint.
func (e *PrometheusExporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.Handler().ServeHTTP(w, r)
}

// Registry returns the Prometheus registry.
func (e *PrometheusExporter) Registry() *prometheus.Registry {
	return e.registry
}

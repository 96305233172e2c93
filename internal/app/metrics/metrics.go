package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains all Prometheus metrics for the relay
type Metrics struct {
	registry *prometheus.Registry

	// Relay metrics
	UploadsTotal     *prometheus.CounterVec
	UploadSize       prometheus.Histogram
	UpstreamDuration prometheus.Histogram
	MissingFile      prometheus.Counter

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates the relay metrics on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		UploadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "transcripto_relay_uploads_total",
			Help: "Uploads forwarded to the backend, by normalized outcome",
		}, []string{"outcome"}),
		UploadSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "transcripto_relay_upload_size_bytes",
			Help:    "Size of forwarded media payloads",
			Buckets: prometheus.ExponentialBuckets(16*1024, 4, 8), // 16KB to ~256MB
		}),
		UpstreamDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "transcripto_relay_upstream_duration_seconds",
			Help:    "Time spent waiting on the transcription backend",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		}),
		MissingFile: factory.NewCounter(prometheus.CounterOpts{
			Name: "transcripto_relay_missing_file_total",
			Help: "Uploads rejected before forwarding because the file field was absent",
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "transcripto_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "transcripto_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// RecordUpload records one forwarded upload and its outcome label.
func (m *Metrics) RecordUpload(outcome string, sizeBytes int64, seconds float64) {
	if m == nil {
		return
	}
	m.UploadsTotal.WithLabelValues(outcome).Inc()
	if sizeBytes >= 0 {
		m.UploadSize.Observe(float64(sizeBytes))
	}
	m.UpstreamDuration.Observe(seconds)
}

// RecordMissingFile counts a request rejected for lacking a file part.
func (m *Metrics) RecordMissingFile() {
	if m == nil {
		return
	}
	m.MissingFile.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

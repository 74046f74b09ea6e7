package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the dedicated registry exposed on /api/metrics.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Histogram buckets sized for request handling plus a synchronous SMTP
	// round trip, which can take several seconds on a slow relay.
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Business Metrics
	EnquirySubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voltdrive_enquiry_submissions_total",
			Help: "Total number of enquiry form submissions",
		},
		[]string{"status"},
	)

	EnquiryAttachments = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voltdrive_enquiry_attachments_total",
			Help: "Total number of enquiry submissions carrying an attachment",
		},
		[]string{"content_type"},
	)

	// Mail Client Metrics
	MailSendDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mail_client_send_duration_seconds",
			Help:    "Mail delivery duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"status"},
	)

	MailSendTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_client_send_total",
			Help: "Total number of mail delivery attempts",
		},
		[]string{"status"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}

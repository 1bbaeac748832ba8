package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        "minutes_build_info",
			Help:        "Build information",
			ConstLabels: prometheus.Labels{"component": "server"},
		},
		[]string{"date", "sha", "version"},
	)

	operationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minutes_operation_requests_total",
			Help: "Number of pipeline operation requests",
		},
		[]string{"operation", "outcome"},
	)

	operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "minutes_operation_duration_seconds",
			Help:    "Pipeline operation duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	modelCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minutes_model_calls_total",
			Help: "Number of outbound model calls, including retries",
		},
		[]string{"kind", "outcome"},
	)

	audioUploadBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "minutes_audio_upload_bytes",
			Help:    "Size of accepted audio uploads",
			Buckets: prometheus.ExponentialBuckets(1<<20, 2, 10),
		},
	)
)

// Register registers all metrics with the provided registerer.
func Register(r prometheus.Registerer) {
	r.MustRegister(buildInfo, operationRequests, operationDuration, modelCalls, audioUploadBytes)
}

// SetServerBuildInfo sets the build info metric for the server.
func SetServerBuildInfo(version, sha, date string) {
	buildInfo.WithLabelValues(date, sha, version).Set(1)
}

// RecordOperation increments the request counter for one pipeline operation.
func RecordOperation(operation string, success bool) {
	operationRequests.WithLabelValues(operation, outcome(success)).Inc()
}

// ObserveOperationDuration records how long one pipeline operation took.
func ObserveOperationDuration(operation string, d time.Duration) {
	operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordModelCall increments the outbound model call counter.
func RecordModelCall(kind string, success bool) {
	modelCalls.WithLabelValues(kind, outcome(success)).Inc()
}

// ObserveAudioUpload records the size of an accepted audio upload.
func ObserveAudioUpload(bytes int64) {
	audioUploadBytes.Observe(float64(bytes))
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	apiRequestsTotal     *prometheus.CounterVec
	apiLatencySeconds    *prometheus.HistogramVec
	apiErrorsTotal       *prometheus.CounterVec
	progressBuildSeconds prometheus.Histogram
	reportBuildSeconds   prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ludika_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ludika_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ludika_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		progressBuildSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ludika_progress_build_seconds",
			Help:    "Time spent assembling course progress rollups.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		})

		reportBuildSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ludika_report_build_seconds",
			Help:    "Time spent building student narrative reports, generation included.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		prometheus.MustRegister(apiRequestsTotal, apiLatencySeconds, apiErrorsTotal, progressBuildSeconds, reportBuildSeconds)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// ProgressLatency exposes the histogram for course progress builds.
func ProgressLatency() prometheus.Histogram {
	RegisterMetrics()
	return progressBuildSeconds
}

// ReportLatency exposes the histogram for report builds.
func ReportLatency() prometheus.Histogram {
	RegisterMetrics()
	return reportBuildSeconds
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// API client metrics
	ExternalAPICalls    *prometheus.CounterVec
	ExternalAPIDuration *prometheus.HistogramVec
	ExternalAPIFailures *prometheus.CounterVec

	// Dashboard metrics
	Aggregations          *prometheus.CounterVec
	ChartRejectedEntries  prometheus.Counter
	StaleResultsDiscarded *prometheus.CounterVec
	StatusUpdates         *prometheus.CounterVec
	UnassignedProspects   prometheus.Counter
}

// NewWithRegistry registers on reg; tests pass a fresh prometheus.NewRegistry().
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		ExternalAPICalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_api_calls_total",
				Help: "Total number of calls made by the dashboard API client",
			},
			[]string{"resource", "status"},
		),

		ExternalAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_api_call_duration_seconds",
				Help:    "Dashboard API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"resource"},
		),

		ExternalAPIFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_api_failures_total",
				Help: "Total number of failed dashboard API calls",
			},
			[]string{"resource", "error_type"},
		),

		Aggregations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_aggregations_total",
				Help: "Total number of dashboard view derivations",
			},
			[]string{"kind"},
		),

		ChartRejectedEntries: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dashboard_chart_rejected_entries_total",
				Help: "Timeseries entries dropped because their date could not be parsed",
			},
		),

		StaleResultsDiscarded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_stale_results_total",
				Help: "Fetch results discarded because a newer request was issued",
			},
			[]string{"resource"},
		),

		StatusUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prospect_status_updates_total",
				Help: "Total number of prospect status updates",
			},
			[]string{"status", "result"},
		),

		UnassignedProspects: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dashboard_pipeline_unassigned_total",
				Help: "Prospects left out of every pipeline stage",
			},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// API client call metrics
func (m *Metrics) RecordExternalAPICall(resource, status string, duration time.Duration) {
	m.ExternalAPICalls.WithLabelValues(resource, status).Inc()
	m.ExternalAPIDuration.WithLabelValues(resource).Observe(duration.Seconds())
}

func (m *Metrics) RecordExternalAPIFailure(resource, errorType string) {
	m.ExternalAPIFailures.WithLabelValues(resource, errorType).Inc()
}

func (m *Metrics) RecordAggregation(kind string) {
	m.Aggregations.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordChartRejected(count int) {
	m.ChartRejectedEntries.Add(float64(count))
}

func (m *Metrics) RecordStaleResult(resource string) {
	m.StaleResultsDiscarded.WithLabelValues(resource).Inc()
}

func (m *Metrics) RecordStatusUpdate(status, result string) {
	m.StatusUpdates.WithLabelValues(status, result).Inc()
}

func (m *Metrics) RecordUnassigned(count int) {
	m.UnassignedProspects.Add(float64(count))
}

func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}

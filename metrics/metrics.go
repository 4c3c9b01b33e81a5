// Package metrics provides Prometheus metrics for dataset parsing and the HTTP API.
//
// Parser metrics:
//   - nist_records_parsed_total: Counter with a mode label (lines, records)
//   - nist_inconsistent_records_total: Counter of record-boundary length mismatches
//   - nist_fetch_failures_total: Counter with a status label
//   - nist_fetch_duration_seconds: Histogram of remote fetch latency
//
// HTTP metrics mirror the usual request total/duration/in-flight trio.
// All metrics are registered with the Prometheus default registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	ModeLines   = "lines"
	ModeRecords = "records"
)

var (
	RecordsParsedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nist_records_parsed_total",
			Help: "Total isotope records parsed, by input mode",
		},
		[]string{"mode"},
	)

	InconsistentRecordsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nist_inconsistent_records_total",
			Help: "Record boundaries where field columns had different lengths",
		},
	)

	FetchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nist_fetch_failures_total",
			Help: "Failed remote dataset fetches, by HTTP status (or \"error\" for transport failures)",
		},
		[]string{"status"},
	)

	FetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nist_fetch_duration_seconds",
			Help:    "Remote dataset fetch latency",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)
)

func init() {
	prometheus.MustRegister(RecordsParsedTotal)
	prometheus.MustRegister(InconsistentRecordsTotal)
	prometheus.MustRegister(FetchFailuresTotal)
	prometheus.MustRegister(FetchDuration)
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	scansTotal  *prometheus.CounterVec
	rowsTotal   *prometheus.CounterVec
	lastRows    *prometheus.GaugeVec
	errorsTotal *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New registers the screener metrics on the default registry.
func New() *Recorder {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers on reg; tests pass a fresh prometheus.NewRegistry().
func NewWith(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		scansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finscreen_scans_total",
				Help: "Total number of scans by screener and outcome",
			},
			[]string{"screener", "status"},
		),
		rowsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finscreen_rows_total",
				Help: "Total number of result rows returned",
			},
			[]string{"screener"},
		),
		lastRows: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "finscreen_last_scan_rows",
				Help: "Row count of the most recent scan",
			},
			[]string{"screener"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finscreen_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finscreen_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordScan counts one finished scan.
func (r *Recorder) RecordScan(screener, status string) {
	r.scansTotal.WithLabelValues(screener, status).Inc()
}

// RecordRows records the row count of a scan.
func (r *Recorder) RecordRows(screener string, rows int) {
	r.rowsTotal.WithLabelValues(screener).Add(float64(rows))
	r.lastRows.WithLabelValues(screener).Set(float64(rows))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

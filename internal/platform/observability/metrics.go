package observability

import (
	"time"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the ledger.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Registry owns these metrics and backs the /metrics endpoint.
	Registry *prometheus.Registry

	operationsTotal       *prometheus.CounterVec
	operationDuration     *prometheus.HistogramVec
	httpRequestDuration   *prometheus.HistogramVec
	accountNumberAttempts prometheus.Histogram
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// ledger metrics in it, so tests can build as many as they need.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operations_total",
				Help: "Ledger operations by outcome.",
			},
			[]string{"operation", "outcome"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_operation_duration_seconds",
				Help:    "Duration of ledger operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		accountNumberAttempts: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_account_number_attempts",
				Help:    "Draws needed to allocate an unused account number.",
				Buckets: []float64{1, 2, 3, 5, 8, 13},
			},
		),
	}
}

// Outcome buckets an operation error for the outcome label.
func Outcome(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.KindNone:
		return "success"
	case apperrors.KindValidation, apperrors.KindNotFound, apperrors.KindDuplicate:
		return "rejected"
	case apperrors.KindConflict:
		return "conflict"
	}
	return "error"
}

// RecordOperation counts an operation and observes its duration.
func (m *Metrics) RecordOperation(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(operation, Outcome(err)).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordHTTPRequest observes the duration of one HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// RecordAccountNumberAttempts observes how many draws an allocation took.
func (m *Metrics) RecordAccountNumberAttempts(attempts int) {
	if m == nil {
		return
	}
	m.accountNumberAttempts.Observe(float64(attempts))
}

// Package metrics holds the Prometheus collectors recorded around each API
// call.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ghsearch"

// Request outcomes.
const (
	OutcomeSuccess        = "success"
	OutcomeTransportError = "transport_error"
	OutcomeDecodeError    = "decode_error"
)

// Metrics records request counts, latency and decode failures. A nil
// *Metrics records nothing.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	decodeErrors    *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. When service is not
// empty every series carries a constant service label.
func New(reg prometheus.Registerer, service string) *Metrics {
	m := &Metrics{
		requestsTotal: createCounterVec("requests_total",
			"Total number of API requests by endpoint and outcome.", []string{"endpoint", "outcome"}),
		requestDuration: createHistogramVec("request_duration_seconds",
			"Duration of API requests in seconds, including decoding.", []string{"endpoint"}, prometheus.DefBuckets),
		decodeErrors: createCounterVec("decode_errors_total",
			"Total number of response decode failures by error code.", []string{"code"}),
	}
	if reg != nil {
		if service != "" {
			reg = prometheus.WrapRegistererWith(prometheus.Labels{"service": service}, reg)
		}
		reg.MustRegister(m.requestsTotal, m.requestDuration, m.decodeErrors)
	}
	return m
}

// IncrementRequests counts one finished request.
func (m *Metrics) IncrementRequests(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

// RecordRequestDuration observes the time since start.
// Example: defer m.RecordRequestDuration(time.Now(), "search/repositories")
func (m *Metrics) RecordRequestDuration(start time.Time, endpoint string) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// IncrementDecodeErrors counts one decode failure by its error code.
func (m *Metrics) IncrementDecodeErrors(code string) {
	if m == nil {
		return
	}
	m.decodeErrors.WithLabelValues(code).Inc()
}

func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jsamuelsen/quote-consumer/internal/domain"
)

// Fetch outcomes recorded on quote_fetch_total.
const (
	ResultSuccess  = "success"
	ResultTimeout  = "timeout"
	ResultNetwork  = "network"
	ResultUpstream = "upstream"
	ResultDecode   = "decode"
	ResultError    = "error"
)

// Metrics holds the Prometheus collectors for quote fetches.
type Metrics struct {
	fetchTotal    *prometheus.CounterVec
	fetchDuration prometheus.Histogram
}

// NewMetrics creates the quote collectors and registers them on reg.
// A nil reg yields working but unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		fetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_fetch_total",
			Help: "Upstream quote fetches by outcome.",
		}, []string{"result"}),
		fetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "quote_fetch_duration_seconds",
			Help:    "Latency of upstream quote fetches.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) observe(seconds float64, err error) {
	m.fetchDuration.Observe(seconds)
	m.fetchTotal.WithLabelValues(resultLabel(err)).Inc()
}

// resultLabel classifies err into one of the Result* labels.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case domain.IsTimeout(err):
		return ResultTimeout
	case domain.IsNetwork(err):
		return ResultNetwork
	case domain.IsUpstream(err):
		return ResultUpstream
	case domain.IsDecode(err):
		return ResultDecode
	default:
		return ResultError
	}
}

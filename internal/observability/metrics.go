package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/pathwalk/pathwalk/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	requestsTotal      *prometheus.CounterVec
	truncationsTotal   *prometheus.CounterVec
	ratelimitHitsTotal *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	resultBytes        *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "pathwalk_requests_total", Help: "Total path operations served"},
			[]string{"op", "style", "code"},
		),
		truncationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "pathwalk_truncations_total", Help: "Results that did not fit the requested capacity"},
			[]string{"op"},
		),
		ratelimitHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "pathwalk_ratelimit_hits_total", Help: "Total rate limit hits"},
			[]string{"op", "key"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pathwalk_request_duration_seconds",
				Help:    "Request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		resultBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pathwalk_result_bytes",
				Help:    "Untruncated result length in bytes",
				Buckets: prometheus.ExponentialBuckets(8, 4, 6),
			},
			[]string{"op"},
		),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.requestsTotal,
		m.truncationsTotal,
		m.ratelimitHitsTotal,
		m.requestDuration,
		m.resultBytes,
	)

	return m
}

func (m *Metrics) Handler(reg *prometheus.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Observe records one served request. A nil Metrics is a no-op.
func (m *Metrics) Observe(op logging.Op, ratelimitKey string) {
	if m == nil {
		return
	}

	name := op.Op
	if name == "" {
		name = "unknown"
	}

	m.requestsTotal.WithLabelValues(name, op.Style, strconv.Itoa(op.StatusCode)).Inc()
	m.requestDuration.WithLabelValues(name).Observe((time.Duration(op.DurationMS) * time.Millisecond).Seconds())

	if op.RateLimited {
		m.ratelimitHitsTotal.WithLabelValues(name, ratelimitKey).Inc()
		return
	}
	if op.StatusCode != http.StatusOK {
		return
	}
	m.resultBytes.WithLabelValues(name).Observe(float64(op.Length))
	if op.Truncated {
		m.truncationsTotal.WithLabelValues(name).Inc()
	}
}

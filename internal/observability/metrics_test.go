package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pathwalk/pathwalk/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	metrics.Observe(logging.Op{Op: "join", Style: "unix", StatusCode: 200, Length: 12, Truncated: true, DurationMS: 3}, "ip")
	metrics.Observe(logging.Op{Op: "join", Style: "unix", StatusCode: 200, Length: 4}, "ip")
	metrics.Observe(logging.Op{Op: "join", Style: "unix", StatusCode: 429, RateLimited: true}, "ip")
	metrics.Observe(logging.Op{Style: "unix", StatusCode: 404}, "ip")

	body := scrape(t, metrics, reg)
	assert.Contains(t, body, `pathwalk_requests_total{code="200",op="join",style="unix"} 2`)
	assert.Contains(t, body, `pathwalk_requests_total{code="429",op="join",style="unix"} 1`)
	assert.Contains(t, body, `pathwalk_requests_total{code="404",op="unknown",style="unix"} 1`)
	assert.Contains(t, body, `pathwalk_truncations_total{op="join"} 1`)
	assert.Contains(t, body, `pathwalk_ratelimit_hits_total{key="ip",op="join"} 1`)
	assert.Contains(t, body, `pathwalk_result_bytes_count{op="join"} 2`)
}

func scrape(t *testing.T, m *Metrics, reg *prometheus.Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetricsNilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.Observe(logging.Op{Op: "root"}, "") })
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	metrics.Observe(logging.Op{Op: "normalize", Style: "windows", StatusCode: 200}, "")

	assert.Contains(t, scrape(t, metrics, reg), `pathwalk_requests_total{code="200",op="normalize",style="windows"} 1`)
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSchedule(t *testing.T) {
	m := New("cineacme", prometheus.NewRegistry())

	m.ObserveSchedule("create", ResultCreated)
	m.ObserveSchedule("create", ResultCreated)
	m.ObserveSchedule("create", ResultConflict)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ScheduleTotal.WithLabelValues("create", ResultCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScheduleTotal.WithLabelValues("create", ResultConflict)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ScheduleTotal.WithLabelValues("update", ResultCreated)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveSchedule("create", ResultCreated)
		m.ObserveRequest(http.MethodGet, "/api/screenings", http.StatusOK, time.Millisecond)
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New("cineacme", prometheus.NewRegistry())
	m.ObserveRequest(http.MethodGet, "/api/screenings", http.StatusOK, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `cineacme_http_requests_total{method="GET",route="/api/screenings",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), "cineacme_http_request_duration_seconds_bucket")
}

package stream

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsObserve(t *testing.T) {
	m := NewMetrics()
	m.Observe(StoreSample{Live: 10, Visible: 4, Capacity: 16, StoreGrows: 4, StagingGrows: 1})
	m.Observe(StoreSample{Live: 20, Visible: 8, Capacity: 32, StoreGrows: 5, StagingGrows: 1})

	assert.Equal(t, 20.0, testutil.ToFloat64(m.Live))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.Visible))
	assert.Equal(t, 32.0, testutil.ToFloat64(m.Capacity))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.StoreGrows))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StagingGrows))
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.Observe(StoreSample{Live: 1}) })
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.Observe(StoreSample{Live: 3})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "swarm_live_particles 3"), body)
}

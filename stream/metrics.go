package stream

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StoreSample is one tick's view of the store and staging buffers.
type StoreSample struct {
	Live         int
	Visible      int
	Capacity     int
	StoreGrows   int // running total
	StagingGrows int // running total
}

// Metrics holds the Prometheus collectors for a simulation run. Each
// instance has its own registry so several runs can coexist in a process.
type Metrics struct {
	registry *prometheus.Registry

	Live          prometheus.Gauge
	Visible       prometheus.Gauge
	Capacity      prometheus.Gauge
	StoreGrows    prometheus.Counter
	StagingGrows  prometheus.Counter
	FramesSent    prometheus.Counter
	FramesDropped prometheus.Counter
	Clients       prometheus.Gauge

	lastStoreGrows   int
	lastStagingGrows int
}

// NewMetrics registers the swarm collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Live: f.NewGauge(prometheus.GaugeOpts{
			Name: "swarm_live_particles",
			Help: "Particles currently in the store",
		}),
		Visible: f.NewGauge(prometheus.GaugeOpts{
			Name: "swarm_visible_particles",
			Help: "Particles written to staging in the last frame",
		}),
		Capacity: f.NewGauge(prometheus.GaugeOpts{
			Name: "swarm_store_capacity",
			Help: "Store capacity in records",
		}),
		StoreGrows: f.NewCounter(prometheus.CounterOpts{
			Name: "swarm_store_grows_total",
			Help: "Store reallocations",
		}),
		StagingGrows: f.NewCounter(prometheus.CounterOpts{
			Name: "swarm_staging_grows_total",
			Help: "Staging buffer reallocations",
		}),
		FramesSent: f.NewCounter(prometheus.CounterOpts{
			Name: "swarm_frames_sent_total",
			Help: "Frames queued to websocket clients",
		}),
		FramesDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "swarm_frames_dropped_total",
			Help: "Frames dropped because a client send buffer was full",
		}),
		Clients: f.NewGauge(prometheus.GaugeOpts{
			Name: "swarm_stream_clients",
			Help: "Connected websocket clients",
		}),
	}
}

// Observe updates the store gauges and advances the grow counters by the
// difference from the previous sample.
func (m *Metrics) Observe(s StoreSample) {
	if m == nil {
		return
	}
	m.Live.Set(float64(s.Live))
	m.Visible.Set(float64(s.Visible))
	m.Capacity.Set(float64(s.Capacity))
	if d := s.StoreGrows - m.lastStoreGrows; d > 0 {
		m.StoreGrows.Add(float64(d))
	}
	if d := s.StagingGrows - m.lastStagingGrows; d > 0 {
		m.StagingGrows.Add(float64(d))
	}
	m.lastStoreGrows = s.StoreGrows
	m.lastStagingGrows = s.StagingGrows
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

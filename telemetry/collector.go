package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	spawned       int
	despawned     int
	storeGrows    int
	stagingGrows  int
	framesSent    int
	framesDropped int

	// Per-tick samples for the current window
	visible []float64
	lines   []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(1)
	if dt > 0 {
		ticksPerWindow = int32(windowDurationSec / float64(dt))
	}
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		visible:             make([]float64, 0, ticksPerWindow),
		lines:               make([]float64, 0, ticksPerWindow),
	}
}

// RecordSpawned records n particles inserted.
func (c *Collector) RecordSpawned(n int) { c.spawned += n }

// RecordDespawned records n particles removed.
func (c *Collector) RecordDespawned(n int) { c.despawned += n }

// RecordStoreGrow records one store reallocation.
func (c *Collector) RecordStoreGrow() { c.storeGrows++ }

// RecordStagingGrow records one staging buffer reallocation.
func (c *Collector) RecordStagingGrow() { c.stagingGrows++ }

// RecordFrame records one streamed frame, sent or dropped per client.
func (c *Collector) RecordFrame(sent, dropped int) {
	c.framesSent += sent
	c.framesDropped += dropped
}

// SampleTick records the per-frame visible particle and link line counts.
func (c *Collector) SampleTick(visible, lines int) {
	c.visible = append(c.visible, float64(visible))
	c.lines = append(c.lines, float64(lines))
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// live and capacity describe the store at the end of the window.
func (c *Collector) Flush(currentTick int32, live, capacity int) WindowStats {
	vis := ComputeDistribution(c.visible)
	lines := ComputeDistribution(c.lines)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Live:     live,
		Capacity: capacity,

		Spawned:      c.spawned,
		Despawned:    c.despawned,
		StoreGrows:   c.storeGrows,
		StagingGrows: c.stagingGrows,

		VisibleMean: vis.Mean,
		VisibleStd:  vis.Std,
		VisibleP10:  vis.P10,
		VisibleP50:  vis.P50,
		VisibleP90:  vis.P90,
		VisibleMax:  vis.Max,

		LinesMean: lines.Mean,

		FramesSent:    c.framesSent,
		FramesDropped: c.framesDropped,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawned = 0
	c.despawned = 0
	c.storeGrows = 0
	c.stagingGrows = 0
	c.framesSent = 0
	c.framesDropped = 0
	c.visible = c.visible[:0]
	c.lines = c.lines[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Store state at window end
	Live     int `csv:"live"`
	Capacity int `csv:"capacity"`

	// Events during window
	Spawned      int `csv:"spawned"`
	Despawned    int `csv:"despawned"`
	StoreGrows   int `csv:"store_grows"`
	StagingGrows int `csv:"staging_grows"`

	// Visible particles per frame, sampled every tick of the window
	VisibleMean float64 `csv:"visible_mean"`
	VisibleStd  float64 `csv:"visible_std"`
	VisibleP10  float64 `csv:"visible_p10"`
	VisibleP50  float64 `csv:"visible_p50"`
	VisibleP90  float64 `csv:"visible_p90"`
	VisibleMax  float64 `csv:"visible_max"`

	// Link lines per frame
	LinesMean float64 `csv:"lines_mean"`

	// Stream
	FramesSent    int `csv:"frames_sent"`
	FramesDropped int `csv:"frames_dropped"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation between closest ranks
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution summarises a sample.
type Distribution struct {
	Mean, Std          float64
	P10, P50, P90, Max float64
}

// ComputeDistribution calculates mean, sample standard deviation, percentiles
// and maximum. An empty sample yields all zeros; a single value has Std 0.
func ComputeDistribution(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	var d Distribution
	if n == 1 {
		d.Mean = values[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	d.P10 = Percentile(sorted, 0.10)
	d.P50 = Percentile(sorted, 0.50)
	d.P90 = Percentile(sorted, 0.90)
	d.Max = floats.Max(sorted)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("live", s.Live),
		slog.Int("capacity", s.Capacity),
		slog.Int("spawned", s.Spawned),
		slog.Int("despawned", s.Despawned),
		slog.Int("store_grows", s.StoreGrows),
		slog.Int("staging_grows", s.StagingGrows),
		slog.Float64("visible_mean", s.VisibleMean),
		slog.Float64("visible_p50", s.VisibleP50),
		slog.Float64("visible_max", s.VisibleMax),
		slog.Float64("lines_mean", s.LinesMean),
		slog.Int("frames_sent", s.FramesSent),
		slog.Int("frames_dropped", s.FramesDropped),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}

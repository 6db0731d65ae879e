// Package sim runs the particle simulation loop without any graphics, so the
// same tick drives the raylib window, headless runs and tests.
package sim

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/particles"
	"github.com/pthm-cable/swarm/staging"
	"github.com/pthm-cable/swarm/stream"
	"github.com/pthm-cable/swarm/systems"
	"github.com/pthm-cable/swarm/telemetry"
)

// FrameSink receives encoded staging frames and store samples.
// *stream.Hub implements it.
type FrameSink interface {
	Broadcast(frame []byte) (sent, dropped int)
	ObserveStore(s stream.StoreSample)
}

// Options configures a simulation run.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // empty = no CSV output
	Sink           FrameSink
}

// Sim owns the store and every system that mutates it. It is not safe for
// concurrent use; only the sink crosses goroutines.
type Sim struct {
	cfg  *config.Config
	seed int64

	store   *particles.Store
	tracker *particles.Tracker
	points  *staging.Buffer
	lines   *staging.Buffer

	spawner *systems.Spawner
	forces  *systems.Forces
	despawn *systems.Despawn

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	bookmarks *telemetry.BookmarkDetector
	output    *telemetry.OutputManager
	logStats  bool

	sink          FrameSink
	frameInterval int32

	tick         int32
	visible      int
	lineCount    int
	stagingGrows int
	showLinks    bool

	statsCallback func(telemetry.WindowStats)
}

// New builds a simulation from cfg. The spawner starts at the world center.
func New(cfg *config.Config, opts Options) (*Sim, error) {
	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	s := &Sim{
		cfg:           cfg,
		seed:          opts.Seed,
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		bookmarks:     telemetry.NewBookmarkDetector(10),
		logStats:      opts.LogStats,
		sink:          opts.Sink,
		frameInterval: int32(cfg.Stream.FrameInterval),
		showLinks:     cfg.Render.ShowLinks,
	}
	if s.frameInterval < 1 {
		s.frameInterval = 1
	}

	s.store = particles.New(cfg.Store.InitialCapacity, particles.WithGrowHook(func(from, to int) {
		s.collector.RecordStoreGrow()
		slog.Debug("store grew", "from", from, "to", to)
	}))
	s.tracker = particles.NewTracker(s.store)
	s.tracker.SetLinkRepair(cfg.Store.LinkRepair)
	s.points = staging.New(cfg.Store.StagingCapacity)
	s.lines = staging.New(cfg.Store.StagingCapacity)

	s.spawner = systems.NewSpawner(SpawnParams(cfg), opts.Seed)
	s.spawner.SetOrigin(cfg.Derived.WorldW32/2, cfg.Derived.WorldH32/2)

	var wind *systems.Wind
	if cfg.Physics.WindStrength != 0 {
		wind = systems.NewWind(opts.Seed+1,
			float32(cfg.Physics.WindStrength),
			float32(cfg.Physics.WindScale),
			float32(cfg.Physics.WindSpeed))
	}
	s.forces = systems.NewForces(ForceParams(cfg), wind)

	if cfg.Despawn.Enabled {
		s.despawn = systems.NewDespawn(
			systems.Bounds{Width: cfg.Derived.WorldW32, Height: cfg.Derived.WorldH32},
			float32(cfg.Despawn.Margin))
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	s.output = output
	return s, nil
}

// SpawnParams converts the spawner section of cfg.
func SpawnParams(cfg *config.Config) systems.SpawnParams {
	sc := cfg.Spawner
	return systems.SpawnParams{
		Interval:     float32(sc.Interval),
		Batch:        sc.Batch,
		MaxParticles: sc.MaxParticles,
		Speed:        float32(sc.Speed),
		RadiusMin:    float32(sc.RadiusMin),
		RadiusMax:    float32(sc.RadiusMax),
		StrokeChance: float32(sc.StrokeChance),
		LinkChance:   float32(sc.LinkChance),
		StaticChance: float32(sc.StaticChance),
	}
}

// ForceParams converts the physics section of cfg.
func ForceParams(cfg *config.Config) systems.ForceParams {
	pc := cfg.Physics
	return systems.ForceParams{
		GravityX:          float32(pc.GravityX),
		GravityY:          float32(pc.GravityY),
		AttractorStrength: float32(pc.AttractorStrength),
		AttractorRadius:   float32(pc.AttractorRadius),
	}
}

// Step runs one tick. vp is the world rectangle whose particles are staged
// for drawing and streaming.
func (s *Sim) Step(vp particles.Viewport) {
	dt := s.cfg.Derived.DT32
	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseSpawn)
	if n := s.spawner.Update(s.tracker, dt); n > 0 {
		s.collector.RecordSpawned(n)
	}

	s.perf.StartPhase(telemetry.PhaseForces)
	s.forces.Update(s.store, dt)

	s.perf.StartPhase(telemetry.PhaseUpdate)
	visible, grew := s.store.Update(dt, vp, s.points)
	s.visible = visible
	if grew {
		s.recordStagingGrow("points", s.points)
	}

	s.perf.StartPhase(telemetry.PhaseLinks)
	s.lineCount = 0
	if s.showLinks {
		lines, grew := s.store.Links(vp, s.lines)
		s.lineCount = lines
		if grew {
			s.recordStagingGrow("lines", s.lines)
		}
	}

	s.perf.StartPhase(telemetry.PhaseDespawn)
	if s.despawn != nil {
		if n := s.despawn.Update(s.tracker); n > 0 {
			s.collector.RecordDespawned(n)
		}
	}

	s.tick++

	s.perf.StartPhase(telemetry.PhaseStream)
	s.publish()

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.collector.SampleTick(s.visible, s.lineCount)
	s.flushTelemetry()

	s.perf.EndTick()
}

func (s *Sim) recordStagingGrow(which string, buf *staging.Buffer) {
	s.stagingGrows++
	s.collector.RecordStagingGrow()
	slog.Debug("staging grew", "buffer", which, "capacity", buf.Cap())
}

// publish sends the visible prefix to the sink every frameInterval ticks.
func (s *Sim) publish() {
	if s.sink == nil {
		return
	}
	if s.tick%s.frameInterval == 0 {
		sent, dropped := s.sink.Broadcast(stream.EncodeFrame(s.points, s.visible))
		s.collector.RecordFrame(sent, dropped)
	}
	s.sink.ObserveStore(stream.StoreSample{
		Live:         s.store.Len(),
		Visible:      s.visible,
		Capacity:     s.store.Cap(),
		StoreGrows:   s.store.Grows(),
		StagingGrows: s.stagingGrows,
	})
}

// WorldViewport covers the whole world, for runs without a camera.
func (s *Sim) WorldViewport() particles.Viewport {
	return particles.Viewport{Width: s.cfg.Derived.WorldW32, Height: s.cfg.Derived.WorldH32}
}

// Burst emits n particles immediately.
func (s *Sim) Burst(n int) int {
	emitted := s.spawner.Emit(s.tracker, n)
	s.collector.RecordSpawned(emitted)
	return emitted
}

// Clear removes every particle. Outstanding handles go stale.
func (s *Sim) Clear() {
	removed := s.tracker.Len()
	s.tracker.Reset()
	s.collector.RecordDespawned(removed)
	s.visible = 0
	s.lineCount = 0
}

// SetShowLinks enables or disables the link line pass.
func (s *Sim) SetShowLinks(on bool) {
	s.showLinks = on
	if !on {
		s.lineCount = 0
	}
}

// SetStatsCallback registers fn to receive every flushed stats window.
func (s *Sim) SetStatsCallback(fn func(telemetry.WindowStats)) {
	s.statsCallback = fn
}

// Close flushes and closes run output.
func (s *Sim) Close() error {
	return s.output.Close()
}

func (s *Sim) Config() *config.Config           { return s.cfg }
func (s *Sim) Tick() int32                      { return s.tick }
func (s *Sim) Seed() int64                      { return s.seed }
func (s *Sim) Store() *particles.Store          { return s.store }
func (s *Sim) Tracker() *particles.Tracker      { return s.tracker }
func (s *Sim) Points() *staging.Buffer          { return s.points }
func (s *Sim) Lines() *staging.Buffer           { return s.lines }
func (s *Sim) Visible() int                     { return s.visible }
func (s *Sim) LineCount() int                   { return s.lineCount }
func (s *Sim) StagingGrows() int                { return s.stagingGrows }
func (s *Sim) Spawner() *systems.Spawner        { return s.spawner }
func (s *Sim) Forces() *systems.Forces          { return s.forces }
func (s *Sim) Despawn() *systems.Despawn        { return s.despawn }
func (s *Sim) Perf() *telemetry.PerfCollector   { return s.perf }
func (s *Sim) Output() *telemetry.OutputManager { return s.output }
func (s *Sim) ShowLinks() bool                  { return s.showLinks }

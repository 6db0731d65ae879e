// Package game wires the simulation to a raylib window: camera, drawing,
// UI panels and input.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/swarm/camera"
	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/particles"
	"github.com/pthm-cable/swarm/renderer"
	"github.com/pthm-cable/swarm/sim"
	"github.com/pthm-cable/swarm/ui"
)

// Options holds configuration for game initialization.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	Sink           sim.FrameSink
}

// Game holds the complete game state.
type Game struct {
	sim *sim.Sim

	camera *camera.Camera

	// Rendering (nil in headless mode)
	background *renderer.BackgroundRenderer
	points     *renderer.ParticleRenderer
	lines      *renderer.LineRenderer

	// UI (nil in headless mode)
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	controls  *ui.ControlsPanel
	inspector *ui.Inspector
	overlays  *ui.OverlayRegistry
	values    ui.ControlValues

	// Selection
	selected     particles.Handle
	hasSelection bool

	clients func() int

	paused         bool
	headless       bool
	stepsPerUpdate int

	screenWidth, screenHeight float32
}

// NewGame creates a game from the global config. In headless mode no raylib
// call is made, so it runs without a window.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	s, err := sim.New(cfg, sim.Options{
		Seed:           opts.Seed,
		LogStats:       opts.LogStats,
		StatsWindowSec: opts.StatsWindowSec,
		OutputDir:      opts.OutputDir,
		Sink:           opts.Sink,
	})
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		sim:            s,
		camera:         camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, cfg.Derived.WorldW32, cfg.Derived.WorldH32),
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
		clients:        func() int { return 0 },
	}
	if c, ok := opts.Sink.(interface{ Clients() int }); ok {
		g.clients = c.Clients
	}

	if !opts.Headless {
		g.initGraphics(cfg)
	}
	return g, nil
}

// initGraphics creates renderers and UI panels. Requires an open window.
func (g *Game) initGraphics(cfg *config.Config) {
	g.background = renderer.NewBackgroundRenderer(cfg.Derived.Background, 100)
	g.points = renderer.NewParticleRenderer()
	g.lines = renderer.NewLineRenderer()

	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, 220)
	g.controls = ui.NewControlsPanel(int32(g.screenWidth)-250, 10, 240)
	g.controls.SetVisible(true)
	g.inspector = ui.NewInspector(int32(g.screenWidth)-500, 10, 240)

	g.overlays = ui.NewOverlayRegistry()
	g.overlays.SetEnabled(ui.OverlayLinks, cfg.Render.ShowLinks)
	g.overlays.SetEnabled(ui.OverlayGrid, true)
	g.overlays.SetEnabled(ui.OverlayAttractor, true)
	g.overlays.SetEnabled(ui.OverlayHUD, cfg.Render.ShowHUD)
	g.overlays.SetEnabled(ui.OverlayInspector, true)

	g.syncControlValues()
}

// Update handles input and runs stepsPerUpdate ticks against the camera view.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.sim.Step(g.camera.Viewport())
	}
}

// UpdateHeadless runs stepsPerUpdate ticks with the whole world staged.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.sim.Step(g.sim.WorldViewport())
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.sim.Tick()
}

// Sim returns the underlying simulation.
func (g *Game) Sim() *sim.Sim {
	return g.sim
}

// Unload releases resources and closes run output.
func (g *Game) Unload() {
	if err := g.sim.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

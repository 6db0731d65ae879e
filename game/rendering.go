package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/renderer"
	"github.com/pthm-cable/swarm/ui"
)

const controlsLegend = "SPACE pause  </> speed  LMB attract  RMB select  MMB/arrows pan  wheel zoom  B burst  C clear  TAB panel  L/G/A/H/P/I overlays"

// Draw renders the game.
func (g *Game) Draw() {
	g.sim.Perf().RecordFrame()
	cfg := g.sim.Config()

	rl.BeginDrawing()
	rl.ClearBackground(renderer.ClearColor(cfg.Derived.Background))

	if g.overlays.IsEnabled(ui.OverlayGrid) {
		g.background.Draw(g.camera)
	}
	if g.overlays.IsEnabled(ui.OverlayLinks) {
		g.lines.Draw(g.sim.Lines(), g.sim.LineCount(), g.camera)
	}
	g.points.Draw(g.sim.Points(), g.sim.Visible(), g.camera)

	g.drawWorldOverlays()
	g.drawPanels()

	rl.EndDrawing()
}

// drawPanels renders the HUD, perf panel, inspector and controls.
func (g *Game) drawPanels() {
	if g.overlays.IsEnabled(ui.OverlayHUD) {
		g.hud.Draw(g.hudData())
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.sim.Perf().Stats())
	}

	if g.overlays.IsEnabled(ui.OverlayInspector) {
		if data, ok := g.selection(); ok {
			g.inspector.Draw(data)
		}
	}
	g.applyActions(g.controls.Draw(&g.values, g.overlays, g.paused))

	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsLegend)
}

func (g *Game) hudData() ui.HUDData {
	st := g.sim.Store()
	return ui.HUDData{
		Title:        "Swarm",
		Live:         st.Len(),
		Capacity:     st.Cap(),
		Visible:      g.sim.Visible(),
		Lines:        g.sim.LineCount(),
		StoreGrows:   st.Grows(),
		StagingCap:   g.sim.Points().Cap(),
		StagingGrows: g.sim.StagingGrows(),
		Clients:      g.clients(),
		Tick:         g.sim.Tick(),
		Speed:        g.stepsPerUpdate,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
	}
}

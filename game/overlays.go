package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/ui"
)

var (
	selectionColor = rl.Color{R: 255, G: 220, B: 60, A: 255}
	attractorColor = rl.Color{R: 120, G: 200, B: 255, A: 160}
)

// drawWorldOverlays draws the attractor marker and the selection ring.
func (g *Game) drawWorldOverlays() {
	if g.overlays.IsEnabled(ui.OverlayAttractor) {
		g.drawAttractor()
	}
	g.drawSelection()
}

func (g *Game) drawAttractor() {
	ax, ay, active := g.sim.Forces().Attractor()
	if !active {
		return
	}
	sx, sy := g.camera.WorldToScreen(ax, ay)
	radius := g.sim.Forces().Params().AttractorRadius * g.camera.Zoom
	rl.DrawCircleLines(int32(sx), int32(sy), radius, attractorColor)
	rl.DrawCircleV(rl.NewVector2(sx, sy), 3, attractorColor)
}

func (g *Game) drawSelection() {
	data, ok := g.selection()
	if !ok {
		return
	}
	p := data.Particle
	if !g.camera.IsVisible(p.X, p.Y, p.Radius) {
		return
	}
	sx, sy := g.camera.WorldToScreen(p.X, p.Y)
	r := (p.Radius + 3) * g.camera.Zoom
	rl.DrawRing(rl.NewVector2(sx, sy), r, r+2, 0, 360, 24, selectionColor)

	// Link target, if any
	if p.Link >= 0 && int(p.Link) < g.sim.Store().Len() {
		tx, ty := g.sim.Store().Position(int(p.Link))
		lx, ly := g.camera.WorldToScreen(tx, ty)
		rl.DrawLineV(rl.NewVector2(sx, sy), rl.NewVector2(lx, ly), selectionColor)
	}
}

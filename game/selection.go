package game

import "github.com/pthm-cable/swarm/ui"

// pickSlop widens the pick radius, in screen pixels, so small particles
// stay clickable.
const pickSlop = 4

// selectAt selects the particle nearest to world point (wx, wy), or
// clears the selection if there is none.
func (g *Game) selectAt(wx, wy float32) {
	g.selected, g.hasSelection = g.sim.ParticleAt(wx, wy, pickSlop/g.camera.Zoom)
}

// selection resolves the selected handle. Particles that were despawned or
// cleared drop the selection.
func (g *Game) selection() (ui.InspectorData, bool) {
	if !g.hasSelection {
		return ui.InspectorData{}, false
	}
	slot, ok := g.sim.Tracker().Slot(g.selected)
	if !ok {
		g.hasSelection = false
		return ui.InspectorData{}, false
	}
	return ui.InspectorData{
		Handle:   g.selected,
		Slot:     slot,
		Particle: g.sim.Store().Get(slot),
	}, true
}

package game

import (
	"github.com/pthm-cable/swarm/ui"
)

// syncControlValues copies the live system parameters into the slider values.
func (g *Game) syncControlValues() {
	sp := g.sim.Spawner().Params()
	fp := g.sim.Forces().Params()
	g.values = ui.ControlValues{
		SpawnInterval: sp.Interval,
		SpawnBatch:    float32(sp.Batch),
		MaxParticles:  float32(sp.MaxParticles),
		Speed:         sp.Speed,
		GravityY:      fp.GravityY,
		LinkChance:    sp.LinkChance,
	}
}

// applyControlValues pushes slider values back into the systems.
func (g *Game) applyControlValues() {
	sp := g.sim.Spawner().Params()
	sp.Interval = g.values.SpawnInterval
	sp.Batch = int(g.values.SpawnBatch)
	sp.MaxParticles = int(g.values.MaxParticles)
	sp.Speed = g.values.Speed
	sp.LinkChance = g.values.LinkChance
	g.sim.Spawner().SetParams(sp)

	fp := g.sim.Forces().Params()
	fp.GravityY = g.values.GravityY
	g.sim.Forces().SetParams(fp)
}

// applyActions handles the buttons pressed on the controls panel.
func (g *Game) applyActions(a ui.ControlActions) {
	if a.Changed {
		g.applyControlValues()
	}
	if a.TogglePause {
		g.paused = !g.paused
	}
	if a.Clear {
		g.clear()
	}
	if a.Burst {
		g.sim.Burst(g.sim.Spawner().Params().Batch)
	}
	if a.ResetCamera {
		g.camera.Reset()
	}
}

// clear removes every particle and drops the selection.
func (g *Game) clear() {
	g.sim.Clear()
	g.hasSelection = false
}

package sim

import "github.com/pthm-cable/swarm/particles"

// ParticleAt returns the handle of the particle closest to world point
// (x, y) among those whose radius plus slop contains it.
func (s *Sim) ParticleAt(x, y, slop float32) (particles.Handle, bool) {
	slot, ok := nearest(s.store, x, y, slop)
	if !ok {
		return particles.Handle{}, false
	}
	return s.tracker.HandleAt(slot)
}

func nearest(st *particles.Store, x, y, slop float32) (int, bool) {
	best := -1
	var bestD2 float32
	for slot := 0; slot < st.Len(); slot++ {
		px, py := st.Position(slot)
		r := st.Radius(slot) + slop
		dx, dy := px-x, py-y
		d2 := dx*dx + dy*dy
		if d2 > r*r {
			continue
		}
		if best < 0 || d2 < bestD2 {
			best, bestD2 = slot, d2
		}
	}
	return best, best >= 0
}

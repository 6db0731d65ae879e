package systems

import (
	"math"

	"github.com/pthm-cable/swarm/particles"
)

// Bounds is an axis-aligned world rectangle anchored at the origin.
type Bounds struct {
	Width, Height float32
}

// Despawn removes particles that drifted further than Margin outside the
// world bounds.
type Despawn struct {
	Bounds  Bounds
	Margin  float32
	removed int
}

// NewDespawn creates a despawn system.
func NewDespawn(bounds Bounds, margin float32) *Despawn {
	return &Despawn{Bounds: bounds, Margin: clampFloat(margin, 0, math.MaxFloat32)}
}

// Removed returns the total number of particles removed.
func (d *Despawn) Removed() int { return d.removed }

// Update removes out-of-bounds particles and returns how many were removed.
// Slots are visited from the end so a swap-and-pop only ever moves an
// already visited record into the current slot.
func (d *Despawn) Update(t *particles.Tracker) int {
	st := t.Store()
	n := 0
	for slot := st.Len() - 1; slot >= 0; slot-- {
		x, y := st.Position(slot)
		if d.inside(x, y) {
			continue
		}
		t.RemoveSlot(slot)
		n++
	}
	d.removed += n
	return n
}

func (d *Despawn) inside(x, y float32) bool {
	m := d.Margin
	return x >= -m && x <= d.Bounds.Width+m && y >= -m && y <= d.Bounds.Height+m
}

package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/camera"
	"github.com/pthm-cable/swarm/staging"
)

// minScreenRadius keeps tiny or far-zoomed particles visible as a dot.
const minScreenRadius = 0.5

// ParticleRenderer draws the visible prefix of a staging buffer.
type ParticleRenderer struct {
	// RingSegments is the tessellation used for stroke rings.
	RingSegments int32
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{RingSegments: 16}
}

// Draw renders the first n instances of buf as filled circles with an
// optional stroke ring. Positions and sizes are in world units and go
// through cam.
func (r *ParticleRenderer) Draw(buf *staging.Buffer, n int, cam *camera.Camera) {
	for i := 0; i < n; i++ {
		p := buf.Instance(i)

		sx, sy := cam.WorldToScreen(p.X, p.Y)
		center := rl.NewVector2(sx, sy)
		radius := p.Radius * cam.Zoom
		if radius < minScreenRadius {
			radius = minScreenRadius
		}

		if _, _, _, a := p.Fill.Components(); a > 0 {
			rl.DrawCircleV(center, radius, ToColor(p.Fill))
		}

		stroke := p.StrokeWidth * cam.Zoom
		if stroke <= 0 {
			continue
		}
		if _, _, _, a := p.Stroke.Components(); a == 0 {
			continue
		}
		inner := radius - stroke
		if inner < 0 {
			inner = 0
		}
		rl.DrawRing(center, inner, radius, 0, 360, r.RingSegments, ToColor(p.Stroke))
	}
}

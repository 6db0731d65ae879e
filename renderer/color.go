package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/particles"
)

// ToColor converts a packed 0xRRGGBBAA color to a raylib color.
func ToColor(c particles.Color) rl.Color {
	r, g, b, a := c.Components()
	return rl.NewColor(r, g, b, a)
}

// ClearColor is the raylib color to clear the frame with.
func ClearColor(c particles.Color) rl.Color {
	return ToColor(c)
}

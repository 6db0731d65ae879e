package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/camera"
	"github.com/pthm-cable/swarm/staging"
)

// LineRenderer draws link lines from a staging buffer.
type LineRenderer struct {
	// MinThickness is the thinnest line drawn, in pixels.
	MinThickness float32
}

// NewLineRenderer creates a new line renderer.
func NewLineRenderer() *LineRenderer {
	return &LineRenderer{MinThickness: 1}
}

// Draw renders the first n line records of buf.
func (r *LineRenderer) Draw(buf *staging.Buffer, n int, cam *camera.Camera) {
	for i := 0; i < n; i++ {
		l := buf.Line(i)
		if _, _, _, a := l.Color.Components(); a == 0 {
			continue
		}

		ax, ay := cam.WorldToScreen(l.AX, l.AY)
		bx, by := cam.WorldToScreen(l.BX, l.BY)
		thick := l.Thickness * cam.Zoom
		if thick < r.MinThickness {
			thick = r.MinThickness
		}
		rl.DrawLineEx(rl.NewVector2(ax, ay), rl.NewVector2(bx, by), thick, ToColor(l.Color))
	}
}

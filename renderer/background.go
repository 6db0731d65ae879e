package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/camera"
	"github.com/pthm-cable/swarm/particles"
)

// BackgroundRenderer draws the world rectangle and a reference grid so
// panning over an empty region still shows motion.
type BackgroundRenderer struct {
	worldColor  rl.Color
	gridColor   rl.Color
	borderColor rl.Color
	gridStep    float32
}

// NewBackgroundRenderer creates a background renderer. base is the clear
// color; the world fill and grid are derived from it.
func NewBackgroundRenderer(base particles.Color, gridStep float32) *BackgroundRenderer {
	c := ToColor(base)
	return &BackgroundRenderer{
		worldColor:  rl.ColorBrightness(c, 0.04),
		gridColor:   rl.ColorBrightness(c, 0.12),
		borderColor: rl.ColorBrightness(c, 0.3),
		gridStep:    gridStep,
	}
}

// Draw renders the world fill, grid lines inside the view, and the border.
func (b *BackgroundRenderer) Draw(cam *camera.Camera) {
	x0, y0 := cam.WorldToScreen(0, 0)
	x1, y1 := cam.WorldToScreen(cam.WorldW, cam.WorldH)
	world := rl.NewRectangle(x0, y0, x1-x0, y1-y0)
	rl.DrawRectangleRec(world, b.worldColor)

	if b.gridStep > 0 && b.gridStep*cam.Zoom >= 8 {
		minX, minY, maxX, maxY := cam.VisibleWorldBounds()
		start := float32(int(minX/b.gridStep)) * b.gridStep
		for gx := start; gx <= maxX; gx += b.gridStep {
			if gx < 0 || gx > cam.WorldW {
				continue
			}
			sx, _ := cam.WorldToScreen(gx, 0)
			rl.DrawLineV(rl.NewVector2(sx, y0), rl.NewVector2(sx, y1), b.gridColor)
		}
		start = float32(int(minY/b.gridStep)) * b.gridStep
		for gy := start; gy <= maxY; gy += b.gridStep {
			if gy < 0 || gy > cam.WorldH {
				continue
			}
			_, sy := cam.WorldToScreen(0, gy)
			rl.DrawLineV(rl.NewVector2(x0, sy), rl.NewVector2(x1, sy), b.gridColor)
		}
	}

	rl.DrawRectangleLinesEx(world, 2, b.borderColor)
}

package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlValues are the live-tunable simulation parameters shown as sliders.
type ControlValues struct {
	SpawnInterval float32
	SpawnBatch    float32
	MaxParticles  float32
	Speed         float32
	GravityY      float32
	LinkChance    float32
}

// ControlActions reports which buttons were pressed this frame.
type ControlActions struct {
	TogglePause bool
	Clear       bool
	Burst       bool
	ResetCamera bool
	Changed     bool // any slider moved
}

// slider describes one slider row.
type slider struct {
	label    string
	min, max float32
	format   string
	value    func(*ControlValues) *float32
}

var controlSliders = []slider{
	{"Spawn interval (s)", 0.01, 2, "%.2f", func(v *ControlValues) *float32 { return &v.SpawnInterval }},
	{"Batch size", 1, 2000, "%.0f", func(v *ControlValues) *float32 { return &v.SpawnBatch }},
	{"Max particles", 100, 200000, "%.0f", func(v *ControlValues) *float32 { return &v.MaxParticles }},
	{"Initial speed", 0, 200, "%.0f", func(v *ControlValues) *float32 { return &v.Speed }},
	{"Gravity", -200, 200, "%.0f", func(v *ControlValues) *float32 { return &v.GravityY }},
	{"Link chance", 0, 1, "%.2f", func(v *ControlValues) *float32 { return &v.LinkChance }},
}

// ControlsPanel renders the raygui controls panel: parameter sliders,
// action buttons and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the visible panel, so
// clicks there do not reach the world.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x < float32(c.x+c.width) && y >= float32(c.y) && y < float32(c.y+c.height(nil))
}

func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	lh := c.renderer.Theme.LineHeight
	rows := int32(len(controlSliders))*(lh+24) + 2*36 + lh + 8
	if overlays != nil {
		rows += int32(len(overlays.All())) * (lh + 4)
	} else {
		rows += 6 * (lh + 4)
	}
	return rows + c.renderer.Theme.Padding*2
}

// Draw renders the controls panel, writes slider changes into vals and
// returns the actions triggered this frame.
func (c *ControlsPanel) Draw(vals *ControlValues, overlays *OverlayRegistry, paused bool) ControlActions {
	var actions ControlActions
	if !c.visible {
		return actions
	}

	r := c.renderer
	padding := r.Theme.Padding
	lh := r.Theme.LineHeight
	r.DrawPanel(c.x, c.y, c.width, c.height(overlays))

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	inner := float32(c.width - padding*2)

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += float32(lh + 8)

	for _, s := range controlSliders {
		v := s.value(vals)
		rl.DrawText(s.label, int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		rl.DrawText(fmt.Sprintf(s.format, *v), int32(x+inner-50), int32(y), r.Theme.FontSize, r.Theme.ValueColor)
		y += float32(lh)
		next := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: inner, Height: 16}, "", "", *v, s.min, s.max)
		if next != *v {
			*v = next
			actions.Changed = true
		}
		y += 24
	}

	half := (inner - 10) / 2
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 28}, toggleText(paused, "Resume", "Pause")) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 28}, "Clear") {
		actions.Clear = true
	}
	y += 36
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 28}, "Burst") {
		actions.Burst = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 28}, "Reset View") {
		actions.ResetCamera = true
	}
	y += 36

	if overlays != nil {
		for _, desc := range overlays.All() {
			label := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			enabled := overlays.IsEnabled(desc.ID)
			if checked := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, label, enabled); checked != enabled {
				overlays.SetEnabled(desc.ID, checked)
			}
			y += float32(lh + 4)
		}
	}
	return actions
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}

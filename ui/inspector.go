package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/particles"
	"github.com/pthm-cable/swarm/renderer"
)

// InspectorData holds the selected particle.
type InspectorData struct {
	Handle   particles.Handle
	Slot     int
	Particle particles.Spec
}

// Inspector renders the particle inspection panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: inspectorSections(),
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

func spec(d any) particles.Spec { return d.(InspectorData).Particle }

func inspectorSections() []SectionDescriptor {
	return []SectionDescriptor{
		{
			ID:    "identity",
			Title: "Particle",
			Fields: []FieldDescriptor{
				{ID: "handle", Label: "Handle", Widget: WidgetText, TextGetter: func(d any) string {
					data := d.(InspectorData)
					return fmt.Sprintf("#%d gen %d", data.Handle.Index, data.Handle.Gen)
				}},
				{ID: "slot", Label: "Slot", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return float32(d.(InspectorData).Slot)
				}},
				{ID: "flags", Label: "Flags", Widget: WidgetText, TextGetter: func(d any) string {
					return flagsText(spec(d).Flags)
				}},
			},
		},
		{
			ID:    "motion",
			Title: "Motion",
			Fields: []FieldDescriptor{
				{ID: "pos", Label: "Position", Widget: WidgetText, TextGetter: func(d any) string {
					p := spec(d)
					return fmt.Sprintf("%.1f, %.1f", p.X, p.Y)
				}},
				{ID: "vel", Label: "Velocity", Widget: WidgetText, TextGetter: func(d any) string {
					p := spec(d)
					return fmt.Sprintf("%.1f, %.1f", p.VX, p.VY)
				}},
				{ID: "mass", Label: "Mass", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 { return spec(d).Mass }},
				{ID: "link", Label: "Link", Widget: WidgetText, TextGetter: func(d any) string {
					if l := spec(d).Link; l != particles.NoLink {
						return fmt.Sprintf("slot %d", l)
					}
					return "none"
				}},
			},
		},
		{
			ID:    "look",
			Title: "Appearance",
			Fields: []FieldDescriptor{
				{ID: "radius", Label: "Radius", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 { return spec(d).Radius }},
				{ID: "stroke_w", Label: "Stroke", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 { return spec(d).StrokeWidth }},
				{ID: "fill", Label: "Fill", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color { return renderer.ToColor(spec(d).Fill) }},
				{ID: "stroke", Label: "Stroke col", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color { return renderer.ToColor(spec(d).Stroke) }},
			},
		},
		{
			ID:    "reserved",
			Title: "Reserved",
			Fields: []FieldDescriptor{
				{ID: "friction", Label: "Friction", Widget: WidgetText, Format: "%.3f", Getter: func(d any) float32 { return spec(d).Friction }},
				{ID: "restitution", Label: "Restitution", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 { return spec(d).Restitution }},
			},
		},
	}
}

// Draw renders the inspector panel for the given data and returns the Y
// position below it.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding

	height := padding * 2
	for _, sd := range ins.sections {
		height += r.SectionHeight(sd, data)
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + padding
	for _, sd := range ins.sections {
		y = r.DrawSection(ins.x+padding, y, sd, data, ins.width-padding*2)
	}
	return y
}

func flagsText(f particles.Flags) string {
	switch {
	case f.IsStatic() && f.IsSensor():
		return "static, sensor"
	case f.IsStatic():
		return "static"
	case f.IsSensor():
		return "sensor"
	}
	return "dynamic"
}

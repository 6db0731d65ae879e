package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Live         int
	Capacity     int
	Visible      int
	Lines        int
	StoreGrows   int
	StagingCap   int // scalars
	StagingGrows int
	Clients      int
	Tick         int32
	Speed        int
	FPS          int32
	Paused       bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	fields   SectionDescriptor
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		fields:   hudSection(),
	}
}

func hudSection() SectionDescriptor {
	get := func(data any) HUDData { return data.(HUDData) }
	return SectionDescriptor{
		ID: "store",
		Fields: []FieldDescriptor{
			{ID: "live", Label: "Live", Widget: WidgetText, TextGetter: func(d any) string {
				h := get(d)
				return fmt.Sprintf("%d / %d", h.Live, h.Capacity)
			}},
			{ID: "fill", Label: "Fill", Widget: WidgetBar, Getter: func(d any) float32 {
				h := get(d)
				if h.Capacity == 0 {
					return 0
				}
				return float32(h.Live) / float32(h.Capacity)
			}, Range: DefaultRange()},
			{ID: "visible", Label: "Visible", Widget: WidgetText, TextGetter: func(d any) string {
				h := get(d)
				return fmt.Sprintf("%d (%d lines)", h.Visible, h.Lines)
			}},
			{ID: "grows", Label: "Grows", Widget: WidgetText, TextGetter: func(d any) string {
				h := get(d)
				return fmt.Sprintf("store %d, staging %d", h.StoreGrows, h.StagingGrows)
			}},
			{ID: "staging", Label: "Staging", Widget: WidgetText, TextGetter: func(d any) string {
				return fmt.Sprintf("%d scalars", get(d).StagingCap)
			}},
			{ID: "clients", Label: "Clients", Widget: WidgetText, Getter: func(d any) float32 {
				return float32(get(d).Clients)
			}, Format: "%.0f", Visible: func(d any) bool { return get(d).Clients > 0 }},
		},
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 35, 16, rl.LightGray,
	)

	width := int32(260)
	height := r.SectionHeight(h.fields, data) + r.Theme.Padding*2
	r.DrawPanel(10, 58, width, height)
	r.DrawSection(10+r.Theme.Padding, 58+r.Theme.Padding, h.fields, data, width-r.Theme.Padding*2)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 58+height+6, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase tick timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	lines := int32(len(telemetry.Phases) + 2)
	r.DrawPanel(p.x, p.y, 240, lines*14+r.Theme.Padding*2+6)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	rl.DrawText("Phase Timing", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-10s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}

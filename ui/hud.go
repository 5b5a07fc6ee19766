package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rust/telemetry"
)

// HUDData holds all the data needed to render the stats panel.
type HUDData struct {
	Tick        int
	MaxTicks    int // 0 = unlimited
	Coverage    float64
	Census      telemetry.Census
	SubSteps    int
	FPS         int32
	TicksPerSec float64
	Paused      bool
	Done        bool
	ClickMode   string
}

// HUD renders run statistics in the side panel.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a HUD drawn at (x, y) with the given panel width.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the HUD and returns the Y position below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	padding := r.Theme.Padding
	x := h.x + padding
	inner := h.width - padding*2

	y := h.y + padding
	rl.DrawText("Rust", x, y, 20, rl.RayWhite)
	y += 28

	status, statusColor := "Running", rl.Green
	switch {
	case data.Done:
		status, statusColor = "Done", r.Theme.SectionHeader
	case data.Paused:
		status, statusColor = "PAUSED", rl.Yellow
	}
	rl.DrawText(status, x, y, 16, statusColor)
	y += r.Theme.LineHeight + 4

	y = r.DrawSectionHeader(x, y, "Run")
	tick := fmt.Sprintf("%d", data.Tick)
	if data.MaxTicks > 0 {
		tick = fmt.Sprintf("%d / %d", data.Tick, data.MaxTicks)
	}
	y = r.DrawLabelValue(x, y, "Tick", tick)
	y = r.DrawLabelValue(x, y, "Sub-steps", fmt.Sprintf("%d", data.SubSteps))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = r.DrawLabelValue(x, y, "Ticks/s", fmt.Sprintf("%.0f", data.TicksPerSec))
	y = r.DrawBar(x, y, "Coverage", float32(data.Coverage), inner)
	y += 4

	c := data.Census
	y = r.DrawSectionHeader(x, y, "Stains")
	y = r.DrawLabelValue(x, y, "Total", fmt.Sprintf("%d", c.Stains))
	y = r.DrawLabelValue(x, y, "Frontier", fmt.Sprintf("%d", c.Frontier))
	y = r.DrawStackedBar(x, y+2, inner, []Segment{
		{Value: c.Active, Color: r.Theme.StateActive},
		{Value: c.Exhausted, Color: r.Theme.StateExhausted},
		{Value: c.Dormant, Color: r.Theme.StateDormant},
	})
	y = r.DrawSwatchLabel(x, y, r.Theme.StateActive, fmt.Sprintf("active %d", c.Active))
	y = r.DrawSwatchLabel(x, y, r.Theme.StateExhausted, fmt.Sprintf("exhausted %d", c.Exhausted))
	y = r.DrawSwatchLabel(x, y, r.Theme.StateDormant, fmt.Sprintf("dormant %d", c.Dormant))
	y += 4

	y = r.DrawSectionHeader(x, y, "Input")
	y = r.DrawLabelValue(x, y, "Click", data.ClickMode)
	return y
}

// DrawControls renders the key legend at the bottom of the panel.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, h.x+h.renderer.Theme.Padding, screenHeight-22, 10, rl.Gray)
}

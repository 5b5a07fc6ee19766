package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxSubSteps is the upper end of the sub-step slider.
const MaxSubSteps = 20

// ControlsAction reports what the user requested this frame.
type ControlsAction struct {
	Reset       bool // restart with the default layout
	Clear       bool // clear the field and remove every stain
	TogglePause bool
	SubSteps    int // requested growth rounds per tick
}

// ControlsPanel renders the raygui buttons and sub-step slider.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a controls panel at (x, y).
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

// Draw renders the controls and returns the requested actions.
func (c *ControlsPanel) Draw(subSteps int, paused bool) ControlsAction {
	r := c.renderer
	padding := float32(r.Theme.Padding)
	x := float32(c.x) + padding
	y := float32(c.y)
	inner := float32(c.width) - padding*2
	buttonW := (inner - 2*6) / 3

	act := ControlsAction{SubSteps: subSteps}

	r.DrawSectionHeader(int32(x), int32(y), "Controls")
	y += float32(r.Theme.LineHeight) + 2

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: buttonW, Height: 24}, "Reset") {
		act.Reset = true
	}
	if gui.Button(rl.Rectangle{X: x + buttonW + 6, Y: y, Width: buttonW, Height: 24}, "Clear") {
		act.Clear = true
	}
	pauseLabel := "Pause"
	if paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x + 2*(buttonW+6), Y: y, Width: buttonW, Height: 24}, pauseLabel) {
		act.TogglePause = true
	}
	y += 34

	rl.DrawText("Sub-steps per tick", int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 16
	v := gui.SliderBar(
		rl.Rectangle{X: x + 12, Y: y, Width: inner - 40, Height: 16},
		"1", fmt.Sprintf("%d", MaxSubSteps),
		float32(subSteps), 1, MaxSubSteps,
	)
	act.SubSteps = int(math.Round(float64(v)))
	if act.SubSteps < 1 {
		act.SubSteps = 1
	}
	return act
}

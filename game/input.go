package game

import (
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rust/config"
	"github.com/pthm-cable/rust/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.engine.Reset()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.engine.Clear()
	}

	// Sub-step control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.engine.SetSubSteps(g.engine.SubSteps() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.engine.SubSteps() < ui.MaxSubSteps {
		g.engine.SetSubSteps(g.engine.SubSteps() + 1)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if x, y, ok := g.fieldView.CellAt(rl.GetMousePosition()); ok {
			g.click(image.Pt(x, y))
		}
	}
}

// click seeds growth at p according to the configured click mode.
func (g *Game) click(p image.Point) {
	if g.cfg.Input.ClickMode == config.ClickModeReset {
		g.engine.Reset(p)
		return
	}
	g.engine.AddSeed([]image.Point{p}, g.cfg.Layout.ClickBudget)
}

// applyControls carries out the actions requested through the panel.
func (g *Game) applyControls(act ui.ControlsAction) {
	if act.Reset {
		g.engine.Reset()
	}
	if act.Clear {
		g.engine.Clear()
	}
	if act.TogglePause {
		g.paused = !g.paused
	}
	if act.SubSteps != g.engine.SubSteps() {
		g.engine.SetSubSteps(act.SubSteps)
	}
}

package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rust/renderer"
	"github.com/pthm-cable/rust/ui"
)

const controlsLegend = "[Click] seed  [R] reset  [C] clear  [Space] pause  [<>] sub-steps"

// Draw renders the field and side panel.
func (g *Game) Draw() {
	if g.presenter.Apply(g.engine) != renderer.RepaintNone {
		g.fieldView.Update(g.presenter.Pixels())
	}
	g.recordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 20, G: 18, B: 17, A: 255})

	g.fieldView.Draw()

	perf := g.engine.PerfStats()
	if perf.TicksPerSecond > 0 {
		g.lastTPS = perf.TicksPerSecond
	}
	f := g.engine.Field()
	y := g.hud.Draw(ui.HUDData{
		Tick:        g.engine.TickCount(),
		MaxTicks:    g.engine.MaxTicks(),
		Coverage:    f.Coverage(),
		Census:      g.engine.Census(),
		SubSteps:    g.engine.SubSteps(),
		FPS:         rl.GetFPS(),
		TicksPerSec: g.lastTPS,
		Paused:      g.paused,
		Done:        g.engine.Done(),
		ClickMode:   g.cfg.Input.ClickMode,
	})

	g.controls.SetPosition(int32(f.W*g.cfg.Presenter.Scale), y+8)
	act := g.controls.Draw(g.engine.SubSteps(), g.paused)
	g.hud.DrawControls(int32(rl.GetScreenHeight()), controlsLegend)

	rl.EndDrawing()

	g.applyControls(act)
	g.engine.RecordFrame()
}

// Palette preview tool - interactive tuning of the rust ramp grain.
//
// Usage: go run ./cmd/palettepreview
package main

import (
	"fmt"
	"image/color"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rust/config"
	"github.com/pthm-cable/rust/renderer"
	"github.com/pthm-cable/rust/ui"
)

const (
	windowWidth  = 1000
	windowHeight = 560
	previewCells = 128
	previewScale = 4
	panelWidth   = windowWidth - previewCells*previewScale - 30
)

// GrainParams holds the presenter settings being previewed.
type GrainParams struct {
	Grain      float32
	GrainScale float32
	Seed       int64
}

func defaultParams() GrainParams {
	p := config.Default().Presenter
	return GrainParams{
		Grain:      float32(p.Grain),
		GrainScale: float32(p.GrainScale),
		Seed:       1,
	}
}

// render paints a horizontal intensity ramp with the given grain.
func render(dst []color.RGBA, params GrainParams) {
	pal := renderer.NewPalette(previewCells, previewCells, float64(params.Grain), float64(params.GrainScale), params.Seed)
	for y := 0; y < previewCells; y++ {
		for x := 0; x < previewCells; x++ {
			v := float32(x) / float32(previewCells-1)
			i := y*previewCells + x
			dst[i] = pal.Color(i, v)
		}
	}
}

func yamlLines(p GrainParams) []string {
	return []string{
		"presenter:",
		fmt.Sprintf("  grain: %.3f", p.Grain),
		fmt.Sprintf("  grain_scale: %.3f", p.GrainScale),
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Rust Palette Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()
	pixels := make([]color.RGBA, previewCells*previewCells)

	view := ui.NewFieldTexture(previewScale)
	view.Init(previewCells, previewCells)
	defer view.Unload()

	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			render(pixels, params)
			view.Update(pixels)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		view.Draw()

		panelX := float32(previewCells*previewScale + 20)
		panelY := float32(10)

		rl.DrawText("Rust Grain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Grain
		rl.DrawText("Grain (noise strength on rusted cells)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newGrain := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "0.5",
			params.Grain, 0, 0.5,
		)
		rl.DrawText(fmt.Sprintf("%.3f", params.Grain), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newGrain != params.Grain {
			params.Grain = newGrain
			needsRegen = true
		}
		panelY += 35

		// Grain scale
		rl.DrawText("Grain scale (noise frequency per cell)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.01", "0.5",
			params.GrainScale, 0.01, 0.5,
		)
		rl.DrawText(fmt.Sprintf("%.3f", params.GrainScale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newScale != params.GrainScale {
			params.GrainScale = newScale
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRegen = true
		}
		panelY += 55

		rl.DrawText(fmt.Sprintf("Seed: %d", params.Seed), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 30

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(strings.Join(yamlLines(params), "\n"))
		}

		rl.EndDrawing()
	}
}

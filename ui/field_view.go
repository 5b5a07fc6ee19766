package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FieldTexture shows presenter pixels as a GPU texture scaled onto the screen.
type FieldTexture struct {
	tex         rl.Texture2D
	texW, texH  int
	scale       float32
	initialized bool
}

// NewFieldTexture creates a texture renderer drawing each cell as a
// scale×scale block.
func NewFieldTexture(scale int) *FieldTexture {
	if scale < 1 {
		scale = 1
	}
	return &FieldTexture{scale: float32(scale)}
}

// Init allocates the texture (must be called after the raylib window is created).
func (r *FieldTexture) Init(w, h int) {
	if r.initialized {
		return
	}
	r.texW = w
	r.texH = h

	img := rl.GenImageColor(w, h, rl.Black)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.UnloadImage(img)

	r.initialized = true
}

// Update uploads a full row-major pixel buffer.
func (r *FieldTexture) Update(pixels []color.RGBA) {
	if !r.initialized || len(pixels) != r.texW*r.texH {
		return
	}
	rl.UpdateTexture(r.tex, pixels)
}

// Draw renders the texture with its top-left corner at the window origin.
func (r *FieldTexture) Draw() {
	if !r.initialized {
		return
	}
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(r.texW), Height: float32(r.texH)}
	dst := rl.Rectangle{X: 0, Y: 0, Width: float32(r.texW) * r.scale, Height: float32(r.texH) * r.scale}
	rl.DrawTexturePro(r.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// CellAt converts a screen position to field coordinates. ok is false when
// the position lies outside the field.
func (r *FieldTexture) CellAt(pos rl.Vector2) (x, y int, ok bool) {
	if pos.X < 0 || pos.Y < 0 {
		return 0, 0, false
	}
	x = int(pos.X / r.scale)
	y = int(pos.Y / r.scale)
	return x, y, x < r.texW && y < r.texH
}

// Unload frees GPU resources.
func (r *FieldTexture) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}

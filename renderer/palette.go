package renderer

import (
	"image/color"

	"github.com/ojrac/opensimplex-go"
)

// paletteStop is a colour anchored at an intensity.
type paletteStop struct {
	at  float32
	col color.RGBA
}

// rustStops runs from bare steel through fresh orange rust to deep scale.
var rustStops = []paletteStop{
	{0.00, color.RGBA{R: 168, G: 172, B: 176, A: 255}},
	{0.25, color.RGBA{R: 176, G: 122, B: 84, A: 255}},
	{0.55, color.RGBA{R: 183, G: 65, B: 14, A: 255}},
	{0.80, color.RGBA{R: 128, G: 52, B: 22, A: 255}},
	{1.00, color.RGBA{R: 84, G: 36, B: 18, A: 255}},
}

// Palette maps field intensity to colour. Each cell also carries a fixed
// grain offset so rusted areas look uneven.
type Palette struct {
	w, h  int
	grain []float32 // brightness offset per cell in [-amount, amount]
}

// NewPalette builds a palette for a w×h grid. amount scales the grain
// (0 disables it) and scale is the noise frequency in cells.
func NewPalette(w, h int, amount, scale float64, seed int64) *Palette {
	p := &Palette{w: w, h: h, grain: make([]float32, w*h)}
	if amount <= 0 {
		return p
	}
	noise := opensimplex.NewNormalized(seed)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Two octaves: coarse blotches plus fine speckle
			n := 0.7*noise.Eval2(float64(x)*scale, float64(y)*scale) +
				0.3*noise.Eval2(float64(x)*scale*4, float64(y)*scale*4)
			p.grain[y*w+x] = float32((n*2 - 1) * amount)
		}
	}
	return p
}

// Color returns the colour of cell i at intensity v.
func (p *Palette) Color(i int, v float32) color.RGBA {
	base := Ramp(v)
	if i < 0 || i >= len(p.grain) {
		return base
	}
	// Grain fades in with intensity so clean steel stays smooth
	g := p.grain[i] * v
	return shade(base, 1+g)
}

// Ramp interpolates the rust colour ramp at v, clamped to [0,1].
func Ramp(v float32) color.RGBA {
	if v <= rustStops[0].at {
		return rustStops[0].col
	}
	for i := 1; i < len(rustStops); i++ {
		hi := rustStops[i]
		if v <= hi.at {
			lo := rustStops[i-1]
			t := (v - lo.at) / (hi.at - lo.at)
			return lerpRGBA(lo.col, hi.col, t)
		}
	}
	return rustStops[len(rustStops)-1].col
}

func lerpRGBA(a, b color.RGBA, t float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t + 0.5),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t + 0.5),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t + 0.5),
		A: 255,
	}
}

func shade(c color.RGBA, f float32) color.RGBA {
	return color.RGBA{R: scale8(c.R, f), G: scale8(c.G, f), B: scale8(c.B, f), A: c.A}
}

func scale8(v uint8, f float32) uint8 {
	x := float32(v) * f
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return uint8(x)
}

package engine

import (
	"image"
	"math/rand"

	"github.com/pthm-cable/rust/config"
)

// DefaultSources returns the starting stain positions: the midpoint of each
// edge (top, bottom, left, right) followed by random interior cells.
func DefaultSources(w, h int, layout config.LayoutConfig, rng *rand.Rand) []image.Point {
	var pts []image.Point
	if layout.EdgeSources {
		pts = append(pts,
			image.Pt(w/2, 0),
			image.Pt(w/2, h-1),
			image.Pt(0, h/2),
			image.Pt(w-1, h/2),
		)
	}
	for i := 0; i < layout.InteriorSources; i++ {
		pts = append(pts, image.Pt(interior(w, rng), interior(h, rng)))
	}
	return pts
}

// interior returns a random coordinate in [1, n-2], or a random cell when the
// dimension has no interior.
func interior(n int, rng *rand.Rand) int {
	if n <= 2 {
		return rng.Intn(n)
	}
	return 1 + rng.Intn(n-2)
}

// seedDefaultLayout adds one stain per default source.
func (e *Engine) seedDefaultLayout() {
	for _, p := range DefaultSources(e.field.W, e.field.H, e.cfg.Layout, e.rng) {
		e.AddSeed([]image.Point{p}, e.cfg.Layout.InitialBudget)
	}
}

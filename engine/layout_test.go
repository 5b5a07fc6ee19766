package engine

import (
	"image"
	"math/rand"
	"testing"

	"github.com/pthm-cable/rust/config"
)

func TestDefaultSources(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	layout := config.LayoutConfig{EdgeSources: true, InteriorSources: 5}

	pts := DefaultSources(40, 20, layout, rng)

	if len(pts) != 9 {
		t.Fatalf("expected 9 sources, got %d", len(pts))
	}
	edges := []image.Point{{20, 0}, {20, 19}, {0, 10}, {39, 10}}
	for i, want := range edges {
		if pts[i] != want {
			t.Errorf("expected edge source %d at %v, got %v", i, want, pts[i])
		}
	}
	for _, p := range pts[4:] {
		if p.X < 1 || p.X > 38 || p.Y < 1 || p.Y > 18 {
			t.Errorf("expected interior source, got %v", p)
		}
	}
}

func TestDefaultSourcesTinyGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	layout := config.LayoutConfig{EdgeSources: true, InteriorSources: 3}

	for _, p := range DefaultSources(1, 2, layout, rng) {
		if p.X < 0 || p.X >= 1 || p.Y < 0 || p.Y >= 2 {
			t.Errorf("expected source on 1x2 grid, got %v", p)
		}
	}
}

func TestDefaultSourcesInteriorOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pts := DefaultSources(10, 10, config.LayoutConfig{InteriorSources: 2}, rng)
	if len(pts) != 2 {
		t.Errorf("expected 2 interior sources, got %d", len(pts))
	}
}

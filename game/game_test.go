package game

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/rust/config"
)

func smallConfig(t *testing.T) {
	t.Helper()
	config.MustInit("")
	cfg := config.Cfg()
	cfg.Grid.Width = 24
	cfg.Grid.Height = 16
	cfg.Engine.MaxTicks = 400
	cfg.Presenter.Scale = 2
	cfg.Recompute()
}

func TestHeadlessRunWritesOutputs(t *testing.T) {
	smallConfig(t)
	dir := t.TempDir()

	g, err := NewGameWithOptions(Options{
		Seed:        7,
		Headless:    true,
		OutputDir:   dir,
		RecordPath:  filepath.Join(dir, "run.avi"),
		RecordEvery: 10,
		ChartPath:   filepath.Join(dir, "coverage.png"),
	})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}

	for !g.Done() {
		g.UpdateHeadless()
	}
	if g.Tick() == 0 {
		t.Fatal("expected the run to advance")
	}
	if g.Engine().PendingChanges() != 0 {
		t.Errorf("expected changes drained every tick, got %d pending", g.Engine().PendingChanges())
	}
	g.Unload()

	for _, name := range []string{"run.avi", "coverage.png", "telemetry.csv", "config.yaml"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || info.Size() == 0 {
			t.Errorf("expected non-empty %s, got %v", name, err)
		}
	}
}

func TestHeadlessWithoutPresenterDrainsChanges(t *testing.T) {
	smallConfig(t)

	g, err := NewGameWithOptions(Options{Seed: 3, Headless: true})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	defer g.Unload()

	for i := 0; i < 5; i++ {
		g.UpdateHeadless()
	}
	if g.presenter != nil {
		t.Error("expected no presenter without recording")
	}
	if g.Engine().PendingChanges() != 0 {
		t.Errorf("expected no pending changes, got %d", g.Engine().PendingChanges())
	}
}

func TestClickModes(t *testing.T) {
	smallConfig(t)

	g, err := NewGameWithOptions(Options{Seed: 3, Headless: true})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	defer g.Unload()

	before := g.Engine().StainCount()
	g.click(image.Pt(5, 5))
	if g.Engine().StainCount() != before+1 {
		t.Errorf("expected seed click to add a stain, got %d stains", g.Engine().StainCount())
	}

	g.cfg.Input.ClickMode = config.ClickModeReset
	epoch := g.Engine().Epoch()
	g.click(image.Pt(5, 5))
	if g.Engine().StainCount() != 1 {
		t.Errorf("expected reset click to leave one stain, got %d", g.Engine().StainCount())
	}
	if g.Engine().Epoch() == epoch {
		t.Error("expected reset click to start a new epoch")
	}
}

func TestRecordingSkipsIdleUpdates(t *testing.T) {
	smallConfig(t)
	dir := t.TempDir()

	g, err := NewGameWithOptions(Options{
		Seed:        5,
		Headless:    true,
		RecordPath:  filepath.Join(dir, "run.avi"),
		RecordEvery: 1,
	})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	defer g.Unload()

	for !g.Done() {
		g.UpdateHeadless()
	}
	if g.recorder.Frames() != g.Tick() {
		t.Errorf("expected one frame per tick (%d), got %d", g.Tick(), g.recorder.Frames())
	}

	frames := g.recorder.Frames()
	for i := 0; i < 5; i++ {
		g.UpdateHeadless()
	}
	if g.recorder.Frames() != frames {
		t.Errorf("expected no frames after the run finished, got %d more", g.recorder.Frames()-frames)
	}

	// A paused frame leaves ticked unset
	g.ticked = false
	g.recordFrame()
	if g.recorder.Frames() != frames {
		t.Error("expected no frame recorded without a tick")
	}
}

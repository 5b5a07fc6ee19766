package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Grid.Width != 320 || cfg.Grid.Height != 200 {
		t.Errorf("expected grid 320x200, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Growth.MaxFrontier != 100 {
		t.Errorf("expected max_frontier 100, got %d", cfg.Growth.MaxFrontier)
	}
	if cfg.Growth.RestartBudget != 50 {
		t.Errorf("expected restart_budget 50, got %d", cfg.Growth.RestartBudget)
	}
	if cfg.Engine.SubSteps != 3 {
		t.Errorf("expected sub_steps 3, got %d", cfg.Engine.SubSteps)
	}
	if cfg.Presenter.FullRepaintFraction != 0.05 {
		t.Errorf("expected full_repaint_fraction 0.05, got %v", cfg.Presenter.FullRepaintFraction)
	}
	if cfg.Derived.Cells != 320*200 {
		t.Errorf("expected derived cells %d, got %d", 320*200, cfg.Derived.Cells)
	}
	if cfg.Input.ClickMode != ClickModeSeed {
		t.Errorf("expected click mode %q, got %q", ClickModeSeed, cfg.Input.ClickMode)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("grid:\n  width: 64\ngrowth:\n  max_frontier: 10\ninput:\n  click_mode: reset\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing overlay: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}

	if cfg.Grid.Width != 64 {
		t.Errorf("expected overlay width 64, got %d", cfg.Grid.Width)
	}
	if cfg.Grid.Height != 200 {
		t.Errorf("expected default height 200 to survive overlay, got %d", cfg.Grid.Height)
	}
	if cfg.Growth.MaxFrontier != 10 {
		t.Errorf("expected overlay max_frontier 10, got %d", cfg.Growth.MaxFrontier)
	}
	if cfg.Input.ClickMode != ClickModeReset {
		t.Errorf("expected click mode %q, got %q", ClickModeReset, cfg.Input.ClickMode)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestComputeDerivedSanitizes(t *testing.T) {
	cfg := Default()
	cfg.Grid.Width = 0
	cfg.Growth.DeltaMin = 0.3
	cfg.Growth.DeltaMax = 0.1
	cfg.Growth.PartialProb = 1.5
	cfg.Engine.SubSteps = 0
	cfg.Input.ClickMode = "bogus"
	cfg.Recompute()

	if cfg.Grid.Width != 1 {
		t.Errorf("expected width raised to 1, got %d", cfg.Grid.Width)
	}
	if cfg.Growth.DeltaMax != cfg.Growth.DeltaMin {
		t.Errorf("expected delta_max raised to delta_min, got %v < %v", cfg.Growth.DeltaMax, cfg.Growth.DeltaMin)
	}
	if cfg.Growth.PartialProb != 1 {
		t.Errorf("expected partial_prob clamped to 1, got %v", cfg.Growth.PartialProb)
	}
	if cfg.Engine.SubSteps != 1 {
		t.Errorf("expected sub_steps raised to 1, got %d", cfg.Engine.SubSteps)
	}
	if cfg.Input.ClickMode != ClickModeSeed {
		t.Errorf("expected unknown click mode to fall back to %q, got %q", ClickModeSeed, cfg.Input.ClickMode)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Grid.Width = 77

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load after WriteYAML failed: %v", err)
	}
	if loaded.Grid.Width != 77 {
		t.Errorf("expected width 77 after round trip, got %d", loaded.Grid.Width)
	}
}

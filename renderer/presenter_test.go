package renderer

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/rust/config"
	"github.com/pthm-cable/rust/systems"
)

// fakeSource feeds a field and a fixed change list to the presenter.
type fakeSource struct {
	field   *systems.Field
	changes []image.Point
	epoch   uint64
}

func (s *fakeSource) Field() *systems.Field { return s.field }
func (s *fakeSource) Epoch() uint64         { return s.epoch }
func (s *fakeSource) FlushChanges() []image.Point {
	out := s.changes
	s.changes = nil
	return out
}

func newTestPresenter(w, h int) *Presenter {
	cfg := config.PresenterConfig{FullRepaintFraction: 0.05}
	return NewPresenter(w, h, cfg, 1)
}

func TestPresenterRepaintModes(t *testing.T) {
	src := &fakeSource{field: systems.NewField(20, 10, 0.9)}
	p := newTestPresenter(20, 10)

	if mode := p.Apply(src); mode != RepaintFull {
		t.Errorf("expected full repaint on first apply, got %v", mode)
	}
	if mode := p.Apply(src); mode != RepaintNone {
		t.Errorf("expected no repaint without changes, got %v", mode)
	}

	// 5% of 200 cells is 10: ten changes stay sparse, eleven go full
	tests := []struct {
		name    string
		changed int
		want    RepaintMode
	}{
		{"few changes", 3, RepaintSparse},
		{"at threshold", 10, RepaintSparse},
		{"over threshold", 11, RepaintFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < tt.changed; i++ {
				src.changes = append(src.changes, image.Pt(i%20, i/20))
			}
			if mode := p.Apply(src); mode != tt.want {
				t.Errorf("expected %v, got %v", tt.want, mode)
			}
			if p.LastChanged() != tt.changed {
				t.Errorf("expected %d changes seen, got %d", tt.changed, p.LastChanged())
			}
		})
	}

	src.epoch++
	if mode := p.Apply(src); mode != RepaintFull {
		t.Errorf("expected full repaint after epoch change, got %v", mode)
	}
}

func TestPresenterSparseOnlyTouchesChanged(t *testing.T) {
	f := systems.NewField(8, 8, 0.9)
	src := &fakeSource{field: f}
	p := newTestPresenter(8, 8)
	p.Apply(src)

	// Field changes that are not reported stay stale until a full repaint
	f.Set(1, 1, 1)
	f.Set(2, 2, 1)
	src.changes = []image.Point{{1, 1}}
	p.Apply(src)

	if p.Pixels()[1*8+1] == p.Pixels()[0] {
		t.Error("expected reported cell to be repainted")
	}
	if p.Pixels()[2*8+2] != p.Pixels()[0] {
		t.Error("expected unreported cell to keep its old colour")
	}

	src.epoch++
	p.Apply(src)
	if p.Pixels()[2*8+2] == p.Pixels()[0] {
		t.Error("expected full repaint to pick up every cell")
	}
}

func TestPresenterIgnoresOutOfBoundsChanges(t *testing.T) {
	src := &fakeSource{field: systems.NewField(4, 4, 0.9)}
	p := newTestPresenter(4, 4)
	p.Apply(src)

	src.changes = []image.Point{{-1, 0}, {4, 4}}
	p.Apply(src)
}

func TestRamp(t *testing.T) {
	if got := Ramp(0); got != rustStops[0].col {
		t.Errorf("expected steel at 0, got %v", got)
	}
	if got := Ramp(1); got != rustStops[len(rustStops)-1].col {
		t.Errorf("expected deep rust at 1, got %v", got)
	}
	if got := Ramp(2); got != Ramp(1) {
		t.Errorf("expected clamping above 1, got %v", got)
	}

	// Rust gets redder than bare steel through the middle of the ramp
	mid := Ramp(0.55)
	if int(mid.R)-int(mid.B) <= int(Ramp(0).R)-int(Ramp(0).B) {
		t.Errorf("expected mid ramp to be rust coloured, got %v", mid)
	}
}

func TestPaletteGrain(t *testing.T) {
	flat := NewPalette(16, 16, 0, 0.1, 1)
	for i := 0; i < 256; i++ {
		if flat.Color(i, 0.7) != Ramp(0.7) {
			t.Fatalf("expected no grain when disabled at cell %d", i)
		}
	}

	grainy := NewPalette(16, 16, 0.2, 0.1, 1)
	if grainy.Color(5, 0) != Ramp(0) {
		t.Error("expected unrusted cells to be grain-free")
	}
	varied := false
	first := grainy.Color(0, 1)
	for i := 1; i < 256; i++ {
		if grainy.Color(i, 1) != first {
			varied = true
			break
		}
	}
	if !varied {
		t.Error("expected grain to vary rusted cells")
	}

	again := NewPalette(16, 16, 0.2, 0.1, 1)
	for i := 0; i < 256; i++ {
		if again.Color(i, 0.8) != grainy.Color(i, 0.8) {
			t.Fatalf("expected same grain for same seed at cell %d", i)
		}
	}
}

func TestDrawInto(t *testing.T) {
	src := &fakeSource{field: systems.NewField(2, 2, 0.9)}
	src.field.Set(1, 0, 1)
	p := newTestPresenter(2, 2)
	p.Apply(src)

	img := image.NewRGBA(image.Rect(0, 0, 6, 6))
	p.DrawInto(img, 3)

	if got := img.RGBAAt(4, 1); got != p.Pixels()[1] {
		t.Errorf("expected scaled block to carry cell colour, got %v", got)
	}
	if got := img.RGBAAt(0, 5); got != p.Pixels()[2] {
		t.Errorf("expected bottom-left block colour, got %v", got)
	}
}

func TestRecorder(t *testing.T) {
	rec, err := NewRecorder("", 4, 4, 1, 30, 1)
	if err != nil || rec != nil {
		t.Fatalf("expected disabled recorder, got %v, %v", rec, err)
	}
	if err := rec.AddFrame(nil, "x"); err != nil {
		t.Errorf("expected nil recorder to discard frames, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "run.avi")
	rec, err = NewRecorder(path, 8, 8, 2, 30, 2)
	if err != nil {
		t.Fatalf("creating recorder: %v", err)
	}
	src := &fakeSource{field: systems.NewField(8, 8, 0.9)}
	p := newTestPresenter(8, 8)
	p.Apply(src)

	for i := 0; i < 5; i++ {
		if err := rec.AddFrame(p, "tick"); err != nil {
			t.Fatalf("adding frame: %v", err)
		}
	}
	if rec.Frames() != 3 {
		t.Errorf("expected every second frame kept (3), got %d", rec.Frames())
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("closing recorder: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty avi, got %v", err)
	}
}

func TestCoverageChart(t *testing.T) {
	c := NewCoverageChart()
	path := filepath.Join(t.TempDir(), "coverage.png")

	c.Record(0, 0, 0)
	if err := c.WritePNG(path); err == nil {
		t.Error("expected error with a single sample")
	}

	for i := 1; i <= 10; i++ {
		c.Record(i*10, float64(i)/10, float64(i)/12)
	}
	if c.Len() != 11 {
		t.Errorf("expected 11 samples, got %d", c.Len())
	}
	if err := c.WritePNG(path); err != nil {
		t.Fatalf("writing chart: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty png, got %v", err)
	}
}

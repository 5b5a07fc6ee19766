// Package game drives the rust engine: a raylib window with the field
// texture, stats panel and controls, or a headless loop with optional
// recording.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/rust/config"
	"github.com/pthm-cable/rust/engine"
	"github.com/pthm-cable/rust/renderer"
	"github.com/pthm-cable/rust/telemetry"
	"github.com/pthm-cable/rust/ui"
)

// chartEvery is the tick interval between coverage chart samples.
const chartEvery = 10

// Options configures a run.
type Options struct {
	Seed      int64
	LogStats  bool
	OutputDir string
	Headless  bool
	MaxTicks  int // 0 = use config

	RecordPath  string // MJPEG output; empty disables recording
	RecordEvery int    // keep one frame in RecordEvery ticks
	ChartPath   string // coverage PNG written on Unload; empty disables
}

// Game holds the engine and everything that presents it.
type Game struct {
	cfg    *config.Config
	engine *engine.Engine

	presenter *renderer.Presenter
	recorder  *renderer.Recorder
	chart     *renderer.CoverageChart
	chartPath string

	// Graphics mode only
	fieldView *ui.FieldTexture
	hud       *ui.HUD
	controls  *ui.ControlsPanel

	headless bool
	paused   bool
	ticked   bool // the last update advanced the engine
	lastTPS  float64
}

// NewGameWithOptions builds the engine, seeds the default layout and prepares
// the presentation layers. In graphics mode the raylib window must already be
// open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	eng, err := engine.NewWithOptions(engine.Options{
		Config:    cfg,
		MaxTicks:  opts.MaxTicks,
		Seed:      opts.Seed,
		LogStats:  opts.LogStats,
		OutputDir: opts.OutputDir,
	})
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	g := &Game{
		cfg:       eng.Config(),
		engine:    eng,
		headless:  opts.Headless,
		chartPath: opts.ChartPath,
	}
	f := eng.Field()

	if !opts.Headless || opts.RecordPath != "" {
		g.presenter = renderer.NewPresenter(f.W, f.H, g.cfg.Presenter, opts.Seed)
	}

	if opts.RecordPath != "" {
		rec, err := renderer.NewRecorder(opts.RecordPath, f.W, f.H, g.cfg.Presenter.Scale, g.cfg.Screen.TargetFPS, opts.RecordEvery)
		if err != nil {
			eng.Close()
			return nil, fmt.Errorf("creating recorder: %w", err)
		}
		g.recorder = rec
	}

	if opts.ChartPath != "" {
		g.chart = renderer.NewCoverageChart()
	}

	if !opts.Headless {
		g.fieldView = ui.NewFieldTexture(g.cfg.Presenter.Scale)
		g.fieldView.Init(f.W, f.H)
		panelX := int32(f.W * g.cfg.Presenter.Scale)
		g.hud = ui.NewHUD(panelX, 0, int32(g.cfg.Screen.PanelWidth))
		g.controls = ui.NewControlsPanel(panelX, 0, int32(g.cfg.Screen.PanelWidth))
	}

	eng.Reset()
	g.sample()
	return g, nil
}

// Update advances the simulation by one frame in graphics mode.
func (g *Game) Update() {
	g.handleInput()
	if g.paused {
		g.ticked = false
		return
	}
	g.step()
}

// UpdateHeadless advances the simulation by one tick without graphics.
func (g *Game) UpdateHeadless() {
	g.step()
	if g.presenter == nil {
		// Nothing consumes the changes; drop them
		g.engine.FlushChanges()
		return
	}
	g.presenter.Apply(g.engine)
	g.recordFrame()
}

func (g *Game) step() {
	g.ticked = false
	if g.engine.Done() {
		return
	}
	before := g.engine.TickCount()
	g.engine.Tick()
	g.ticked = g.engine.TickCount() != before
	if g.engine.TickCount()%chartEvery == 0 {
		g.sample()
	}
}

// sample adds the current coverage to the chart.
func (g *Game) sample() {
	if g.chart == nil {
		return
	}
	f := g.engine.Field()
	g.chart.Record(g.engine.TickCount(), f.Coverage(), f.Sum()/float64(f.Total()))
}

// recordFrame adds the presenter buffer to the recording if the last update
// ticked the engine.
func (g *Game) recordFrame() {
	if g.recorder == nil || !g.ticked {
		return
	}
	f := g.engine.Field()
	label := fmt.Sprintf("tick %d  coverage %.1f%%", g.engine.TickCount(), f.Coverage()*100)
	if err := g.recorder.AddFrame(g.presenter, label); err != nil {
		slog.Error("failed to record frame", "error", err)
		g.recorder.Close()
		g.recorder = nil
	}
}

// Engine exposes the simulation.
func (g *Game) Engine() *engine.Engine { return g.engine }

// Tick returns the current simulation tick.
func (g *Game) Tick() int { return g.engine.TickCount() }

// Done reports whether the run can no longer change.
func (g *Game) Done() bool { return g.engine.Done() }

// Census returns the stain census.
func (g *Game) Census() telemetry.Census { return g.engine.Census() }

// Unload flushes outputs and releases resources.
func (g *Game) Unload() {
	if g.chart != nil {
		g.sample()
		if err := g.chart.WritePNG(g.chartPath); err != nil {
			slog.Error("failed to write coverage chart", "error", err)
		} else {
			slog.Info("coverage chart written", "path", g.chartPath, "samples", g.chart.Len())
		}
	}
	if g.recorder != nil {
		frames := g.recorder.Frames()
		if err := g.recorder.Close(); err != nil {
			slog.Error("failed to close recording", "error", err)
		} else {
			slog.Info("recording written", "frames", frames)
		}
	}
	if err := g.engine.Close(); err != nil {
		slog.Error("failed to close telemetry output", "error", err)
	}
	if g.fieldView != nil {
		g.fieldView.Unload()
	}
}

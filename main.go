package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rust/config"
	"github.com/pthm-cable/rust/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Tick horizon (0 = use config)")
	record := flag.String("record", "", "Write an MJPEG recording to this .avi path")
	recordEvery := flag.Int("record-every", 1, "Keep one recorded frame every N ticks")
	chartPath := flag.String("chart", "", "Write a coverage chart PNG to this path on exit")
	scale := flag.Int("scale", 0, "Screen pixels per cell (0 = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *scale > 0 {
		cfg.Presenter.Scale = *scale
		cfg.Recompute()
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:        rngSeed,
		LogStats:    *logStats,
		OutputDir:   *outputDir,
		Headless:    *headless,
		MaxTicks:    *maxTicks,
		RecordPath:  *record,
		RecordEvery: *recordEvery,
		ChartPath:   *chartPath,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"width", cfg.Grid.Width,
			"height", cfg.Grid.Height,
			"max_ticks", g.Engine().MaxTicks(),
			"sub_steps", g.Engine().SubSteps(),
		)

		start := time.Now()
		for !g.Done() {
			g.UpdateHeadless()
		}

		census := g.Census()
		slog.Info("simulation finished",
			"tick", g.Tick(),
			"coverage", g.Engine().Field().Coverage(),
			"stains", census.Stains,
			"dormant", census.Dormant,
			"horizon_reached", g.Engine().HorizonReached(),
			"elapsed", time.Since(start).String(),
		)
	} else {
		// Graphical mode
		rl.InitWindow(cfg.Derived.ScreenW, cfg.Derived.ScreenH, "Rust")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		for !rl.WindowShouldClose() {
			g.Update()
			g.Draw()
		}
	}
}

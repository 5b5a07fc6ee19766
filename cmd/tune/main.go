// Package main tunes the growth rule with CMA-ES so that the default layout
// covers the field in a target number of ticks.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/rust/config"
)

// TuneRecord is one row of tune_log.csv.
type TuneRecord struct {
	Eval            int     `csv:"eval"`
	Fitness         float64 `csv:"fitness"`
	Ticks           float64 `csv:"ticks"`
	Coverage        float64 `csv:"coverage"`
	Stalls          float64 `csv:"stalls"`
	DeltaMin        float64 `csv:"delta_min"`
	DeltaMax        float64 `csv:"delta_max"`
	SaturationLevel float64 `csv:"saturation_level"`
	SaturatedProb   float64 `csv:"saturated_prob"`
	PartialProb     float64 `csv:"partial_prob"`
	MaxFrontier     int     `csv:"max_frontier"`
	RestartBudget   int     `csv:"restart_budget"`
	InjectCount     int     `csv:"inject_count"`
}

func newTuneRecord(eval int, fitness float64, cfg *config.Config) TuneRecord {
	g := cfg.Growth
	return TuneRecord{
		Eval:            eval,
		Fitness:         fitness,
		DeltaMin:        g.DeltaMin,
		DeltaMax:        g.DeltaMax,
		SaturationLevel: g.SaturationLevel,
		SaturatedProb:   g.SaturatedProb,
		PartialProb:     g.PartialProb,
		MaxFrontier:     g.MaxFrontier,
		RestartBudget:   g.RestartBudget,
		InjectCount:     g.InjectCount,
	}
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	targetTicks := flag.Int("target-ticks", 2000, "Desired ticks until the field is covered")
	maxTicks := flag.Int("max-ticks", 0, "Per-run tick cap (0 = 3x target)")
	width := flag.Int("width", 0, "Field width override (0 = use config)")
	height := flag.Int("height", 0, "Field height override (0 = use config)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *width > 0 {
		baseCfg.Grid.Width = *width
	}
	if *height > 0 {
		baseCfg.Grid.Height = *height
	}
	baseCfg.Engine.MaxTicks = 0
	baseCfg.Recompute()

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, baseCfg, evalSeeds, *targetTicks, *maxTicks)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	popSize := *population
	if popSize == 0 {
		// Auto-size: 4 + floor(3*ln(n))
		popSize = 4 + int(3.0*math.Log(float64(dim)))
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Seeds already run in parallel
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			evalCount++

			clamped := params.Clamp(raw)
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			// Log the values actually used
			cfg := baseCfg.Clone()
			params.ApplyToConfig(cfg, clamped)
			rec := newTuneRecord(evalCount, fitness, cfg)
			rec.Ticks, rec.Coverage, rec.Stalls = evaluator.LastResult()
			rows := []TuneRecord{rec}
			if evalCount == 1 {
				err = gocsv.Marshal(rows, logFile)
			} else {
				err = gocsv.MarshalWithoutHeaders(rows, logFile)
			}
			if err != nil {
				log.Printf("failed to write log row: %v", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

			fmt.Printf("Eval %d/%d: ticks=%.0f coverage=%.3f stalls=%.1f fitness=%.4f (best=%.4f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, rec.Ticks, rec.Coverage, rec.Stalls, fitness, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	fmt.Printf("Starting CMA-ES tuning with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Field %dx%d, seeds per evaluation: %d, target ticks: %d\n",
		baseCfg.Grid.Width, baseCfg.Grid.Height, *seeds, *targetTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Best params found may come from any evaluation, not just the final one
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	// Save best config on top of the unmodified base, keeping its grid size
	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}

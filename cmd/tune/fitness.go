package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/rust/config"
	"github.com/pthm-cable/rust/engine"
	"github.com/pthm-cable/rust/telemetry"
)

const (
	// targetCoverage counts a run as finished
	targetCoverage = 0.99
	// shortfallWeight scales the penalty for runs that never reach targetCoverage
	shortfallWeight = 4.0
	// stallGain is the per-window coverage gain below which a window counts as stalled
	stallGain = 0.001
	// stallWeight scales the penalty per stalled window
	stallWeight = 0.05
)

// FitnessEvaluator runs headless engines and scores how closely the time to
// cover the field matches a target tick count.
type FitnessEvaluator struct {
	params      *ParamVector
	baseConfig  *config.Config
	seeds       []int64
	targetTicks int
	maxTicks    int

	mu         sync.Mutex
	lastResult seedResult // mean over seeds of the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Runs stop at maxTicks even if
// the field is not yet covered.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config, seeds []int64, targetTicks, maxTicks int) *FitnessEvaluator {
	if maxTicks < targetTicks {
		maxTicks = targetTicks * 3
	}
	return &FitnessEvaluator{
		params:      params,
		baseConfig:  baseCfg,
		seeds:       seeds,
		targetTicks: targetTicks,
		maxTicks:    maxTicks,
	}
}

// seedResult holds the outcome of one run.
type seedResult struct {
	fitness  float64
	ticks    float64 // ticks to targetCoverage, or maxTicks
	coverage float64 // final coverage
	stalls   float64 // stats windows with no coverage gain before the end
}

// LastResult returns the averaged outcome of the most recent evaluation.
func (fe *FitnessEvaluator) LastResult() (ticks, coverage, stalls float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastResult.ticks, fe.lastResult.coverage, fe.lastResult.stalls
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var mean seedResult
	for _, r := range results {
		mean.fitness += r.fitness
		mean.ticks += r.ticks
		mean.coverage += r.coverage
		mean.stalls += r.stalls
	}
	n := float64(len(results))
	mean.fitness /= n
	mean.ticks /= n
	mean.coverage /= n
	mean.stalls /= n

	fe.mu.Lock()
	fe.lastResult = mean
	fe.mu.Unlock()

	return mean.fitness
}

// runSimulation executes a single headless run with the default layout.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) seedResult {
	var windows []telemetry.WindowStats
	eng, _ := engine.NewWithOptions(engine.Options{
		Config:   cfg,
		Seed:     seed,
		MaxTicks: fe.maxTicks,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	eng.Reset()

	reached := -1
	for !eng.Done() {
		eng.Tick()
		eng.FlushChanges()
		if eng.Field().Coverage() >= targetCoverage {
			reached = eng.TickCount()
			break
		}
	}
	eng.Close()

	return fe.score(reached, eng.Field().Coverage(), countStalls(windows))
}

// score combines the outcome of a run into a single fitness value.
func (fe *FitnessEvaluator) score(reached int, coverage float64, stalls int) seedResult {
	r := seedResult{coverage: coverage, stalls: float64(stalls)}
	target := float64(fe.targetTicks)
	if reached < 0 {
		r.ticks = float64(fe.maxTicks)
		r.fitness = math.Abs(r.ticks-target)/target + shortfallWeight*(targetCoverage-coverage)
	} else {
		r.ticks = float64(reached)
		r.fitness = math.Abs(r.ticks-target) / target
	}
	r.fitness += stallWeight * r.stalls
	return r
}

// countStalls counts windows whose coverage barely moved while the field was
// still uncovered.
func countStalls(windows []telemetry.WindowStats) int {
	stalls := 0
	for i := 1; i < len(windows); i++ {
		prev, cur := windows[i-1].Coverage, windows[i].Coverage
		if cur < targetCoverage && cur-prev < stallGain {
			stalls++
		}
	}
	return stalls
}

// Package telemetry provides windowed growth statistics, performance timing,
// coverage bookmarks and CSV output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	// Growth events during window
	Steps        int     `csv:"steps"`
	Touched      int     `csv:"touched"`
	Candidates   int     `csv:"candidates"`
	Admitted     int     `csv:"admitted"`
	Rejected     int     `csv:"rejected"`
	AdmitRate    float64 `csv:"admit_rate"`
	Replenished  int     `csv:"replenished"`
	Injected     int     `csv:"injected"`
	DormantSteps int     `csv:"dormant_steps"`
	SeedsAdded   int     `csv:"seeds_added"`

	// Stain census at window end
	Stains    int `csv:"stains"`
	Active    int `csv:"active"`
	Exhausted int `csv:"exhausted"`
	Dormant   int `csv:"dormant"`
	Frontier  int `csv:"frontier"`

	// Field distribution at window end
	Coverage       float64 `csv:"coverage"`
	CoveredCells   int     `csv:"covered_cells"`
	IntensityMean  float64 `csv:"intensity_mean"`
	IntensityStd   float64 `csv:"intensity_std"`
	IntensityP10   float64 `csv:"intensity_p10"`
	IntensityP50   float64 `csv:"intensity_p50"`
	IntensityP90   float64 `csv:"intensity_p90"`
	TotalIntensity float64 `csv:"total_intensity"`
}

// Census counts stains by state.
type Census struct {
	Stains    int
	Active    int
	Exhausted int
	Dormant   int
	Frontier  int // total active points across stains
}

// FieldStats summarizes the intensity distribution of a field.
type FieldStats struct {
	Coverage     float64
	CoveredCells int
	Mean         float64
	Std          float64
	P10          float64
	P50          float64
	P90          float64
	Total        float64
}

// ComputeFieldStats calculates coverage and the intensity distribution.
// A cell counts as covered when its value is at least cover.
func ComputeFieldStats(data []float32, cover float32) FieldStats {
	n := len(data)
	if n == 0 {
		return FieldStats{}
	}

	values := make([]float64, n)
	var fs FieldStats
	for i, v := range data {
		values[i] = float64(v)
		fs.Total += float64(v)
		if v >= cover {
			fs.CoveredCells++
		}
	}
	fs.Coverage = float64(fs.CoveredCells) / float64(n)

	if n > 1 {
		fs.Mean, fs.Std = stat.MeanStdDev(values, nil)
	} else {
		fs.Mean = values[0]
	}

	sort.Float64s(values)
	fs.P10 = stat.Quantile(0.10, stat.Empirical, values, nil)
	fs.P50 = stat.Quantile(0.50, stat.Empirical, values, nil)
	fs.P90 = stat.Quantile(0.90, stat.Empirical, values, nil)

	return fs
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("steps", s.Steps),
		slog.Int("touched", s.Touched),
		slog.Int("admitted", s.Admitted),
		slog.Int("rejected", s.Rejected),
		slog.Float64("admit_rate", s.AdmitRate),
		slog.Int("replenished", s.Replenished),
		slog.Int("injected", s.Injected),
		slog.Int("seeds_added", s.SeedsAdded),
		slog.Int("stains", s.Stains),
		slog.Int("active", s.Active),
		slog.Int("exhausted", s.Exhausted),
		slog.Int("dormant", s.Dormant),
		slog.Int("frontier", s.Frontier),
		slog.Float64("coverage", s.Coverage),
		slog.Float64("intensity_mean", s.IntensityMean),
		slog.Float64("intensity_p50", s.IntensityP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"steps", s.Steps,
		"touched", s.Touched,
		"candidates", s.Candidates,
		"admitted", s.Admitted,
		"rejected", s.Rejected,
		"admit_rate", s.AdmitRate,
		"replenished", s.Replenished,
		"injected", s.Injected,
		"dormant_steps", s.DormantSteps,
		"seeds_added", s.SeedsAdded,
		"stains", s.Stains,
		"active", s.Active,
		"exhausted", s.Exhausted,
		"dormant", s.Dormant,
		"frontier", s.Frontier,
		"coverage", s.Coverage,
		"covered_cells", s.CoveredCells,
		"intensity_mean", s.IntensityMean,
		"intensity_std", s.IntensityStd,
		"intensity_p10", s.IntensityP10,
		"intensity_p50", s.IntensityP50,
		"intensity_p90", s.IntensityP90,
	)
}

package telemetry

import "github.com/pthm-cable/rust/systems"

// Collector accumulates growth events within tick windows and produces
// WindowStats.
type Collector struct {
	windowTicks     int
	windowStartTick int

	// Event counters for current window
	steps        int
	touched      int
	candidates   int
	admitted     int
	rejected     int
	replenished  int
	injected     int
	dormantSteps int
	seedsAdded   int
}

// NewCollector creates a collector that closes a window every windowTicks
// ticks. Values below 1 are raised to 1.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// RecordStep adds one stain step to the current window.
func (c *Collector) RecordStep(r systems.StepReport) {
	c.steps++
	c.touched += r.Touched
	c.candidates += r.Candidates
	c.admitted += r.Admitted
	c.rejected += r.Rejected
	c.injected += r.Injected
	if r.Replenished {
		c.replenished++
	}
	if r.Dormant {
		c.dormantSteps++
	}
}

// RecordSeed records a stain being added.
func (c *Collector) RecordSeed() {
	c.seedsAdded++
}

// WindowTicks returns the window length in ticks.
func (c *Collector) WindowTicks() int { return c.windowTicks }

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Pending reports whether the current window has covered any ticks.
func (c *Collector) Pending(currentTick int) bool {
	return currentTick > c.windowStartTick
}

// Flush produces a WindowStats from the counters, the field statistics and the
// stain census, then starts a new window at currentTick.
func (c *Collector) Flush(currentTick int, field FieldStats, census Census) WindowStats {
	var admitRate float64
	if c.candidates > 0 {
		admitRate = float64(c.admitted) / float64(c.candidates)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Steps:        c.steps,
		Touched:      c.touched,
		Candidates:   c.candidates,
		Admitted:     c.admitted,
		Rejected:     c.rejected,
		AdmitRate:    admitRate,
		Replenished:  c.replenished,
		Injected:     c.injected,
		DormantSteps: c.dormantSteps,
		SeedsAdded:   c.seedsAdded,

		Stains:    census.Stains,
		Active:    census.Active,
		Exhausted: census.Exhausted,
		Dormant:   census.Dormant,
		Frontier:  census.Frontier,

		Coverage:       field.Coverage,
		CoveredCells:   field.CoveredCells,
		IntensityMean:  field.Mean,
		IntensityStd:   field.Std,
		IntensityP10:   field.P10,
		IntensityP50:   field.P50,
		IntensityP90:   field.P90,
		TotalIntensity: field.Total,
	}

	c.Reset(currentTick)
	return stats
}

// Reset zeroes the counters and starts a new window at tick.
func (c *Collector) Reset(tick int) {
	*c = Collector{windowTicks: c.windowTicks, windowStartTick: tick}
}

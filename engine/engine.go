// Package engine owns the rust field and its growth fronts and advances them
// once per frame.
package engine

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rust/components"
	"github.com/pthm-cable/rust/config"
	"github.com/pthm-cable/rust/systems"
	"github.com/pthm-cable/rust/telemetry"
)

// bookmarkHistory is the number of stats windows the stall detector looks back.
const bookmarkHistory = 5

// Options configures engine construction. Zero values fall back to the
// configuration.
type Options struct {
	Config *config.Config // nil = embedded defaults

	Width, Height int // 0 = Grid.Width / Grid.Height
	MaxTicks      int // 0 = Engine.MaxTicks
	SubSteps      int // 0 = Engine.SubSteps

	Seed int64      // RNG seed when Rand is nil
	Rand *rand.Rand // injected random source

	LogStats      bool
	OutputDir     string
	StatsCallback func(telemetry.WindowStats)
}

// Engine holds the complete simulation state.
// It is not safe for concurrent use.
type Engine struct {
	cfg *config.Config
	rng *rand.Rand

	field  *systems.Field
	growth *systems.Growth

	// Stains live in the ECS world; order keeps insertion order for stepping
	world       *ecs.World
	stainMap    *ecs.Map1[components.Stain]
	stainFilter *ecs.Filter1[components.Stain]
	order       []ecs.Entity
	nextID      uint32

	changes *ChangeSet
	touch   func(image.Point)

	tick     int
	maxTicks int
	subSteps int
	epoch    uint64

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	bookmarks     *telemetry.BookmarkDetector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// Create builds an engine for a width×height field with the default growth
// rule. maxTicks 0 means no horizon; subSteps below 1 become 1. It starts
// empty: call Reset for the default layout or AddSeed for individual stains.
func Create(width, height, maxTicks, subSteps int, rng *rand.Rand) *Engine {
	cfg := config.Default()
	cfg.Grid.Width = width
	cfg.Grid.Height = height
	cfg.Engine.MaxTicks = maxTicks
	cfg.Engine.SubSteps = subSteps
	e, _ := NewWithOptions(Options{Config: cfg, Rand: rng})
	return e
}

// New builds an engine from a configuration and random source.
func New(cfg *config.Config, rng *rand.Rand) *Engine {
	e, _ := NewWithOptions(Options{Config: cfg, Rand: rng})
	return e
}

// NewWithOptions builds an engine. The error is only non-nil when the
// telemetry output directory cannot be prepared.
func NewWithOptions(opts Options) (*Engine, error) {
	var cfg *config.Config
	if opts.Config != nil {
		cfg = opts.Config.Clone()
	} else {
		cfg = config.Default()
	}
	if opts.Width > 0 {
		cfg.Grid.Width = opts.Width
	}
	if opts.Height > 0 {
		cfg.Grid.Height = opts.Height
	}
	if opts.MaxTicks > 0 {
		cfg.Engine.MaxTicks = opts.MaxTicks
	}
	if opts.SubSteps > 0 {
		cfg.Engine.SubSteps = opts.SubSteps
	}
	cfg.Recompute()

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	world := ecs.NewWorld()
	field := systems.NewField(cfg.Grid.Width, cfg.Grid.Height, cfg.Derived.CoverThreshold)

	e := &Engine{
		cfg:           cfg,
		rng:           rng,
		field:         field,
		growth:        systems.NewGrowth(cfg),
		world:         world,
		stainMap:      ecs.NewMap1[components.Stain](world),
		stainFilter:   ecs.NewFilter1[components.Stain](world),
		changes:       NewChangeSet(field.W, field.H),
		maxTicks:      cfg.Engine.MaxTicks,
		subSteps:      cfg.Engine.SubSteps,
		collector:     telemetry.NewCollector(cfg.Telemetry.WindowTicks),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarks:     telemetry.NewBookmarkDetector(bookmarkHistory),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	e.touch = e.changes.Add

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return e, fmt.Errorf("creating output manager: %w", err)
		}
		e.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			return e, fmt.Errorf("writing config snapshot: %w", err)
		}
	}

	return e, nil
}

// Tick advances every stain SubSteps times in insertion order. Once the tick
// horizon is reached it does nothing.
func (e *Engine) Tick() {
	if e.maxTicks > 0 && e.tick >= e.maxTicks {
		return
	}

	e.perfCollector.StartTick()
	e.perfCollector.StartPhase(telemetry.PhaseGrowth)
	for sub := 0; sub < e.subSteps; sub++ {
		for _, entity := range e.order {
			stain := e.stainMap.Get(entity)
			report := e.growth.Step(stain, e.field, e.rng, e.touch)
			e.collector.RecordStep(report)
		}
	}
	e.tick++

	e.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	e.flushTelemetry()
	e.perfCollector.EndTick()
}

// AddSeed appends a new stain whose active points are the in-bounds,
// deduplicated subset of points. A negative budget is treated as 0. The
// stain is created even when no point is on the grid; ok reports whether any
// point was kept.
func (e *Engine) AddSeed(points []image.Point, budget int) (entity ecs.Entity, ok bool) {
	if budget < 0 {
		budget = 0
	}

	active := make([]image.Point, 0, len(points))
	seen := make(map[image.Point]struct{}, len(points))
	for _, p := range points {
		if !e.field.InBounds(p.X, p.Y) {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		active = append(active, p)
	}

	state := components.StainActive
	if budget == 0 {
		state = components.StainExhausted
	}

	e.nextID++
	stain := components.Stain{
		ID:        e.nextID,
		Active:    active,
		Remaining: budget,
		State:     state,
		Born:      e.tick,
	}
	entity = e.stainMap.NewEntity(&stain)
	e.order = append(e.order, entity)
	e.collector.RecordSeed()
	return entity, len(active) > 0
}

// Reset clears the field, removes every stain and rewinds the tick counter.
// With no points it seeds the default layout; otherwise a single stain is
// anchored at the given points with the click budget.
func (e *Engine) Reset(seedPoints ...image.Point) {
	e.Clear()
	if len(seedPoints) > 0 {
		e.AddSeed(seedPoints, e.cfg.Layout.ClickBudget)
		return
	}
	e.seedDefaultLayout()
}

// Clear empties the field and removes every stain without seeding. Growth
// resumes once a seed is added.
func (e *Engine) Clear() {
	e.field.Reset()
	for _, entity := range e.order {
		e.world.RemoveEntity(entity)
	}
	e.order = e.order[:0]
	e.tick = 0
	e.changes.Clear()
	e.collector.Reset(0)
	e.bookmarks.Reset()
	e.epoch++
}

// FlushChanges returns the cells touched since the previous flush and clears
// the pending set.
func (e *Engine) FlushChanges() []image.Point {
	return e.changes.Flush()
}

// PendingChanges returns the number of changed cells awaiting a flush.
func (e *Engine) PendingChanges() int { return e.changes.Len() }

// Field exposes the rust field for reading.
func (e *Engine) Field() *systems.Field { return e.field }

// Config returns the effective configuration.
func (e *Engine) Config() *config.Config { return e.cfg }

// TickCount returns the number of ticks since the last reset.
func (e *Engine) TickCount() int { return e.tick }

// MaxTicks returns the tick horizon (0 = unlimited).
func (e *Engine) MaxTicks() int { return e.maxTicks }

// SubSteps returns the growth rounds per tick.
func (e *Engine) SubSteps() int { return e.subSteps }

// SetSubSteps changes the growth rounds per tick. Values below 1 are raised to 1.
func (e *Engine) SetSubSteps(n int) {
	if n < 1 {
		n = 1
	}
	e.subSteps = n
}

// Epoch increases on every Reset so presenters know to repaint everything.
func (e *Engine) Epoch() uint64 { return e.epoch }

// StainCount returns the number of stains.
func (e *Engine) StainCount() int { return len(e.order) }

// Stains returns a copy of every stain in insertion order.
func (e *Engine) Stains() []components.Stain {
	out := make([]components.Stain, 0, len(e.order))
	for _, entity := range e.order {
		s := *e.stainMap.Get(entity)
		s.Active = append([]image.Point(nil), s.Active...)
		out = append(out, s)
	}
	return out
}

// Stain returns the stain stored on entity, or nil if it was removed.
func (e *Engine) Stain(entity ecs.Entity) *components.Stain {
	if !e.world.Alive(entity) {
		return nil
	}
	return e.stainMap.Get(entity)
}

// Census counts stains by state.
func (e *Engine) Census() telemetry.Census {
	var c telemetry.Census
	query := e.stainFilter.Query()
	for query.Next() {
		s := query.Get()
		c.Stains++
		c.Frontier += len(s.Active)
		switch s.State {
		case components.StainActive:
			c.Active++
		case components.StainExhausted:
			c.Exhausted++
		case components.StainDormant:
			c.Dormant++
		}
	}
	return c
}

// HorizonReached reports whether the tick horizon stops further ticks.
func (e *Engine) HorizonReached() bool {
	return e.maxTicks > 0 && e.tick >= e.maxTicks
}

// Done reports whether further ticks can change the field.
func (e *Engine) Done() bool {
	return e.HorizonReached() || !e.field.HasUncoveredArea(e.field.CoverThreshold())
}

// PerfStats returns rolling tick timing.
func (e *Engine) PerfStats() telemetry.PerfStats {
	return e.perfCollector.Stats()
}

// RecordFrame records frame timing for graphics mode.
func (e *Engine) RecordFrame() {
	e.perfCollector.RecordFrame()
}

// Close flushes the final partial telemetry window and closes output files.
func (e *Engine) Close() error {
	if e.collector.Pending(e.tick) {
		e.emitStats()
	}
	return e.outputManager.Close()
}

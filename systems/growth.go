package systems

import (
	"image"
	"math/rand"

	"github.com/pthm-cable/rust/components"
	"github.com/pthm-cable/rust/config"
)

// injectProbes is the number of random probes per requested injection point
// before falling back to a scan of the field.
const injectProbes = 8

// StepReport summarizes one stain step for telemetry.
type StepReport struct {
	Touched     int // active points that received intensity
	Candidates  int // distinct neighbourhood cells considered
	Admitted    int // candidates passing the admission policy
	Rejected    int
	Frontier    int // size of the next active set
	Replenished bool
	Injected    int
	Dormant     bool
}

// Growth advances stains over a field. It holds the growth rule and scratch
// buffers reused between steps; it carries no per-stain state.
type Growth struct {
	Policy Policy

	DeltaMin, DeltaMax float32 // per-step increment range
	MaxFrontier        int     // cap on the next active set
	RestartBudget      int     // budget granted by the re-seed rule
	InjectCount        int     // points injected on replenishment

	// InjectBelow bounds injection candidates. When no cell is below it,
	// injection falls back to cells below the field's cover threshold.
	InjectBelow float32

	// Scratch
	seen      []uint32 // stamp per cell; equal to stamp means seen this step
	stamp     uint32
	admitted  []image.Point
	pool      []image.Point
	injection []image.Point
}

// NewGrowth creates a growth system from configuration.
func NewGrowth(cfg *config.Config) *Growth {
	g := cfg.Growth
	return &Growth{
		Policy: Policy{
			SaturationLevel: float32(g.SaturationLevel),
			SaturatedProb:   g.SaturatedProb,
			PartialProb:     g.PartialProb,
		},
		DeltaMin:      cfg.Derived.DeltaMin32,
		DeltaMax:      cfg.Derived.DeltaMax32,
		MaxFrontier:   g.MaxFrontier,
		RestartBudget: g.RestartBudget,
		InjectCount:   g.InjectCount,
		InjectBelow:   cfg.Derived.InjectBelow32,
	}
}

// Step advances a stain by one iteration.
//
// Admission reads the field as it was when the step began; this step's own
// writes are applied afterwards. touched is called for every cell written.
func (g *Growth) Step(s *components.Stain, f *Field, rng *rand.Rand, touched func(image.Point)) StepReport {
	var r StepReport

	if s.Remaining <= 0 {
		s.Remaining = 0
		if !f.HasUncoveredArea(f.CoverThreshold()) {
			s.State = components.StainDormant
			r.Dormant = true
			r.Frontier = len(s.Active)
			return r
		}
		g.replenish(s, f, rng, &r)
	}

	s.Remaining--
	s.Steps++

	// Candidates and admission against the step-entry field
	stamp := g.nextStamp(f)
	g.admitted = g.admitted[:0]
	for _, p := range s.Active {
		for dy := -1; dy <= 1; dy++ {
			ny := p.Y + dy
			if ny < 0 || ny >= f.H {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				nx := p.X + dx
				if nx < 0 || nx >= f.W {
					continue
				}
				i := ny*f.W + nx
				if g.seen[i] == stamp {
					continue
				}
				g.seen[i] = stamp
				r.Candidates++
				if g.Policy.Admit(f.data[i], rng) {
					g.admitted = append(g.admitted, image.Point{X: nx, Y: ny})
				} else {
					r.Rejected++
				}
			}
		}
	}
	r.Admitted = len(g.admitted)

	// Writes
	for _, p := range s.Active {
		if !f.InBounds(p.X, p.Y) {
			continue
		}
		f.AddIntensity(p.X, p.Y, g.delta(rng))
		r.Touched++
		if touched != nil {
			touched(p)
		}
	}

	s.Active = sampleInto(s.Active[:0], g.admitted, g.MaxFrontier, rng)
	r.Frontier = len(s.Active)

	if s.Remaining > 0 {
		s.State = components.StainActive
	} else {
		s.State = components.StainExhausted
	}
	return r
}

// replenish refills the budget and injects fresh points into the stain.
func (g *Growth) replenish(s *components.Stain, f *Field, rng *rand.Rand, r *StepReport) {
	s.Remaining = g.RestartBudget
	s.Replenishments++
	r.Replenished = true

	injected := g.inject(s.Active, f, rng)
	s.Active = append(s.Active, injected...)
	r.Injected = len(injected)
}

// inject picks up to InjectCount cells below InjectBelow that are not already
// active. Random probes come first; if they find nothing the field is scanned.
// When no cell is below InjectBelow the scan falls back to cells below the
// cover threshold so that uncovered area is always reachable.
func (g *Growth) inject(active []image.Point, f *Field, rng *rand.Rand) []image.Point {
	g.injection = g.injection[:0]
	if g.InjectCount <= 0 {
		return g.injection
	}

	stamp := g.nextStamp(f)
	for _, p := range active {
		if f.InBounds(p.X, p.Y) {
			g.seen[f.Index(p.X, p.Y)] = stamp
		}
	}

	for probe := 0; probe < g.InjectCount*injectProbes && len(g.injection) < g.InjectCount; probe++ {
		x := rng.Intn(f.W)
		y := rng.Intn(f.H)
		i := f.Index(x, y)
		if g.seen[i] == stamp || f.data[i] >= g.InjectBelow {
			continue
		}
		g.seen[i] = stamp
		g.injection = append(g.injection, image.Point{X: x, Y: y})
	}
	if len(g.injection) > 0 {
		return g.injection
	}

	g.pool = g.unseen(f, f.CellsBelow(g.pool[:0], g.InjectBelow), stamp)
	if len(g.pool) == 0 {
		g.pool = g.unseen(f, f.CellsBelow(g.pool, f.CoverThreshold()), stamp)
	}
	g.injection = sampleInto(g.injection, g.pool, g.InjectCount, rng)
	return g.injection
}

// unseen filters pool in place, keeping cells not marked with stamp.
func (g *Growth) unseen(f *Field, pool []image.Point, stamp uint32) []image.Point {
	out := pool[:0]
	for _, p := range pool {
		if g.seen[f.Index(p.X, p.Y)] != stamp {
			out = append(out, p)
		}
	}
	return out
}

func (g *Growth) delta(rng *rand.Rand) float32 {
	if g.DeltaMax <= g.DeltaMin {
		return g.DeltaMin
	}
	return g.DeltaMin + rng.Float32()*(g.DeltaMax-g.DeltaMin)
}

// nextStamp returns a fresh membership stamp sized for f.
func (g *Growth) nextStamp(f *Field) uint32 {
	if len(g.seen) != f.Total() {
		g.seen = make([]uint32, f.Total())
		g.stamp = 0
	}
	g.stamp++
	if g.stamp == 0 {
		for i := range g.seen {
			g.seen[i] = 0
		}
		g.stamp = 1
	}
	return g.stamp
}

// sampleInto appends up to n elements of src to dst, chosen uniformly without
// replacement. src is permuted in place. If src has at most n elements they
// are all appended in their original order.
func sampleInto(dst, src []image.Point, n int, rng *rand.Rand) []image.Point {
	if n <= 0 {
		return dst
	}
	if len(src) <= n {
		return append(dst, src...)
	}
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(src)-i)
		src[i], src[j] = src[j], src[i]
	}
	return append(dst, src[:n]...)
}

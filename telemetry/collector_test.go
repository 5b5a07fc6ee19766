package telemetry

import (
	"testing"

	"github.com/pthm-cable/rust/systems"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(10)

	if c.ShouldFlush(9) {
		t.Error("expected no flush before window end")
	}
	if !c.ShouldFlush(10) {
		t.Error("expected flush at window end")
	}
	if c.Pending(0) {
		t.Error("expected nothing pending at tick 0")
	}
	if !c.Pending(3) {
		t.Error("expected pending window after ticks")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10)
	c.RecordSeed()
	c.RecordStep(systems.StepReport{Touched: 1, Candidates: 9, Admitted: 6, Rejected: 3})
	c.RecordStep(systems.StepReport{Touched: 6, Candidates: 10, Admitted: 2, Rejected: 8, Replenished: true, Injected: 4})
	c.RecordStep(systems.StepReport{Dormant: true})

	census := Census{Stains: 1, Exhausted: 1, Frontier: 2}
	field := FieldStats{Coverage: 0.25, CoveredCells: 4}
	stats := c.Flush(10, field, census)

	tests := []struct {
		name      string
		got, want int
	}{
		{"steps", stats.Steps, 3},
		{"touched", stats.Touched, 7},
		{"candidates", stats.Candidates, 19},
		{"admitted", stats.Admitted, 8},
		{"rejected", stats.Rejected, 11},
		{"replenished", stats.Replenished, 1},
		{"injected", stats.Injected, 4},
		{"dormant steps", stats.DormantSteps, 1},
		{"seeds", stats.SeedsAdded, 1},
		{"stains", stats.Stains, 1},
		{"frontier", stats.Frontier, 2},
		{"covered", stats.CoveredCells, 4},
		{"window end", stats.WindowEndTick, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, tt.got)
			}
		})
	}

	if want := 8.0 / 19.0; stats.AdmitRate != want {
		t.Errorf("expected admit rate %v, got %v", want, stats.AdmitRate)
	}

	// Counters restart with the next window
	next := c.Flush(20, FieldStats{}, Census{})
	if next.Steps != 0 || next.WindowStartTick != 10 {
		t.Errorf("expected empty window starting at 10, got %+v", next)
	}
}

func TestCollectorReset(t *testing.T) {
	c := NewCollector(0)
	if c.WindowTicks() != 1 {
		t.Errorf("expected window raised to 1, got %d", c.WindowTicks())
	}

	c.RecordStep(systems.StepReport{Touched: 5})
	c.Reset(0)
	if stats := c.Flush(1, FieldStats{}, Census{}); stats.Touched != 0 {
		t.Errorf("expected counters cleared by reset, got touched=%d", stats.Touched)
	}
}

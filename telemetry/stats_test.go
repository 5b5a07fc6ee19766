package telemetry

import (
	"math"
	"testing"
)

func TestComputeFieldStats(t *testing.T) {
	data := []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	fs := ComputeFieldStats(data, 0.9)

	if fs.CoveredCells != 2 {
		t.Errorf("expected 2 covered cells, got %d", fs.CoveredCells)
	}
	if math.Abs(fs.Coverage-0.2) > 1e-9 {
		t.Errorf("expected coverage 0.2, got %v", fs.Coverage)
	}
	if math.Abs(fs.Mean-0.55) > 0.001 {
		t.Errorf("expected mean 0.55, got %v", fs.Mean)
	}
	if math.Abs(fs.Total-5.5) > 0.001 {
		t.Errorf("expected total 5.5, got %v", fs.Total)
	}
	if fs.Std <= 0 {
		t.Errorf("expected positive std, got %v", fs.Std)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"p10", fs.P10, 0.1},
		{"p50", fs.P50, 0.5},
		{"p90", fs.P90, 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 0.001 {
				t.Errorf("expected %v, got %v", tt.want, tt.got)
			}
		})
	}
}

func TestComputeFieldStatsUnordered(t *testing.T) {
	data := []float32{1, 0, 0.5, 0}
	fs := ComputeFieldStats(data, 0.9)

	if fs.P90 != 1 {
		t.Errorf("expected p90 of 1 regardless of input order, got %v", fs.P90)
	}
	if data[0] != 1 || data[1] != 0 {
		t.Error("expected input data to be left untouched")
	}
}

func TestComputeFieldStatsEdgeCases(t *testing.T) {
	if fs := ComputeFieldStats(nil, 0.9); fs != (FieldStats{}) {
		t.Errorf("expected zero stats for empty field, got %+v", fs)
	}

	fs := ComputeFieldStats([]float32{0.95}, 0.9)
	if fs.Coverage != 1 || fs.Std != 0 {
		t.Errorf("expected single covered cell with zero std, got %+v", fs)
	}
	if math.IsNaN(fs.Mean) || math.Abs(fs.Mean-0.95) > 0.001 {
		t.Errorf("expected mean 0.95, got %v", fs.Mean)
	}
}

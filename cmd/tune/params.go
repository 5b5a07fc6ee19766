package main

import (
	"math"

	"github.com/pthm-cable/rust/config"
)

// ParamSpec defines a single tunable growth parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded when applied
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of growth parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Increment range
			{Name: "delta_min", Path: "growth.delta_min", Min: 0.01, Max: 0.10, Default: 0.05},
			{Name: "delta_max", Path: "growth.delta_max", Min: 0.10, Max: 0.30, Default: 0.15},
			// Admission
			{Name: "saturation_level", Path: "growth.saturation_level", Min: 0.5, Max: 0.95, Default: 0.8},
			{Name: "saturated_prob", Path: "growth.saturated_prob", Min: 0.1, Max: 1.0, Default: 0.7},
			{Name: "partial_prob", Path: "growth.partial_prob", Min: 0.3, Max: 1.0, Default: 0.9},
			// Frontier
			{Name: "max_frontier", Path: "growth.max_frontier", Min: 10, Max: 400, Default: 100, Integer: true},
			{Name: "restart_budget", Path: "growth.restart_budget", Min: 10, Max: 200, Default: 50, Integer: true},
			{Name: "inject_count", Path: "growth.inject_count", Min: 1, Max: 20, Default: 5, Integer: true},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Max(spec.Min, math.Min(spec.Max, v[i]))
		if spec.Integer {
			clamped[i] = math.Round(clamped[i])
		}
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	g := &cfg.Growth

	g.DeltaMin = clamped[0]
	g.DeltaMax = clamped[1]
	g.SaturationLevel = clamped[2]
	g.SaturatedProb = clamped[3]
	g.PartialProb = clamped[4]
	g.MaxFrontier = int(clamped[5])
	g.RestartBudget = int(clamped[6])
	g.InjectCount = int(clamped[7])

	cfg.Recompute()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	g := cfg.Growth
	return []float64{
		g.DeltaMin,
		g.DeltaMax,
		g.SaturationLevel,
		g.SaturatedProb,
		g.PartialProb,
		float64(g.MaxFrontier),
		float64(g.RestartBudget),
		float64(g.InjectCount),
	}
}

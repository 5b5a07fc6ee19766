package systems

import "math/rand"

// Policy decides whether a candidate cell joins a stain's next active set,
// keyed on the cell's intensity.
//
//	v == 0                 always (unclaimed)
//	v >= 1                 never (saturated)
//	v >  SaturationLevel   SaturatedProb
//	otherwise              PartialProb
type Policy struct {
	SaturationLevel float32
	SaturatedProb   float64
	PartialProb     float64
}

// DefaultPolicy returns the standard admission rule.
func DefaultPolicy() Policy {
	return Policy{SaturationLevel: 0.8, SaturatedProb: 0.7, PartialProb: 0.9}
}

// Probability returns the admission probability for intensity v.
func (p Policy) Probability(v float32) float64 {
	switch {
	case v <= 0:
		return 1
	case v >= 1:
		return 0
	case v > p.SaturationLevel:
		return p.SaturatedProb
	default:
		return p.PartialProb
	}
}

// Admit draws against Probability(v). Certain outcomes consume no randomness.
func (p Policy) Admit(v float32, rng *rand.Rand) bool {
	prob := p.Probability(v)
	if prob >= 1 {
		return true
	}
	if prob <= 0 {
		return false
	}
	return rng.Float64() < prob
}

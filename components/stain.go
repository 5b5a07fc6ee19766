package components

import "image"

// StainState is the lifecycle position of a growth front.
type StainState uint8

const (
	// StainActive has iteration budget left.
	StainActive StainState = iota
	// StainExhausted ran out of budget while area is still uncovered; it
	// replenishes on its next step.
	StainExhausted
	// StainDormant ran out of budget with the whole field covered.
	StainDormant
)

// String returns the lowercase state name.
func (s StainState) String() string {
	switch s {
	case StainActive:
		return "active"
	case StainExhausted:
		return "exhausted"
	case StainDormant:
		return "dormant"
	}
	return "unknown"
}

// Stain is a growth front: a set of active points spreading rust with a
// remaining iteration budget.
type Stain struct {
	ID        uint32
	Active    []image.Point // deduplicated, in deterministic order
	Remaining int           // iterations left before the re-seed rule applies
	State     StainState
	Born      int // engine tick at creation

	Steps          int // successful (non-dormant) steps taken
	Replenishments int // times the re-seed rule refilled the budget
}

package engine

import (
	"fmt"
	"image"
)

// ChangeSet accumulates distinct changed cells between flushes, in the order
// they were first touched. It only serves presenters; the field remains the
// source of truth.
type ChangeSet struct {
	w, h   int
	marked []bool
	points []image.Point
}

// NewChangeSet creates an empty change set for a w×h grid.
func NewChangeSet(w, h int) *ChangeSet {
	return &ChangeSet{w: w, h: h, marked: make([]bool, w*h)}
}

// Add records p. Out-of-bounds points and repeats are ignored.
func (c *ChangeSet) Add(p image.Point) {
	if p.X < 0 || p.X >= c.w || p.Y < 0 || p.Y >= c.h {
		return
	}
	i := p.Y*c.w + p.X
	if c.marked[i] {
		return
	}
	c.marked[i] = true
	c.points = append(c.points, p)
}

// Len returns the number of pending changed cells.
func (c *ChangeSet) Len() int { return len(c.points) }

// Flush returns the pending cells and clears the set. The caller owns the
// returned slice.
func (c *ChangeSet) Flush() []image.Point {
	out := c.points
	for _, p := range out {
		c.marked[p.Y*c.w+p.X] = false
	}
	c.points = make([]image.Point, 0, len(out))
	return out
}

// Clear drops all pending cells.
func (c *ChangeSet) Clear() {
	for _, p := range c.points {
		c.marked[p.Y*c.w+p.X] = false
	}
	c.points = c.points[:0]
}

// CheckBounds verifies every pending cell lies on the grid.
func (c *ChangeSet) CheckBounds() error {
	for _, p := range c.points {
		if p.X < 0 || p.X >= c.w || p.Y < 0 || p.Y >= c.h {
			return fmt.Errorf("changed cell %v outside %dx%d grid", p, c.w, c.h)
		}
	}
	return nil
}

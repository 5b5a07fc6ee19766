package systems

import (
	"fmt"
	"image"
)

// DefaultCoverThreshold is the intensity at which a cell counts as rusted through.
const DefaultCoverThreshold float32 = 0.9

// Field is the 2D rust intensity grid. Values are kept in [0,1].
// It tracks how many cells sit at or above its cover threshold so that
// coverage queries for that threshold do not scan the grid.
type Field struct {
	W, H int

	// Intensity [0,1], row-major
	data []float32

	cover   float32
	covered int
}

// NewField creates a zeroed field. Non-positive dimensions are raised to 1.
func NewField(w, h int, coverThreshold float32) *Field {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	if coverThreshold <= 0 || coverThreshold > 1 {
		coverThreshold = DefaultCoverThreshold
	}
	return &Field{W: w, H: h, data: make([]float32, w*h), cover: coverThreshold}
}

// InBounds reports whether (x, y) addresses a cell.
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.W && y >= 0 && y < f.H
}

// Index returns the linear slice index for coordinates (x, y).
func (f *Field) Index(x, y int) int { return y*f.W + x }

// Total returns the number of cells.
func (f *Field) Total() int { return len(f.data) }

// Bounds returns the field rectangle.
func (f *Field) Bounds() image.Rectangle { return image.Rect(0, 0, f.W, f.H) }

// CoverThreshold returns the threshold used for coverage tracking.
func (f *Field) CoverThreshold() float32 { return f.cover }

// Get returns the intensity at (x, y), or 0 off-grid.
func (f *Field) Get(x, y int) float32 {
	if !f.InBounds(x, y) {
		return 0
	}
	return f.data[y*f.W+x]
}

// AddIntensity adds delta to the cell and clamps to [0,1].
func (f *Field) AddIntensity(x, y int, delta float32) {
	if !f.InBounds(x, y) {
		return
	}
	i := y*f.W + x
	f.write(i, f.data[i]+delta)
}

// Set overwrites the cell with v clamped to [0,1].
func (f *Field) Set(x, y int, v float32) {
	if !f.InBounds(x, y) {
		return
	}
	f.write(y*f.W+x, v)
}

func (f *Field) write(i int, v float32) {
	v = clamp01(v)
	was := f.data[i] >= f.cover
	now := v >= f.cover
	f.data[i] = v
	switch {
	case now && !was:
		f.covered++
	case was && !now:
		f.covered--
	}
}

// Reset sets every cell to 0.
func (f *Field) Reset() {
	for i := range f.data {
		f.data[i] = 0
	}
	f.covered = 0
}

// HasUncoveredArea reports whether any cell is below threshold.
func (f *Field) HasUncoveredArea(threshold float32) bool {
	if threshold == f.cover {
		return f.covered < len(f.data)
	}
	for _, v := range f.data {
		if v < threshold {
			return true
		}
	}
	return false
}

// Coverage returns the fraction of cells at or above the cover threshold.
func (f *Field) Coverage() float64 {
	return float64(f.covered) / float64(len(f.data))
}

// CoveredCells returns the number of cells at or above the cover threshold.
func (f *Field) CoveredCells() int { return f.covered }

// CellsBelow appends to dst every cell with intensity below threshold, in
// row-major order, and returns the extended slice.
func (f *Field) CellsBelow(dst []image.Point, threshold float32) []image.Point {
	for y := 0; y < f.H; y++ {
		row := f.data[y*f.W : (y+1)*f.W]
		for x, v := range row {
			if v < threshold {
				dst = append(dst, image.Point{X: x, Y: y})
			}
		}
	}
	return dst
}

// Data returns the backing slice for presenters. Callers must not write to it.
func (f *Field) Data() []float32 { return f.data }

// Sum returns the total intensity mass.
func (f *Field) Sum() float64 {
	var total float64
	for _, v := range f.data {
		total += float64(v)
	}
	return total
}

// CheckInvariants verifies that every value lies in [0,1] and the coverage
// counter agrees with the grid.
func (f *Field) CheckInvariants() error {
	covered := 0
	for i, v := range f.data {
		if v < 0 || v > 1 || v != v {
			return fmt.Errorf("cell (%d,%d) out of range: %v", i%f.W, i/f.W, v)
		}
		if v >= f.cover {
			covered++
		}
	}
	if covered != f.covered {
		return fmt.Errorf("coverage counter %d disagrees with grid %d", f.covered, covered)
	}
	return nil
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

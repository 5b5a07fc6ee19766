// Package renderer turns the rust field into pixels: an RGBA buffer kept in
// sync with the engine, an MJPEG recorder and a coverage chart.
package renderer

import (
	"image"
	"image/color"

	"github.com/pthm-cable/rust/config"
	"github.com/pthm-cable/rust/systems"
)

// Source is what the presenter reads from the simulation.
type Source interface {
	Field() *systems.Field
	FlushChanges() []image.Point
	Epoch() uint64
}

// RepaintMode reports how the last Apply updated the buffer.
type RepaintMode int

const (
	RepaintNone RepaintMode = iota
	RepaintSparse
	RepaintFull
)

func (m RepaintMode) String() string {
	switch m {
	case RepaintSparse:
		return "sparse"
	case RepaintFull:
		return "full"
	default:
		return "none"
	}
}

// Presenter holds the pixel buffer for a field. It keeps no simulation state
// beyond the epoch it last painted.
type Presenter struct {
	w, h    int
	pixels  []color.RGBA
	palette *Palette

	fullFraction float64
	epoch        uint64
	painted      bool
	lastMode     RepaintMode
	lastChanged  int
}

// NewPresenter creates a presenter for a w×h field.
func NewPresenter(w, h int, cfg config.PresenterConfig, seed int64) *Presenter {
	return &Presenter{
		w:            w,
		h:            h,
		pixels:       make([]color.RGBA, w*h),
		palette:      NewPalette(w, h, cfg.Grain, cfg.GrainScale, seed),
		fullFraction: cfg.FullRepaintFraction,
	}
}

// Apply drains the source's changed cells and updates the buffer. It repaints
// everything on the first call, after the source's epoch moves, or when more
// than the configured fraction of cells changed.
func (p *Presenter) Apply(src Source) RepaintMode {
	f := src.Field()
	changes := src.FlushChanges()
	p.lastChanged = len(changes)

	switch {
	case !p.painted || src.Epoch() != p.epoch:
		p.repaint(f)
		p.epoch = src.Epoch()
		p.painted = true
		p.lastMode = RepaintFull
	case len(changes) == 0:
		p.lastMode = RepaintNone
	case float64(len(changes)) > p.fullFraction*float64(p.w*p.h):
		p.repaint(f)
		p.lastMode = RepaintFull
	default:
		data := f.Data()
		if len(data) != len(p.pixels) {
			break
		}
		for _, pt := range changes {
			if pt.X < 0 || pt.X >= p.w || pt.Y < 0 || pt.Y >= p.h {
				continue
			}
			i := pt.Y*p.w + pt.X
			p.pixels[i] = p.palette.Color(i, data[i])
		}
		p.lastMode = RepaintSparse
	}
	return p.lastMode
}

func (p *Presenter) repaint(f *systems.Field) {
	data := f.Data()
	if len(data) != len(p.pixels) {
		return
	}
	for i, v := range data {
		p.pixels[i] = p.palette.Color(i, v)
	}
}

// Pixels returns the buffer in row-major order. It is valid until the next
// Apply.
func (p *Presenter) Pixels() []color.RGBA { return p.pixels }

// Size returns the buffer dimensions.
func (p *Presenter) Size() (w, h int) { return p.w, p.h }

// LastMode returns how the last Apply updated the buffer.
func (p *Presenter) LastMode() RepaintMode { return p.lastMode }

// LastChanged returns the number of changed cells seen by the last Apply.
func (p *Presenter) LastChanged() int { return p.lastChanged }

// DrawInto copies the buffer into dst, scaling each cell to a scale×scale
// block starting at dst's minimum point. dst must be at least w*scale by
// h*scale.
func (p *Presenter) DrawInto(dst *image.RGBA, scale int) {
	if scale < 1 {
		scale = 1
	}
	origin := dst.Rect.Min
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			c := p.pixels[y*p.w+x]
			for dy := 0; dy < scale; dy++ {
				off := dst.PixOffset(origin.X+x*scale, origin.Y+y*scale+dy)
				for dx := 0; dx < scale; dx++ {
					dst.Pix[off] = c.R
					dst.Pix[off+1] = c.G
					dst.Pix[off+2] = c.B
					dst.Pix[off+3] = c.A
					off += 4
				}
			}
		}
	}
}

package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/icza/mjpeg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// labelHeight is the strip above the field reserved for the frame label.
const labelHeight = 18

// Recorder writes presenter frames to an MJPEG AVI file. A nil recorder
// discards frames.
type Recorder struct {
	writer  mjpeg.AviWriter
	frame   *image.RGBA
	scale   int
	buf     bytes.Buffer
	opts    jpeg.Options
	frames  int
	every   int
	offered int
}

// NewRecorder opens path for a w×h field drawn at scale, keeping one frame
// in every `every` offered. Returns nil if path is empty (recording disabled).
func NewRecorder(path string, w, h, scale, fps, every int) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	if scale < 1 {
		scale = 1
	}
	if every < 1 {
		every = 1
	}
	fw, fh := w*scale, h*scale+labelHeight
	writer, err := mjpeg.New(path, int32(fw), int32(fh), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("creating mjpeg writer: %w", err)
	}
	return &Recorder{
		writer: writer,
		frame:  image.NewRGBA(image.Rect(0, 0, fw, fh)),
		scale:  scale,
		opts:   jpeg.Options{Quality: 85},
		every:  every,
	}, nil
}

// AddFrame encodes the presenter buffer with label drawn above it.
func (r *Recorder) AddFrame(p *Presenter, label string) error {
	if r == nil {
		return nil
	}
	r.offered++
	if (r.offered-1)%r.every != 0 {
		return nil
	}

	// Label strip
	strip := r.frame.Bounds()
	strip.Max.Y = labelHeight
	fillRect(r.frame, strip, color.RGBA{R: 24, G: 20, B: 18, A: 255})
	d := &font.Drawer{
		Dst:  r.frame,
		Src:  image.NewUniform(color.RGBA{R: 235, G: 225, B: 210, A: 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 13),
	}
	d.DrawString(label)

	field := r.frame.SubImage(image.Rect(0, labelHeight, r.frame.Rect.Dx(), r.frame.Rect.Dy())).(*image.RGBA)
	p.DrawInto(field, r.scale)

	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, r.frame, &r.opts); err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	if err := r.writer.AddFrame(r.buf.Bytes()); err != nil {
		return fmt.Errorf("adding frame: %w", err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames written.
func (r *Recorder) Frames() int {
	if r == nil {
		return 0
	}
	return r.frames
}

// Close finalizes the AVI file.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	return r.writer.Close()
}

func fillRect(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

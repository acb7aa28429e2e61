// seehuhn.de/go/sigpad - capture handwritten signatures as strokes and images
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package sigpad

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"seehuhn.de/go/geom/vec"
)

// State is the drawing state of a Pad.
type State int

// The states of a Pad.  A new Pad starts in Empty.
const (
	Empty      State = iota // no strokes
	Drawing                 // a gesture is in progress
	HasContent              // at least one stroke, no active gesture
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Drawing:
		return "drawing"
	case HasContent:
		return "has content"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ImageOptions selects how a signature is exported.
type ImageOptions struct {
	Format Format

	// Crop restricts the image to the ink of the strokes.
	Crop bool

	// Size is the requested output size.  The zero value keeps the
	// canvas (or cropped) size.
	Size image.Point

	// KeepAspect scales uniformly so that the result fits into Size.
	KeepAspect bool
}

// DefaultImageOptions returns PNG output, cropped, at the natural size.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{Format: PNG, Crop: true, KeepAspect: true}
}

// Pad is the signature controller: it turns pointer events into strokes,
// keeps the strokes and the style, and produces preview and export images.
//
// All methods are safe for concurrent use.  Callbacks are invoked after
// the internal lock has been released, on the goroutine which caused the
// event.
type Pad struct {
	mu sync.RWMutex

	width, height int
	state         State
	sampler       *Sampler
	store         Store
	style         Style
	labels        Labels

	preview *image.NRGBA
	gen     uint64 // incremented whenever the preview becomes stale
	blank   bool   // last value reported to onBlankChanged

	onStrokeStarted  func()
	onContentChanged func()
	onBlankChanged   func(blank bool)
}

// NewPad returns an empty Pad for a canvas of the given size, using
// DefaultStyle and DefaultLabels.
func NewPad(width, height int) *Pad {
	return &Pad{
		width:   width,
		height:  height,
		sampler: NewSampler(float64(width), float64(height)),
		style:   DefaultStyle(),
		labels:  DefaultLabels(),
		blank:   true,
	}
}

// OnStrokeStarted registers f to be called whenever a gesture starts.
// This can be used to show a "clear" button.
func (p *Pad) OnStrokeStarted(f func()) {
	p.mu.Lock()
	p.onStrokeStarted = f
	p.mu.Unlock()
}

// OnContentChanged registers f to be called after a stroke is committed
// and after Clear or LoadPoints.
func (p *Pad) OnContentChanged(f func()) {
	p.mu.Lock()
	p.onContentChanged = f
	p.mu.Unlock()
}

// OnBlankChanged registers f to be called when the value returned by
// IsBlank changes.
func (p *Pad) OnBlankChanged(f func(blank bool)) {
	p.mu.Lock()
	p.onBlankChanged = f
	p.mu.Unlock()
}

// State returns the current drawing state.
func (p *Pad) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Press starts a new stroke at pt.  An unfinished gesture is abandoned.
func (p *Pad) Press(pt vec.Vec2) {
	p.mu.Lock()
	p.sampler.Press(pt)
	p.state = Drawing
	cb := p.onStrokeStarted
	p.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// Move extends the active stroke.  Points outside the canvas are ignored.
func (p *Pad) Move(pt vec.Vec2) {
	p.mu.Lock()
	if p.state == Drawing {
		p.sampler.Move(pt)
	}
	p.mu.Unlock()
}

// Release ends the active stroke at pt and commits it.
func (p *Pad) Release(pt vec.Vec2) {
	p.mu.Lock()
	if p.state != Drawing {
		p.mu.Unlock()
		return
	}
	s, ok := p.sampler.Release(pt)
	if ok {
		// ok means s is non-empty, which is all Append checks
		ok = p.store.Append(s) == nil
	}
	if ok {
		p.invalidate()
	}
	p.state = p.restingState()
	fire := p.contentEvents(ok)
	n := p.store.Len()
	p.mu.Unlock()

	if ok {
		Logger().Debug("stroke committed", "points", len(s), "strokes", n)
	}
	fire()
}

// Clear removes all strokes and abandons any active gesture.
func (p *Pad) Clear() {
	p.mu.Lock()
	p.sampler.Reset()
	p.store.Clear()
	p.invalidate()
	p.state = Empty
	fire := p.contentEvents(true)
	p.mu.Unlock()

	Logger().Debug("signature cleared")
	fire()
}

// Points returns the strokes in the flat point format, with (0,0) between
// consecutive strokes.
func (p *Pad) Points() []vec.Vec2 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.store.Flatten()
}

// LoadPoints replaces all strokes by the ones encoded in the flat point
// list pts, abandoning any active gesture.  The error is always nil; it is
// part of the Capture interface.
func (p *Pad) LoadPoints(pts []vec.Vec2) error {
	p.mu.Lock()
	p.sampler.Reset()
	p.store.LoadFlat(pts)
	p.invalidate()
	p.state = p.restingState()
	fire := p.contentEvents(true)
	n := p.store.Len()
	p.mu.Unlock()

	Logger().Debug("points loaded", "points", len(pts), "strokes", n)
	fire()
	return nil
}

// IsBlank reports whether no stroke has been committed.
func (p *Pad) IsBlank() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.store.IsBlank()
}

// Resize changes the canvas size.  Strokes are kept.
func (p *Pad) Resize(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.width, p.height = width, height
	p.sampler.SetBounds(float64(width), float64(height))
	p.invalidate()
}

// Size returns the canvas size.
func (p *Pad) Size() image.Point {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return image.Point{X: p.width, Y: p.height}
}

// Style returns the current style.
func (p *Pad) Style() Style {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.style
}

// SetStyle replaces the style.  Unset fields are taken from DefaultStyle.
func (p *Pad) SetStyle(s Style) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.style = s.withDefaults()
	p.invalidate()
}

// SetStrokeColor changes the ink color.  A nil color is ignored.
func (p *Pad) SetStrokeColor(c color.Color) {
	if c == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.style.StrokeColor = c
	p.invalidate()
}

// SetBackgroundColor changes the background color.  A nil color is ignored.
func (p *Pad) SetBackgroundColor(c color.Color) {
	if c == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.style.BackgroundColor = c
	p.invalidate()
}

// SetStrokeWidth changes the line width.  Values which are not positive
// are ignored.
func (p *Pad) SetStrokeWidth(w float64) {
	if !(w > 0) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.style.StrokeWidth = w
	p.invalidate()
}

// Labels returns the texts shown around the drawing area.
func (p *Pad) Labels() Labels {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.labels
}

// SetLabels replaces the texts shown around the drawing area.
func (p *Pad) SetLabels(l Labels) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.labels = l
}

// Preview returns the committed strokes rendered at canvas size.  The image
// is cached until the strokes, the style or the canvas size change, and
// must not be modified by the caller.
func (p *Pad) Preview() *image.NRGBA {
	p.mu.RLock()
	img, gen := p.preview, p.gen
	var snap snapshot
	if img == nil {
		snap = p.snapshot()
	}
	p.mu.RUnlock()
	if img != nil {
		return img
	}

	img = snap.render(image.Point{})

	p.mu.Lock()
	if p.gen == gen {
		p.preview = img
	}
	p.mu.Unlock()
	return img
}

// Image renders the committed strokes as described by opts.  If opts.Crop
// is set and there are no strokes, ErrEmptyBounds is returned.
func (p *Pad) Image(opts ImageOptions) (*image.NRGBA, error) {
	p.mu.RLock()
	snap := p.snapshot()
	p.mu.RUnlock()

	return snap.image(opts)
}

// WriteImage renders the committed strokes and writes them to w, in the
// format given by opts.
func (p *Pad) WriteImage(w io.Writer, opts ImageOptions) error {
	return WriteCapture(w, p, opts)
}

// EncodeImage renders the committed strokes and returns the encoded image.
func (p *Pad) EncodeImage(opts ImageOptions) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := p.WriteImage(buf, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// invalidate discards the cached preview.  The caller must hold the write
// lock.
func (p *Pad) invalidate() {
	p.preview = nil
	p.gen++
}

// restingState returns the state for when no gesture is active.
func (p *Pad) restingState() State {
	if p.store.IsBlank() {
		return Empty
	}
	return HasContent
}

// contentEvents collects the callbacks for a change of the committed
// strokes.  The caller must hold the write lock and call the result after
// releasing it.
func (p *Pad) contentEvents(changed bool) func() {
	if !changed {
		return func() {}
	}
	content := p.onContentChanged
	blank := p.store.IsBlank()
	var blankCB func(bool)
	if blank != p.blank {
		p.blank = blank
		blankCB = p.onBlankChanged
	}
	return func() {
		if content != nil {
			content()
		}
		if blankCB != nil {
			blankCB(blank)
		}
	}
}

// snapshot is a consistent copy of everything needed to render a Pad.
type snapshot struct {
	strokes []Stroke
	style   Style
	canvas  image.Point
}

// snapshot copies the state of p.  The caller must hold the read lock.
func (p *Pad) snapshot() snapshot {
	return snapshot{
		strokes: p.store.Strokes(),
		style:   p.style,
		canvas:  image.Point{X: p.width, Y: p.height},
	}
}

func (s snapshot) render(size image.Point) *image.NRGBA {
	return Render(s.strokes, s.style, s.canvas, size)
}

func (s snapshot) image(opts ImageOptions) (*image.NRGBA, error) {
	if !opts.Crop {
		size := image.Point{}
		if opts.Size != (image.Point{}) {
			size = ScaledSize(s.canvas, opts.Size, opts.KeepAspect)
		}
		return s.render(size), nil
	}

	bounds, err := ComputeBounds(s.strokes, s.style.withDefaults().StrokeWidth, s.canvas)
	if err != nil {
		return nil, err
	}
	img := Crop(s.render(image.Point{}), bounds)
	if opts.Size != (image.Point{}) {
		img = Scale(img, opts.Size, opts.KeepAspect)
	}
	return img, nil
}

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
	"image"
	"io"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Capture is a source of signatures, as used by a widget layer.
type Capture interface {
	Press(pt vec.Vec2)
	Move(pt vec.Vec2)
	Release(pt vec.Vec2)

	Image(opts ImageOptions) (*image.NRGBA, error)
	Points() []vec.Vec2
	LoadPoints(pts []vec.Vec2) error
	IsBlank() bool
}

var (
	_ Capture = (*Pad)(nil)
	_ Capture = (*ImageCapture)(nil)
)

// WriteCapture exports the signature held by c and writes it to w.
func WriteCapture(w io.Writer, c Capture, opts ImageOptions) error {
	img, err := c.Image(opts)
	if err != nil {
		Logger().Warn("signature export failed", "error", err)
		return err
	}
	if err := Encode(w, img, opts.Format); err != nil {
		Logger().Warn("signature export failed", "error", err)
		return err
	}
	Logger().Debug("signature exported",
		"format", opts.Format, "width", img.Rect.Dx(), "height", img.Rect.Dy())
	return nil
}

// ImageCapture is a Capture for a signature which is only available as a
// bitmap.  It has no points and ignores pointer input.  Pixels which differ
// from the top-left pixel are taken to be ink.
type ImageCapture struct {
	img *image.NRGBA
}

// NewImageCapture returns a Capture for a copy of img.
func NewImageCapture(img image.Image) *ImageCapture {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return &ImageCapture{img: dst}
}

// Press does nothing.
func (c *ImageCapture) Press(vec.Vec2) {}

// Move does nothing.
func (c *ImageCapture) Move(vec.Vec2) {}

// Release does nothing.
func (c *ImageCapture) Release(vec.Vec2) {}

// Points returns nil.
func (c *ImageCapture) Points() []vec.Vec2 { return nil }

// LoadPoints returns ErrUnsupported.
func (c *ImageCapture) LoadPoints([]vec.Vec2) error { return ErrUnsupported }

// IsBlank reports whether the image contains no ink.
func (c *ImageCapture) IsBlank() bool {
	_, ok := c.inkBounds()
	return !ok
}

// Image returns the bitmap, cropped and scaled as requested.  Cropping a
// blank image fails with ErrEmptyBounds.
func (c *ImageCapture) Image(opts ImageOptions) (*image.NRGBA, error) {
	r := rect.Rect{URx: float64(c.img.Rect.Dx()), URy: float64(c.img.Rect.Dy())}
	if opts.Crop {
		var ok bool
		r, ok = c.inkBounds()
		if !ok {
			return nil, ErrEmptyBounds
		}
	}
	img := Crop(c.img, r)
	if opts.Size != (image.Point{}) {
		img = Scale(img, opts.Size, opts.KeepAspect)
	}
	return img, nil
}

// inkBounds returns the bounding box of all pixels which differ from the
// top-left one.
func (c *ImageCapture) inkBounds() (rect.Rect, bool) {
	img := c.img
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return rect.Rect{}, false
	}
	bg := img.Pix[0:4]

	xMin, yMin, xMax, yMax := w, h, -1, -1
	for y := range h {
		row := img.Pix[y*img.Stride : y*img.Stride+4*w]
		for x := range w {
			px := row[4*x : 4*x+4]
			if px[0] == bg[0] && px[1] == bg[1] && px[2] == bg[2] && px[3] == bg[3] {
				continue
			}
			xMin, xMax = min(xMin, x), max(xMax, x)
			yMin, yMax = min(yMin, y), max(yMax, y)
		}
	}
	if xMax < 0 {
		return rect.Rect{}, false
	}
	return rect.Rect{
		LLx: float64(xMin), LLy: float64(yMin),
		URx: float64(xMax + 1), URy: float64(yMax + 1),
	}, true
}

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

// Package sigpad captures handwritten signatures as point strokes and turns
// them into images.
//
// Pointer events are fed into a [Pad], which samples each gesture into a
// [Stroke] and keeps the committed strokes in a [Store].  The strokes can be
// exported as a flat point list (strokes separated by a (0,0) entry), or
// rendered with anti-aliased round-capped lines and encoded as PNG, JPEG or
// BMP, optionally cropped to the ink and scaled.  A [Loop] serialises all
// events of a Pad on one goroutine and moves rendering off it.
package sigpad

//go:generate go run ./testcases/export

import (
	"image"
	"image/color"
	"sync"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/sigpad/raster"
)

var rasterizers = sync.Pool{
	New: func() any { return raster.NewRasterizer(rect.Rect{}) },
}

// Render paints the strokes onto a new image.  The strokes are given in
// canvas coordinates; if size is the zero point, the image has the canvas
// size, otherwise the drawing is stretched to fill size, line width
// included.
//
// The background is filled with the background color first, then all
// strokes are drawn as polylines with round caps and joins.  A stroke whose
// points all coincide is drawn as a dot of diameter StrokeWidth.  Where
// strokes overlap, ink is applied only once.
//
// Render is deterministic and safe for concurrent use.
func Render(strokes []Stroke, style Style, canvas, size image.Point) *image.NRGBA {
	if size == (image.Point{}) {
		size = canvas
	}
	if size.X <= 0 || size.Y <= 0 {
		return image.NewNRGBA(image.Rectangle{})
	}
	style = style.withDefaults()

	img := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	bg := color.NRGBAModel.Convert(style.BackgroundColor).(color.NRGBA)
	fillNRGBA(img, bg)

	r := rasterizers.Get().(*raster.Rasterizer)
	defer rasterizers.Put(r)

	r.Reset(rect.Rect{URx: float64(size.X), URy: float64(size.Y)})
	if canvas.X > 0 && canvas.Y > 0 && canvas != size {
		r.CTM = matrix.Matrix{
			float64(size.X) / float64(canvas.X), 0,
			0, float64(size.Y) / float64(canvas.Y),
			0, 0,
		}
	}
	r.Width = style.StrokeWidth
	r.Cap = graphics.LineCapRound
	r.Join = graphics.LineJoinRound

	ink := color.NRGBAModel.Convert(style.StrokeColor).(color.NRGBA)
	r.Stroke(strokePath(strokes), func(y, xMin int, coverage []float32) {
		row := img.Pix[y*img.Stride+4*xMin:]
		for i, c := range coverage {
			blendNRGBA(row[4*i:4*i+4], ink, c)
		}
	})

	Logger().Debug("rendered signature",
		"strokes", len(strokes), "width", size.X, "height", size.Y)
	return img
}

// strokePath returns a path with one open subpath per stroke.  Single-point
// strokes become a zero-length line, which the rasterizer draws as a dot.
func strokePath(strokes []Stroke) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [1]vec.Vec2
		for _, s := range strokes {
			if len(s) == 0 {
				continue
			}
			buf[0] = s[0]
			if !yield(path.CmdMoveTo, buf[:]) {
				return
			}
			rest := s[1:]
			if len(rest) == 0 {
				rest = s[:1]
			}
			for _, p := range rest {
				buf[0] = p
				if !yield(path.CmdLineTo, buf[:]) {
					return
				}
			}
		}
	}
}

func fillNRGBA(img *image.NRGBA, c color.NRGBA) {
	if len(img.Pix) == 0 {
		return
	}
	img.Pix[0], img.Pix[1], img.Pix[2], img.Pix[3] = c.R, c.G, c.B, c.A
	for filled := 4; filled < len(img.Pix); filled *= 2 {
		copy(img.Pix[filled:], img.Pix[:filled])
	}
}

// blendNRGBA composites ink over the non-premultiplied pixel px, using
// coverage as an additional alpha factor.
func blendNRGBA(px []uint8, ink color.NRGBA, coverage float32) {
	a := float64(ink.A) / 255 * float64(coverage)
	if a <= 0 {
		return
	}
	dstA := float64(px[3]) / 255
	outA := a + dstA*(1-a)
	if outA <= 0 {
		return
	}
	k := dstA * (1 - a)
	px[0] = uint8((float64(ink.R)*a+float64(px[0])*k)/outA + 0.5)
	px[1] = uint8((float64(ink.G)*a+float64(px[1])*k)/outA + 0.5)
	px[2] = uint8((float64(ink.B)*a+float64(px[2])*k)/outA + 0.5)
	px[3] = uint8(outA*255 + 0.5)
}

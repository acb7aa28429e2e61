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
	"math"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/rect"
)

// ComputeBounds returns the rectangle covered by the ink of the strokes:
// the bounding box of all points, grown by half the stroke width on every
// side and clamped to the canvas.  Since y grows downwards on the canvas,
// LLy is the top and URy the bottom edge of the result.
//
// If there are no points, ErrEmptyBounds is returned.
func ComputeBounds(strokes []Stroke, strokeWidth float64, canvas image.Point) (rect.Rect, error) {
	first := true
	var b rect.Rect
	for _, s := range strokes {
		for _, p := range s {
			if first {
				b = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
				first = false
				continue
			}
			b.LLx = min(b.LLx, p.X)
			b.LLy = min(b.LLy, p.Y)
			b.URx = max(b.URx, p.X)
			b.URy = max(b.URy, p.Y)
		}
	}
	if first {
		return rect.Rect{}, ErrEmptyBounds
	}

	d := strokeWidth / 2
	w, h := float64(canvas.X), float64(canvas.Y)
	return rect.Rect{
		LLx: clamp(b.LLx-d, 0, w),
		LLy: clamp(b.LLy-d, 0, h),
		URx: clamp(b.URx+d, 0, w),
		URy: clamp(b.URy+d, 0, h),
	}, nil
}

func clamp(x, lo, hi float64) float64 {
	return max(lo, min(x, hi))
}

// Crop copies the pixels inside r to a new image with origin (0,0).  The
// rectangle is widened to whole pixels and clipped to the image.
func Crop(img *image.NRGBA, r rect.Rect) *image.NRGBA {
	pr := image.Rect(
		int(math.Floor(r.LLx)), int(math.Floor(r.LLy)),
		int(math.Ceil(r.URx)), int(math.Ceil(r.URy)),
	).Add(img.Rect.Min).Intersect(img.Rect)

	dst := image.NewNRGBA(image.Rect(0, 0, pr.Dx(), pr.Dy()))
	draw.Draw(dst, dst.Rect, img, pr.Min, draw.Src)
	return dst
}

// ScaledSize returns the size of an image of size src after scaling it to
// target.  With keepAspect, a uniform factor is used, chosen so that the
// result fits into target; otherwise the result is target.  A zero
// component of target leaves that dimension unconstrained.  Each dimension
// of the result is at least one pixel.
func ScaledSize(src, target image.Point, keepAspect bool) image.Point {
	if src.X <= 0 || src.Y <= 0 {
		return target
	}
	if !keepAspect {
		if target.X <= 0 {
			target.X = src.X
		}
		if target.Y <= 0 {
			target.Y = src.Y
		}
		return target
	}

	sx := float64(target.X) / float64(src.X)
	sy := float64(target.Y) / float64(src.Y)
	var s float64
	switch {
	case target.X <= 0 && target.Y <= 0:
		return src
	case target.X <= 0:
		s = sy
	case target.Y <= 0:
		s = sx
	default:
		s = min(sx, sy)
	}
	return image.Point{
		X: max(int(math.Round(float64(src.X)*s)), 1),
		Y: max(int(math.Round(float64(src.Y)*s)), 1),
	}
}

// Scale resamples img to the size given by ScaledSize, using Catmull-Rom
// interpolation.  If the size does not change, or target is the zero point,
// an unscaled copy is returned.  An image without pixels stays empty, so
// that the encoder rejects it.
func Scale(img *image.NRGBA, target image.Point, keepAspect bool) *image.NRGBA {
	src := img.Rect.Size()
	if src.X <= 0 || src.Y <= 0 {
		return image.NewNRGBA(image.Rectangle{})
	}
	size := src
	if target != (image.Point{}) {
		size = ScaledSize(src, target, keepAspect)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, max(size.X, 0), max(size.Y, 0)))
	if size == src {
		draw.Draw(dst, dst.Rect, img, img.Rect.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Rect, img, img.Rect, draw.Src, nil)
	return dst
}

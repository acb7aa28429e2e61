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

package testcases

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// TestCase is a signature, given as the strokes a pad would have committed.
type TestCase struct {
	Name        string       // lowercase a-z and _ only
	Width       int          // canvas width in pixels
	Height      int          // canvas height in pixels
	StrokeWidth float64      // line width in canvas units
	Strokes     [][]vec.Vec2 // committed strokes, in drawing order
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// line samples n+1 evenly spaced points from (x1,y1) to (x2,y2).
func line(x1, y1, x2, y2 float64, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, n+1)
	for i := range pts {
		t := float64(i) / float64(n)
		pts[i] = pt(x1+t*(x2-x1), y1+t*(y2-y1))
	}
	return pts
}

// wave samples a sine wave from x1 to x2 around the line y.
func wave(x1, x2, y, amplitude, periods float64, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, n+1)
	for i := range pts {
		t := float64(i) / float64(n)
		pts[i] = pt(x1+t*(x2-x1), y+amplitude*math.Sin(2*math.Pi*periods*t))
	}
	return pts
}

// loop samples a full circle, ending where it started.
func loop(cx, cy, r float64, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, n+1)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = pt(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	return pts
}

// cursive samples a row of overlapping loops, similar to handwriting.
func cursive(x1, x2, y, r float64, loops, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, n+1)
	for i := range pts {
		t := float64(i) / float64(n)
		a := 2 * math.Pi * float64(loops) * t
		pts[i] = pt(x1+t*(x2-x1)+r*math.Sin(a), y-r*math.Cos(a)+r)
	}
	return pts
}

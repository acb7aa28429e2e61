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

package raster

import (
	"math"
	"math/rand/v2"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// polylines builds a path with one open subpath per point list.
func polylines(lines ...[]vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for _, pts := range lines {
			if len(pts) == 0 {
				continue
			}
			if !yield(path.CmdMoveTo, []vec.Vec2{pts[0]}) {
				return
			}
			if len(pts) == 1 {
				if !yield(path.CmdLineTo, []vec.Vec2{pts[0]}) {
					return
				}
				continue
			}
			for _, p := range pts[1:] {
				if !yield(path.CmdLineTo, []vec.Vec2{p}) {
					return
				}
			}
		}
	}
}

// coverageGrid strokes p and returns the coverage as a w×h grid.
func coverageGrid(r *Rasterizer, p path.Path, w, h int) [][]float32 {
	grid := make([][]float32, h)
	for y := range grid {
		grid[y] = make([]float32, w)
	}
	r.Stroke(p, func(y, xMin int, coverage []float32) {
		copy(grid[y][xMin:], coverage)
	})
	return grid
}

func total(grid [][]float32) float64 {
	var sum float64
	for _, row := range grid {
		for _, c := range row {
			sum += float64(c)
		}
	}
	return sum
}

func TestButtCapCoverage(t *testing.T) {
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}
	r := NewRasterizer(clip)
	r.Width = 2

	grid := coverageGrid(r, polylines([]vec.Vec2{{X: 0, Y: 5}, {X: 10, Y: 5}}), 10, 10)

	const epsilon = 1e-6
	for y := range 10 {
		expected := float32(0)
		if y == 4 || y == 5 {
			expected = 1
		}
		for x := range 10 {
			if math.Abs(float64(grid[y][x]-expected)) > epsilon {
				t.Errorf("pixel (%d,%d): expected coverage %.4f, got %.4f", x, y, expected, grid[y][x])
			}
		}
	}
}

func TestRoundDotArea(t *testing.T) {
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 40, URy: 40}
	r := NewRasterizer(clip)
	r.Width = 10
	r.Cap = graphics.LineCapRound
	r.Flatness = 0.01

	dot := polylines([]vec.Vec2{{X: 20, Y: 20}})
	got := total(coverageGrid(r, dot, 40, 40))
	want := math.Pi * 5 * 5
	if math.Abs(got-want) > 0.5 {
		t.Errorf("dot area: expected %.2f, got %.2f", want, got)
	}
}

func TestDegenerateSubpaths(t *testing.T) {
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 20, URy: 20}

	loneMoveTo := func(yield func(path.Command, []vec.Vec2) bool) {
		yield(path.CmdMoveTo, []vec.Vec2{{X: 10, Y: 10}})
	}
	dot := polylines([]vec.Vec2{{X: 10, Y: 10}})

	cases := []struct {
		name  string
		p     path.Path
		cap   graphics.LineCapStyle
		paint bool
	}{
		{"move_only_round", loneMoveTo, graphics.LineCapRound, false},
		{"dot_round", dot, graphics.LineCapRound, true},
		{"dot_butt", dot, graphics.LineCapButt, false},
		{"dot_square", dot, graphics.LineCapSquare, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRasterizer(clip)
			r.Width = 4
			r.Cap = tc.cap
			painted := total(coverageGrid(r, tc.p, 20, 20)) > 0
			if painted != tc.paint {
				t.Errorf("painted=%t, expected %t", painted, tc.paint)
			}
		})
	}
}

// TestApproachesAgree checks that the 2D buffer and the active edge list
// strategies produce the same coverage.
func TestApproachesAgree(t *testing.T) {
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 80, URy: 60}
	strokes := polylines(
		[]vec.Vec2{{X: 5, Y: 50}, {X: 20, Y: 10}, {X: 35, Y: 50}, {X: 50, Y: 10}, {X: 75, Y: 30}},
		[]vec.Vec2{{X: 10, Y: 30}, {X: 70, Y: 32}},
		[]vec.Vec2{{X: 40, Y: 40}},
		[]vec.Vec2{{X: -10, Y: 5}, {X: 30, Y: 5}},
	)

	render := func(threshold int) [][]float32 {
		r := NewRasterizer(clip)
		r.Width = 3.5
		r.Cap = graphics.LineCapRound
		r.Join = graphics.LineJoinRound
		r.smallPathThreshold = threshold
		return coverageGrid(r, strokes, 80, 60)
	}
	a := render(math.MaxInt)
	b := render(0)

	const epsilon = 1e-4
	for y := range a {
		for x := range a[y] {
			if math.Abs(float64(a[y][x]-b[y][x])) > epsilon {
				t.Fatalf("pixel (%d,%d): approach A %.5f, approach B %.5f", x, y, a[y][x], b[y][x])
			}
		}
	}
	if total(a) == 0 {
		t.Error("nothing painted")
	}
}

func TestCrossingStrokes(t *testing.T) {
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 30, URy: 30}
	r := NewRasterizer(clip)
	r.Width = 4
	r.Cap = graphics.LineCapRound
	r.Join = graphics.LineJoinRound

	grid := coverageGrid(r, polylines(
		[]vec.Vec2{{X: 3, Y: 3}, {X: 27, Y: 27}},
		[]vec.Vec2{{X: 27, Y: 3}, {X: 3, Y: 27}},
	), 30, 30)

	for y := range grid {
		for x, c := range grid[y] {
			if c > 1 {
				t.Fatalf("pixel (%d,%d): coverage %.5f exceeds 1", x, y, c)
			}
		}
	}
	// the strokes cross at (15,15)
	if grid[14][14] != 1 || grid[15][15] != 1 {
		t.Errorf("crossing: expected full coverage, got %.5f and %.5f", grid[14][14], grid[15][15])
	}
}

func TestDotOnStroke(t *testing.T) {
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 30, URy: 30}
	r := NewRasterizer(clip)
	r.Width = 6
	r.Cap = graphics.LineCapRound
	r.Join = graphics.LineJoinRound

	grid := coverageGrid(r, polylines(
		[]vec.Vec2{{X: 5, Y: 15}, {X: 25, Y: 15}},
		[]vec.Vec2{{X: 15, Y: 15}},
	), 30, 30)
	for y := 13; y < 17; y++ {
		for x := 13; x < 17; x++ {
			if grid[y][x] != 1 {
				t.Errorf("pixel (%d,%d): expected full coverage, got %.5f", x, y, grid[y][x])
			}
		}
	}
}

func TestCTMScalesWidth(t *testing.T) {
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 40, URy: 40}
	r := NewRasterizer(clip)
	r.CTM = matrix.Matrix{2, 0, 0, 2, 0, 0}
	r.Width = 4
	r.Cap = graphics.LineCapRound
	r.Flatness = 0.01

	// radius 2 in canvas space is radius 4 in device space
	got := total(coverageGrid(r, polylines([]vec.Vec2{{X: 10, Y: 10}}), 40, 40))
	want := math.Pi * 4 * 4
	if math.Abs(got-want) > 0.5 {
		t.Errorf("scaled dot area: expected %.2f, got %.2f", want, got)
	}
}

func TestClipBounds(t *testing.T) {
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 16, URy: 16}
	r := NewRasterizer(clip)
	r.Width = 6
	r.Cap = graphics.LineCapRound

	p := polylines(
		[]vec.Vec2{{X: -20, Y: -20}, {X: 40, Y: 40}},
		[]vec.Vec2{{X: 100, Y: 100}},
	)
	r.Stroke(p, func(y, xMin int, coverage []float32) {
		if y < 0 || y >= 16 || xMin < 0 || xMin+len(coverage) > 16 {
			t.Errorf("row %d [%d,%d) outside clip", y, xMin, xMin+len(coverage))
		}
		for _, c := range coverage {
			if c < 0 || c > 1 {
				t.Errorf("coverage %f out of range", c)
			}
		}
	})
}

func TestReset(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	r.Width = 7
	r.Cap = graphics.LineCapRound
	r.CTM = matrix.Matrix{3, 0, 0, 3, 0, 0}

	r.Reset(rect.Rect{URx: 20, URy: 20})
	if r.Width != 1 || r.Cap != graphics.LineCapButt || r.CTM != matrix.Identity {
		t.Errorf("Reset did not restore defaults: width=%g cap=%v", r.Width, r.Cap)
	}
	if r.Clip.URx != 20 {
		t.Errorf("Reset did not set clip: %v", r.Clip)
	}
}

// centreLineCoverage strokes lines with a round pen of the given width and
// returns the lowest coverage found at points along the centre lines.
func centreLineCoverage(t *testing.T, width float64, lines ...[]vec.Vec2) float32 {
	t.Helper()
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 200, URy: 200}
	r := NewRasterizer(clip)
	r.Width = width
	r.Cap = graphics.LineCapRound
	r.Join = graphics.LineJoinRound
	grid := coverageGrid(r, polylines(lines...), 200, 200)

	lowest := float32(1)
	for _, pts := range lines {
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			for k := range 17 {
				q := a.Add(b.Sub(a).Mul(float64(k) / 16))
				c := grid[int(q.Y)][int(q.X)]
				if c < lowest {
					lowest = c
					t.Logf("coverage %.5f at (%.3f,%.3f)", c, q.X, q.Y)
				}
			}
		}
	}
	return lowest
}

func TestHairpinTurn(t *testing.T) {
	hairpin := []vec.Vec2{{X: 77.4993, Y: 90.4968}, {X: 78.4117, Y: 89.9635}, {X: 66.4958, Y: 85.2982}}
	if c := centreLineCoverage(t, 6, hairpin); c < 1-1e-4 {
		t.Errorf("hairpin: centre line coverage %.5f, expected 1", c)
	}
}

// TestSharpTurns strokes random walks with short segments and near
// reversals, like jittery pen input.  Every pixel containing a point of
// the centre line lies within half the width of the line, so it must be
// fully covered.
func TestSharpTurns(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for n := range 300 {
		pts := make([]vec.Vec2, 2+rng.IntN(10))
		pts[0] = vec.Vec2{X: 40 + 120*rng.Float64(), Y: 40 + 120*rng.Float64()}
		angle := 2 * math.Pi * rng.Float64()
		for i := 1; i < len(pts); i++ {
			angle += math.Pi + (rng.Float64()-0.5)*math.Pi/2
			step := 0.2 + 12*rng.Float64()
			next := pts[i-1].Add(vec.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(step))
			next.X = min(max(next.X, 10), 190)
			next.Y = min(max(next.Y, 10), 190)
			pts[i] = next
		}
		if c := centreLineCoverage(t, 6, pts); c < 1-1e-4 {
			t.Fatalf("walk %d %v: centre line coverage %.5f, expected 1", n, pts, c)
		}
	}
}

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

// Package raster turns ink polylines into anti-aliased pixel coverage.
//
// A [Rasterizer] strokes a path made of straight segments: every subpath is
// expanded into an outline polygon (offset sides, caps and joins), and all
// outlines are filled together with the nonzero winding rule. Coverage is
// reported row by row, which lets the caller composite directly into any
// pixel format.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge represents a line segment in device coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0), precomputed for x-intercept calculation
}

// Rasterizer converts ink paths to pixel coverage values: the fraction of
// each pixel's area covered by the stroked path, ranging from 0 (outside)
// to 1 (inside). Create one instance and reuse it for many paths. Internal
// buffers grow as needed but never shrink.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM transforms from canvas space to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip bounds output to this device-coordinate rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Flatness controls how closely round caps and joins follow the
	// circle, in device pixels. Must be positive.
	Flatness float64

	// Width sets stroke thickness in canvas units. Must be positive.
	Width float64

	// Cap sets the style for stroke endpoints (butt, round, or square).
	Cap graphics.LineCapStyle

	// Join sets the style for stroke corners (miter, round, or bevel).
	Join graphics.LineJoinStyle

	// MiterLimit caps miter join length. Must be at least 1.0.
	MiterLimit float64

	// smallPathThreshold is the maximum bounding box area (in pixels) for
	// using 2D buffers (approach A). Outlines with larger bounding boxes use
	// the active edge list (approach B).
	smallPathThreshold int

	// Internal buffers (reused across calls)
	cover         []float32  // cover change per pixel; reused as output
	area          []float32  // area within pixel
	edges         []edge     // edge list for current outline (device coordinates)
	activeIdx     []int      // indices of active edges
	rowXMin       []int      // per-scanline minimum x with edge contribution
	rowXMax       []int      // per-scanline maximum x with edge contribution
	stroke        []vec.Vec2 // outline vertices (all subpaths contiguous)
	strokeOffsets []int      // start index of each outline polygon in stroke[]
	crossings     []float64  // y values where an edge crosses pixel boundaries

	// Flattening buffers
	segs             []strokeSegment // all segments from all subpaths, contiguous
	segsOffsets      []int           // start index of each subpath in segs
	subpathClosed    []bool          // whether each subpath is closed
	degeneratePoints []vec.Vec2      // subpaths without orientation (taps)

	// Edge collection state
	edgeBBoxFirst bool
	edgeDevXMin   float64
	edgeDevXMax   float64
	edgeDevYMin   float64
	edgeDevYMax   float64
}

// NewRasterizer returns a Rasterizer with the given clip rectangle and
// PDF default values for the other parameters.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:        matrix.Identity,
		Clip:       clip,
		Flatness:   defaultFlatness,
		Width:      1.0,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: defaultMiterLimit,

		smallPathThreshold: smallPathThreshold,
	}
}

// Reset restores the default parameters and sets a new clip rectangle,
// keeping the capacity of all internal buffers.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1.0
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit

	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.rowXMin = r.rowXMin[:0]
	r.rowXMax = r.rowXMax[:0]
	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]
	r.crossings = r.crossings[:0]
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]
	r.subpathClosed = r.subpathClosed[:0]
	r.degeneratePoints = r.degeneratePoints[:0]
}

// transformLinear applies only the 2×2 linear part of CTM to a vector.
func (r *Rasterizer) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// addEdge adds an edge given in canvas coordinates, transforming it to
// device space.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	dx0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	dy0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	dx1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	dy1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	// horizontal edges do not contribute
	dy := dy1 - dy0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	r.edges = append(r.edges, edge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
	})

	if r.edgeBBoxFirst {
		r.edgeDevXMin = min(dx0, dx1)
		r.edgeDevXMax = max(dx0, dx1)
		r.edgeDevYMin = min(dy0, dy1)
		r.edgeDevYMax = max(dy0, dy1)
		r.edgeBBoxFirst = false
	} else {
		r.edgeDevXMin = min(r.edgeDevXMin, dx0, dx1)
		r.edgeDevXMax = max(r.edgeDevXMax, dx0, dx1)
		r.edgeDevYMin = min(r.edgeDevYMin, dy0, dy1)
		r.edgeDevYMax = max(r.edgeDevYMax, dy0, dy1)
	}
}

// clampedBBox returns the integer bounding box of the collected edges,
// clamped to the clip rectangle.
func (r *Rasterizer) clampedBBox() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.edgeDevXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.edgeDevXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.edgeDevYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.edgeDevYMax))+1, int(r.Clip.URy))

	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// Coverage accumulation model:
//
// For each pixel, we track two values:
//   cover: signed vertical extent of edges crossing this pixel column
//   area:  horizontal position weighting (how far right the crossing is)
//
// An edge crossing a pixel contributes:
//   cover = sign * dy   (where sign is +1 for downward, -1 for upward)
//   area  = cover * (1 - xFrac)
//
// Final coverage is computed by integrateScanline:
//   pixel_coverage = accumulated_cover + area[i]
//   accumulated_cover += cover[i]

// accumulateEdge adds a single edge's contribution for scanline y to the
// cover and area buffers, which are indexed by x - bboxXMin. Edges spanning
// several pixel columns are split at the column boundaries.
func (r *Rasterizer) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xAtYTop := e.x0 + e.dxdy*(yTop-e.y0)
	xAtYBot := e.x0 + e.dxdy*(yBot-e.y0)
	xLeft, xRight := min(xAtYTop, xAtYBot), max(xAtYTop, xAtYBot)
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	// entirely left of the bbox: counts as full cover for the first pixel
	if pixRight < bboxXMin {
		coverVal := sign * float32(yBot-yTop)
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		r.accumulateEdgeInColumn(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	dydx := 1 / e.dxdy
	r.crossings = append(r.crossings[:0], yTop, yBot)
	for x := pixLeft + 1; x <= pixRight; x++ {
		yAtX := e.y0 + dydx*(float64(x)-e.x0)
		if yAtX > yTop && yAtX < yBot {
			r.crossings = append(r.crossings, yAtX)
		}
	}
	slices.Sort(r.crossings)

	for i := range len(r.crossings) - 1 {
		y0 := r.crossings[i]
		y1 := r.crossings[i+1]
		if y1 <= y0 {
			continue
		}
		coverVal := sign * float32(y1-y0)

		yMid := (y0 + y1) / 2
		xMid := e.x0 + e.dxdy*(yMid-e.y0)
		pix := int(math.Floor(xMid))
		areaVal := coverVal * float32(1-(xMid-float64(pix)))

		if pix < bboxXMin {
			cover[0] += coverVal
			area[0] += coverVal
		} else if pix < bboxXMax {
			idx := pix - bboxXMin
			cover[idx] += coverVal
			area[idx] += areaVal
		}
	}
}

// accumulateEdgeInColumn handles an edge segment that falls within a single
// pixel column.
func (r *Rasterizer) accumulateEdgeInColumn(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	coverVal := sign * float32(yBot-yTop)

	if pix < bboxXMin {
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pix >= bboxXMax {
		return
	}

	yMid := (yTop + yBot) / 2
	xMid := e.x0 + e.dxdy*(yMid-e.y0)
	areaVal := coverVal * float32(1-(xMid-float64(pix)))

	idx := pix - bboxXMin
	cover[idx] += coverVal
	area[idx] += areaVal
}

// integrateScanline converts accumulated cover/area to final coverage
// values using the nonzero winding rule. The cover slice is modified in
// place.
func integrateScanline(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the non-zero portion of coverage and its starting
// offset, or nil if coverage is entirely zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// fill rasterises the collected edges, choosing the buffer strategy from
// the size of the bounding box.
func (r *Rasterizer) fill(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmallPath(xMin, xMax, yMin, yMax, emit)
	} else {
		r.fillLargePath(xMin, xMax, yMin, yMax, emit)
	}
}

// fillSmallPath rasterises using 2D buffers (approach A).
func (r *Rasterizer) fillSmallPath(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)

	r.rowXMin = slices.Grow(r.rowXMin[:0], height)[:height]
	r.rowXMax = slices.Grow(r.rowXMax[:0], height)[:height]
	for i := range r.rowXMin {
		r.rowXMin[i] = width
		r.rowXMax[i] = -1
	}

	for i := range r.edges {
		e := &r.edges[i]

		edgeYMin := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		edgeYMax := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)

		for y := edgeYMin; y < edgeYMax; y++ {
			row := y - yMin
			rowOffset := row * width
			r.accumulateEdge(e, y, r.cover[rowOffset:rowOffset+width], r.area[rowOffset:rowOffset+width], xMin, xMax)

			yTop := max(float64(y), min(e.y0, e.y1))
			yBot := min(float64(y+1), max(e.y0, e.y1))
			xMid := e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)
			xIdx := min(max(int(math.Floor(xMid)), xMin), xMax-1) - xMin
			r.rowXMin[row] = min(r.rowXMin[row], xIdx)
			r.rowXMax[row] = max(r.rowXMax[row], xIdx)
		}
	}

	for row := range height {
		if r.rowXMax[row] < 0 {
			continue
		}
		rowOffset := row * width
		coverage := r.cover[rowOffset : rowOffset+width]
		integrateScanline(coverage, r.area[rowOffset:rowOffset+width])
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// fillLargePath rasterises using 1D buffers and an active edge list
// (approach B).
func (r *Rasterizer) fillLargePath(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin

	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	nextEdge := 0

	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		yfNext := float64(y + 1)

		for nextEdge < len(r.edges) && min(r.edges[nextEdge].y0, r.edges[nextEdge].y1) < yfNext {
			r.activeIdx = append(r.activeIdx, nextEdge)
			nextEdge++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false

		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}

			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			if min(yfNext, max(e.y0, e.y1)) > max(yf, min(e.y0, e.y1)) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrateScanline(r.cover, r.area)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// Default values for rasterizer parameters.
const (
	// defaultFlatness is the default arc tolerance in device pixels.
	// 0.25 is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit matches PDF/PostScript.
	defaultMiterLimit = 10.0
)

// Numerical tolerances for the rasterizer.
const (
	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the maximum bounding box area (in pixels) for
	// using 2D buffers.
	smallPathThreshold = 65536

	// zeroLengthThreshold is the minimum length for a stroke segment.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is used to detect nearly collinear segments
	// where no join is needed.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects a path doubling back on itself.
	// cos(179.43°) ≈ -0.9999
	cuspCosineThreshold = -0.9999
)

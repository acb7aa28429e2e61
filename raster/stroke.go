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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment represents a line segment in canvas coordinates
type strokeSegment struct {
	A, B vec.Vec2 // endpoints
	T    vec.Vec2 // unit tangent (A→B direction)
	N    vec.Vec2 // unit normal (90° CCW from T)
	L    float64  // length
}

// Stroke renders the path as a stroked outline using Width, Cap, Join and
// MiterLimit. Only MoveTo, LineTo and Close are interpreted; curve segments
// are ignored. The emit callback receives coverage row-by-row; its slice
// argument is valid only during the call.
//
// A subpath whose points all coincide (for example MoveTo followed by a
// LineTo to the same point) has no direction. With round caps it is drawn as
// a disc of diameter Width, otherwise it is dropped.
//
// With round caps and round joins, every segment is drawn as a rectangle and
// every vertex as a disc. All pieces are clockwise, so their union is
// painted exactly once however sharply the path turns.
func (r *Rasterizer) Stroke(p path.Path, emit func(y, xMin int, coverage []float32)) {
	r.collectSegments(p)
	if len(r.segsOffsets) == 0 && len(r.degeneratePoints) == 0 {
		return
	}

	// All outlines go into one buffer, so that overlapping strokes are
	// painted once by the nonzero winding rule.
	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]

	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.degeneratePoints {
			// clockwise, like the outlines built by strokeSubpath, so that
			// a dot on top of a stroke does not cancel it out
			startOffset := len(r.stroke)
			r.addArc(pt, r.Width/2, vec.Vec2{X: 1, Y: 0}, -2*math.Pi, true)
			r.strokeOffsets = append(r.strokeOffsets, startOffset)
		}
	}

	roundPen := r.Cap == graphics.LineCapRound && r.Join == graphics.LineJoinRound
	for i := range r.segsOffsets {
		if roundPen {
			r.strokePieces(r.subpathSegments(i), r.subpathClosed[i])
			continue
		}
		startOffset := len(r.stroke)
		r.strokeSubpath(r.subpathSegments(i), r.subpathClosed[i])
		if len(r.stroke)-startOffset >= 3 {
			r.strokeOffsets = append(r.strokeOffsets, startOffset)
		} else {
			r.stroke = r.stroke[:startOffset]
		}
	}

	r.fillStrokeOutlines(emit)
}

// strokePieces adds one rectangle per segment and one disc per vertex of a
// subpath to r.stroke.  This is the outline of a round pen for any path,
// including sharp turns next to short segments, where a single offset
// outline would self-intersect with the wrong winding.
func (r *Rasterizer) strokePieces(segs []strokeSegment, closed bool) {
	d := r.Width / 2
	if len(segs) == 0 || d <= 0 {
		return
	}

	for i := range segs {
		s := &segs[i]
		off := s.N.Mul(d)
		r.strokeOffsets = append(r.strokeOffsets, len(r.stroke))
		r.stroke = append(r.stroke, s.A.Add(off), s.B.Add(off), s.B.Sub(off), s.A.Sub(off))
	}

	disc := func(center vec.Vec2) {
		r.strokeOffsets = append(r.strokeOffsets, len(r.stroke))
		r.addArc(center, d, vec.Vec2{X: 1, Y: 0}, -2*math.Pi, true)
	}
	for i := range segs {
		disc(segs[i].A)
	}
	if !closed {
		disc(segs[len(segs)-1].B)
	}
}

// subpathSegments returns the segments for subpath i as a slice into segs.
func (r *Rasterizer) subpathSegments(i int) []strokeSegment {
	start := r.segsOffsets[i]
	end := len(r.segs)
	if i+1 < len(r.segsOffsets) {
		end = r.segsOffsets[i+1]
	}
	return r.segs[start:end]
}

// collectSegments splits the path into subpaths of non-degenerate line
// segments.  Results are stored in the following fields:
//   - r.segs: all segments from all subpaths, contiguous
//   - r.segsOffsets: start index of each subpath in segs
//   - r.subpathClosed: whether each subpath is closed
//   - r.degeneratePoints: subpaths without orientation
func (r *Rasterizer) collectSegments(p path.Path) {
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]
	r.subpathClosed = r.subpathClosed[:0]
	r.degeneratePoints = r.degeneratePoints[:0]

	var currentPt vec.Vec2
	var subpathStartPt vec.Vec2
	subpathStartIdx := 0
	inSubpath := false
	sawLineTo := false

	endSubpath := func(closed bool) {
		if len(r.segs) == subpathStartIdx {
			r.degeneratePoints = append(r.degeneratePoints, subpathStartPt)
		} else {
			r.segsOffsets = append(r.segsOffsets, subpathStartIdx)
			r.subpathClosed = append(r.subpathClosed, closed)
		}
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			// a lone MoveTo does not paint anything
			if inSubpath && (len(r.segs) > subpathStartIdx || sawLineTo) {
				endSubpath(false)
			}
			currentPt = pts[0]
			subpathStartPt = currentPt
			subpathStartIdx = len(r.segs)
			inSubpath = true
			sawLineTo = false

		case path.CmdLineTo:
			if !inSubpath {
				continue
			}
			sawLineTo = true
			r.addStrokeSegment(currentPt, pts[0])
			currentPt = pts[0]

		case path.CmdClose:
			if !inSubpath {
				continue
			}
			if currentPt != subpathStartPt {
				r.addStrokeSegment(currentPt, subpathStartPt)
			}
			endSubpath(true)
			currentPt = subpathStartPt
			subpathStartIdx = len(r.segs)
			inSubpath = false
			sawLineTo = false
		}
	}

	if inSubpath && (len(r.segs) > subpathStartIdx || sawLineTo) {
		endSubpath(false)
	}
}

// addStrokeSegment appends a line segment, skipping zero-length ones.
func (r *Rasterizer) addStrokeSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / length)         // unit tangent
	n := vec.Vec2{X: -t.Y, Y: t.X} // unit normal (90° CCW)
	r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: n, L: length})
}

// strokeSubpath builds the stroke outline for a single subpath into r.stroke.
// The outline is a closed polygon: forward pass on the +N side, then
// backward pass on the -N side. Join geometry is added on the outer side of
// each corner, which depends on the turn direction.
func (r *Rasterizer) strokeSubpath(segs []strokeSegment, closed bool) {
	if len(segs) == 0 {
		return
	}
	d := r.Width / 2

	if closed {
		r.strokeClosed(segs, d)
	} else {
		r.strokeOpen(segs, d)
	}
}

// strokeOpen builds the outline of an open subpath: caps at both ends,
// joins in between.
func (r *Rasterizer) strokeOpen(segs []strokeSegment, d float64) {
	first := &segs[0]
	last := &segs[len(segs)-1]

	r.addCap(first.A, first.T.Mul(-1), d)

	// forward pass: +N side
	skipNextA := false
	for i := range segs {
		seg := &segs[i]
		if !skipNextA {
			r.stroke = append(r.stroke, seg.A.Add(seg.N.Mul(d)))
		}
		skipNextA = false
		if i == len(segs)-1 {
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			continue
		}
		next := &segs[i+1]
		sinTheta := cross(seg.T, next.T)
		switch {
		case math.Abs(sinTheta) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
		case sinTheta > 0: // +N is the inner side
			skipNextA = r.addInnerIntersectionOrOffsets(seg.B, seg, next, d, true)
		default:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			r.addJoin(seg.B, seg.T, next.T, d, true)
		}
	}

	r.addCap(last.B, last.T, d)

	// backward pass: -N side
	skipNextB := false
	for i := len(segs) - 1; i >= 0; i-- {
		seg := &segs[i]
		if !skipNextB {
			r.stroke = append(r.stroke, seg.B.Sub(seg.N.Mul(d)))
		}
		skipNextB = false
		if i == 0 {
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			continue
		}
		prev := &segs[i-1]
		sinTheta := cross(prev.T, seg.T)
		switch {
		case math.Abs(sinTheta) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
		case sinTheta > 0: // -N is the outer side
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			r.addJoin(seg.A, prev.T, seg.T, d, false)
		default:
			skipNextB = r.addInnerIntersectionOrOffsets(seg.A, prev, seg, d, false)
		}
	}
}

// strokeClosed builds the outline of a closed subpath: joins only, including
// the corner where the last segment meets the first.
func (r *Rasterizer) strokeClosed(segs []strokeSegment, d float64) {
	first := &segs[0]
	last := &segs[len(segs)-1]
	sinThetaClose := cross(last.T, first.T)

	// forward pass: +N side
	r.stroke = append(r.stroke, first.A.Add(first.N.Mul(d)))
	for i := range segs {
		seg := &segs[i]
		next := first
		sinTheta := sinThetaClose
		if i < len(segs)-1 {
			next = &segs[i+1]
			sinTheta = cross(seg.T, next.T)
		}
		switch {
		case math.Abs(sinTheta) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			r.stroke = append(r.stroke, next.A.Add(next.N.Mul(d)))
		case sinTheta > 0:
			r.addInnerIntersectionOrOffsets(seg.B, seg, next, d, true)
		default:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			r.addJoin(seg.B, seg.T, next.T, d, true)
			r.stroke = append(r.stroke, next.A.Add(next.N.Mul(d)))
		}
	}

	// backward pass: -N side, starting with the closing corner
	switch {
	case math.Abs(sinThetaClose) < collinearityThreshold:
		r.stroke = append(r.stroke, first.A.Sub(first.N.Mul(d)))
		r.stroke = append(r.stroke, last.B.Sub(last.N.Mul(d)))
	case sinThetaClose > 0:
		r.stroke = append(r.stroke, first.A.Sub(first.N.Mul(d)))
		r.addJoin(first.A, last.T, first.T, d, false)
		r.stroke = append(r.stroke, last.B.Sub(last.N.Mul(d)))
	default:
		r.addInnerIntersectionOrOffsets(first.A, last, first, d, false)
	}
	for i := len(segs) - 1; i >= 0; i-- {
		seg := &segs[i]
		if i == 0 {
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			continue
		}
		prev := &segs[i-1]
		sinTheta := cross(prev.T, seg.T)
		switch {
		case math.Abs(sinTheta) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			r.stroke = append(r.stroke, prev.B.Sub(prev.N.Mul(d)))
		case sinTheta > 0:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			r.addJoin(seg.A, prev.T, seg.T, d, false)
			r.stroke = append(r.stroke, prev.B.Sub(prev.N.Mul(d)))
		default:
			r.addInnerIntersectionOrOffsets(seg.A, prev, seg, d, false)
		}
	}
}

// cross returns the z component of the cross product of a and b.
func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// addCap adds a line cap to the stroke outline at point P.
// T is the outward tangent direction (away from the line).
// d is half the stroke width.
func (r *Rasterizer) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}

	switch r.Cap {
	case graphics.LineCapButt:
		// the caller connects the two offset points

	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.stroke = append(r.stroke, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))

	case graphics.LineCapRound:
		// semicircle from N through T to -N
		r.addArc(P, d, N, -math.Pi, true)
	}
}

// computeInnerIntersection returns the intersection point of the two inner
// offset lines at a corner. For nearly collinear segments, ok is false.
func computeInnerIntersection(P, T1, T2 vec.Vec2, d float64, isPositiveNormalSide bool) (vec.Vec2, bool) {
	cosTheta := T1.Dot(T2)
	if cosTheta > 1-1e-9 {
		return vec.Vec2{}, false
	}

	// cos(θ/2) = sqrt((1 + cos θ) / 2)
	halfAngle := math.Sqrt((1 + cosTheta) / 2)
	if halfAngle < 1e-9 {
		return vec.Vec2{}, false
	}

	N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
	N2 := vec.Vec2{X: -T2.Y, Y: T2.X}
	innerDir := N1.Add(N2)
	if !isPositiveNormalSide {
		innerDir = innerDir.Mul(-1)
	}
	innerDirLen := innerDir.Length()
	if innerDirLen < 1e-9 {
		return vec.Vec2{}, false
	}
	innerDir = innerDir.Mul(1 / innerDirLen)

	return P.Add(innerDir.Mul(d / halfAngle)), true
}

// addInnerIntersectionOrOffsets handles the inner side of the corner at P
// between s1 and s2.  If the offset lines intersect within reach of both
// segments, only the intersection is added; otherwise both offset points
// are. The result reports whether the intersection was used, in which case
// the next offset point must be skipped.
func (r *Rasterizer) addInnerIntersectionOrOffsets(P vec.Vec2, s1, s2 *strokeSegment, d float64, isPositiveNormalSide bool) bool {
	if innerPt, ok := computeInnerIntersection(P, s1.T, s2.T, d, isPositiveNormalSide); ok {
		// Short segments at a sharp turn (pen jitter) would otherwise pull
		// the intersection far beyond the stroke.
		if reach := math.Abs(innerPt.Sub(P).Dot(s1.T)); reach <= min(s1.L, s2.L) {
			r.stroke = append(r.stroke, innerPt)
			return true
		}
	}
	if isPositiveNormalSide {
		r.stroke = append(r.stroke, P.Add(s1.N.Mul(d)), P.Add(s2.N.Mul(d)))
	} else {
		r.stroke = append(r.stroke, P.Sub(s1.N.Mul(d)), P.Sub(s2.N.Mul(d)))
	}
	return false
}

// addJoin adds a line join at point P where tangent changes from T1 to T2.
// d is half the stroke width.
// isPositiveNormalSide indicates which side of the stroke we're building.
func (r *Rasterizer) addJoin(P, T1, T2 vec.Vec2, d float64, isPositiveNormalSide bool) {
	cosTheta := T1.Dot(T2)
	sinTheta := cross(T1, T2)

	if sinTheta > -collinearityThreshold && sinTheta < collinearityThreshold {
		return
	}

	// A pen that reverses direction gets two caps instead of a join.
	if cosTheta < cuspCosineThreshold {
		r.addCap(P, T1, d)
		r.addCap(P, T2.Mul(-1), d)
		return
	}

	switch r.Join {
	case graphics.LineJoinMiter:
		// miter length relative to the width is 1/cos(θ/2)
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		const miterEpsilon = 1e-10
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit+miterEpsilon {
			N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
			N2 := vec.Vec2{X: -T2.Y, Y: T2.X}
			bisector := N1.Add(N2)
			if !isPositiveNormalSide {
				bisector = bisector.Mul(-1)
			}
			if bisectorLen := bisector.Length(); bisectorLen > zeroLengthThreshold {
				bisector = bisector.Mul(1 / bisectorLen)
				r.stroke = append(r.stroke, P.Add(bisector.Mul(d/sinHalf)))
			}
			return
		}
		fallthrough

	case graphics.LineJoinBevel:
		return

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cosTheta)))
		if isPositiveNormalSide {
			N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
			if sinTheta > 0 {
				r.addArc(P, d, N1, angle, false)
			} else {
				r.addArc(P, d, N1, -angle, false)
			}
		} else {
			// the backward pass runs from -N of T2 to -N of T1
			N2 := vec.Vec2{X: T2.Y, Y: -T2.X}
			if sinTheta > 0 {
				r.addArc(P, d, N2, -angle, false)
			} else {
				r.addArc(P, d, N2, angle, false)
			}
		}
	}
}

// addArc adds arc vertices to the stroke outline.
// startDir is the unit vector from center to arc start, sweep is the sweep
// angle in radians (positive = CCW).  If includeStart is false, the caller
// has already added the start point.
func (r *Rasterizer) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius, Y: 0}).Length(),
		r.transformLinear(vec.Vec2{X: 0, Y: radius}).Length(),
	)

	if devRadius < r.Flatness {
		if includeStart {
			r.stroke = append(r.stroke, center.Add(startDir.Mul(radius)))
		}
		r.stroke = append(r.stroke, center.Add(rotate(startDir, sweep).Mul(radius)))
		return
	}

	// A chord subtending angle θ deviates from the circle by r(1 - cos(θ/2)).
	angleStep := 2 * math.Acos(1-r.Flatness/devRadius)
	if angleStep <= 0 || math.IsNaN(angleStep) {
		angleStep = math.Pi / 4
	}
	n := max(int(math.Ceil(math.Abs(sweep)/angleStep)), 1)

	dt := sweep / float64(n)
	startI := 0
	if !includeStart {
		startI = 1
	}
	for i := startI; i <= n; i++ {
		r.stroke = append(r.stroke, center.Add(rotate(startDir, float64(i)*dt).Mul(radius)))
	}
}

// rotate turns v by angle radians counter-clockwise.
func rotate(v vec.Vec2, angle float64) vec.Vec2 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return vec.Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// fillStrokeOutlines fills all collected stroke polygons as a compound path.
func (r *Rasterizer) fillStrokeOutlines(emit func(y, xMin int, coverage []float32)) {
	if len(r.strokeOffsets) == 0 {
		return
	}

	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true
	for i, start := range r.strokeOffsets {
		end := len(r.stroke)
		if i+1 < len(r.strokeOffsets) {
			end = r.strokeOffsets[i+1]
		}
		poly := r.stroke[start:end]
		if len(poly) < 2 {
			continue
		}
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}

	xMin, xMax, yMin, yMax, ok := r.clampedBBox()
	if !ok {
		return
	}
	r.fill(xMin, xMax, yMin, yMax, emit)
}

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
	"slices"

	"seehuhn.de/go/geom/vec"
)

// Sampler turns a pointer gesture into a Stroke.  Points outside the
// canvas rectangle [0, width] × [0, height] are dropped, so that ink does
// not spread beyond the canvas when a gesture leaves it.
//
// A Sampler never fails.  It is not safe for concurrent use.
type Sampler struct {
	width, height float64

	active bool
	points []vec.Vec2
}

// NewSampler returns a Sampler for a canvas of the given size.
func NewSampler(width, height float64) *Sampler {
	return &Sampler{width: width, height: height}
}

// SetBounds changes the canvas size.  Points already sampled are kept.
func (s *Sampler) SetBounds(width, height float64) {
	s.width = width
	s.height = height
}

func (s *Sampler) inBounds(p vec.Vec2) bool {
	return p.X >= 0 && p.X <= s.width && p.Y >= 0 && p.Y <= s.height
}

func (s *Sampler) add(p vec.Vec2) {
	if s.inBounds(p) {
		s.points = append(s.points, p)
	}
}

// Press starts a new gesture at p.  Points of an unfinished previous
// gesture are discarded.
func (s *Sampler) Press(p vec.Vec2) {
	s.points = s.points[:0]
	s.active = true
	s.add(p)
}

// Move records p as part of the active gesture.  Without an active
// gesture, Move does nothing.
func (s *Sampler) Move(p vec.Vec2) {
	if s.active {
		s.add(p)
	}
}

// Release records p and ends the gesture.  The sampled stroke is returned
// together with true, unless no gesture was active or no point of the
// gesture was inside the canvas.
func (s *Sampler) Release(p vec.Vec2) (Stroke, bool) {
	if !s.active {
		return nil, false
	}
	s.add(p)
	res := Stroke(slices.Clone(s.points))
	s.Reset()
	if len(res) == 0 {
		return nil, false
	}
	return res, true
}

// Active reports whether a gesture is in progress.
func (s *Sampler) Active() bool {
	return s.active
}

// Current returns a copy of the points sampled so far in the active gesture.
func (s *Sampler) Current() Stroke {
	return slices.Clone(s.points)
}

// Reset abandons the active gesture.
func (s *Sampler) Reset() {
	s.points = s.points[:0]
	s.active = false
}

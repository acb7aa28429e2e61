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

// Stroke is the ordered list of points sampled during one pointer gesture,
// from press to release.
type Stroke []vec.Vec2

// separator delimits strokes in the flat point format.  A point drawn
// exactly at the origin cannot be told apart from it.
var separator = vec.Vec2{}

// Store holds the committed strokes of a signature in drawing order.
//
// A Store is not safe for concurrent use.
type Store struct {
	strokes []Stroke
}

// Append adds a copy of s as the last stroke.
func (st *Store) Append(s Stroke) error {
	if len(s) == 0 {
		return ErrEmptyStroke
	}
	st.strokes = append(st.strokes, slices.Clone(s))
	return nil
}

// Clear removes all strokes.
func (st *Store) Clear() {
	clear(st.strokes)
	st.strokes = st.strokes[:0]
}

// Len returns the number of strokes.
func (st *Store) Len() int {
	return len(st.strokes)
}

// Strokes returns a deep copy of the stored strokes.
func (st *Store) Strokes() []Stroke {
	res := make([]Stroke, len(st.strokes))
	for i, s := range st.strokes {
		res[i] = slices.Clone(s)
	}
	return res
}

// IsBlank reports whether the store contains no points.
func (st *Store) IsBlank() bool {
	for _, s := range st.strokes {
		if len(s) > 0 {
			return false
		}
	}
	return true
}

// Flatten returns all points in the flat format: strokes are concatenated,
// with a (0,0) separator between consecutive strokes.
func (st *Store) Flatten() []vec.Vec2 {
	return JoinFlat(st.strokes)
}

// LoadFlat replaces the contents of the store with the strokes encoded in
// the flat point list pts.
func (st *Store) LoadFlat(pts []vec.Vec2) {
	st.Clear()
	st.strokes = append(st.strokes, SplitFlat(pts)...)
}

// JoinFlat concatenates the strokes into the flat point format.  There is
// no separator before the first or after the last stroke, and empty strokes
// are skipped.
func JoinFlat(strokes []Stroke) []vec.Vec2 {
	n := 0
	for _, s := range strokes {
		n += len(s) + 1
	}
	res := make([]vec.Vec2, 0, n)
	for _, s := range strokes {
		if len(s) == 0 {
			continue
		}
		if len(res) > 0 {
			res = append(res, separator)
		}
		res = append(res, s...)
	}
	return res
}

// SplitFlat splits a flat point list at every (0,0) entry.  Empty segments,
// caused by leading, trailing or repeated separators, are dropped.
func SplitFlat(pts []vec.Vec2) []Stroke {
	var res []Stroke
	start := 0
	for i := 0; i <= len(pts); i++ {
		if i < len(pts) && pts[i] != separator {
			continue
		}
		if i > start {
			res = append(res, slices.Clone(Stroke(pts[start:i])))
		}
		start = i + 1
	}
	return res
}

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
	"encoding/json"
	"fmt"
	"io"

	"seehuhn.de/go/geom/vec"
)

// MarshalPoints encodes a flat point list as a JSON array of [x, y] pairs.
func MarshalPoints(pts []vec.Vec2) ([]byte, error) {
	pairs := make([][2]float64, len(pts))
	for i, p := range pts {
		pairs[i] = [2]float64{p.X, p.Y}
	}
	return json.Marshal(pairs)
}

// UnmarshalPoints decodes a JSON array of [x, y] pairs.  An entry with a
// different number of coordinates gives a *PointError.
func UnmarshalPoints(data []byte) ([]vec.Vec2, error) {
	var pairs [][]float64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("sigpad: decoding points: %w", err)
	}
	return pairsToPoints(pairs)
}

// ReadPoints reads a JSON point list, as written by WritePoints.
func ReadPoints(r io.Reader) ([]vec.Vec2, error) {
	var pairs [][]float64
	if err := json.NewDecoder(r).Decode(&pairs); err != nil {
		return nil, fmt.Errorf("sigpad: decoding points: %w", err)
	}
	return pairsToPoints(pairs)
}

// WritePoints writes pts as a JSON array of [x, y] pairs.
func WritePoints(w io.Writer, pts []vec.Vec2) error {
	data, err := MarshalPoints(pts)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func pairsToPoints(pairs [][]float64) ([]vec.Vec2, error) {
	pts := make([]vec.Vec2, len(pairs))
	for i, xy := range pairs {
		if len(xy) != 2 {
			return nil, &PointError{Index: i, Len: len(xy)}
		}
		pts[i] = vec.Vec2{X: xy[0], Y: xy[1]}
	}
	return pts, nil
}

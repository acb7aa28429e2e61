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

import "seehuhn.de/go/geom/vec"

// edgeCases contains strokes which touch or leave the canvas, and pen
// jitter which folds a stroke back onto itself.
var edgeCases = []TestCase{
	{
		Name:        "touch_left",
		Width:       64,
		Height:      64,
		StrokeWidth: 6,
		Strokes:     [][]vec.Vec2{line(0, 32, 30, 32, 6)},
	},
	{
		Name:        "corner_dot",
		Width:       64,
		Height:      64,
		StrokeWidth: 10,
		Strokes:     [][]vec.Vec2{{pt(64, 64)}},
	},
	{
		Name:        "border",
		Width:       64,
		Height:      48,
		StrokeWidth: 2,
		Strokes:     [][]vec.Vec2{{pt(0.5, 0.5), pt(63.5, 0.5), pt(63.5, 47.5), pt(0.5, 47.5), pt(0.5, 1)}},
	},
	{
		Name:        "thick",
		Width:       64,
		Height:      64,
		StrokeWidth: 40,
		Strokes:     [][]vec.Vec2{line(20, 20, 44, 44, 4)},
	},
	{
		// a one-pixel jitter followed by a sharp turn back
		Name:        "hairpin",
		Width:       200,
		Height:      200,
		StrokeWidth: 6,
		Strokes: [][]vec.Vec2{
			{pt(77.4993, 90.4968), pt(78.4117, 89.9635), pt(66.4958, 85.2982)},
		},
	},
}

// largeCases have bounding boxes larger than 65536 pixels, which makes
// the rasterizer use its active edge list.
var largeCases = []TestCase{
	{
		Name:        "wide_signature",
		Width:       600,
		Height:      200,
		StrokeWidth: 3,
		Strokes: [][]vec.Vec2{
			cursive(40, 420, 120, 30, 8, 400),
			line(440, 190, 580, 20, 20),
			{pt(500, 40)},
		},
	},
	{
		Name:        "big_loop",
		Width:       400,
		Height:      400,
		StrokeWidth: 5,
		Strokes:     [][]vec.Vec2{loop(200, 200, 180, 200)},
	},
}

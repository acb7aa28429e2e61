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

var tapCases = []TestCase{
	{
		Name:        "single",
		Width:       64,
		Height:      64,
		StrokeWidth: 8,
		Strokes:     [][]vec.Vec2{{pt(32, 32)}},
	},
	{
		Name:        "press_release",
		Width:       64,
		Height:      64,
		StrokeWidth: 8,
		Strokes:     [][]vec.Vec2{{pt(32, 32), pt(32, 32)}},
	},
	{
		Name:        "dots",
		Width:       64,
		Height:      32,
		StrokeWidth: 4,
		Strokes:     [][]vec.Vec2{{pt(10, 16)}, {pt(32, 16)}, {pt(54, 16)}},
	},
	{
		Name:        "i_dot",
		Width:       64,
		Height:      64,
		StrokeWidth: 3,
		Strokes:     [][]vec.Vec2{line(32, 24, 32, 54, 10), {pt(32, 14)}},
	},
}

var lineCases = []TestCase{
	{
		Name:        "horizontal",
		Width:       64,
		Height:      64,
		StrokeWidth: 4,
		Strokes:     [][]vec.Vec2{line(10, 32, 54, 32, 8)},
	},
	{
		Name:        "vertical",
		Width:       64,
		Height:      64,
		StrokeWidth: 4,
		Strokes:     [][]vec.Vec2{line(32, 10, 32, 54, 8)},
	},
	{
		Name:        "diagonal",
		Width:       64,
		Height:      64,
		StrokeWidth: 3,
		Strokes:     [][]vec.Vec2{line(8, 56, 56, 8, 12)},
	},
	{
		Name:        "corner",
		Width:       64,
		Height:      64,
		StrokeWidth: 6,
		Strokes:     [][]vec.Vec2{{pt(10, 54), pt(32, 10), pt(54, 54)}},
	},
	{
		Name:        "hairline",
		Width:       64,
		Height:      64,
		StrokeWidth: 0.5,
		Strokes:     [][]vec.Vec2{line(10, 20, 54, 44, 4)},
	},
}

var scribbleCases = []TestCase{
	{
		Name:        "wave",
		Width:       128,
		Height:      64,
		StrokeWidth: 3,
		Strokes:     [][]vec.Vec2{wave(8, 120, 32, 16, 3, 90)},
	},
	{
		Name:        "loop",
		Width:       64,
		Height:      64,
		StrokeWidth: 3,
		Strokes:     [][]vec.Vec2{loop(32, 32, 20, 40)},
	},
	{
		Name:        "cursive",
		Width:       160,
		Height:      64,
		StrokeWidth: 2.5,
		Strokes:     [][]vec.Vec2{cursive(16, 144, 40, 10, 6, 180)},
	},
	{
		Name:        "jitter",
		Width:       64,
		Height:      64,
		StrokeWidth: 3,
		Strokes: [][]vec.Vec2{{
			pt(10, 32), pt(11, 31), pt(12, 33), pt(12.5, 31.5), pt(14, 33),
			pt(14, 32), pt(20, 30), pt(19.8, 30.2), pt(30, 34), pt(54, 32),
		}},
	},
	{
		Name:        "reversal",
		Width:       64,
		Height:      64,
		StrokeWidth: 4,
		Strokes:     [][]vec.Vec2{{pt(10, 32), pt(50, 32), pt(20, 32)}},
	},
}

var multiCases = []TestCase{
	{
		Name:        "cross",
		Width:       64,
		Height:      64,
		StrokeWidth: 4,
		Strokes: [][]vec.Vec2{
			line(10, 10, 54, 54, 10),
			line(54, 10, 10, 54, 10),
		},
	},
	{
		Name:        "overlap",
		Width:       64,
		Height:      64,
		StrokeWidth: 6,
		Strokes: [][]vec.Vec2{
			line(10, 32, 54, 32, 10),
			line(10, 32, 54, 32, 10),
		},
	},
	{
		Name:        "initials",
		Width:       160,
		Height:      80,
		StrokeWidth: 3,
		Strokes: [][]vec.Vec2{
			{pt(20, 70), pt(40, 10), pt(60, 70)},
			line(28, 45, 52, 45, 6),
			{pt(80, 70), pt(80, 10), pt(110, 10), pt(120, 25), pt(110, 40), pt(80, 40)},
			{pt(140, 60)},
		},
	},
}

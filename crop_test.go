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
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/geom/rect"
)

func TestComputeBoundsSinglePoint(t *testing.T) {
	r, err := ComputeBounds([]Stroke{{pt(50, 50)}}, 4, image.Pt(100, 100))
	require.NoError(t, err)
	assert.Equal(t, rect.Rect{LLx: 48, LLy: 48, URx: 52, URy: 52}, r)
}

func TestComputeBoundsClamped(t *testing.T) {
	strokes := []Stroke{
		{pt(1, 30), pt(40, 2)},
		{pt(99, 99)},
	}
	r, err := ComputeBounds(strokes, 6, image.Pt(100, 100))
	require.NoError(t, err)
	assert.Equal(t, rect.Rect{LLx: 0, LLy: 0, URx: 100, URy: 100}, r)

	r, err = ComputeBounds(strokes[:1], 2, image.Pt(100, 100))
	require.NoError(t, err)
	assert.Equal(t, rect.Rect{LLx: 0, LLy: 1, URx: 41, URy: 31}, r)
}

func TestComputeBoundsEmpty(t *testing.T) {
	_, err := ComputeBounds(nil, 3, image.Pt(100, 100))
	assert.ErrorIs(t, err, ErrEmptyBounds)

	_, err = ComputeBounds([]Stroke{{}}, 3, image.Pt(100, 100))
	assert.ErrorIs(t, err, ErrEmptyBounds)
}

func TestCrop(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	red := color.NRGBA{R: 0xff, A: 0xff}
	src.SetNRGBA(3, 4, red)

	dst := Crop(src, rect.Rect{LLx: 2.5, LLy: 3.2, URx: 6.1, URy: 7})
	require.Equal(t, image.Rect(0, 0, 5, 4), dst.Bounds())
	assert.Equal(t, red, dst.NRGBAAt(1, 1))
	assert.Equal(t, color.NRGBA{}, dst.NRGBAAt(0, 0))

	// the rectangle is clipped to the image
	dst = Crop(src, rect.Rect{LLx: -5, LLy: 8, URx: 20, URy: 20})
	assert.Equal(t, image.Rect(0, 0, 10, 2), dst.Bounds())
}

func TestScaledSize(t *testing.T) {
	cases := []struct {
		src, target image.Point
		keepAspect  bool
		want        image.Point
	}{
		{image.Pt(200, 100), image.Pt(50, 50), true, image.Pt(50, 25)},
		{image.Pt(200, 100), image.Pt(50, 50), false, image.Pt(50, 50)},
		{image.Pt(100, 200), image.Pt(50, 50), true, image.Pt(25, 50)},
		{image.Pt(100, 100), image.Pt(300, 200), true, image.Pt(200, 200)},
		{image.Pt(200, 100), image.Pt(0, 20), true, image.Pt(40, 20)},
		{image.Pt(200, 100), image.Pt(80, 0), false, image.Pt(80, 100)},
		{image.Pt(1000, 1), image.Pt(10, 10), true, image.Pt(10, 1)},
	}
	for _, tc := range cases {
		got := ScaledSize(tc.src, tc.target, tc.keepAspect)
		assert.Equal(t, tc.want, got, "%v -> %v keepAspect=%t", tc.src, tc.target, tc.keepAspect)
	}
}

func TestScale(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	fillNRGBA(src, white)

	dst := Scale(src, image.Pt(50, 50), true)
	require.Equal(t, image.Rect(0, 0, 50, 25), dst.Bounds())
	c := dst.NRGBAAt(25, 12)
	assert.InDelta(t, 0xff, c.R, 1)
	assert.InDelta(t, 0xff, c.A, 1)

	same := Scale(src, image.Point{}, true)
	assert.Equal(t, src.Pix, same.Pix)
	same.Pix[0] = 0
	assert.Equal(t, uint8(0xff), src.Pix[0])
}

func TestScaleEmpty(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 0, 7))
	for _, keepAspect := range []bool{true, false} {
		dst := Scale(src, image.Pt(50, 50), keepAspect)
		assert.True(t, dst.Bounds().Empty())
	}
}

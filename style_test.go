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
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStyle(t *testing.T) {
	in := `
stroke_color = "#1a237e"
background_color = "#ffffff00"
stroke_width = 2.5
`
	s, err := LoadStyle(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x1a, G: 0x23, B: 0x7e, A: 0xff}, s.StrokeColor)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0}, s.BackgroundColor)
	assert.Equal(t, 2.5, s.StrokeWidth)
}

func TestLoadStylePartial(t *testing.T) {
	s, err := LoadStyle(strings.NewReader(`stroke_width = 7.0`))
	require.NoError(t, err)
	def := DefaultStyle()
	assert.Equal(t, def.StrokeColor, s.StrokeColor)
	assert.Equal(t, def.BackgroundColor, s.BackgroundColor)
	assert.Equal(t, 7.0, s.StrokeWidth)

	s, err = LoadStyle(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, def, s)
}

func TestLoadStyleErrors(t *testing.T) {
	_, err := LoadStyle(strings.NewReader(`stroke_color = "blue"`))
	assert.ErrorIs(t, err, ErrBadColor)

	_, err = LoadStyle(strings.NewReader(`stroke_width = -1.0`))
	assert.Error(t, err)

	_, err = LoadStyle(strings.NewReader(`pen = "red"`))
	assert.Error(t, err)

	_, err = LoadStyle(strings.NewReader(`stroke_width = `))
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#102030")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, c)

	c, err = ParseColor("#AaBbCc80")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0x80}, c)

	for _, bad := range []string{"", "102030", "#12345", "#1234567", "#gg0000"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrBadColor, bad)
	}
}

func TestStyleWithDefaults(t *testing.T) {
	s := Style{StrokeWidth: -3}.withDefaults()
	assert.Equal(t, DefaultStyle(), s)

	red := color.NRGBA{R: 0xff, A: 0xff}
	s = Style{StrokeColor: red}.withDefaults()
	assert.Equal(t, red, s.StrokeColor)
	assert.Equal(t, 3.0, s.StrokeWidth)
}

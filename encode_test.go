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
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage() *image.NRGBA {
	style := Style{StrokeColor: black, BackgroundColor: color.Transparent, StrokeWidth: 3}
	return Render([]Stroke{{pt(4, 4), pt(28, 12)}}, style, image.Pt(32, 16), image.Point{})
}

func TestEncodePNG(t *testing.T) {
	img := testImage()
	buf := &bytes.Buffer{}
	require.NoError(t, Encode(buf, img, PNG))

	dec, err := png.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), dec.Bounds())
	for _, p := range []image.Point{{0, 0}, {16, 8}, {31, 15}} {
		want := img.NRGBAAt(p.X, p.Y)
		got := color.NRGBAModel.Convert(dec.At(p.X, p.Y)).(color.NRGBA)
		assert.Equal(t, want, got, "pixel %v", p)
	}
}

func TestEncodeJPEG(t *testing.T) {
	img := testImage()
	buf := &bytes.Buffer{}
	require.NoError(t, Encode(buf, img, JPEG))

	dec, err := jpeg.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), dec.Bounds())

	// transparent areas become white
	r, g, b, _ := dec.At(0, 15).RGBA()
	assert.Greater(t, r>>8, uint32(0xf0))
	assert.Greater(t, g>>8, uint32(0xf0))
	assert.Greater(t, b>>8, uint32(0xf0))
}

func TestEncodeBMP(t *testing.T) {
	img := testImage()
	buf := &bytes.Buffer{}
	require.NoError(t, Encode(buf, img, BMP))

	dec, err := bmp.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), dec.Bounds())
}

func TestEncodeErrors(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.ErrorIs(t, Encode(buf, nil, PNG), ErrEncodingFailed)
	assert.ErrorIs(t, Encode(buf, image.NewNRGBA(image.Rectangle{}), PNG), ErrEncodingFailed)
	assert.ErrorIs(t, Encode(buf, testImage(), Format(42)), ErrEncodingFailed)
	assert.Zero(t, buf.Len())
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestEncodeWriterError(t *testing.T) {
	for _, f := range []Format{PNG, JPEG, BMP} {
		err := Encode(failingWriter{}, testImage(), f)
		assert.ErrorIs(t, err, ErrEncodingFailed, f.String())
		assert.ErrorIs(t, err, errWrite, f.String())
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"png":   PNG,
		".PNG":  PNG,
		"jpg":   JPEG,
		".jpeg": JPEG,
		"bmp":   BMP,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat(".gif")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestDecode(t *testing.T) {
	for _, f := range []Format{PNG, JPEG, BMP} {
		buf := &bytes.Buffer{}
		require.NoError(t, Encode(buf, testImage(), f))
		img, got, err := Decode(buf)
		require.NoError(t, err, f.String())
		assert.Equal(t, f, got)
		assert.Equal(t, image.Rect(0, 0, 32, 16), img.Bounds())
	}
}

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
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Format is an image encoding.
type Format int

// The supported image encodings.
const (
	PNG Format = iota
	JPEG
	BMP
)

// JPEGQuality is the quality setting used for JPEG output.
const JPEGQuality = 100

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case BMP:
		return "bmp"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Ext returns the usual file name extension for f, including the dot.
func (f Format) Ext() string {
	switch f {
	case JPEG:
		return ".jpg"
	case BMP:
		return ".bmp"
	default:
		return ".png"
	}
}

// ParseFormat returns the Format for a format name or file name extension,
// which may start with a dot.
func ParseFormat(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	}
	return 0, fmt.Errorf("%w: image format %q", ErrUnsupported, ext)
}

// Encode writes img to w in the given format.  PNG and BMP keep the alpha
// channel.  JPEG cannot represent transparency, so the image is first
// composited onto opaque white.
//
// All failures, including an empty image, are reported as errors wrapping
// ErrEncodingFailed.
func Encode(w io.Writer, img image.Image, f Format) error {
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("%w: empty image", ErrEncodingFailed)
	}

	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, flatten(img), &jpeg.Options{Quality: JPEGQuality})
	case BMP:
		err = bmp.Encode(w, img)
	default:
		err = errors.New("unknown format " + f.String())
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncodingFailed, f, err)
	}
	return nil
}

// flatten composites img onto an opaque white background.
func flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Over)
	return dst
}

// Decode reads a PNG, JPEG or BMP image.
func Decode(r io.Reader) (image.Image, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, 0, fmt.Errorf("sigpad: decoding image: %w", err)
	}
	f, err := ParseFormat(name)
	if err != nil {
		return nil, 0, err
	}
	return img, f, nil
}

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
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Style describes how strokes are painted.  Changing the style of a Pad
// affects only renderings made afterwards; stored points never change.
type Style struct {
	StrokeColor     color.Color
	BackgroundColor color.Color

	// StrokeWidth is the line thickness in canvas units.
	StrokeWidth float64
}

// DefaultStyle returns black ink, three units wide, on a white background.
func DefaultStyle() Style {
	return Style{
		StrokeColor:     color.Black,
		BackgroundColor: color.White,
		StrokeWidth:     3,
	}
}

// withDefaults replaces unset fields by the values from DefaultStyle.
func (s Style) withDefaults() Style {
	def := DefaultStyle()
	if s.StrokeColor == nil {
		s.StrokeColor = def.StrokeColor
	}
	if s.BackgroundColor == nil {
		s.BackgroundColor = def.BackgroundColor
	}
	if !(s.StrokeWidth > 0) {
		s.StrokeWidth = def.StrokeWidth
	}
	return s
}

// Labels holds the texts and colors shown around the drawing area.  The
// engine stores them for the widget layer and does not render them.
type Labels struct {
	Caption      string
	CaptionColor color.Color

	Prompt      string
	PromptColor color.Color

	ClearText      string
	ClearTextColor color.Color

	SignatureLineColor color.Color
}

// DefaultLabels returns the labels of a new Pad.
func DefaultLabels() Labels {
	gray := color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	return Labels{
		Caption:            "Sign here",
		CaptionColor:       gray,
		Prompt:             "X",
		PromptColor:        gray,
		ClearText:          "Clear",
		ClearTextColor:     gray,
		SignatureLineColor: gray,
	}
}

// styleFile is the TOML representation of a Style.
type styleFile struct {
	StrokeColor     string  `toml:"stroke_color"`
	BackgroundColor string  `toml:"background_color"`
	StrokeWidth     float64 `toml:"stroke_width"`
}

// LoadStyle reads a style from a TOML document:
//
//	stroke_color = "#1a237e"
//	background_color = "#ffffff00"
//	stroke_width = 2.5
//
// Keys which are not present keep the values from DefaultStyle.
func LoadStyle(r io.Reader) (Style, error) {
	var f styleFile
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Style{}, fmt.Errorf("sigpad: reading style: %w", err)
	}

	s := DefaultStyle()
	if f.StrokeColor != "" {
		c, err := ParseColor(f.StrokeColor)
		if err != nil {
			return Style{}, fmt.Errorf("stroke_color: %w", err)
		}
		s.StrokeColor = c
	}
	if f.BackgroundColor != "" {
		c, err := ParseColor(f.BackgroundColor)
		if err != nil {
			return Style{}, fmt.Errorf("background_color: %w", err)
		}
		s.BackgroundColor = c
	}
	if f.StrokeWidth < 0 {
		return Style{}, fmt.Errorf("sigpad: negative stroke_width %g", f.StrokeWidth)
	}
	if f.StrokeWidth > 0 {
		s.StrokeWidth = f.StrokeWidth
	}
	return s, nil
}

// ParseColor parses a color of the form "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

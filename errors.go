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
)

// Sentinel errors for the sigpad package.
var (
	// ErrEmptyBounds is returned when a crop is requested but there are no
	// points to compute a bounding box from.
	ErrEmptyBounds = errors.New("sigpad: no points to bound")

	// ErrEncodingFailed is returned when an image cannot be encoded.
	ErrEncodingFailed = errors.New("sigpad: encoding failed")

	// ErrUnsupported is returned by operations a capture source cannot
	// provide, such as loading points into an image-only capture.
	ErrUnsupported = errors.New("sigpad: operation not supported")

	// ErrEmptyStroke is returned when an empty stroke is added to a Store.
	ErrEmptyStroke = errors.New("sigpad: empty stroke")

	// ErrClosed is returned when events are sent to a Loop which has
	// stopped running.
	ErrClosed = errors.New("sigpad: loop closed")

	// ErrBadColor is returned for color values which cannot be parsed.
	ErrBadColor = errors.New("sigpad: malformed color")
)

// PointError is returned when an entry of a JSON point list does not
// consist of exactly two numbers.
type PointError struct {
	Index int // position in the list
	Len   int // number of coordinates found
}

func (e *PointError) Error() string {
	return fmt.Sprintf("sigpad: point %d has %d coordinates, expected 2", e.Index, e.Len)
}

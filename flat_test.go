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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/geom/vec"
)

func TestMarshalPoints(t *testing.T) {
	pts := []vec.Vec2{pt(10, 10), pt(20.5, 10), {}, pt(3, 4)}
	data, err := MarshalPoints(pts)
	require.NoError(t, err)
	assert.JSONEq(t, `[[10,10],[20.5,10],[0,0],[3,4]]`, string(data))

	back, err := UnmarshalPoints(data)
	require.NoError(t, err)
	assert.Equal(t, pts, back)
}

func TestMarshalPointsEmpty(t *testing.T) {
	data, err := MarshalPoints(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestUnmarshalPointsErrors(t *testing.T) {
	_, err := UnmarshalPoints([]byte(`[[1,2],[3]]`))
	var pe *PointError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Index)
	assert.Equal(t, 1, pe.Len)

	_, err = UnmarshalPoints([]byte(`{"x":1}`))
	assert.Error(t, err)
}

func TestReadWritePoints(t *testing.T) {
	pts := []vec.Vec2{pt(1, 2), {}, pt(3, 4)}
	buf := &bytes.Buffer{}
	require.NoError(t, WritePoints(buf, pts))

	back, err := ReadPoints(buf)
	require.NoError(t, err)
	assert.Equal(t, pts, back)
}

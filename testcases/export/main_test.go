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

package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/sigpad/testcases"
)

func TestWriteFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "out.json")
	err := writeFile(fname, func(w io.Writer) error {
		_, err := io.WriteString(w, "[]\n")
		return err
	})
	require.NoError(t, err)
	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	errWrite := errors.New("write failed")
	err = writeFile(fname, func(io.Writer) error { return errWrite })
	assert.ErrorIs(t, err, errWrite)

	err = writeFile(filepath.Join(t.TempDir(), "missing", "out.json"), func(io.Writer) error { return nil })
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	tc := testcases.All["tap"][0]
	require.NoError(t, export(dir, "tap", tc))

	for _, name := range []string{"tap.json", "tap.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

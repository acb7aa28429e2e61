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

// Export writes every signature test case to testdata/fixtures, as a flat
// JSON point list together with its rendering.
package main

import (
	"encoding/json"
	"image"
	"io"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/sigpad"
	"seehuhn.de/go/sigpad/testcases"
)

func main() {
	dir := filepath.Join("testdata", "fixtures")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatal(err)
	}

	var index []jsonTestCase
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if err := export(dir, name, tc); err != nil {
				log.Fatalf("%s: %v", name, err)
			}
			index = append(index, jsonTestCase{
				Name:        name,
				Width:       tc.Width,
				Height:      tc.Height,
				StrokeWidth: tc.StrokeWidth,
				Points:      name + ".json",
				Image:       name + ".png",
			})
		}
	}

	err := writeFile(filepath.Join(dir, "index.json"), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(index)
	})
	if err != nil {
		log.Fatal(err)
	}
}

type jsonTestCase struct {
	Name        string  `json:"name"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	StrokeWidth float64 `json:"stroke_width"`
	Points      string  `json:"points"`
	Image       string  `json:"image"`
}

func export(dir, name string, tc testcases.TestCase) error {
	strokes := make([]sigpad.Stroke, len(tc.Strokes))
	for i, s := range tc.Strokes {
		strokes[i] = s
	}

	err := writeFile(filepath.Join(dir, name+".json"), func(w io.Writer) error {
		return sigpad.WritePoints(w, sigpad.JoinFlat(strokes))
	})
	if err != nil {
		return err
	}

	style := sigpad.DefaultStyle()
	style.StrokeWidth = tc.StrokeWidth
	img := sigpad.Render(strokes, style, image.Pt(tc.Width, tc.Height), image.Point{})

	return writeFile(filepath.Join(dir, name+".png"), func(w io.Writer) error {
		return sigpad.Encode(w, img, sigpad.PNG)
	})
}

// writeFile creates fname and fills it using write.  Errors from closing
// the file are reported.
func writeFile(fname string, write func(io.Writer) error) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

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

// Command sigrender renders a signature to an image file.
//
// The signature is read either as a flat point list in JSON form
// ([[x,y],...] with [0,0] separating strokes) or, with -image, as an
// existing bitmap.  The output format is taken from -format or from the
// extension of the output file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sigpad"
)

func main() {
	var (
		points     = flag.String("points", "", "JSON point file (default: standard input)")
		imageIn    = flag.String("image", "", "render from an existing image instead of points")
		styleFile  = flag.String("style", "", "TOML style file")
		output     = flag.String("o", "signature.png", "output file")
		format     = flag.String("format", "", "output format: png, jpeg or bmp (default: from the output file name)")
		canvas     = flag.String("canvas", "", "canvas size WxH (default: extent of the points)")
		size       = flag.String("size", "", "output size WxH (default: natural size)")
		crop       = flag.Bool("crop", true, "crop to the ink")
		keepAspect = flag.Bool("keep-aspect", true, "keep the aspect ratio when scaling")
		verbose    = flag.Bool("v", false, "log debug messages")
	)
	flag.Parse()

	if *verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		sigpad.SetLogger(slog.New(h))
	}

	ext := *format
	if ext == "" {
		ext = filepath.Ext(*output)
	}
	f, err := sigpad.ParseFormat(ext)
	if err != nil {
		log.Fatal(err)
	}
	opts := sigpad.ImageOptions{
		Format:     f,
		Crop:       *crop,
		KeepAspect: *keepAspect,
	}
	if *size != "" {
		opts.Size, err = parseSize(*size)
		if err != nil {
			log.Fatalf("-size: %v", err)
		}
	}

	var c sigpad.Capture
	if *imageIn != "" {
		c, err = loadImage(*imageIn)
	} else {
		c, err = loadPoints(*points, *canvas, *styleFile)
	}
	if err != nil {
		log.Fatal(err)
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	w := bufio.NewWriter(out)
	err = sigpad.WriteCapture(w, c, opts)
	if err == nil {
		err = w.Flush()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(*output)
		log.Fatal(err)
	}
}

func loadImage(fname string) (sigpad.Capture, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	img, _, err := sigpad.Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return sigpad.NewImageCapture(img), nil
}

func loadPoints(fname, canvas, styleFile string) (sigpad.Capture, error) {
	var r io.Reader = os.Stdin
	if fname != "" {
		fd, err := os.Open(fname)
		if err != nil {
			return nil, err
		}
		defer fd.Close()
		r = fd
	}
	pts, err := sigpad.ReadPoints(r)
	if err != nil {
		return nil, err
	}

	style := sigpad.DefaultStyle()
	if styleFile != "" {
		fd, err := os.Open(styleFile)
		if err != nil {
			return nil, err
		}
		style, err = sigpad.LoadStyle(fd)
		fd.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", styleFile, err)
		}
	}

	var dim image.Point
	if canvas != "" {
		dim, err = parseSize(canvas)
		if err != nil {
			return nil, fmt.Errorf("-canvas: %w", err)
		}
	} else {
		dim = extent(pts, style.StrokeWidth)
	}

	p := sigpad.NewPad(dim.X, dim.Y)
	p.SetStyle(style)
	if err := p.LoadPoints(pts); err != nil {
		return nil, err
	}
	return p, nil
}

// extent returns the smallest canvas which contains all strokes of the
// given width.
func extent(pts []vec.Vec2, width float64) image.Point {
	var xMax, yMax float64
	for _, p := range pts {
		xMax = max(xMax, p.X)
		yMax = max(yMax, p.Y)
	}
	if xMax == 0 && yMax == 0 {
		return image.Point{}
	}
	return image.Pt(int(math.Ceil(xMax+width/2)), int(math.Ceil(yMax+width/2)))
}

func parseSize(s string) (image.Point, error) {
	var p image.Point
	_, err := fmt.Sscanf(s, "%dx%d", &p.X, &p.Y)
	if err != nil || p.X < 0 || p.Y < 0 {
		return image.Point{}, fmt.Errorf("invalid size %q", s)
	}
	return p, nil
}

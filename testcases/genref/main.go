// seehuhn.de/go/drawtools - drawing tools for interactive price charts
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

// Command genref renders the chart scenarios to SVG, PNG and PDF files,
// for visual inspection of the label layout.
package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/drawtools"
	"seehuhn.de/go/drawtools/scene"
	"seehuhn.de/go/drawtools/testcases"
)

const refDir = "testdata/reference"

var writers = map[string]func(io.Writer, *scene.Layer, scene.Options) error{
	".svg": scene.WriteSVG,
	".png": scene.WritePNG,
	".pdf": scene.WritePDF,
}

func main() {
	if err := os.MkdirAll(refDir, 0o755); err != nil {
		logrus.WithError(err).Fatal("cannot create output directory")
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if err := generate(name, tc); err != nil {
				logrus.WithError(err).WithField("testcase", name).Fatal("rendering failed")
			}
		}
	}
}

func generate(name string, tc testcases.TestCase) error {
	layer, err := drawtools.RenderLayer(tc)
	if err != nil {
		return err
	}
	opt := scene.Options{
		Width:      tc.Width,
		Height:     tc.Height,
		Background: "#ffffff",
	}

	for _, ext := range slices.Sorted(maps.Keys(writers)) {
		fname := filepath.Join(refDir, name+ext)
		f, err := os.Create(fname)
		if err != nil {
			return err
		}
		err = writers[ext](f, layer, opt)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("%s: %w", fname, err)
		}
	}
	return nil
}

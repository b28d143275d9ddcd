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

// Package drawtools lays out drawing tools (trend lines, rays,
// horizontal and vertical lines, Fibonacci levels) on interactive price
// charts.
//
// The sub-packages do the work: [viewport] maps chart coordinates to
// pixels, [label] places text on lines, [tools] implements the drawing
// types, [registry] manages the drawings of one chart and [scene] holds
// and exports the render tree.  This package ties them together for the
// chart scenarios in [testcases].
package drawtools

//go:generate go run ./testcases/export
//go:generate go run ./testcases/genref

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/drawtools/raster"
	"seehuhn.de/go/drawtools/registry"
	"seehuhn.de/go/drawtools/scene"
	"seehuhn.de/go/drawtools/testcases"
)

// RenderLayer renders all drawings of a test case and returns the
// resulting render tree.
func RenderLayer(tc testcases.TestCase) (*scene.Layer, error) {
	vp, err := tc.Viewport()
	if err != nil {
		return nil, err
	}

	log := logrus.StandardLogger().WithField("testcase", tc.Name)
	reg := registry.New(registry.WithLogger(log))
	if _, err := reg.Load(registry.Document{
		Version:  registry.DocumentVersion,
		Drawings: tc.Drawings,
	}); err != nil {
		return nil, err
	}

	res := reg.RenderAll(vp)
	if res.Failed > 0 {
		return nil, fmt.Errorf("%s: %d drawings failed to render", tc.Name, res.Failed)
	}
	return reg.Layer(), nil
}

// RenderExample renders the lines and filled shapes of a test case into
// a grayscale buffer.  Text, handles and hit areas are not painted.
// The buffer is pre-initialized with zeros, in row-major order.
// Each byte represents coverage from 0 (transparent) to 255 (opaque).
func RenderExample(tc testcases.TestCase, buf []byte, width, height, stride int) error {
	layer, err := RenderLayer(tc)
	if err != nil {
		return err
	}

	clip := rect.Rect{LLx: 0, LLy: 0, URx: float64(width), URy: float64(height)}
	r := raster.NewRasterizer(clip)
	emit := raster.Coverage(buf, width, height, stride)

	for _, top := range layer.Nodes() {
		scene.Walk(top, func(n scene.Node) bool {
			switch n := n.(type) {
			case *scene.Group:
				return !n.Hidden
			case *scene.Line:
				r.Reset(clip)
				r.Width = n.Stroke.Width
				r.Cap = n.Stroke.Cap
				r.Dash = n.Stroke.Dash
				r.StrokeLine(n.A, n.B, emit)
			case *scene.Polygon:
				if len(n.Points) >= 3 {
					r.Reset(clip)
					r.FillPolygon(n.Points, emit)
				}
			}
			return true
		})
	}
	return nil
}

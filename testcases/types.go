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

// Package testcases holds chart scenarios which exercise the drawing
// tools.  They are used by the tests of the root package and by the
// commands which export them as JSON and reference images.
package testcases

import (
	"seehuhn.de/go/drawtools/tools"
	"seehuhn.de/go/drawtools/viewport"
)

// TestCase defines a single chart with a set of drawings.
type TestCase struct {
	Name     string          // lowercase a-z and _ only
	Width    int             // canvas width in pixels
	Height   int             // canvas height in pixels
	Chart    Chart           // the host chart
	Drawings []tools.Payload // drawings, bottom to top
}

// Chart describes the visible part of a price chart.
type Chart struct {
	Bars         [2]float64 // visible bar index range
	Prices       [2]float64 // visible price range, low to high
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
	Zoom         float64   // zero means 1
	BarCentres   []float64 // optional pixel position of every bar
}

// Viewport returns the viewport for rendering the test case.
func (tc TestCase) Viewport() (*viewport.Viewport, error) {
	ch := tc.Chart
	w, h := float64(tc.Width), float64(tc.Height)
	host := &viewport.StaticHost{
		X: viewport.LinearScale{
			Domain: ch.Bars,
			Pixels: [2]float64{ch.MarginLeft, w - ch.MarginRight},
		},
		Y: viewport.LinearScale{
			Domain: ch.Prices,
			Pixels: [2]float64{h - ch.MarginBottom, ch.MarginTop},
		},
		MarginLeft:  ch.MarginLeft,
		MarginRight: ch.MarginRight,
		Width:       w,
		Zoom:        ch.Zoom,
	}
	if len(ch.BarCentres) > 0 {
		host.Bars = &viewport.BarIndex{Centres: ch.BarCentres}
	}
	return viewport.New(host)
}

// defaultChart maps bars 0..100 and prices 0..300 onto the full canvas.
var defaultChart = Chart{
	Bars:   [2]float64{0, 100},
	Prices: [2]float64{0, 300},
}

// drawing is a helper to create a payload with the given anchor points.
func drawing(id string, kind tools.Kind, pts ...tools.Point) tools.Payload {
	return tools.Payload{
		ID:     id,
		Type:   string(kind),
		Points: pts,
	}
}

// pt is a helper to create a tools.Point from bar index and price.
func pt(x, y float64) tools.Point {
	return tools.Point{X: x, Y: y}
}

// withStyle returns p with the given style entries.
func withStyle(p tools.Payload, kv ...any) tools.Payload {
	if p.Style == nil {
		p.Style = tools.Style{}
	}
	for i := 0; i+1 < len(kv); i += 2 {
		p.Style[kv[i].(string)] = kv[i+1]
	}
	return p
}

// withText returns p with the given label text.
func withText(p tools.Payload, text string) tools.Payload {
	p.Text = text
	return p
}

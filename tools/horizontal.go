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

package tools

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/drawtools/label"
	"seehuhn.de/go/drawtools/scene"
	"seehuhn.de/go/drawtools/viewport"
)

// HorizontalLine is a line at a fixed price.  For [KindHorizontalLine]
// it spans the full width of the chart, for [KindHorizontalRay] it runs
// from the anchor to the right edge.
type HorizontalLine struct {
	Base
}

// Render implements the [Tool] interface.
func (t *HorizontalLine) Render(layer *scene.Layer, vp *viewport.Viewport) (*scene.Group, error) {
	return render(t, layer, vp)
}

func (t *HorizontalLine) draw(f *frame) {
	anchor := f.px[0]
	y := anchor.Y
	left := vec.Vec2{X: f.vp.Left, Y: y}
	right := vec.Vec2{X: f.vp.Right, Y: y}
	if t.kind == KindHorizontalRay {
		left.X = max(anchor.X, f.vp.Left)
	}

	if y >= f.vp.Top && y <= f.vp.Bottom && left.X < right.X {
		f.drawLabeledLine(left, right, left, right, f.stroke(), lineLabel{
			Text:        t.Text,
			EdgePadding: horizontalEdgePadding,
		})
	}

	if f.s.Bool(KeyShowPrice) {
		f.addPriceLabel(t.Points[0].Y, y)
	}
}

// addPriceLabel adds a price tag at the right edge of the plot area, at
// height y.
func (f *frame) addPriceLabel(price, y float64) {
	text := FormatPrice(price, f.s.Int(KeyPrecision))
	if text == "" {
		return
	}
	fnt := f.font()
	fontSize := fnt.Size
	half := fnt.LineHeight() / 2
	if y < f.vp.Top-half || y > f.vp.Bottom+half {
		return
	}
	pl := label.Placement{
		Pos: vec.Vec2{
			X: f.vp.Right - priceLabelInset,
			Y: label.ClampVertical(y, f.vp.Top+half, f.vp.Bottom-half),
		},
		Anchor:   label.AnchorEnd,
		Baseline: label.BaselineMiddle,
		Lines:    label.Layout(text, fontSize, label.BlockCentered),
	}
	txt := f.addText(pl, "price-label")
	txt.Fill = "#ffffff"
	txt.Background = f.s.Color(KeyLineColor)
}

// priceLabelInset is the distance of the price tag from the right edge
// of the plot area.
const priceLabelInset = 4

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

// CrossLine is a pair of full width and full height lines through a
// single anchor point.
type CrossLine struct {
	Base
}

// Render implements the [Tool] interface.
func (t *CrossLine) Render(layer *scene.Layer, vp *viewport.Viewport) (*scene.Group, error) {
	return render(t, layer, vp)
}

func (t *CrossLine) draw(f *frame) {
	c := f.px[0]
	st := f.stroke()

	if c.Y >= f.vp.Top && c.Y <= f.vp.Bottom {
		f.addSegment(vec.Vec2{X: f.vp.Left, Y: c.Y}, vec.Vec2{X: f.vp.Right, Y: c.Y}, st, "horizontal")
	}
	if c.X >= f.vp.Left && c.X <= f.vp.Right {
		f.addSegment(vec.Vec2{X: c.X, Y: f.vp.Top}, vec.Vec2{X: c.X, Y: f.vp.Bottom}, st, "vertical")
	}

	if t.Text != "" {
		off := f.s.Float(KeyTextOffset)
		fontSize := f.font().Size
		pl := label.Placement{
			Pos:      vec.Vec2{X: c.X + off, Y: c.Y - off},
			Anchor:   label.AnchorStart,
			Baseline: label.BaselineAlphabetic,
			Lines:    label.Layout(t.Text, fontSize, label.BlockAbove),
		}
		f.addText(f.clampBlock(pl, fontSize), "label")
	}

	if f.s.Bool(KeyShowPrice) {
		f.addPriceLabel(t.Points[0].Y, c.Y)
	}
}

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
	"seehuhn.de/go/drawtools/scene"
	"seehuhn.de/go/drawtools/viewport"
)

// Ray starts at its first anchor point and runs through the second one
// up to the edge of the chart.
type Ray struct {
	Base
}

// Render implements the [Tool] interface.
func (t *Ray) Render(layer *scene.Layer, vp *viewport.Viewport) (*scene.Group, error) {
	return render(t, layer, vp)
}

func (t *Ray) draw(f *frame) {
	anchor, through := f.px[0], f.px[1]
	b := f.bounds()

	end := viewport.ClipRay(anchor, through, b)
	start, end, ok := viewport.ClipSegment(anchor, end, b)
	if !ok || end.Sub(start).Length() < minVisibleLength {
		return
	}
	left, right, _ := viewport.VisualOrder(start, end)
	f.drawLabeledLine(left, right, anchor, end, f.stroke(), lineLabel{
		Text:        t.Text,
		EdgePadding: rayEdgePadding,
	})
}

// ExtendedLine is the infinite line through two anchor points.
type ExtendedLine struct {
	Base
}

// Render implements the [Tool] interface.
func (t *ExtendedLine) Render(layer *scene.Layer, vp *viewport.Viewport) (*scene.Group, error) {
	return render(t, layer, vp)
}

func (t *ExtendedLine) draw(f *frame) {
	left, right := viewport.ClipExtended(f.px[0], f.px[1], f.bounds())
	left, right, _ = viewport.VisualOrder(left, right)
	f.drawLabeledLine(left, right, left, right, f.stroke(), lineLabel{
		Text:        t.Text,
		EdgePadding: extendedLineEdgePadding,
	})
}

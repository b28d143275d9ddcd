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

	"seehuhn.de/go/drawtools/scene"
	"seehuhn.de/go/drawtools/viewport"
)

// VerticalLine is a full height line at a fixed bar.
//
// With textRotate set, the label runs along the line.  Otherwise it is
// drawn horizontally, either across the line (textVAlign "middle") or
// beside it.
type VerticalLine struct {
	Base
}

// Render implements the [Tool] interface.
func (t *VerticalLine) Render(layer *scene.Layer, vp *viewport.Viewport) (*scene.Group, error) {
	return render(t, layer, vp)
}

func (t *VerticalLine) draw(f *frame) {
	x := f.px[0].X
	if x < f.vp.Left || x > f.vp.Right {
		return
	}
	top := vec.Vec2{X: x, Y: f.vp.Top}
	bottom := vec.Vec2{X: x, Y: f.vp.Bottom}

	f.drawLabeledLine(top, bottom, top, bottom, f.stroke(), lineLabel{
		Text:        t.Text,
		EdgePadding: verticalEdgePadding,
		Upright:     !f.s.Bool(KeyTextRotate),
	})
}

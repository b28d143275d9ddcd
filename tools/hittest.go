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
)

// HitTest reports whether the pixel p lies on the rendered tool g, with
// the given extra tolerance.  If p is on a visible drag handle, handle
// is the index of the anchor point, otherwise it is -1.
func HitTest(g *scene.Group, p vec.Vec2, tol float64) (hit bool, handle int) {
	handle = -1
	if g == nil || g.Hidden {
		return false, -1
	}
	scene.Walk(g, func(n scene.Node) bool {
		switch n := n.(type) {
		case *scene.Group:
			return !n.Hidden
		case *scene.Handle:
			if !n.Hidden && p.Sub(n.Center).Length() <= n.Radius+tol && handle < 0 {
				handle = n.Index
				hit = true
			}
		case *scene.HitArea:
			if segmentDistance(p, n.A, n.B) <= n.Width/2+tol {
				hit = true
			}
		}
		return true
	})
	return hit, handle
}

// segmentDistance returns the distance of p from the segment a-b.
func segmentDistance(p, a, b vec.Vec2) float64 {
	d := b.Sub(a)
	dd := d.Dot(d)
	if dd == 0 {
		return p.Sub(a).Length()
	}
	t := min(max(p.Sub(a).Dot(d)/dd, 0), 1)
	return p.Sub(a.Add(d.Mul(t))).Length()
}

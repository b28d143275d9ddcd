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

package viewport

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Bounds is a pixel rectangle with Left <= Right and Top <= Bottom.
type Bounds struct {
	Left, Right float64
	Top, Bottom float64
}

// Contains reports whether p lies inside b, allowing for rounding errors.
func (b Bounds) Contains(p vec.Vec2) bool {
	return p.X >= b.Left-clipEpsilon && p.X <= b.Right+clipEpsilon &&
		p.Y >= b.Top-clipEpsilon && p.Y <= b.Bottom+clipEpsilon
}

func (b Bounds) clamp(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: min(max(p.X, b.Left), b.Right),
		Y: min(max(p.Y, b.Top), b.Bottom),
	}
}

// ClipRay returns the point where the ray starting at anchor and passing
// through through leaves the rectangle b.
//
// The ray is first projected onto the vertical edge in its horizontal
// direction.  If the resulting y lies outside [Top, Bottom], the point is
// moved back along the ray to the horizontal edge it crosses first.
// The slope is always taken from anchor and through, never from an
// intermediate clipped point.
func ClipRay(anchor, through vec.Vec2, b Bounds) vec.Vec2 {
	dx := through.X - anchor.X
	dy := through.Y - anchor.Y

	if math.Abs(dx) < verticalEpsilon {
		switch {
		case dy < 0:
			return b.clamp(vec.Vec2{X: anchor.X, Y: b.Top})
		case dy > 0:
			return b.clamp(vec.Vec2{X: anchor.X, Y: b.Bottom})
		default:
			return b.clamp(anchor)
		}
	}

	targetX := b.Right
	if dx < 0 {
		targetX = b.Left
	}
	return b.clamp(projectX(anchor, dx, dy, targetX, b))
}

// ClipExtended returns the two points where the infinite line through a
// and c crosses the boundary of b, ordered from left to right.  For
// vertical lines, the points are ordered from top to bottom.
func ClipExtended(a, c vec.Vec2, b Bounds) (left, right vec.Vec2) {
	dx := c.X - a.X
	dy := c.Y - a.Y

	if math.Abs(dx) < verticalEpsilon {
		left = b.clamp(vec.Vec2{X: a.X, Y: b.Top})
		right = b.clamp(vec.Vec2{X: a.X, Y: b.Bottom})
		return left, right
	}

	left = b.clamp(projectX(a, dx, dy, b.Left, b))
	right = b.clamp(projectX(a, dx, dy, b.Right, b))
	return left, right
}

// projectX moves along the line through anchor with direction (dx, dy)
// until x == targetX.  If the y coordinate there lies outside [Top,
// Bottom], the point is instead placed on the horizontal edge which is
// crossed, with x recomputed from the slope.
func projectX(anchor vec.Vec2, dx, dy, targetX float64, b Bounds) vec.Vec2 {
	slope := dy / dx
	p := vec.Vec2{X: targetX, Y: anchor.Y + slope*(targetX-anchor.X)}

	if slope == 0 {
		return p
	}
	switch {
	case p.Y < b.Top:
		p = vec.Vec2{X: anchor.X + (b.Top-anchor.Y)/slope, Y: b.Top}
	case p.Y > b.Bottom:
		p = vec.Vec2{X: anchor.X + (b.Bottom-anchor.Y)/slope, Y: b.Bottom}
	}
	return p
}

// ClipSegment clips the segment from a to c against b, using the
// Liang-Barsky algorithm.  The returned points keep the direction of the
// input.  If no part of the segment is visible, ok is false.
func ClipSegment(a, c vec.Vec2, b Bounds) (p, q vec.Vec2, ok bool) {
	d := c.Sub(a)
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-d.X, a.X - b.Left},
		{d.X, b.Right - a.X},
		{-d.Y, a.Y - b.Top},
		{d.Y, b.Bottom - a.Y},
	}
	for _, e := range edges {
		pe, qe := e[0], e[1]
		if pe == 0 {
			if qe < 0 {
				return a, c, false
			}
			continue
		}
		r := qe / pe
		if pe < 0 {
			if r > t1 {
				return a, c, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return a, c, false
			}
			t1 = min(t1, r)
		}
	}
	return a.Add(d.Mul(t0)), a.Add(d.Mul(t1)), true
}

// VisualOrder returns a and c ordered from left to right.  Points with
// (almost) equal x are ordered from bottom to top, so that text running
// along a vertical line reads upwards before angle normalisation.
// swapped reports whether the order was changed.
func VisualOrder(a, c vec.Vec2) (left, right vec.Vec2, swapped bool) {
	if math.Abs(a.X-c.X) < verticalEpsilon {
		if a.Y < c.Y {
			return c, a, true
		}
		return a, c, false
	}
	if a.X > c.X {
		return c, a, true
	}
	return a, c, false
}

const (
	// verticalEpsilon is the horizontal extent below which a line is
	// treated as vertical in slope computations.
	verticalEpsilon = 0.001

	// clipEpsilon is the tolerance used when checking that a clipped
	// point lies inside the viewport.
	clipEpsilon = 1e-9
)

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

package label

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// HAlign is the horizontal alignment of a label along its line.
type HAlign int

// These are the supported horizontal alignments.
const (
	AlignCenter HAlign = iota
	AlignLeft
	AlignRight
)

func (a HAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "center"
	}
}

// ParseHAlign converts a style value to an alignment.  Unknown values
// give def.
func ParseHAlign(s string, def HAlign) HAlign {
	switch s {
	case "left", "start":
		return AlignLeft
	case "right", "end":
		return AlignRight
	case "center", "middle":
		return AlignCenter
	}
	return def
}

// VAlign is the vertical alignment of a label relative to its line.
type VAlign int

// These are the supported vertical alignments.  Only VAlignMiddle puts
// the label on the line.
const (
	VAlignTop VAlign = iota
	VAlignMiddle
	VAlignBottom
)

func (a VAlign) String() string {
	switch a {
	case VAlignMiddle:
		return "middle"
	case VAlignBottom:
		return "bottom"
	default:
		return "top"
	}
}

// ParseVAlign converts a style value to an alignment.  Unknown values
// give def.
func ParseVAlign(s string, def VAlign) VAlign {
	switch s {
	case "top", "above":
		return VAlignTop
	case "middle", "center", "on-line":
		return VAlignMiddle
	case "bottom", "below":
		return VAlignBottom
	}
	return def
}

// GapSpec describes the label for which a gap is cut into a line.
type GapSpec struct {
	// TextWidth is the measured width of the label text.
	TextWidth float64

	Align HAlign

	// EdgePadding is the distance of a left or right aligned label from
	// the end of the visible line.
	EdgePadding float64

	// InnerPadding is the space between text and line on either side.
	InnerPadding float64

	// CapPadding accounts for the line caps protruding into the gap.
	CapPadding float64
}

// HalfWidth returns half the length of the undrawn part of the line.
func (s GapSpec) HalfWidth() float64 {
	return (s.TextWidth + 2*s.InnerPadding + 2*s.CapPadding) / 2
}

// Gap is the result of [SolveGap].
type Gap struct {
	// Start and End are the visible end points of the line, ordered
	// from visual left to visual right.
	Start, End vec.Vec2

	// Dir is the unit vector from Start to End.
	Dir vec.Vec2

	// Anchor is the point on the line where the label is centred.
	Anchor vec.Vec2

	// Split1 and Split2 delimit the undrawn part of the line.
	Split1, Split2 vec.Vec2

	// T, T1 and T2 are the parameters of Anchor, Split1 and Split2 along
	// the full underlying line, in the range [0, 1].
	T, T1, T2 float64
}

// Width returns the length of the undrawn part of the line.
func (g Gap) Width() float64 {
	return g.Split2.Sub(g.Split1).Length()
}

// Parts returns the sub-segments of the visible line which are drawn.
// Parts of zero length are omitted.
func (g Gap) Parts() [][2]vec.Vec2 {
	var res [][2]vec.Vec2
	if g.Split1.Sub(g.Start).Length() > gapEpsilon {
		res = append(res, [2]vec.Vec2{g.Start, g.Split1})
	}
	if g.End.Sub(g.Split2).Length() > gapEpsilon {
		res = append(res, [2]vec.Vec2{g.Split2, g.End})
	}
	return res
}

// SolveGap computes the label anchor and the undrawn gap for a line.
//
// visLeft and visRight are the visible end points of the line, in visual
// order.  lineStart and lineEnd are the end points of the full line the
// visible part was cut from; they are used to express the gap in line
// parameters.  If the gap does not fit around the anchor, it is moved
// along the line so that it stays within the visible part.  If the
// visible part is shorter than the gap, the whole visible line becomes
// the gap.
//
// The result is false if the visible line has zero length.
func SolveGap(visLeft, visRight, lineStart, lineEnd vec.Vec2, s GapSpec) (Gap, bool) {
	d := visRight.Sub(visLeft)
	length := d.Length()
	if length < gapEpsilon || math.IsNaN(length) {
		return Gap{}, false
	}
	u := d.Mul(1 / length)

	pad := min(max(s.EdgePadding, 0), length/2)
	var a float64
	switch s.Align {
	case AlignLeft:
		a = pad
	case AlignRight:
		a = length - pad
	default:
		a = length / 2
	}

	half := max(s.HalfWidth(), 0)
	s1, s2 := a-half, a+half
	if s1 < 0 {
		s2 -= s1
		s1 = 0
	}
	if s2 > length {
		s1 -= s2 - length
		s2 = length
	}
	s1 = max(s1, 0)

	g := Gap{
		Start:  visLeft,
		End:    visRight,
		Dir:    u,
		Anchor: visLeft.Add(u.Mul(a)),
		Split1: visLeft.Add(u.Mul(s1)),
		Split2: visLeft.Add(u.Mul(s2)),
	}

	param := lineParam(lineStart, lineEnd, visLeft, visRight)
	g.T = param(g.Anchor)
	g.T1 = param(g.Split1)
	g.T2 = param(g.Split2)
	return g, true
}

// lineParam returns a function mapping points on the line from start to
// end to their parameter, clamped to [0, 1].  A degenerate full line is
// replaced by the fallback segment.
func lineParam(start, end, fbStart, fbEnd vec.Vec2) func(vec.Vec2) float64 {
	f := end.Sub(start)
	ff := f.Dot(f)
	if ff < gapEpsilon*gapEpsilon {
		start = fbStart
		f = fbEnd.Sub(fbStart)
		ff = f.Dot(f)
	}
	return func(p vec.Vec2) float64 {
		if ff == 0 {
			return 0
		}
		t := p.Sub(start).Dot(f) / ff
		return min(max(t, 0), 1)
	}
}

const gapEpsilon = 1e-9

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

// NormalizeAngle maps an angle in degrees into the interval (-90, 90],
// by adding or subtracting multiples of 180.  Text drawn at the
// resulting angle is never upside down.
func NormalizeAngle(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	a := math.Mod(deg, 180)
	if a <= -90 {
		a += 180
	} else if a > 90 {
		a -= 180
	}
	return a
}

// LineAngle returns the normalised angle of the line from a to b, in
// degrees.  Since y grows downwards, positive angles turn clockwise.
func LineAngle(a, b vec.Vec2) float64 {
	d := b.Sub(a)
	if d.X == 0 && d.Y == 0 {
		return 0
	}
	return NormalizeAngle(math.Atan2(d.Y, d.X) * 180 / math.Pi)
}

// Perpendicular returns the unit normal of the direction u which points
// upwards on screen.  For horizontal normals (vertical lines), the one
// pointing left is returned.
func Perpendicular(u vec.Vec2) vec.Vec2 {
	n := vec.Vec2{X: -u.Y, Y: u.X}
	l := n.Length()
	if l == 0 {
		return vec.Vec2{X: 0, Y: -1}
	}
	n = n.Mul(1 / l)
	if n.Y > 0 || (n.Y == 0 && n.X > 0) {
		n = n.Mul(-1)
	}
	return n
}

// Block selects how the lines of a multi-line label are stacked
// relative to the label position.
type Block int

// These are the supported block layouts.
const (
	// BlockCentered centres the block vertically on the position.
	BlockCentered Block = iota

	// BlockAbove puts the last baseline at the position, so the text
	// grows upwards.
	BlockAbove

	// BlockBelow hangs the first line from the position, so the text
	// grows downwards.
	BlockBelow
)

// Line is one line of a label.  DY is the vertical offset of the line,
// in the rotated text coordinate system.
type Line struct {
	Text string
	DY   float64
}

// Layout stacks the lines of text using a line height of
// fontSize × [LineHeightFactor].
func Layout(text string, fontSize float64, b Block) []Line {
	parts := SplitLines(text)
	n := len(parts)
	lh := Font{Size: fontSize}.LineHeight()
	res := make([]Line, n)
	for i, s := range parts {
		var dy float64
		switch b {
		case BlockAbove:
			dy = -float64(n-1-i) * lh
		case BlockBelow:
			dy = float64(i) * lh
		default:
			dy = (float64(i) - float64(n-1)/2) * lh
		}
		res[i] = Line{Text: s, DY: dy}
	}
	return res
}

// TextAnchor is the horizontal reference point of a text element.
type TextAnchor string

// These values follow the SVG text-anchor property.
const (
	AnchorStart  TextAnchor = "start"
	AnchorMiddle TextAnchor = "middle"
	AnchorEnd    TextAnchor = "end"
)

// Baseline is the vertical reference point of a text line.
type Baseline string

// These values follow the SVG dominant-baseline property.
const (
	BaselineAlphabetic Baseline = "auto"
	BaselineMiddle     Baseline = "middle"
	BaselineHanging    Baseline = "hanging"
)

// Placement gives the final attributes of a text label.
type Placement struct {
	Pos      vec.Vec2
	Angle    float64 // degrees, in (-90, 90]
	Anchor   TextAnchor
	Baseline Baseline
	Lines    []Line
}

// Height returns the vertical extent of the text block, ignoring
// rotation.
func (p Placement) Height(fontSize float64) float64 {
	if len(p.Lines) == 0 {
		return 0
	}
	return float64(len(p.Lines)-1)*Font{Size: fontSize}.LineHeight() + fontSize
}

// Placer places labels next to or on lines.
type Placer struct {
	// Offset is the distance of a top or bottom aligned label from its
	// line.
	Offset float64

	FontSize float64

	// Top and Bottom delimit the vertical extent of the chart.  Labels
	// are kept inside.  Both zero disables clamping.
	Top, Bottom float64
}

// OnLine places text for the line from left to right, at the given
// anchor point on the line.  For VAlignMiddle the label is centred on
// the anchor and the caller is expected to cut a gap into the line.
// Otherwise the label is moved perpendicular to the line, above it for
// VAlignTop and below for VAlignBottom.
func (p Placer) OnLine(left, right, anchor vec.Vec2, v VAlign, h HAlign, text string) Placement {
	angle := LineAngle(left, right)

	pl := Placement{
		Pos:   anchor,
		Angle: angle,
	}

	if v == VAlignMiddle {
		pl.Anchor = AnchorMiddle
		pl.Baseline = BaselineMiddle
		pl.Lines = Layout(text, p.FontSize, BlockCentered)
		pl.Pos = p.clamp(pl.Pos, pl.Height(p.FontSize)/2, pl.Height(p.FontSize)/2)
		return pl
	}

	switch h {
	case AlignLeft:
		pl.Anchor = AnchorStart
	case AlignRight:
		pl.Anchor = AnchorEnd
	default:
		pl.Anchor = AnchorMiddle
	}

	// the rotated text's "up" direction
	rad := angle * math.Pi / 180
	up := Perpendicular(vec.Vec2{X: math.Cos(rad), Y: math.Sin(rad)})

	if v == VAlignBottom {
		pl.Pos = anchor.Add(up.Mul(-p.Offset))
		pl.Baseline = BaselineHanging
		pl.Lines = Layout(text, p.FontSize, BlockBelow)
		pl.Pos = p.clamp(pl.Pos, 0, pl.Height(p.FontSize))
	} else {
		pl.Pos = anchor.Add(up.Mul(p.Offset))
		pl.Baseline = BaselineAlphabetic
		pl.Lines = Layout(text, p.FontSize, BlockAbove)
		pl.Pos = p.clamp(pl.Pos, pl.Height(p.FontSize), 0)
	}
	return pl
}

// clamp keeps a text block with the given extent above and below pos
// inside [Top, Bottom].  The horizontal position is never changed, so
// labels follow their line when it is panned off-screen.
func (p Placer) clamp(pos vec.Vec2, above, below float64) vec.Vec2 {
	if p.Top == 0 && p.Bottom == 0 {
		return pos
	}
	pos.Y = ClampVertical(pos.Y, p.Top+above, p.Bottom-below)
	return pos
}

// ClampVertical restricts y to [top, bottom].  If the interval is empty,
// its midpoint is returned.
func ClampVertical(y, top, bottom float64) float64 {
	if top > bottom {
		return (top + bottom) / 2
	}
	return min(max(y, top), bottom)
}

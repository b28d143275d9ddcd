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
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/drawtools/label"
	"seehuhn.de/go/drawtools/scene"
)

// Distance of left or right aligned labels from the visible end of the
// line.  The values differ between tools.
const (
	trendlineEdgePadding    = 30
	rayEdgePadding          = 30
	extendedLineEdgePadding = 40
	verticalEdgePadding     = 20
	horizontalEdgePadding   = 10
)

// minVisibleLength is the length below which a clipped line is not
// drawn.
const minVisibleLength = 1e-6

// gapInnerPadding is the space between an on-line label and the line
// on either side.
const gapInnerPadding = 4

// lineLabel describes the text drawn along a line.
type lineLabel struct {
	Text        string
	EdgePadding float64
	Class       string

	// Upright keeps the text horizontal instead of rotating it with the
	// line.
	Upright bool
}

// drawLabeledLine draws the visible segment from left to right, which
// is part of the line from full0 to full1.  If the label sits on the
// line, the line is split around it.  The label placement is returned,
// or nil if no label was drawn.
func (f *frame) drawLabeledLine(left, right, full0, full1 vec.Vec2, st scene.Stroke, lab lineLabel) *scene.Text {
	if lab.Text == "" {
		f.addSegment(left, right, st, lab.Class)
		return nil
	}

	v := label.ParseVAlign(f.s.String(KeyTextVAlign), label.VAlignTop)
	h := label.ParseHAlign(f.s.String(KeyTextAlign), label.AlignCenter)

	width := f.textWidth(lab.Text)
	if lab.Upright {
		d := right.Sub(left)
		if l := d.Length(); l > 0 {
			d = d.Mul(1 / l)
		}
		height := blockHeight(lab.Text, f.font().Size)
		width = math.Abs(d.X)*width + math.Abs(d.Y)*height
	}
	gap, ok := label.SolveGap(left, right, full0, full1, label.GapSpec{
		TextWidth:    width,
		Align:        h,
		EdgePadding:  lab.EdgePadding,
		InnerPadding: gapInnerPadding,
		CapPadding:   st.Width / 2,
	})
	if !ok {
		f.addSegment(left, right, st, lab.Class)
		return nil
	}

	if v == label.VAlignMiddle {
		for _, part := range gap.Parts() {
			f.addSegment(part[0], part[1], st, lab.Class)
		}
	} else {
		f.addSegment(left, right, st, lab.Class)
	}

	var pl label.Placement
	if lab.Upright {
		pl = f.placeUpright(gap.Anchor, gap.Dir, v, lab.Text)
	} else {
		pl = f.placer().OnLine(left, right, gap.Anchor, v, h, lab.Text)
	}
	return f.addText(pl, "label")
}

// placeUpright places horizontal text next to a line with direction
// dir.  The text is pushed away from the line along the normal, and
// its anchor and baseline are chosen so that it does not cover the
// line.
func (f *frame) placeUpright(anchor, dir vec.Vec2, v label.VAlign, text string) label.Placement {
	fontSize := f.font().Size
	pl := label.Placement{Pos: anchor}

	if v == label.VAlignMiddle {
		pl.Anchor = label.AnchorMiddle
		pl.Baseline = label.BaselineMiddle
		pl.Lines = label.Layout(text, fontSize, label.BlockCentered)
		return f.clampBlock(pl, fontSize)
	}

	n := label.Perpendicular(dir)
	if v == label.VAlignBottom {
		n = n.Mul(-1)
	}
	pl.Pos = anchor.Add(n.Mul(f.s.Float(KeyTextOffset)))

	switch {
	case n.X < -0.5:
		pl.Anchor = label.AnchorEnd
	case n.X > 0.5:
		pl.Anchor = label.AnchorStart
	default:
		pl.Anchor = label.AnchorMiddle
	}
	switch {
	case n.Y < -0.5:
		pl.Baseline = label.BaselineAlphabetic
		pl.Lines = label.Layout(text, fontSize, label.BlockAbove)
	case n.Y > 0.5:
		pl.Baseline = label.BaselineHanging
		pl.Lines = label.Layout(text, fontSize, label.BlockBelow)
	default:
		pl.Baseline = label.BaselineMiddle
		pl.Lines = label.Layout(text, fontSize, label.BlockCentered)
	}
	return f.clampBlock(pl, fontSize)
}

// clampBlock keeps an unrotated text block inside the vertical extent
// of the chart.
func (f *frame) clampBlock(pl label.Placement, fontSize float64) label.Placement {
	hgt := pl.Height(fontSize)
	var above, below float64
	switch pl.Baseline {
	case label.BaselineAlphabetic:
		above = hgt
	case label.BaselineHanging:
		below = hgt
	default:
		above, below = hgt/2, hgt/2
	}
	pl.Pos.Y = label.ClampVertical(pl.Pos.Y, f.vp.Top+above, f.vp.Bottom-below)
	return pl
}

func blockHeight(text string, fontSize float64) float64 {
	n := len(label.SplitLines(text))
	if n == 0 {
		return 0
	}
	return float64(n-1)*label.Font{Size: fontSize}.LineHeight() + fontSize
}

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

package scene

import (
	"io"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/drawtools/label"
)

// Options control the exporters.
type Options struct {
	Width, Height int

	// Background is the page colour.  Empty means transparent (SVG, PNG)
	// or white (PDF).
	Background string

	// Measurer is used to size text backgrounds and to align text in
	// formats without native text anchors.  If nil,
	// [label.DefaultMeasurer] is used.
	Measurer label.Measurer
}

func (o Options) measurer() label.Measurer {
	if o.Measurer == nil {
		return label.DefaultMeasurer
	}
	return o.Measurer
}

// visit calls the visitor methods for all visible nodes of the layer.
// Hidden groups and handles are skipped.
func visit(l *Layer, fn func(n Node)) {
	for _, top := range l.Nodes() {
		Walk(top, func(n Node) bool {
			switch n := n.(type) {
			case *Group:
				return !n.Hidden
			case *Handle:
				if n.Hidden {
					return false
				}
			}
			fn(n)
			return true
		})
	}
}

// textBox returns the corners of the background rectangle of t, in the
// rotated coordinate system of the text.
func textBox(t *Text, m label.Measurer) (x0, y0, x1, y1 float64) {
	const pad = 3
	var w float64
	for _, l := range t.Lines {
		w = max(w, m.TextWidth(l.Text, t.Font))
	}
	switch t.Anchor {
	case label.AnchorStart:
		x0 = 0
	case label.AnchorEnd:
		x0 = -w
	default:
		x0 = -w / 2
	}
	x1 = x0 + w

	size := t.Font.Size
	first, last := t.Lines[0].DY, t.Lines[len(t.Lines)-1].DY
	shift := baselineShift(t.Baseline, size)
	y0 = first + shift - 0.8*size
	y1 = last + shift + 0.2*size
	return x0 - pad, y0 - pad, x1 + pad, y1 + pad
}

// baselineShift returns the offset from the reference y of a text line
// to its alphabetic baseline.
func baselineShift(b label.Baseline, size float64) float64 {
	switch b {
	case label.BaselineMiddle:
		return 0.3 * size
	case label.BaselineHanging:
		return 0.8 * size
	}
	return 0
}

// anchorShift returns the offset from the reference x of a text line to
// its start.
func anchorShift(a label.TextAnchor, width float64) float64 {
	switch a {
	case label.AnchorMiddle:
		return -width / 2
	case label.AnchorEnd:
		return -width
	}
	return 0
}

// rotate turns p by deg degrees around the origin.  Positive angles turn
// clockwise on screen.
func rotate(p vec.Vec2, deg float64) vec.Vec2 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return vec.Vec2{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y}
}

// errWriter remembers the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

func dashString(d []float64) string {
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = num(v)
	}
	return strings.Join(parts, ",")
}

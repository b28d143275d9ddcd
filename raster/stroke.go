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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke renders the outline of the path using Width, Cap, Dash and
// DashPhase.  Corners are always joined with round joins.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) {
	r.flattenPolylines(p)

	lines, closed := r.lines, r.closed
	if len(r.Dash) > 0 {
		if dashed := r.applyDash(lines); dashed != nil {
			lines = dashed
			closed = nil
		}
	}

	d := r.Width / 2
	r.beginEdges()
	for i, pl := range lines {
		isClosed := closed != nil && closed[i]
		r.strokePolyline(pl, isClosed, d)
	}
	r.rasterize(fillNonZero, emit)
}

// StrokeLine strokes the single segment from a to b.
func (r *Rasterizer) StrokeLine(a, b vec.Vec2, emit EmitFunc) {
	p := &path.Data{}
	p.MoveTo(a).LineTo(b)
	r.Stroke(p, emit)
}

// flattenPolylines converts the path into polylines in user space, one
// per subpath.  For closed subpaths the first point is repeated at the
// end.
func (r *Rasterizer) flattenPolylines(p *path.Data) {
	r.lines = r.lines[:0]
	r.closed = r.closed[:0]

	var current, start vec.Vec2
	inSubpath := false

	appendPoint := func(_, b vec.Vec2) {
		pl := r.lines[len(r.lines)-1]
		if b != pl[len(pl)-1] {
			r.lines[len(r.lines)-1] = append(pl, b)
		}
	}
	ensure := func() {
		if !inSubpath {
			r.lines = append(r.lines, []vec.Vec2{current})
			r.closed = append(r.closed, false)
			start = current
			inSubpath = true
		}
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			current = p.Coords[k]
			k++
			inSubpath = false
			ensure()
		case path.CmdLineTo:
			ensure()
			appendPoint(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			ensure()
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], appendPoint)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			ensure()
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], appendPoint)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if inSubpath {
				appendPoint(current, start)
				r.closed[len(r.closed)-1] = true
			}
			current = start
			inSubpath = false
		}
	}
}

// applyDash splits the polylines according to the dash pattern.  It
// returns nil if the pattern has zero total length.
func (r *Rasterizer) applyDash(lines [][]vec.Vec2) [][]vec.Vec2 {
	dash := r.Dash
	n := len(dash)
	var total float64
	for _, d := range dash {
		total += max(d, 0)
	}
	if n%2 == 1 {
		total *= 2
	}
	if total <= 0 {
		return nil
	}

	phase := math.Mod(r.DashPhase, total)
	if phase < 0 {
		phase += total
	}

	el := func(i int) float64 { return max(dash[i%n], 0) }

	r.dashed = r.dashed[:0]
	for _, pl := range lines {
		idx := 0
		skip := phase
		for skip >= el(idx) {
			skip -= el(idx)
			idx++
		}
		remaining := el(idx) - skip
		on := idx%2 == 0

		var cur []vec.Vec2
		if on {
			cur = []vec.Vec2{pl[0]}
		}
		for i := 1; i < len(pl); i++ {
			a, b := pl[i-1], pl[i]
			seg := b.Sub(a)
			segLen := seg.Length()
			pos := 0.0
			for segLen-pos > remaining {
				pos += remaining
				pt := a.Add(seg.Mul(pos / segLen))
				if on {
					cur = append(cur, pt)
					r.dashed = append(r.dashed, cur)
					cur = nil
				} else {
					cur = []vec.Vec2{pt}
				}
				idx++
				remaining = el(idx)
				on = idx%2 == 0
			}
			remaining -= segLen - pos
			if on {
				cur = append(cur, b)
			}
		}
		if on && len(cur) > 0 {
			r.dashed = append(r.dashed, cur)
		}
	}
	return r.dashed
}

// strokePolyline adds the outline polygons for one polyline to the edge
// list.  All polygons share the same orientation, so that the nonzero
// rule paints their union.
func (r *Rasterizer) strokePolyline(pl []vec.Vec2, closed bool, d float64) {
	if d <= 0 || len(pl) == 0 {
		return
	}

	// collapse zero length segments
	pts := pl[:1:1]
	for _, p := range pl[1:] {
		if p.Sub(pts[len(pts)-1]).Length() > zeroLengthThreshold {
			pts = append(pts, p)
		}
	}

	if len(pts) == 1 {
		switch r.Cap {
		case graphics.LineCapRound:
			r.addCircle(pts[0], d)
		case graphics.LineCapSquare:
			r.addQuad(pts[0].Sub(vec.Vec2{X: d}), pts[0].Add(vec.Vec2{X: d}), d)
		}
		return
	}

	last := len(pts) - 2
	for i := 0; i <= last; i++ {
		a, b := pts[i], pts[i+1]
		if !closed && r.Cap == graphics.LineCapSquare {
			t := b.Sub(a)
			t = t.Mul(1 / t.Length())
			if i == 0 {
				a = a.Sub(t.Mul(d))
			}
			if i == last {
				b = b.Add(t.Mul(d))
			}
		}
		r.addQuad(a, b, d)
	}

	for i := 1; i < len(pts)-1; i++ {
		r.addCircle(pts[i], d)
	}
	if closed {
		r.addCircle(pts[0], d)
	} else if r.Cap == graphics.LineCapRound {
		r.addCircle(pts[0], d)
		r.addCircle(pts[len(pts)-1], d)
	}
}

// addQuad adds the rectangle of half-width d around the segment a-b.
func (r *Rasterizer) addQuad(a, b vec.Vec2, d float64) {
	t := b.Sub(a)
	l := t.Length()
	if l <= zeroLengthThreshold {
		return
	}
	t = t.Mul(1 / l)
	n := vec.Vec2{X: -t.Y, Y: t.X}.Mul(d)
	r.addEdge(a.Add(n), b.Add(n))
	r.addEdge(b.Add(n), b.Sub(n))
	r.addEdge(b.Sub(n), a.Sub(n))
	r.addEdge(a.Sub(n), a.Add(n))
}

// addCircle adds a circle of radius d, traversed clockwise to match the
// orientation of addQuad.
func (r *Rasterizer) addCircle(c vec.Vec2, d float64) {
	dev := max(r.transformLinear(vec.Vec2{X: d}).Length(), r.transformLinear(vec.Vec2{Y: d}).Length())
	n := 8
	if dev > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/dev)
		if step > 0 && !math.IsNaN(step) {
			n = max(int(math.Ceil(2*math.Pi/step)), 8)
		}
	}

	prev := vec.Vec2{X: c.X + d, Y: c.Y}
	for i := 1; i <= n; i++ {
		phi := -2 * math.Pi * float64(i) / float64(n)
		pt := vec.Vec2{X: c.X + d*math.Cos(phi), Y: c.Y + d*math.Sin(phi)}
		r.addEdge(prev, pt)
		prev = pt
	}
}

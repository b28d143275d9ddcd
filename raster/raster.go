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

// Package raster converts the vector geometry of rendered drawings into
// anti-aliased pixel coverage.
//
// The rasteriser accumulates signed area per pixel, one scanline at a
// time, using an active edge list.  Strokes are converted into a set of
// polygons (one per segment, plus caps and joins) which are filled
// together with the nonzero winding rule, so that overlapping parts of a
// semi-transparent line are painted only once.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one scanline.  coverage[i] is the
// coverage of pixel (xMin+i, y), in the range [0, 1].  The slice is only
// valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

// Rasterizer computes pixel coverage for filled and stroked paths.
// Internal buffers are reused between calls.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space.  It must be non-singular.
	CTM matrix.Matrix

	// Clip restricts output to this device rectangle.  The coordinates
	// must be integers.
	Clip rect.Rect

	// Flatness is the maximum distance, in device pixels, between a curve
	// and its polygonal approximation.
	Flatness float64

	// Width is the stroke width in user space units.
	Width float64

	// Cap is the style of stroke end points.
	Cap graphics.LineCapStyle

	// Dash lists alternating on and off lengths in user space units.
	// Nil means a solid line.
	Dash []float64

	// DashPhase is the offset into the dash pattern.
	DashPhase float64

	cover  []float32
	area   []float32
	edges  []edge
	active []int

	xMinDev, xMaxDev float64
	yMinDev, yMaxDev float64

	// stroke state
	polyline []vec.Vec2
	lines    [][]vec.Vec2
	closed   []bool
	dashed   [][]vec.Vec2
}

// NewRasterizer returns a Rasterizer for the given clip rectangle with an
// identity CTM, a width of one unit and butt caps.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
		Width:    1,
		Cap:      graphics.LineCapButt,
	}
}

// Reset restores the default parameters, keeping internal buffers.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Dash = nil
	r.DashPhase = 0
}

// FillNonZero fills the path using the nonzero winding rule.
func (r *Rasterizer) FillNonZero(p *path.Data, emit EmitFunc) {
	r.beginEdges()
	r.walk(p, r.addEdge)
	r.rasterize(fillNonZero, emit)
}

// FillEvenOdd fills the path using the even-odd rule.
func (r *Rasterizer) FillEvenOdd(p *path.Data, emit EmitFunc) {
	r.beginEdges()
	r.walk(p, r.addEdge)
	r.rasterize(fillEvenOdd, emit)
}

// FillPolygon fills a closed polygon given by its vertices in user space.
func (r *Rasterizer) FillPolygon(pts []vec.Vec2, emit EmitFunc) {
	r.beginEdges()
	r.addPolygon(pts)
	r.rasterize(fillNonZero, emit)
}

type fillRule int

const (
	fillNonZero fillRule = iota
	fillEvenOdd
)

// walk flattens the path and calls line for every segment, including the
// closing segments of all subpaths.  Open subpaths are closed implicitly.
func (r *Rasterizer) walk(p *path.Data, line func(a, b vec.Vec2)) {
	var current, start vec.Vec2
	open := false
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open && current != start {
				line(current, start)
			}
			current = p.Coords[k]
			start = current
			open = true
			k++
		case path.CmdLineTo:
			line(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], line)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], line)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				line(current, start)
			}
			current = start
		}
	}
	if open && current != start {
		line(current, start)
	}
}

// transformLinear applies the linear part of the CTM.
func (r *Rasterizer) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(a, b vec.Vec2)) {
	e := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if d := e.Length(); d > r.Flatness {
		n = int(math.Ceil(math.Sqrt(d / r.Flatness)))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(a, b vec.Vec2)) {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))
	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if f := math.Sqrt(3 * m / (4 * r.Flatness)); f > 1 {
			n = int(math.Ceil(f))
		}
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

func (r *Rasterizer) beginEdges() {
	r.edges = r.edges[:0]
	r.xMinDev, r.yMinDev = math.Inf(1), math.Inf(1)
	r.xMaxDev, r.yMaxDev = math.Inf(-1), math.Inf(-1)
}

func (r *Rasterizer) addPolygon(pts []vec.Vec2) {
	n := len(pts)
	if n < 3 {
		return
	}
	for i := range n {
		r.addEdge(pts[i], pts[(i+1)%n])
	}
}

// addEdge transforms a user space segment to device space and records
// it.  Horizontal edges do not contribute to coverage and are dropped.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	x0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	y0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	x1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	y1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold || math.IsNaN(dy) {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	r.xMinDev = min(r.xMinDev, x0, x1)
	r.xMaxDev = max(r.xMaxDev, x0, x1)
	r.yMinDev = min(r.yMinDev, y0, y1)
	r.yMaxDev = max(r.yMaxDev, y0, y1)
}

// rasterize scans the collected edges from top to bottom.
func (r *Rasterizer) rasterize(rule fillRule, emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}
	xMin := max(int(math.Floor(r.xMinDev)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.xMaxDev))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.yMinDev)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.yMaxDev))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin

	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top := float64(y)
		bottom := float64(y + 1)

		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < bottom {
			r.active = append(r.active, next)
			next++
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if max(e.y0, e.y1) <= top {
				r.active[i] = r.active[len(r.active)-1]
				r.active = r.active[:len(r.active)-1]
				continue
			}
			if accumulate(e, y, r.cover, r.area, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		if rule == fillNonZero {
			integrateNonZero(r.cover, r.area)
		} else {
			integrateEvenOdd(r.cover, r.area)
		}
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// accumulate adds the contribution of e within scanline y to the cover
// and area buffers, which are indexed by x-xMin.  Contributions left of
// the buffer are folded into the first pixel.
//
// For every pixel, cover holds the signed height of the edge parts
// crossing the pixel column, and area holds the part of that height
// weighted by the horizontal distance to the right pixel border.
// Integrating cover from the left and adding area gives the coverage.
func accumulate(e *edge, y int, cover, area []float32, xMin, xMax int) bool {
	top := max(float64(y), min(e.y0, e.y1))
	bottom := min(float64(y+1), max(e.y0, e.y1))
	if bottom <= top {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(top-e.y0)
	xBot := e.x0 + e.dxdy*(bottom-e.y0)
	left, right := min(xTop, xBot), max(xTop, xBot)
	pixLeft := int(math.Floor(left))
	pixRight := int(math.Floor(right))

	add := func(pix int, yA, yB float64) {
		h := sign * float32(yB-yA)
		if pix < xMin {
			cover[0] += h
			area[0] += h
			return
		}
		if pix >= xMax {
			return
		}
		xMid := e.x0 + e.dxdy*((yA+yB)/2-e.y0)
		frac := xMid - float64(pix)
		cover[pix-xMin] += h
		area[pix-xMin] += h * float32(1-frac)
	}

	if pixRight < xMin {
		h := sign * float32(bottom-top)
		cover[0] += h
		area[0] += h
		return true
	}
	if pixLeft >= xMax {
		return false
	}
	if pixLeft == pixRight {
		add(pixLeft, top, bottom)
		return true
	}

	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		yA := e.y0 + dydx*(float64(pix)-e.x0)
		yB := e.y0 + dydx*(float64(pix+1)-e.x0)
		lo := max(min(yA, yB), top)
		hi := min(max(yA, yB), bottom)
		if hi > lo {
			add(pix, lo, hi)
		}
	}
	return true
}

func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		m := raw - 2*float32(int(raw/2))
		d := 1 - m
		if d < 0 {
			d = -d
		}
		cover[i] = 1 - d
	}
}

// trimZeros returns the part of coverage between the first and last
// non-zero entries, together with its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	horizontalEdgeThreshold = 1e-10
	zeroLengthThreshold     = 1e-10
)

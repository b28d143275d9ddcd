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
	"fmt"
	"html"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// WriteSVG writes the layer as an SVG document.  Every drawing becomes a
// <g> element carrying its id in a data-id attribute.  Hit areas are
// written as transparent wide strokes, so that the document stays usable
// for pointer hit testing.
func WriteSVG(w io.Writer, l *Layer, opt Options) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(opt.Width, opt.Height)
	if opt.Background != "" {
		canvas.Rect(0, 0, opt.Width, opt.Height, "fill:"+opt.Background)
	}

	for _, top := range l.Nodes() {
		writeSVGNode(canvas, top, opt)
	}

	canvas.End()
	return ew.err
}

func writeSVGNode(canvas *svg.SVG, n Node, opt Options) {
	switch n := n.(type) {
	case *Group:
		var attrs []string
		if n.DataID != "" {
			attrs = append(attrs, attr("data-id", n.DataID))
		}
		if n.Class != "" {
			attrs = append(attrs, attr("class", n.Class))
		}
		if n.Hidden {
			attrs = append(attrs, `visibility="hidden"`)
		}
		canvas.Group(attrs...)
		for _, c := range n.Children {
			writeSVGNode(canvas, c, opt)
		}
		canvas.Gend()

	case *Line:
		d := "M" + point(n.A) + " L" + point(n.B)
		attrs := []string{strokeStyle(n.Stroke)}
		if n.Class != "" {
			attrs = append(attrs, attr("class", n.Class))
		}
		canvas.Path(d, attrs...)

	case *HitArea:
		d := "M" + point(n.A) + " L" + point(n.B)
		canvas.Path(d, "stroke:transparent;fill:none;stroke-width:"+num(n.Width), `class="hit-area"`)

	case *Handle:
		r := n.Radius
		d := fmt.Sprintf("M%s a%s,%s 0 1,0 %s,0 a%s,%s 0 1,0 %s,0 Z",
			point(vec.Vec2{X: n.Center.X - r, Y: n.Center.Y}),
			num(r), num(r), num(2*r), num(r), num(r), num(-2*r))
		attrs := []string{
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", n.Fill, n.Stroke),
			attr("class", "handle"),
			attr("data-index", fmt.Sprint(n.Index)),
		}
		if n.Hidden {
			attrs = append(attrs, `visibility="hidden"`)
		}
		canvas.Path(d, attrs...)

	case *Polygon:
		if len(n.Points) < 3 {
			return
		}
		var b strings.Builder
		for i, p := range n.Points {
			if i == 0 {
				b.WriteString("M")
			} else {
				b.WriteString(" L")
			}
			b.WriteString(point(p))
		}
		b.WriteString(" Z")
		style := fmt.Sprintf("fill:%s;fill-opacity:%s", n.Fill, num(n.Opacity))
		if n.Outline != nil {
			style += ";" + strokeStyle(*n.Outline)
		} else {
			style += ";stroke:none"
		}
		attrs := []string{style}
		if n.Class != "" {
			attrs = append(attrs, attr("class", n.Class))
		}
		canvas.Path(b.String(), attrs...)

	case *Text:
		if len(n.Lines) == 0 {
			return
		}
		canvas.Gtransform(fmt.Sprintf("translate(%s,%s) rotate(%s)", num(n.Pos.X), num(n.Pos.Y), num(n.Angle)))
		if n.Background != "" {
			x0, y0, x1, y1 := textBox(n, opt.measurer())
			d := fmt.Sprintf("M%s,%s H%s V%s H%s Z", num(x0), num(y0), num(x1), num(y1), num(x0))
			canvas.Path(d, "fill:"+n.Background+";stroke:none")
		}
		style := fmt.Sprintf("text-anchor:%s;dominant-baseline:%s;font-size:%spx;fill:%s",
			n.Anchor, n.Baseline, num(n.Font.Size), n.Fill)
		if n.Font.Family != "" {
			style += ";font-family:" + n.Font.Family
		}
		if n.Font.Bold() {
			style += ";font-weight:bold"
		}
		for _, line := range n.Lines {
			attrs := []string{style, attr("dy", num(line.DY))}
			if n.Class != "" {
				attrs = append(attrs, attr("class", n.Class))
			}
			canvas.Text(0, 0, line.Text, attrs...)
		}
		canvas.Gend()
	}
}

func strokeStyle(s Stroke) string {
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s", s.Color, num(s.Width))
	if s.Opacity < 1 {
		style += ";stroke-opacity:" + num(max(s.Opacity, 0))
	}
	if len(s.Dash) > 0 {
		style += ";stroke-dasharray:" + dashString(s.Dash)
	}
	switch s.Cap {
	case graphics.LineCapRound:
		style += ";stroke-linecap:round"
	case graphics.LineCapSquare:
		style += ";stroke-linecap:square"
	}
	return style
}

func point(p vec.Vec2) string {
	return num(p.X) + "," + num(p.Y)
}

// attr formats an XML attribute for use with the svgo element methods,
// which treat arguments containing "=" as attributes.
func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

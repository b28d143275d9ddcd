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
	"fmt"
	"math"
	"strings"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/drawtools/label"
	"seehuhn.de/go/drawtools/scene"
	"seehuhn.de/go/drawtools/viewport"
)

// Trendline is a line segment between two anchor points, optionally
// extended to the left or right edge of the chart.
type Trendline struct {
	Base
}

// Render implements the [Tool] interface.
func (t *Trendline) Render(layer *scene.Layer, vp *viewport.Viewport) (*scene.Group, error) {
	return render(t, layer, vp)
}

func (t *Trendline) draw(f *frame) {
	p0, p1 := f.px[0], f.px[1]
	b := f.bounds()

	// extendLeft and extendRight refer to the screen, not to the order
	// of the anchor points
	left, right, _ := viewport.VisualOrder(p0, p1)
	if f.s.Bool(KeyExtendRight) {
		right = extend(left, right, b)
	}
	if f.s.Bool(KeyExtendLeft) {
		left = extend(right, left, b)
	}

	st := f.stroke()
	f.drawLabeledLine(left, right, left, right, st, lineLabel{
		Text:        t.Text,
		EdgePadding: trendlineEdgePadding,
	})

	if f.s.Bool(KeyArrowStart) {
		f.addArrow(p1, p0, st)
	}
	if f.s.Bool(KeyArrowEnd) {
		f.addArrow(p0, p1, st)
	}

	if info := t.infoText(f); info != "" {
		mid := p0.Add(p1).Mul(0.5)
		ll, rr, _ := viewport.VisualOrder(p0, p1)
		pl := f.placer().OnLine(ll, rr, mid, label.VAlignBottom, label.AlignCenter, info)
		txt := f.addText(pl, "info")
		if txt.Background == "" {
			txt.Background = "#ffffff"
		}
	}
}

// extend moves the point to through along the line from the point from,
// up to the edge of the viewport.  Points which are already further out
// are kept.
func extend(from, to vec.Vec2, b viewport.Bounds) vec.Vec2 {
	p := viewport.ClipRay(from, to, b)
	if p.Sub(from).Length() > to.Sub(from).Length() {
		return p
	}
	return to
}

// addArrow draws a filled arrow head at tip, pointing away from tail.
func (f *frame) addArrow(tail, tip vec.Vec2, st scene.Stroke) {
	d := tip.Sub(tail)
	l := d.Length()
	if l < 1e-6 {
		return
	}
	d = d.Mul(1 / l)
	n := vec.Vec2{X: -d.Y, Y: d.X}

	size := max(3*st.Width, f.vp.StrokeWidth(8))
	base := tip.Sub(d.Mul(size))
	f.g.Add(&scene.Polygon{
		Points:  []vec.Vec2{tip, base.Add(n.Mul(size / 2)), base.Sub(n.Mul(size / 2))},
		Fill:    st.Color,
		Opacity: st.Opacity,
		Class:   "arrow",
	})
}

// infoText returns the enabled metrics of the info box, one per line.
// The result is empty if the info box is disabled.
func (t *Trendline) infoText(f *frame) string {
	info := f.s.Sub(KeyInfoSettings)
	if !info.Bool(InfoShow) {
		return ""
	}
	a, b := t.Points[0], t.Points[1]
	prec := f.s.Int(KeyPrecision)

	var lines []string
	delta := b.Y - a.Y
	if info.Bool(InfoPriceDelta) {
		lines = append(lines, signed(FormatPrice(delta, prec)))
	}
	if info.Bool(InfoPercentChange) {
		if pc, ok := percentChange(a.Y, b.Y); ok {
			lines = append(lines, signed(pc.StringFixed(2))+"%")
		}
	}
	if info.Bool(InfoPips) {
		if pip := f.s.Float(KeyPipSize); pip > 0 {
			lines = append(lines, fmt.Sprintf("%.1f pips", delta/pip))
		}
	}
	if info.Bool(InfoBars) {
		lines = append(lines, fmt.Sprintf("%d bars", int(math.Round(b.X-a.X))))
	}
	p0, p1 := f.px[0], f.px[1]
	if info.Bool(InfoDistance) {
		lines = append(lines, fmt.Sprintf("%.0f px", p1.Sub(p0).Length()))
	}
	if info.Bool(InfoAngle) {
		// screen y grows downwards, angles are reported counter-clockwise
		d := p1.Sub(p0)
		deg := 0.0
		if d.X != 0 || d.Y != 0 {
			deg = math.Atan2(-d.Y, d.X) * 180 / math.Pi
		}
		lines = append(lines, fmt.Sprintf("%.1f°", deg))
	}
	return strings.Join(lines, "\n")
}

func signed(s string) string {
	if s == "" || strings.HasPrefix(s, "-") {
		return s
	}
	return "+" + s
}

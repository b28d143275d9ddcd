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
	"encoding/json"
	"slices"
	"strconv"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/drawtools/label"
	"seehuhn.de/go/drawtools/scene"
	"seehuhn.de/go/drawtools/viewport"
)

// FibLevel is one ratio of a Fibonacci tool.
//
// Color, LineType and LineWidth override the style of the tool for
// this level only.  Empty values use the tool style.
type FibLevel struct {
	Value     float64 `json:"value"`
	Label     string  `json:"label,omitempty"`
	Color     string  `json:"color,omitempty"`
	Visible   bool    `json:"visible"`
	LineType  string  `json:"lineType,omitempty"`
	LineWidth float64 `json:"lineWidth,omitempty"`
}

// UnmarshalJSON decodes a level.  Levels without a "visible" field are
// visible.
func (l *FibLevel) UnmarshalJSON(data []byte) error {
	type plain FibLevel
	tmp := plain{Visible: true}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*l = FibLevel(tmp)
	return nil
}

// fibRatios are the ratios of the default level table.
var fibRatios = []float64{
	0, 0.236, 0.382, 0.5, 0.618, 0.65, 0.786, 1,
	1.272, 1.414, 1.618, 2, 2.272, 2.414, 2.618,
	3, 3.618, 4.236, 4.618,
}

var fibColors = []string{
	"#787b86", "#f23645", "#ff9800", "#4caf50", "#089981", "#00bcd4", "#2962ff", "#787b86",
	"#9c27b0", "#e91e63", "#2962ff", "#f23645", "#9c27b0", "#e91e63", "#f23645",
	"#673ab7", "#2962ff", "#f23645", "#9c27b0",
}

var fibVisible = map[Kind][]float64{
	KindFibRetracement: {0, 0.236, 0.382, 0.5, 0.618, 0.786, 1, 1.618, 2.618, 3.618, 4.236},
	KindFibExtension:   {0, 0.382, 0.618, 1, 1.272, 1.414, 1.618, 2, 2.618, 3.618, 4.236},
}

// DefaultLevels returns the default level table of a Fibonacci tool
// kind.  The table always has 19 levels; which ones are visible depends
// on the kind.
func DefaultLevels(k Kind) []FibLevel {
	visible := fibVisible[k]
	res := make([]FibLevel, len(fibRatios))
	for i, r := range fibRatios {
		res[i] = FibLevel{
			Value:   r,
			Color:   fibColors[i],
			Visible: slices.Contains(visible, r),
		}
	}
	return res
}

// Fibonacci is a Fibonacci retracement or extension between two anchor
// points.  Each level is drawn as a horizontal line at
//
//	p1.y + (p2.y - p1.y) × ratio
//
// with the ratio replaced by 1 - ratio if the reverse option is set.
type Fibonacci struct {
	Base
	Levels []FibLevel
}

// Render implements the [Tool] interface.
func (t *Fibonacci) Render(layer *scene.Layer, vp *viewport.Viewport) (*scene.Group, error) {
	return render(t, layer, vp)
}

// Payload implements the [Tool] interface.
func (t *Fibonacci) Payload() Payload {
	p := t.Base.Payload()
	p.Levels = slices.Clone(t.Levels)
	if p.Levels == nil {
		p.Levels = []FibLevel{}
	}
	return p
}

// PriceAtLevel returns the price of the given ratio.  The tool must
// have two points.
func (t *Fibonacci) PriceAtLevel(ratio float64) float64 {
	if t.Style.Bool(KeyReverse, false) {
		ratio = 1 - ratio
	}
	p1, p2 := t.Points[0], t.Points[1]
	return p1.Y + (p2.Y-p1.Y)*ratio
}

// levelStroke returns the stroke of one level.  Per-level values take
// precedence over the levelsLineStyle and levelsLineWidth options; the
// default is a solid line for the ratios 0 and 1 and a dashed line for
// all others.
func (f *frame) levelStroke(l FibLevel) scene.Stroke {
	col := f.s.Color(KeyLineColor)
	if _, ok := scene.ParseColor(l.Color); ok {
		col = l.Color
	}

	width := f.s.Float(KeyLineWidth)
	if w := f.s.Float(KeyLevelsLineWidth); w > 0 {
		width = w
	}
	if l.LineWidth > 0 {
		width = l.LineWidth
	}

	var dash []float64
	switch {
	case l.LineType != "":
		dash = dashPattern(l.LineType)
	case f.s.String(KeyLevelsLineStyle) != "":
		dash = dashPattern(f.s.String(KeyLevelsLineStyle))
	case l.Value != 0 && l.Value != 1:
		dash = dashPattern("dashed")
	}
	return f.strokeWith(col, width, dash)
}

func (t *Fibonacci) draw(f *frame) {
	p0, p1 := f.px[0], f.px[1]

	left := min(p0.X, p1.X)
	right := max(p0.X, p1.X)
	if f.s.Bool(KeyExtendLeft) {
		left = f.vp.Left
	}
	if f.s.Bool(KeyExtendRight) {
		right = f.vp.Right
	}
	left = max(left, f.vp.Left)
	right = min(right, f.vp.Right)

	type level struct {
		FibLevel
		price, y float64
	}
	var visible []level
	for _, l := range t.Levels {
		if !l.Visible {
			continue
		}
		price := t.PriceAtLevel(l.Value)
		visible = append(visible, level{l, price, f.vp.YScale.Apply(price)})
	}

	if f.s.Bool(KeyShowZones) && right > left {
		opacity := min(max(f.s.Float(KeyZoneOpacity), 0), 1)
		for i := 1; i < len(visible); i++ {
			y0 := min(max(visible[i-1].y, f.vp.Top), f.vp.Bottom)
			y1 := min(max(visible[i].y, f.vp.Top), f.vp.Bottom)
			if y0 == y1 {
				continue
			}
			fill := visible[i].Color
			if _, ok := scene.ParseColor(fill); !ok {
				fill = f.s.Color(KeyLineColor)
			}
			f.g.Add(&scene.Polygon{
				Points: []vec.Vec2{
					{X: left, Y: y0}, {X: right, Y: y0},
					{X: right, Y: y1}, {X: left, Y: y1},
				},
				Fill:    fill,
				Opacity: opacity,
				Class:   "zone",
			})
		}
	}

	if f.s.Bool(KeyShowTrendline) {
		st := f.strokeWith(f.s.Color(KeyLineColor), 1, dashPattern("dashed"))
		if a, b, ok := viewport.ClipSegment(p0, p1, f.bounds()); ok {
			f.addSegment(a, b, st, "trendline")
		}
	}

	showLevels := f.s.Bool(KeyShowLevels)
	showPrices := f.s.Bool(KeyShowPrices)
	prec := f.s.Int(KeyPrecision)
	fontSize := f.font().Size
	for _, l := range visible {
		if l.y < f.vp.Top || l.y > f.vp.Bottom || right <= left {
			continue
		}
		st := f.levelStroke(l.FibLevel)
		a := vec.Vec2{X: left, Y: l.y}
		b := vec.Vec2{X: right, Y: l.y}
		f.addSegment(a, b, st, "level")

		text := levelText(l.FibLevel, FormatPrice(l.price, prec), showLevels, showPrices)
		if text == "" {
			continue
		}
		pl := label.Placement{
			Pos:      vec.Vec2{X: left - fibLabelGap, Y: l.y},
			Anchor:   label.AnchorEnd,
			Baseline: label.BaselineMiddle,
			Lines:    label.Layout(text, fontSize, label.BlockCentered),
		}
		if pl.Pos.X-f.textWidth(text) < f.vp.Left {
			// no room on the left, put the label above the line
			pl.Pos = vec.Vec2{X: left + fibLabelGap, Y: l.y - fibLabelGap/2}
			pl.Anchor = label.AnchorStart
			pl.Baseline = label.BaselineAlphabetic
		}
		txt := f.addText(pl, "level-label")
		txt.Fill = st.Color
	}

	if t.Text != "" {
		top := min(p0.Y, p1.Y)
		pl := label.Placement{
			Pos:      vec.Vec2{X: (left + right) / 2, Y: top - f.s.Float(KeyTextOffset)},
			Anchor:   label.AnchorMiddle,
			Baseline: label.BaselineAlphabetic,
			Lines:    label.Layout(t.Text, fontSize, label.BlockAbove),
		}
		f.addText(f.clampBlock(pl, fontSize), "label")
	}
}

// fibLabelGap is the distance between a level label and its line.
const fibLabelGap = 6

// levelText returns the label of a level, "<ratio> (<price>)" when both
// parts are enabled.
func levelText(l FibLevel, price string, showLevel, showPrice bool) string {
	ratio := l.Label
	if ratio == "" {
		ratio = strconv.FormatFloat(l.Value, 'f', -1, 64)
	}
	switch {
	case showLevel && showPrice:
		return ratio + " (" + price + ")"
	case showLevel:
		return ratio
	case showPrice:
		return price
	}
	return ""
}

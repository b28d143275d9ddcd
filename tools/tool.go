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
	"slices"

	"github.com/google/uuid"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/drawtools/label"
	"seehuhn.de/go/drawtools/scene"
	"seehuhn.de/go/drawtools/viewport"
)

// Tool is a drawing on a chart.
type Tool interface {
	// Kind returns the type of the drawing.
	Kind() Kind

	// Common returns the state shared by all kinds of tools.
	Common() *Base

	// RequiredPoints returns the number of anchor points needed for
	// rendering.
	RequiredPoints() int

	// Render replaces the subtree of this tool in layer by a new one,
	// built for the given viewport.  If the tool is hidden or does not
	// have enough points yet, the old subtree is removed and nil is
	// returned.  An error is only returned for an unusable viewport.
	Render(layer *scene.Layer, vp *viewport.Viewport) (*scene.Group, error)

	// Payload returns the JSON representation of the tool.
	Payload() Payload
}

// Base holds the state shared by all tools.
type Base struct {
	ID      string
	Points  []Point
	Style   Style // user overrides, see DefaultStyle for the rest
	Text    string
	Visible bool
	Locked  bool
	Meta    Meta

	// Selected shows the drag handles.  It is not serialised.
	Selected bool

	kind Kind
}

var constructors = map[Kind]func(b Base) Tool{
	KindTrendline:      func(b Base) Tool { return &Trendline{Base: b} },
	KindHorizontalLine: func(b Base) Tool { return &HorizontalLine{Base: b} },
	KindHorizontalRay:  func(b Base) Tool { return &HorizontalLine{Base: b} },
	KindVerticalLine:   func(b Base) Tool { return &VerticalLine{Base: b} },
	KindRay:            func(b Base) Tool { return &Ray{Base: b} },
	KindExtendedLine:   func(b Base) Tool { return &ExtendedLine{Base: b} },
	KindCrossLine:      func(b Base) Tool { return &CrossLine{Base: b} },
	KindFibRetracement: func(b Base) Tool { return &Fibonacci{Base: b, Levels: DefaultLevels(b.kind)} },
	KindFibExtension:   func(b Base) Tool { return &Fibonacci{Base: b, Levels: DefaultLevels(b.kind)} },
}

// New creates a visible tool with a fresh id.  The style may be nil.
func New(k Kind, points []Point, style Style) (Tool, error) {
	mk, ok := constructors[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	b := Base{
		ID:      uuid.NewString(),
		Points:  slices.Clone(points),
		Style:   style.Clone(),
		Visible: true,
		Meta:    newMeta(),
		kind:    k,
	}
	return mk(b), nil
}

// Kind implements the [Tool] interface.
func (b *Base) Kind() Kind {
	return b.kind
}

// Common implements the [Tool] interface.
func (b *Base) Common() *Base {
	return b
}

// RequiredPoints implements the [Tool] interface.
func (b *Base) RequiredPoints() int {
	return b.kind.RequiredPoints()
}

// Ready reports whether the tool has enough points to be rendered.
func (b *Base) Ready() bool {
	return len(b.Points) >= b.RequiredPoints()
}

func (b *Base) touch() {
	b.Meta.UpdatedAt = stamp()
}

// SetPoints replaces all anchor points.
func (b *Base) SetPoints(points []Point) error {
	if b.Locked {
		return ErrLocked
	}
	b.Points = slices.Clone(points)
	b.touch()
	return nil
}

// MovePoint moves the anchor point with index i.
func (b *Base) MovePoint(i int, p Point) error {
	if b.Locked {
		return ErrLocked
	}
	if i < 0 || i >= len(b.Points) {
		return ErrPointIndex
	}
	b.Points[i] = p
	b.touch()
	return nil
}

// Translate moves all anchor points by the given amount, in bars and
// price units.
func (b *Base) Translate(dx, dy float64) error {
	if b.Locked {
		return ErrLocked
	}
	for i := range b.Points {
		b.Points[i].X += dx
		b.Points[i].Y += dy
	}
	b.touch()
	return nil
}

// SetStyle sets a single style option.  A nil value restores the
// default.
func (b *Base) SetStyle(key string, value any) {
	if value == nil {
		delete(b.Style, key)
	} else {
		if b.Style == nil {
			b.Style = Style{}
		}
		b.Style[key] = normalizeValue(value)
	}
	b.touch()
}

// ApplyStyle merges the given options into the style of the tool.
func (b *Base) ApplyStyle(s Style) {
	b.Style = b.Style.Merge(s).Clone()
	b.touch()
}

// SetText changes the label text.
func (b *Base) SetText(text string) {
	b.Text = text
	b.touch()
}

// SetVisible shows or hides the tool.
func (b *Base) SetVisible(visible bool) {
	b.Visible = visible
	b.touch()
}

// SetLocked locks or unlocks the anchor points.
func (b *Base) SetLocked(locked bool) {
	b.Locked = locked
	b.touch()
}

// EffectiveStyle returns the complete style of the tool, with defaults
// filled in.
func (b *Base) EffectiveStyle() Style {
	return DefaultStyle(b.kind).Merge(b.Style)
}

// drawer is implemented by all tool variants.
type drawer interface {
	Tool
	draw(f *frame)
}

// render is the part of Render common to all tools.
func render(t drawer, layer *scene.Layer, vp *viewport.Viewport) (*scene.Group, error) {
	b := t.Common()
	pos := -1
	if layer != nil {
		pos = layer.Remove(b.ID)
	}
	if err := vp.Check(); err != nil {
		return nil, err
	}
	if !b.Visible || !b.Ready() {
		return nil, nil
	}

	f := newFrame(b, vp)
	for _, p := range f.px {
		if !finite(p) {
			return nil, nil
		}
	}
	t.draw(f)
	f.addHandles()

	if layer != nil {
		layer.Insert(pos, f.g)
	}
	return f.g, nil
}

// frame is the state of a single render call.
type frame struct {
	b  *Base
	vp *viewport.Viewport
	s  styleView
	px []vec.Vec2 // anchor points in pixels
	g  *scene.Group
}

func newFrame(b *Base, vp *viewport.Viewport) *frame {
	n := b.RequiredPoints()
	px := make([]vec.Vec2, n)
	for i := range px {
		px[i] = vp.ToPixel(b.Points[i].X, b.Points[i].Y)
	}
	return &frame{
		b:  b,
		vp: vp,
		s:  styleView{user: b.Style, def: DefaultStyle(b.kind)},
		px: px,
		g: &scene.Group{
			DataID: b.ID,
			Class:  string(b.kind),
		},
	}
}

func (f *frame) bounds() viewport.Bounds {
	return f.vp.Bounds()
}

func (f *frame) stroke() scene.Stroke {
	return f.strokeWith(f.s.Color(KeyLineColor), f.s.Float(KeyLineWidth), f.dash())
}

func (f *frame) strokeWith(col string, width float64, dash []float64) scene.Stroke {
	width = max(width, 0)
	var scaled []float64
	for _, d := range dash {
		scaled = append(scaled, f.vp.StrokeWidth(d))
	}
	return scene.Stroke{
		Color:   col,
		Width:   f.vp.StrokeWidth(width),
		Dash:    scaled,
		Opacity: min(max(f.s.Float(KeyOpacity), 0), 1),
		Cap:     capStyle(f.s.String(KeyLineCap)),
	}
}

func capStyle(name string) graphics.LineCapStyle {
	switch name {
	case "round":
		return graphics.LineCapRound
	case "square":
		return graphics.LineCapSquare
	}
	return graphics.LineCapButt
}

// dash returns the dash pattern of the main line.  An explicit lineDash
// takes precedence over the named lineStyle.
func (f *frame) dash() []float64 {
	if d := f.s.user.Floats(KeyLineDash, nil); len(d) > 0 {
		return d
	}
	return dashPattern(f.s.String(KeyLineStyle))
}

func (f *frame) font() label.Font {
	return label.Font{
		Family: f.s.String(KeyFontFamily),
		Size:   max(f.s.Float(KeyFontSize), 1),
		Weight: f.s.String(KeyFontWeight),
	}
}

func (f *frame) placer() label.Placer {
	return label.Placer{
		Offset:   f.s.Float(KeyTextOffset),
		FontSize: f.font().Size,
		Top:      f.vp.Top,
		Bottom:   f.vp.Bottom,
	}
}

func (f *frame) textWidth(text string) float64 {
	return label.BlockWidth(f.vp.Measurer(), text, f.font())
}

// addSegment adds a painted line together with its hit area.
func (f *frame) addSegment(a, b vec.Vec2, st scene.Stroke, class string) {
	f.g.Add(
		&scene.Line{A: a, B: b, Stroke: st, Class: class},
		&scene.HitArea{A: a, B: b, Width: f.vp.StrokeWidth(max(f.s.Float(KeyHitWidth), st.Width))},
	)
}

func (f *frame) addText(pl label.Placement, class string) *scene.Text {
	txt := &scene.Text{
		Placement:  pl,
		Font:       f.font(),
		Fill:       f.s.Color(KeyTextColor),
		Class:      class,
		Background: f.s.Color(KeyTextBackground),
	}
	f.g.Add(txt)
	return txt
}

// addHandles adds one drag handle per anchor point.  Handles are hidden
// unless the tool is selected, and locked tools have none.
func (f *frame) addHandles() {
	if f.b.Locked {
		return
	}
	r := f.vp.StrokeWidth(max(f.s.Float(KeyHandleRadius), 0))
	for i, p := range f.handlePoints() {
		f.g.Add(&scene.Handle{
			Center: p,
			Radius: r,
			Index:  i,
			Fill:   "#ffffff",
			Stroke: f.s.Color(KeyLineColor),
			Hidden: !f.b.Selected,
		})
	}
}

// handlePoints returns the on-screen positions of the anchor points.
// Tools with an infinite extent keep their handles inside the viewport.
func (f *frame) handlePoints() []vec.Vec2 {
	switch f.b.kind {
	case KindHorizontalLine:
		p := f.px[0]
		p.X = (f.vp.Left + f.vp.Right) / 2
		return []vec.Vec2{p}
	case KindVerticalLine:
		p := f.px[0]
		p.Y = (f.vp.Top + f.vp.Bottom) / 2
		return []vec.Vec2{p}
	}
	return f.px
}

func finite(p vec.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// styleView resolves style options against the defaults of a kind.
type styleView struct {
	user, def Style
}

func (s styleView) Float(key string) float64 {
	return s.user.Float(key, s.def.Float(key, 0))
}

func (s styleView) Int(key string) int {
	return s.user.Int(key, s.def.Int(key, 0))
}

func (s styleView) Bool(key string) bool {
	return s.user.Bool(key, s.def.Bool(key, false))
}

func (s styleView) String(key string) string {
	return s.user.String(key, s.def.String(key, ""))
}

func (s styleView) Color(key string) string {
	return s.user.Color(key, s.def.Color(key, ""))
}

func (s styleView) Sub(key string) styleView {
	return styleView{user: s.user.Sub(key), def: s.def.Sub(key)}
}

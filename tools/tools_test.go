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
	"errors"
	"math"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/drawtools/scene"
	"seehuhn.de/go/drawtools/viewport"
)

// chartViewport maps bars 0..100 to x = 0..800 and prices 0..300 to
// y = 600..0.
func chartViewport(t *testing.T) *viewport.Viewport {
	t.Helper()
	vp, err := viewport.New(&viewport.StaticHost{
		X: viewport.LinearScale{Domain: [2]float64{0, 100}, Pixels: [2]float64{0, 800}},
		Y: viewport.LinearScale{Domain: [2]float64{0, 300}, Pixels: [2]float64{600, 0}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return vp
}

// pixelViewport uses pixel coordinates as chart coordinates.
func pixelViewport(t *testing.T) *viewport.Viewport {
	t.Helper()
	vp, err := viewport.New(&viewport.StaticHost{
		X: viewport.LinearScale{Domain: [2]float64{0, 800}, Pixels: [2]float64{0, 800}},
		Y: viewport.LinearScale{Domain: [2]float64{0, 600}, Pixels: [2]float64{0, 600}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return vp
}

func fixClock(t *testing.T) {
	t.Helper()
	ms := int64(1_700_000_000_000)
	saved := now
	now = func() time.Time {
		ms += 1000
		return time.UnixMilli(ms)
	}
	t.Cleanup(func() { now = saved })
}

func mustNew(t *testing.T, k Kind, style Style, points ...Point) Tool {
	t.Helper()
	tool, err := New(k, points, style)
	if err != nil {
		t.Fatal(err)
	}
	return tool
}

func collectLines(g *scene.Group) []*scene.Line {
	var res []*scene.Line
	scene.Walk(g, func(n scene.Node) bool {
		if l, ok := n.(*scene.Line); ok {
			res = append(res, l)
		}
		return true
	})
	return res
}

func collectTexts(g *scene.Group, class string) []*scene.Text {
	var res []*scene.Text
	scene.Walk(g, func(n scene.Node) bool {
		if txt, ok := n.(*scene.Text); ok && txt.Class == class {
			res = append(res, txt)
		}
		return true
	})
	return res
}

func near(a, b vec.Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func sameSegment(l *scene.Line, a, b vec.Vec2) bool {
	return near(l.A, a, 1e-6) && near(l.B, b, 1e-6) ||
		near(l.A, b, 1e-6) && near(l.B, a, 1e-6)
}

func TestTrendlineEndpoints(t *testing.T) {
	vp := chartViewport(t)
	tool := mustNew(t, KindTrendline, nil, Point{0, 100}, Point{10, 200})

	g, err := tool.Render(nil, vp)
	if err != nil {
		t.Fatal(err)
	}
	lines := collectLines(g)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if !sameSegment(lines[0], vec.Vec2{X: 0, Y: 400}, vec.Vec2{X: 80, Y: 200}) {
		t.Errorf("line = %v-%v", lines[0].A, lines[0].B)
	}
	if info := collectTexts(g, "info"); len(info) != 0 {
		t.Errorf("unexpected info box %v", info[0].Lines)
	}
}

func TestTrendlineInfo(t *testing.T) {
	vp := chartViewport(t)
	tool := mustNew(t, KindTrendline, Style{
		KeyInfoSettings: map[string]any{InfoShow: true},
	}, Point{0, 100}, Point{10, 200})

	g, err := tool.Render(nil, vp)
	if err != nil {
		t.Fatal(err)
	}
	info := collectTexts(g, "info")
	if len(info) != 1 {
		t.Fatalf("got %d info boxes, want 1", len(info))
	}
	var got []string
	for _, l := range info[0].Lines {
		got = append(got, l.Text)
	}
	want := []string{"+100.00", "+100.00%", "10 bars", "68.2°"}
	if !slices.Equal(got, want) {
		t.Errorf("info = %q, want %q", got, want)
	}
}

func TestTrendlineExtend(t *testing.T) {
	vp := pixelViewport(t)
	tool := mustNew(t, KindTrendline, Style{KeyExtendRight: true},
		Point{100, 300}, Point{200, 310})

	g, err := tool.Render(nil, vp)
	if err != nil {
		t.Fatal(err)
	}
	lines := collectLines(g)
	if len(lines) != 1 || !sameSegment(lines[0], vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 800, Y: 370}) {
		t.Errorf("unexpected lines %v", lines)
	}

	// the order of the points does not matter
	tool.Common().SetPoints([]Point{{200, 310}, {100, 300}})
	g, _ = tool.Render(nil, vp)
	lines = collectLines(g)
	if len(lines) != 1 || !sameSegment(lines[0], vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 800, Y: 370}) {
		t.Errorf("unexpected lines %v", lines)
	}
}

func TestTrendlineArrows(t *testing.T) {
	vp := pixelViewport(t)
	tool := mustNew(t, KindTrendline, Style{KeyArrowEnd: true},
		Point{100, 100}, Point{300, 100})
	g, _ := tool.Render(nil, vp)

	var arrows []*scene.Polygon
	scene.Walk(g, func(n scene.Node) bool {
		if p, ok := n.(*scene.Polygon); ok && p.Class == "arrow" {
			arrows = append(arrows, p)
		}
		return true
	})
	if len(arrows) != 1 {
		t.Fatalf("got %d arrows, want 1", len(arrows))
	}
	if !near(arrows[0].Points[0], vec.Vec2{X: 300, Y: 100}, 1e-9) {
		t.Errorf("arrow tip at %v", arrows[0].Points[0])
	}
}

func TestRayScenario(t *testing.T) {
	vp := pixelViewport(t)
	tool := mustNew(t, KindRay, nil, Point{0, 100}, Point{5, 150})

	g, err := tool.Render(nil, vp)
	if err != nil {
		t.Fatal(err)
	}
	lines := collectLines(g)
	if len(lines) != 1 || !sameSegment(lines[0], vec.Vec2{X: 0, Y: 100}, vec.Vec2{X: 50, Y: 600}) {
		t.Errorf("unexpected lines %v", lines)
	}

	tool.Common().SetPoints([]Point{{0, 100}, {5, 101}})
	g, _ = tool.Render(nil, vp)
	lines = collectLines(g)
	if len(lines) != 1 || !sameSegment(lines[0], vec.Vec2{X: 0, Y: 100}, vec.Vec2{X: 800, Y: 260}) {
		t.Errorf("unexpected lines %v", lines)
	}
}

func TestExtendedLine(t *testing.T) {
	vp := pixelViewport(t)
	tool := mustNew(t, KindExtendedLine, nil, Point{200, 310}, Point{100, 300})

	g, _ := tool.Render(nil, vp)
	lines := collectLines(g)
	if len(lines) != 1 || !sameSegment(lines[0], vec.Vec2{X: 0, Y: 290}, vec.Vec2{X: 800, Y: 370}) {
		t.Errorf("unexpected lines %v", lines)
	}
}

func TestHorizontalPriceLabel(t *testing.T) {
	vp, err := viewport.New(&viewport.StaticHost{
		X: viewport.LinearScale{Domain: [2]float64{0, 100}, Pixels: [2]float64{0, 800}},
		Y: viewport.LinearScale{Domain: [2]float64{1, 2}, Pixels: [2]float64{600, 0}},
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, k := range []Kind{KindHorizontalLine, KindHorizontalRay} {
		tool := mustNew(t, k, nil, Point{40, 1.2345})
		g, err := tool.Render(nil, vp)
		if err != nil {
			t.Fatal(err)
		}
		labels := collectTexts(g, "price-label")
		if len(labels) != 1 {
			t.Fatalf("%s: got %d price labels", k, len(labels))
		}
		if got := labels[0].Lines[0].Text; got != "1.23450" {
			t.Errorf("%s: price label %q, want %q", k, got, "1.23450")
		}

		lines := collectLines(g)
		if len(lines) != 1 {
			t.Fatalf("%s: got %d lines", k, len(lines))
		}
		wantLeft := 0.0
		if k == KindHorizontalRay {
			wantLeft = 320
		}
		if l := lines[0]; math.Abs(math.Min(l.A.X, l.B.X)-wantLeft) > 1e-9 || math.Max(l.A.X, l.B.X) != 800 {
			t.Errorf("%s: line %v-%v", k, l.A, l.B)
		}
		if lines[0].Stroke.Dash == nil {
			t.Errorf("%s: default line style should be dotted", k)
		}
	}
}

func TestVerticalLineGap(t *testing.T) {
	vp := chartViewport(t)
	tool := mustNew(t, KindVerticalLine, nil, Point{50, 0})
	tool.Common().SetText("Session Open")

	g, err := tool.Render(nil, vp)
	if err != nil {
		t.Fatal(err)
	}
	lines := collectLines(g)
	if len(lines) != 2 {
		t.Fatalf("got %d line segments, want 2", len(lines))
	}
	var drawn float64
	for _, l := range lines {
		drawn += l.B.Sub(l.A).Length()
		if l.A.X != 400 || l.B.X != 400 {
			t.Errorf("segment %v-%v is not at x=400", l.A, l.B)
		}
	}

	// 12 glyphs at 0.55em, 4px inner padding and 1px cap padding per side
	gap := 12*0.55*12 + 2*gapInnerPadding + 2*1
	if math.Abs(drawn-(600-gap)) > 1 {
		t.Errorf("drawn length %g, want %g", drawn, 600-gap)
	}

	txt := collectTexts(g, "label")
	if len(txt) != 1 {
		t.Fatalf("got %d labels", len(txt))
	}
	if txt[0].Angle != 90 || !near(txt[0].Pos, vec.Vec2{X: 400, Y: 300}, 1e-6) {
		t.Errorf("label at %v, angle %g", txt[0].Pos, txt[0].Angle)
	}

	var hits int
	scene.Walk(g, func(n scene.Node) bool {
		if _, ok := n.(*scene.HitArea); ok {
			hits++
		}
		return true
	})
	if hits != 2 {
		t.Errorf("got %d hit areas, want one per segment", hits)
	}
}

func TestVerticalLineUpright(t *testing.T) {
	vp := chartViewport(t)
	tool := mustNew(t, KindVerticalLine, Style{KeyTextRotate: false}, Point{50, 0})
	tool.Common().SetText("Open")

	g, _ := tool.Render(nil, vp)
	var drawn float64
	for _, l := range collectLines(g) {
		drawn += l.B.Sub(l.A).Length()
	}
	gap := 12.0 + 2*gapInnerPadding + 2*1
	if math.Abs(drawn-(600-gap)) > 1e-6 {
		t.Errorf("drawn length %g, want %g", drawn, 600-gap)
	}
	txt := collectTexts(g, "label")
	if len(txt) != 1 || txt[0].Angle != 0 {
		t.Errorf("expected one horizontal label")
	}
}

func TestCrossLine(t *testing.T) {
	vp := chartViewport(t)
	tool := mustNew(t, KindCrossLine, nil, Point{50, 150})

	g, _ := tool.Render(nil, vp)
	lines := collectLines(g)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !sameSegment(lines[0], vec.Vec2{X: 0, Y: 300}, vec.Vec2{X: 800, Y: 300}) {
		t.Errorf("horizontal line %v-%v", lines[0].A, lines[0].B)
	}
	if !sameSegment(lines[1], vec.Vec2{X: 400, Y: 0}, vec.Vec2{X: 400, Y: 600}) {
		t.Errorf("vertical line %v-%v", lines[1].A, lines[1].B)
	}
}

func TestFibonacciPriceAtLevel(t *testing.T) {
	tool := mustNew(t, KindFibRetracement, nil, Point{0, 100}, Point{10, 200})
	fib := tool.(*Fibonacci)

	if got := fib.PriceAtLevel(0.618); math.Abs(got-161.8) > 1e-9 {
		t.Errorf("PriceAtLevel(0.618) = %g, want 161.8", got)
	}
	fib.SetStyle(KeyReverse, true)
	if got := fib.PriceAtLevel(0.618); math.Abs(got-138.2) > 1e-9 {
		t.Errorf("reversed PriceAtLevel(0.618) = %g, want 138.2", got)
	}
}

func TestFibonacciRender(t *testing.T) {
	vp := chartViewport(t)
	tool := mustNew(t, KindFibRetracement, nil, Point{0, 100}, Point{10, 200})

	g, err := tool.Render(nil, vp)
	if err != nil {
		t.Fatal(err)
	}

	var found bool
	for _, txt := range collectTexts(g, "level-label") {
		if txt.Lines[0].Text == "0.618 (161.80)" {
			found = true
		}
	}
	if !found {
		t.Error("missing label for level 0.618")
	}

	// visible levels with prices inside 0..300: 0 .. 1 and 1.618
	var levels, zones int
	scene.Walk(g, func(n scene.Node) bool {
		switch n := n.(type) {
		case *scene.Line:
			if n.Class == "level" {
				levels++
			}
		case *scene.Polygon:
			if n.Class == "zone" {
				zones++
			}
		}
		return true
	})
	if levels != 8 {
		t.Errorf("got %d level lines, want 8", levels)
	}
	if zones == 0 {
		t.Error("no zones drawn")
	}
}

func TestFibonacciLineStyle(t *testing.T) {
	vp := chartViewport(t)
	tool := mustNew(t, KindFibExtension, nil, Point{0, 100}, Point{10, 200})
	f := newFrame(tool.Common(), vp)

	if st := f.levelStroke(FibLevel{Value: 1}); st.Dash != nil {
		t.Errorf("level 1 should be solid, got %v", st.Dash)
	}
	if st := f.levelStroke(FibLevel{Value: 0.5}); !slices.Equal(st.Dash, []float64{6, 4}) {
		t.Errorf("level 0.5 should be dashed, got %v", st.Dash)
	}

	tool.Common().SetStyle(KeyLevelsLineStyle, "dotted")
	tool.Common().SetStyle(KeyLevelsLineWidth, 3)
	f = newFrame(tool.Common(), vp)
	st := f.levelStroke(FibLevel{Value: 1})
	if !slices.Equal(st.Dash, []float64{2, 3}) || st.Width != 3 {
		t.Errorf("global override not applied: %v", st)
	}
	st = f.levelStroke(FibLevel{Value: 0.5, LineType: "solid", LineWidth: 4})
	if st.Dash != nil || st.Width != 4 {
		t.Errorf("level override not applied: %v", st)
	}
}

func TestFromJSONMissingLevels(t *testing.T) {
	data := `{"id":"f1","type":"fib-retracement","points":[{"x":0,"y":100},{"x":10,"y":200}]}`
	tool, err := FromJSON([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	fib, ok := tool.(*Fibonacci)
	if !ok {
		t.Fatalf("got %T, want *Fibonacci", tool)
	}
	if len(fib.Levels) != 19 {
		t.Errorf("got %d levels, want 19", len(fib.Levels))
	}
	if !reflect.DeepEqual(fib.Levels, DefaultLevels(KindFibRetracement)) {
		t.Error("levels differ from the defaults")
	}
	if !fib.Visible || fib.Meta.CreatedAt.IsZero() || fib.ID != "f1" {
		t.Errorf("defaults not applied: %+v", fib.Base)
	}
}

func TestFromJSONLegacy(t *testing.T) {
	data := `{"type":"hline","points":[{"x":3,"y":1.5}],"visible":false,
		"meta":{"createdAt":"2024-01-02T03:04:05Z"}}`
	tool, err := FromJSON([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	b := tool.Common()
	if tool.Kind() != KindHorizontalLine || b.ID == "" || b.Visible {
		t.Errorf("unexpected tool %+v", b)
	}
	if !b.Meta.UpdatedAt.Equal(b.Meta.CreatedAt) || b.Meta.CreatedAt.Year() != 2024 {
		t.Errorf("unexpected meta %+v", b.Meta)
	}

	_, err = FromJSON([]byte(`{"type":"pitchfork","points":[]}`))
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown kind: got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	fixClock(t)
	for _, k := range Kinds {
		t.Run(string(k), func(t *testing.T) {
			tool := mustNew(t, k, Style{
				KeyLineColor: "#ff0000",
				KeyLineWidth: 3,
				KeyLineDash:  []int{4, 2},
			}, Point{1, 100}, Point{5, 120.5})
			b := tool.Common()
			b.SetText("first line\nsecond line")
			b.SetLocked(true)
			if fib, ok := tool.(*Fibonacci); ok {
				fib.Levels[3].Visible = !fib.Levels[3].Visible
				fib.Levels[4].Color = "#00ff00"
			}

			data, err := ToJSON(tool)
			if err != nil {
				t.Fatal(err)
			}
			decoded, err := FromJSON(data)
			if err != nil {
				t.Fatal(err)
			}
			if decoded.Kind() != k {
				t.Errorf("kind %q, want %q", decoded.Kind(), k)
			}
			if !reflect.DeepEqual(decoded.Payload(), tool.Payload()) {
				t.Errorf("round trip changed the tool:\n%+v\n%+v", decoded.Payload(), tool.Payload())
			}
		})
	}
}

func TestRoundTripEmptyLevels(t *testing.T) {
	fixClock(t)
	tool := mustNew(t, KindFibExtension, nil, Point{1, 100}, Point{5, 120})
	tool.(*Fibonacci).Levels = []FibLevel{}

	data, err := ToJSON(tool)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"levels":[]`) {
		t.Errorf("empty level list not written: %s", data)
	}
	decoded, err := FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(decoded.(*Fibonacci).Levels); n != 0 {
		t.Errorf("decoded %d levels, want 0", n)
	}
	if !reflect.DeepEqual(decoded.Payload(), tool.Payload()) {
		t.Errorf("round trip changed the tool:\n%+v\n%+v", decoded.Payload(), tool.Payload())
	}

	trend := mustNew(t, KindTrendline, nil, Point{1, 100}, Point{5, 120})
	data, err = ToJSON(trend)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "levels") {
		t.Errorf("levels written for a trend line: %s", data)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	saved := now
	now = func() time.Time {
		return time.Date(2024, 5, 6, 7, 8, 9, 123_456_789, time.UTC)
	}
	t.Cleanup(func() { now = saved })

	tool := mustNew(t, KindRay, nil, Point{1, 100}, Point{5, 120})
	if got := tool.Common().Meta.CreatedAt.Nanosecond(); got != 123_000_000 {
		t.Errorf("created at %d ns, want whole milliseconds", got)
	}
	data, err := ToJSON(tool)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decoded.Common().Meta, tool.Common().Meta) {
		t.Errorf("meta %+v, want %+v", decoded.Common().Meta, tool.Common().Meta)
	}

	// the real clock carries a monotonic reading, which must not leak
	now = time.Now
	tool = mustNew(t, KindRay, nil, Point{1, 100}, Point{5, 120})
	data, _ = ToJSON(tool)
	decoded, err = FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decoded.Payload(), tool.Payload()) {
		t.Errorf("round trip changed the tool:\n%+v\n%+v", decoded.Payload(), tool.Payload())
	}
}

func TestRenderIdempotent(t *testing.T) {
	vp := chartViewport(t)
	layer := scene.NewLayer()
	foreign := &scene.Group{Class: "candles"}
	layer.Append(foreign)

	for _, k := range Kinds {
		tool := mustNew(t, k, nil, Point{10, 100}, Point{40, 200})
		tool.Common().SetText("label")
		tool.Common().Selected = true

		g1, err := tool.Render(layer, vp)
		if err != nil {
			t.Fatal(err)
		}
		n := len(layer.Nodes())
		g2, err := tool.Render(layer, vp)
		if err != nil {
			t.Fatal(err)
		}
		if len(layer.Nodes()) != n {
			t.Errorf("%s: layer grew from %d to %d nodes", k, n, len(layer.Nodes()))
		}
		if !reflect.DeepEqual(g1, g2) {
			t.Errorf("%s: second render differs", k)
		}
		if got, _ := layer.Find(tool.Common().ID); got != g2 {
			t.Errorf("%s: layer does not hold the new subtree", k)
		}
	}
	if layer.Nodes()[0] != foreign {
		t.Error("foreign node was moved")
	}
	if len(layer.Nodes()) != len(Kinds)+1 {
		t.Errorf("got %d nodes, want %d", len(layer.Nodes()), len(Kinds)+1)
	}
}

func TestRenderSkips(t *testing.T) {
	vp := chartViewport(t)
	layer := scene.NewLayer()

	tool := mustNew(t, KindTrendline, nil, Point{0, 100})
	g, err := tool.Render(layer, vp)
	if g != nil || err != nil || len(layer.Nodes()) != 0 {
		t.Errorf("incomplete tool rendered: %v, %v", g, err)
	}

	tool.Common().SetPoints([]Point{{0, 100}, {10, 200}})
	if g, _ := tool.Render(layer, vp); g == nil {
		t.Fatal("complete tool not rendered")
	}
	tool.Common().SetVisible(false)
	g, err = tool.Render(layer, vp)
	if g != nil || err != nil || len(layer.Nodes()) != 0 {
		t.Errorf("hidden tool still rendered")
	}

	tool.Common().SetVisible(true)
	_, err = tool.Render(layer, &viewport.Viewport{XScale: viewport.LinearScale{}})
	if !errors.Is(err, viewport.ErrNoYScale) {
		t.Errorf("missing y scale: got %v", err)
	}
}

func TestStyleFallback(t *testing.T) {
	vp := chartViewport(t)
	tool := mustNew(t, KindTrendline, Style{
		KeyLineWidth: "wide",
		KeyOpacity:   math.NaN(),
		KeyLineColor: "not a colour",
		KeyFontSize:  "14",
	}, Point{0, 100}, Point{10, 200})

	g, _ := tool.Render(nil, vp)
	st := collectLines(g)[0].Stroke
	if st.Width != 2 || st.Opacity != 1 || st.Color != "#2962ff" {
		t.Errorf("defaults not used: %+v", st)
	}

	f := newFrame(tool.Common(), vp)
	if size := f.font().Size; size != 14 {
		t.Errorf("font size %g, want 14", size)
	}
}

func TestEdits(t *testing.T) {
	fixClock(t)
	tool := mustNew(t, KindTrendline, nil, Point{0, 100}, Point{10, 200})
	b := tool.Common()
	created := b.Meta.UpdatedAt

	if err := b.MovePoint(1, Point{20, 250}); err != nil {
		t.Fatal(err)
	}
	if !b.Meta.UpdatedAt.After(created) {
		t.Error("updatedAt not bumped")
	}
	if err := b.MovePoint(2, Point{}); !errors.Is(err, ErrPointIndex) {
		t.Errorf("MovePoint(2): got %v", err)
	}
	if err := b.Translate(1, -10); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(b.Points, []Point{{1, 90}, {21, 240}}) {
		t.Errorf("points after translate: %v", b.Points)
	}

	b.SetLocked(true)
	for _, err := range []error{
		b.MovePoint(0, Point{}),
		b.Translate(1, 1),
		b.SetPoints(nil),
	} {
		if !errors.Is(err, ErrLocked) {
			t.Errorf("edit of locked tool: got %v", err)
		}
	}
	if !slices.Equal(b.Points, []Point{{1, 90}, {21, 240}}) {
		t.Errorf("locked tool changed: %v", b.Points)
	}

	b.ApplyStyle(Style{KeyLineColor: "#000000"})
	b.SetStyle(KeyLineWidth, 4)
	if b.Style[KeyLineWidth] != 4.0 || b.Style[KeyLineColor] != "#000000" {
		t.Errorf("style = %v", b.Style)
	}
	b.SetStyle(KeyLineWidth, nil)
	if _, ok := b.Style[KeyLineWidth]; ok {
		t.Error("SetStyle(nil) did not restore the default")
	}
}

func TestHandles(t *testing.T) {
	vp := chartViewport(t)
	tool := mustNew(t, KindTrendline, nil, Point{0, 100}, Point{10, 200})

	countHandles := func() (visible, hidden int) {
		g, _ := tool.Render(nil, vp)
		scene.Walk(g, func(n scene.Node) bool {
			if h, ok := n.(*scene.Handle); ok {
				if h.Hidden {
					hidden++
				} else {
					visible++
				}
			}
			return true
		})
		return visible, hidden
	}

	if v, h := countHandles(); v != 0 || h != 2 {
		t.Errorf("unselected: %d visible, %d hidden handles", v, h)
	}
	tool.Common().Selected = true
	if v, h := countHandles(); v != 2 || h != 0 {
		t.Errorf("selected: %d visible, %d hidden handles", v, h)
	}
	tool.Common().SetLocked(true)
	if v, h := countHandles(); v != 0 || h != 0 {
		t.Errorf("locked: %d visible, %d hidden handles", v, h)
	}
}

func TestHitTest(t *testing.T) {
	vp := chartViewport(t)
	tool := mustNew(t, KindTrendline, nil, Point{0, 100}, Point{10, 200})
	tool.Common().Selected = true
	g, _ := tool.Render(nil, vp)

	cases := []struct {
		p      vec.Vec2
		hit    bool
		handle int
	}{
		{vec.Vec2{X: 40, Y: 300}, true, -1},
		{vec.Vec2{X: 42, Y: 301}, true, -1},
		{vec.Vec2{X: 80, Y: 200}, true, 1},
		{vec.Vec2{X: 1, Y: 401}, true, 0},
		{vec.Vec2{X: 200, Y: 300}, false, -1},
		{vec.Vec2{X: 81, Y: 150}, false, -1},
	}
	for _, tc := range cases {
		hit, handle := HitTest(g, tc.p, 2)
		if hit != tc.hit || handle != tc.handle {
			t.Errorf("HitTest(%v) = %t, %d, want %t, %d", tc.p, hit, handle, tc.hit, tc.handle)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price float64
		prec  int
		want  string
	}{
		{1.2345, 5, "1.23450"},
		{1.2345, 2, "1.23"},
		{161.8, 2, "161.80"},
		{-0.5, 0, "-1"},
		{100, -3, "100"},
		{math.NaN(), 2, ""},
	}
	for _, tc := range cases {
		if got := FormatPrice(tc.price, tc.prec); got != tc.want {
			t.Errorf("FormatPrice(%g, %d) = %q, want %q", tc.price, tc.prec, got, tc.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		if got, err := ParseKind(string(k)); err != nil || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
	if got, _ := ParseKind("fibonacci"); got != KindFibRetracement {
		t.Errorf("alias not resolved: %q", got)
	}
	if _, err := ParseKind("brush"); err == nil || !strings.Contains(err.Error(), "brush") {
		t.Errorf("unknown kind: got %v", err)
	}
}

func TestStyleAccessors(t *testing.T) {
	s := Style{
		"f":    "2.5px",
		"b":    "true",
		"dash": "4, 2",
		"bad":  []any{1.0, "x"},
		"sub":  map[string]any{"k": 1.0},
	}
	if s.Float("f", 0) != 2.5 {
		t.Error("Float did not parse string")
	}
	if !s.Bool("b", false) {
		t.Error("Bool did not parse string")
	}
	if !slices.Equal(s.Floats("dash", nil), []float64{4, 2}) {
		t.Errorf("Floats = %v", s.Floats("dash", nil))
	}
	if s.Floats("bad", nil) != nil {
		t.Error("malformed list not rejected")
	}
	if s.Sub("sub").Float("k", 0) != 1 {
		t.Error("Sub failed")
	}

	merged := DefaultStyle(KindTrendline).Merge(Style{
		KeyInfoSettings: map[string]any{InfoShow: true},
	})
	info := merged.Sub(KeyInfoSettings)
	if !info.Bool(InfoShow, false) || !info.Bool(InfoPriceDelta, false) {
		t.Errorf("nested merge lost values: %v", info)
	}
}

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
	"bytes"
	"image/color"
	"strings"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/drawtools/label"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#2962ff", color.NRGBA{0x29, 0x62, 0xff, 0xff}, true},
		{"#2962FF80", color.NRGBA{0x29, 0x62, 0xff, 0x80}, true},
		{"#f0a", color.NRGBA{0xff, 0x00, 0xaa, 0xff}, true},
		{"rgb(10, 20, 30)", color.NRGBA{10, 20, 30, 255}, true},
		{"rgba(10,20,30,0.5)", color.NRGBA{10, 20, 30, 128}, true},
		{" White ", color.NRGBA{255, 255, 255, 255}, true},
		{"transparent", color.NRGBA{}, true},
		{"#12345", color.NRGBA{}, false},
		{"#zzzzzz", color.NRGBA{}, false},
		{"rgb(1,2)", color.NRGBA{}, false},
		{"rgba(1,2,3,x)", color.NRGBA{}, false},
		{"chartreuse-ish", color.NRGBA{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseColor(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseColor(%q) = %v, %t, want %v, %t", tc.in, got, ok, tc.want, tc.ok)
		}
	}

	if got := HexColor(color.NRGBA{0x29, 0x62, 0xff, 0x10}); got != "#2962ff" {
		t.Errorf("HexColor = %q", got)
	}
}

func TestLayerOwnership(t *testing.T) {
	l := NewLayer()
	candles := &Group{Class: "candles"}
	l.Append(candles)
	l.Append(&Group{DataID: "a"})
	l.Append(&Group{DataID: "b"})

	// re-rendering "a" keeps its stacking position
	l.Replace(&Group{DataID: "a", Class: "new"})
	if g, pos := l.Find("a"); pos != 1 || g.Class != "new" {
		t.Errorf("Replace moved the group to %d", pos)
	}

	if pos := l.Remove("missing"); pos != -1 {
		t.Errorf("Remove(missing) = %d", pos)
	}
	if pos := l.Remove(""); pos != -1 || len(l.Nodes()) != 3 {
		t.Error("empty id removed a foreign node")
	}

	crosshair := &Group{Class: "crosshair"}
	l.Append(crosshair)
	l.Reorder([]string{"b", "a", "b", "missing"})
	var order []string
	for _, n := range l.Nodes() {
		g := n.(*Group)
		order = append(order, g.DataID+"/"+g.Class)
	}
	if got := strings.Join(order, ","); got != "/candles,b/,a/new,/crosshair" {
		t.Errorf("order after Reorder: %s", got)
	}

	l.ClearOwned()
	if len(l.Nodes()) != 2 || l.Nodes()[0] != Node(candles) || l.Nodes()[1] != Node(crosshair) {
		t.Errorf("ClearOwned left %d nodes", len(l.Nodes()))
	}
}

func TestLayerInsert(t *testing.T) {
	l := NewLayer()
	l.Insert(-1, &Group{DataID: "x"})
	l.Insert(0, &Group{DataID: "y"})
	l.Insert(5, &Group{DataID: "z"})
	var ids []string
	for _, n := range l.Nodes() {
		ids = append(ids, n.(*Group).DataID)
	}
	if strings.Join(ids, "") != "yxz" {
		t.Errorf("got %v", ids)
	}
}

func sampleLayer() *Layer {
	g := &Group{DataID: "tool-1", Class: "trendline"}
	g.Add(
		&Line{A: vec.Vec2{X: 10, Y: 10}, B: vec.Vec2{X: 90, Y: 50}, Stroke: Stroke{Color: "#2962ff", Width: 2, Opacity: 1}},
		&HitArea{A: vec.Vec2{X: 10, Y: 10}, B: vec.Vec2{X: 90, Y: 50}, Width: 10},
		&Polygon{
			Points:  []vec.Vec2{{X: 10, Y: 60}, {X: 90, Y: 60}, {X: 90, Y: 80}, {X: 10, Y: 80}},
			Fill:    "#ff0000",
			Opacity: 0.2,
		},
		&Handle{Center: vec.Vec2{X: 10, Y: 10}, Radius: 4, Fill: "#ffffff", Stroke: "#2962ff"},
		&Handle{Center: vec.Vec2{X: 90, Y: 50}, Radius: 4, Fill: "#ffffff", Stroke: "#2962ff", Hidden: true},
		&Text{
			Placement: label.Placement{
				Pos:      vec.Vec2{X: 50, Y: 30},
				Angle:    26.565,
				Anchor:   label.AnchorMiddle,
				Baseline: label.BaselineMiddle,
				Lines:    []label.Line{{Text: "a<b & c"}},
			},
			Font:       label.Font{Size: 12},
			Fill:       "#000000",
			Background: "#ffffff",
		},
	)
	l := NewLayer()
	l.Append(g)
	return l
}

func TestWriteSVG(t *testing.T) {
	buf := &bytes.Buffer{}
	err := WriteSVG(buf, sampleLayer(), Options{Width: 100, Height: 100, Background: "#ffffff"})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`data-id="tool-1"`,
		`class="trendline"`,
		`class="hit-area"`,
		`rotate(26.565)`,
		`a&lt;b &amp; c`,
		`stroke:#2962ff`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output lacks %q", want)
		}
	}
	if strings.Count(out, `class="handle"`) != 2 || !strings.Contains(out, `visibility="hidden"`) {
		t.Error("handles not written as expected")
	}
}

func TestRasterize(t *testing.T) {
	img, err := Rasterize(sampleLayer(), Options{Width: 100, Height: 100}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// a pixel on the trend line
	if c := img.RGBAAt(50, 30); c.A == 0 {
		t.Error("line not painted")
	}
	// inside the zone
	if c := img.RGBAAt(50, 70); c.A == 0 || c.R == 0 {
		t.Errorf("zone not painted: %v", c)
	}
	// hidden handle is skipped, visible handle painted
	if c := img.RGBAAt(10, 10); c.A == 0 {
		t.Error("handle not painted")
	}
	if c := img.RGBAAt(5, 95); c.A != 0 {
		t.Errorf("background painted without request: %v", c)
	}
}

func TestWritePDF(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WritePDF(buf, sampleLayer(), Options{Width: 100, Height: 100}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not look like PDF: %q", buf.Bytes()[:min(buf.Len(), 16)])
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	root := &Group{Children: []Node{
		&Group{Hidden: true, Children: []Node{&Line{}, &Line{}}},
		&Line{},
	}}
	if n := Count(root); n != 5 {
		t.Errorf("Count = %d, want 5", n)
	}
	seen := 0
	Walk(root, func(n Node) bool {
		seen++
		g, ok := n.(*Group)
		return !ok || !g.Hidden
	})
	if seen != 3 {
		t.Errorf("visited %d nodes, want 3", seen)
	}
}

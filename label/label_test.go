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

package label

import (
	"math"
	"math/rand/v2"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func TestNormalizeAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{45, 45},
		{90, 90},
		{-90, 90},
		{91, -89},
		{-91, 89},
		{180, 0},
		{-180, 0},
		{270, 90},
		{-270, 90},
		{359, -1},
		{720 + 30, 30},
	}
	for _, tc := range cases {
		got := NormalizeAngle(tc.in)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%g) = %g, want %g", tc.in, got, tc.want)
		}
	}
}

func TestLineAngleRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for range 5000 {
		a := vec.Vec2{X: rng.Float64()*2000 - 1000, Y: rng.Float64()*2000 - 1000}
		b := vec.Vec2{X: rng.Float64()*2000 - 1000, Y: rng.Float64()*2000 - 1000}
		got := LineAngle(a, b)
		if !(got > -90 && got <= 90) {
			t.Fatalf("LineAngle(%v, %v) = %g", a, b, got)
		}
		if rev := LineAngle(b, a); math.Abs(rev-got) > 1e-9 {
			t.Fatalf("LineAngle depends on direction: %g vs %g", got, rev)
		}
	}
}

func TestPerpendicularPointsUp(t *testing.T) {
	dirs := []vec.Vec2{
		{X: 1, Y: 0},
		{X: -1, Y: 0},
		{X: 1, Y: 1},
		{X: -1, Y: 1},
		{X: 3, Y: -4},
	}
	for _, u := range dirs {
		n := Perpendicular(u)
		if n.Y > 0 {
			t.Errorf("Perpendicular(%v) = %v points down", u, n)
		}
		if math.Abs(n.Dot(u)) > 1e-9 {
			t.Errorf("Perpendicular(%v) = %v is not perpendicular", u, n)
		}
		if math.Abs(n.Length()-1) > 1e-9 {
			t.Errorf("Perpendicular(%v) = %v is not a unit vector", u, n)
		}
	}
	if n := Perpendicular(vec.Vec2{X: 0, Y: 1}); n.X >= 0 {
		t.Errorf("vertical line: got %v, want left pointing normal", n)
	}
}

func TestSolveGapContainment(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	aligns := []HAlign{AlignLeft, AlignCenter, AlignRight}
	for range 5000 {
		a := vec.Vec2{X: rng.Float64() * 800, Y: rng.Float64() * 600}
		b := vec.Vec2{X: rng.Float64() * 800, Y: rng.Float64() * 600}
		length := b.Sub(a).Length()
		if length < 1 {
			continue
		}
		gs := GapSpec{
			TextWidth:    rng.Float64() * length,
			Align:        aligns[rng.IntN(3)],
			EdgePadding:  rng.Float64() * 40,
			InnerPadding: rng.Float64() * 4,
			CapPadding:   rng.Float64() * 2,
		}
		g, ok := SolveGap(a, b, a, b, gs)
		if !ok {
			t.Fatalf("SolveGap failed for %v %v", a, b)
		}

		s1 := g.Split1.Sub(a).Dot(g.Dir)
		s2 := g.Split2.Sub(a).Dot(g.Dir)
		if s1 < -1e-9 || s2 > length+1e-9 || s1 > s2+1e-9 {
			t.Fatalf("split points out of order: %g %g (length %g)", s1, s2, length)
		}
		if g.Width() < gs.TextWidth-1e-9 {
			t.Fatalf("gap %g narrower than text %g", g.Width(), gs.TextWidth)
		}
		if g.T1 > g.T2 || g.T1 < 0 || g.T2 > 1 {
			t.Fatalf("bad parameters %g %g", g.T1, g.T2)
		}
	}
}

func TestSolveGapAnchor(t *testing.T) {
	a := vec.Vec2{X: 100, Y: 200}
	b := vec.Vec2{X: 500, Y: 200}
	cases := []struct {
		align HAlign
		want  float64
	}{
		{AlignLeft, 130},
		{AlignCenter, 300},
		{AlignRight, 470},
	}
	for _, tc := range cases {
		g, ok := SolveGap(a, b, a, b, GapSpec{TextWidth: 20, Align: tc.align, EdgePadding: 30})
		if !ok {
			t.Fatal("SolveGap failed")
		}
		if math.Abs(g.Anchor.X-tc.want) > 1e-9 || g.Anchor.Y != 200 {
			t.Errorf("%s: anchor %v, want x=%g", tc.align, g.Anchor, tc.want)
		}
	}
}

func TestSolveGapFullLineParameter(t *testing.T) {
	// the visible part is the middle half of the full line
	full0 := vec.Vec2{X: 0, Y: 0}
	full1 := vec.Vec2{X: 400, Y: 0}
	g, ok := SolveGap(vec.Vec2{X: 100, Y: 0}, vec.Vec2{X: 300, Y: 0}, full0, full1,
		GapSpec{TextWidth: 40})
	if !ok {
		t.Fatal("SolveGap failed")
	}
	if math.Abs(g.T-0.5) > 1e-12 || math.Abs(g.T1-0.45) > 1e-12 || math.Abs(g.T2-0.55) > 1e-12 {
		t.Errorf("got T=%g T1=%g T2=%g", g.T, g.T1, g.T2)
	}
}

func TestSolveGapParts(t *testing.T) {
	a := vec.Vec2{X: 50, Y: 0}
	b := vec.Vec2{X: 50, Y: 500}
	gs := GapSpec{TextWidth: 80, InnerPadding: 4, CapPadding: 1}
	g, ok := SolveGap(a, b, a, b, gs)
	if !ok {
		t.Fatal("SolveGap failed")
	}
	var drawn float64
	for _, part := range g.Parts() {
		drawn += part[1].Sub(part[0]).Length()
	}
	want := 500 - (80 + 8 + 2)
	if math.Abs(drawn-float64(want)) > 1 {
		t.Errorf("drawn length %g, want %d", drawn, want)
	}

	// gap larger than the line: nothing is drawn
	g, _ = SolveGap(a, vec.Vec2{X: 50, Y: 20}, a, b, gs)
	if parts := g.Parts(); len(parts) != 0 {
		t.Errorf("expected no visible parts, got %v", parts)
	}
}

func TestSolveGapDegenerate(t *testing.T) {
	p := vec.Vec2{X: 1, Y: 1}
	if _, ok := SolveGap(p, p, p, p, GapSpec{TextWidth: 10}); ok {
		t.Error("zero length line accepted")
	}
}

func TestLayout(t *testing.T) {
	lines := Layout("a\nb\nc", 10, BlockCentered)
	want := []float64{-12, 0, 12}
	if len(lines) != 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	for i, l := range lines {
		if math.Abs(l.DY-want[i]) > 1e-9 {
			t.Errorf("line %d: DY=%g, want %g", i, l.DY, want[i])
		}
	}

	above := Layout("a\nb", 10, BlockAbove)
	if above[1].DY != 0 || math.Abs(above[0].DY+12) > 1e-9 {
		t.Errorf("above: %v", above)
	}
	below := Layout("a\nb", 10, BlockBelow)
	if below[0].DY != 0 || math.Abs(below[1].DY-12) > 1e-9 {
		t.Errorf("below: %v", below)
	}

	if got := Layout("", 10, BlockCentered); len(got) != 0 {
		t.Errorf("empty text gave %v", got)
	}

	if lh := (Font{Size: 10}).LineHeight(); math.Abs(lh-12) > 1e-9 {
		t.Errorf("LineHeight = %g, want 12", lh)
	}
	pl := Placement{Lines: lines}
	if h := pl.Height(10); math.Abs(h-34) > 1e-9 {
		t.Errorf("Height = %g, want 34", h)
	}
	if h := (Placement{}).Height(10); h != 0 {
		t.Errorf("empty Height = %g", h)
	}
}

func TestPlacerOnLine(t *testing.T) {
	p := Placer{Offset: 8, FontSize: 12, Top: 0, Bottom: 600}
	left := vec.Vec2{X: 100, Y: 300}
	right := vec.Vec2{X: 300, Y: 300}

	pl := p.OnLine(left, right, left, VAlignTop, AlignLeft, "label")
	if pl.Pos.Y >= 300 || pl.Anchor != AnchorStart || pl.Angle != 0 {
		t.Errorf("top placement: %+v", pl)
	}
	pl = p.OnLine(left, right, left, VAlignBottom, AlignLeft, "label")
	if pl.Pos.Y <= 300 || pl.Baseline != BaselineHanging {
		t.Errorf("bottom placement: %+v", pl)
	}
	pl = p.OnLine(left, right, vec.Vec2{X: 200, Y: 300}, VAlignMiddle, AlignLeft, "label")
	if pl.Pos != (vec.Vec2{X: 200, Y: 300}) || pl.Anchor != AnchorMiddle {
		t.Errorf("middle placement: %+v", pl)
	}

	// labels near the top edge are pushed down, but never sideways
	pl = p.OnLine(vec.Vec2{X: -50, Y: 2}, vec.Vec2{X: 100, Y: 2}, vec.Vec2{X: -50, Y: 2}, VAlignTop, AlignLeft, "x")
	if pl.Pos.Y < 12 || pl.Pos.X != -50 {
		t.Errorf("clamped placement: %+v", pl)
	}
}

func TestApproxMeasurer(t *testing.T) {
	m := ApproxMeasurer{AvgAdvance: 0.5}
	if got := m.TextWidth("abcd", Font{Size: 10}); got != 20 {
		t.Errorf("TextWidth = %g, want 20", got)
	}
	if got := BlockWidth(m, "ab\nabcdef", Font{Size: 10}); got != 30 {
		t.Errorf("BlockWidth = %g, want 30", got)
	}
}

func TestGoFonts(t *testing.T) {
	m, err := GoFonts()
	if err != nil {
		t.Fatal(err)
	}
	f := Font{Size: 12}
	short := m.TextWidth("i", f)
	long := m.TextWidth("Session Open", f)
	if short <= 0 || long <= short {
		t.Errorf("unexpected widths %g %g", short, long)
	}
	if bold := m.TextWidth("Session Open", Font{Size: 12, Weight: "bold"}); bold <= long {
		t.Errorf("bold text %g not wider than regular %g", bold, long)
	}

	p, w, err := m.Outline("Ag", f)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Cmds) == 0 || math.Abs(w-m.TextWidth("Ag", f)) > 1e-9 {
		t.Errorf("outline: %d commands, width %g", len(p.Cmds), w)
	}
}

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

// Package scene holds the render tree produced by drawing tools.
//
// A render pass turns every drawing into a [Group] of plain nodes (lines,
// invisible hit areas, handles, polygons and text).  The tree is derived
// data: it is rebuilt on every render and never read back as state.
// Exporters turn a [Layer] into SVG, PNG or PDF.
package scene

import (
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/drawtools/label"
)

// Node is an element of the render tree.
type Node interface {
	isNode()
}

// Group collects the nodes of one drawing, or a named part of it.
type Group struct {
	// DataID is the id of the drawing owning this subtree.  Only the
	// top-level group of a drawing carries it.
	DataID string

	Class    string
	Hidden   bool
	Children []Node
}

// Add appends nodes to the group.
func (g *Group) Add(nodes ...Node) {
	g.Children = append(g.Children, nodes...)
}

// Stroke describes how a line is painted.
type Stroke struct {
	Color   string
	Width   float64
	Dash    []float64 // nil for solid lines
	Opacity float64   // 1 is fully opaque
	Cap     graphics.LineCapStyle
}

// Line is a straight painted segment.
type Line struct {
	A, B   vec.Vec2
	Stroke Stroke
	Class  string
}

// HitArea is an invisible wide segment used for pointer hit testing.
type HitArea struct {
	A, B  vec.Vec2
	Width float64
}

// Handle is a drag handle drawn at an anchor point.  Index is the index
// of the anchor in the drawing's point list.
type Handle struct {
	Center vec.Vec2
	Radius float64
	Index  int
	Fill   string
	Stroke string
	Hidden bool
}

// Polygon is a closed filled shape, optionally outlined.
type Polygon struct {
	Points  []vec.Vec2
	Fill    string
	Opacity float64
	Outline *Stroke
	Class   string
}

// Text is a possibly multi-line, possibly rotated label.
type Text struct {
	label.Placement

	Font  label.Font
	Fill  string
	Class string

	// Background, if set, is painted behind the text block.
	Background string
}

func (*Group) isNode()   {}
func (*Line) isNode()    {}
func (*HitArea) isNode() {}
func (*Handle) isNode()  {}
func (*Polygon) isNode() {}
func (*Text) isNode()    {}

// Walk calls fn for n and all its descendants in paint order.  If fn
// returns false for a group, the children of this group are skipped.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	if g, ok := n.(*Group); ok {
		for _, c := range g.Children {
			Walk(c, fn)
		}
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func Count(n Node) int {
	k := 0
	Walk(n, func(Node) bool {
		k++
		return true
	})
	return k
}

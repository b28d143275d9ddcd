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

import "slices"

// Layer is the drawings layer of a chart.  It may contain nodes owned by
// other parts of the chart; those never carry a DataID and are left
// alone by all methods which take an id.
//
// A Layer is not safe for concurrent use.
type Layer struct {
	nodes []Node
}

// NewLayer returns an empty layer.
func NewLayer() *Layer {
	return &Layer{}
}

// Nodes returns the top-level nodes in paint order.  The slice must not
// be modified.
func (l *Layer) Nodes() []Node {
	return l.nodes
}

// Append adds a node on top of all others.
func (l *Layer) Append(n Node) {
	l.nodes = append(l.nodes, n)
}

// Find returns the group with the given id and its position.
func (l *Layer) Find(id string) (*Group, int) {
	if id == "" {
		return nil, -1
	}
	for i, n := range l.nodes {
		if g, ok := n.(*Group); ok && g.DataID == id {
			return g, i
		}
	}
	return nil, -1
}

// Remove deletes all groups with the given id.  It returns the position
// of the first removed group, or -1 if there was none.
func (l *Layer) Remove(id string) int {
	if id == "" {
		return -1
	}
	pos := -1
	kept := l.nodes[:0]
	for i, n := range l.nodes {
		if g, ok := n.(*Group); ok && g.DataID == id {
			if pos < 0 {
				pos = i
			}
			continue
		}
		kept = append(kept, n)
	}
	clear(l.nodes[len(kept):])
	l.nodes = kept
	return pos
}

// Insert puts n at position i.  Out of range positions append.
func (l *Layer) Insert(i int, n Node) {
	if i < 0 || i >= len(l.nodes) {
		l.nodes = append(l.nodes, n)
		return
	}
	l.nodes = append(l.nodes, nil)
	copy(l.nodes[i+1:], l.nodes[i:])
	l.nodes[i] = n
}

// Replace removes the previous subtree of g.DataID and puts g in its
// place, so that repeated renders keep the stacking order.
func (l *Layer) Replace(g *Group) {
	pos := l.Remove(g.DataID)
	l.Insert(pos, g)
}

// ClearOwned removes every group which carries a DataID.
func (l *Layer) ClearOwned() {
	kept := l.nodes[:0]
	for _, n := range l.nodes {
		if g, ok := n.(*Group); ok && g.DataID != "" {
			continue
		}
		kept = append(kept, n)
	}
	clear(l.nodes[len(kept):])
	l.nodes = kept
}

// Reorder puts the groups of the given ids into the given order.  The
// groups stay in the slots they already occupy, so nodes without a
// DataID keep their positions.  Unknown and repeated ids are ignored.
func (l *Layer) Reorder(ids []string) {
	seen := make(map[string]bool, len(ids))
	groups := make([]Node, 0, len(ids))
	slots := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if g, pos := l.Find(id); pos >= 0 {
			groups = append(groups, g)
			slots = append(slots, pos)
		}
	}
	slices.Sort(slots)
	for k, i := range slots {
		l.nodes[i] = groups[k]
	}
}

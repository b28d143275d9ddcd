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

// Package tools implements the drawing tools which can be placed on a
// price chart: trend lines, rays, extended lines, horizontal and
// vertical lines, cross lines and Fibonacci retracements and
// extensions.
//
// A tool holds a few anchor points in chart coordinates (bar index and
// price), a style map and a label text.  Render turns this state into a
// [scene.Group] for the current viewport.  The rendered tree is
// disposable; the tool itself is the only authoritative state, and it
// round-trips through JSON (see [Payload]).
package tools

import (
	"errors"
	"fmt"
)

// Kind identifies the type of a drawing tool.  The string values are
// used in the JSON encoding.
type Kind string

// These are the supported tool kinds.
const (
	KindTrendline      Kind = "trendline"
	KindHorizontalLine Kind = "horizontal-line"
	KindHorizontalRay  Kind = "horizontal-ray"
	KindVerticalLine   Kind = "vertical-line"
	KindRay            Kind = "ray"
	KindExtendedLine   Kind = "extended-line"
	KindCrossLine      Kind = "cross-line"
	KindFibRetracement Kind = "fib-retracement"
	KindFibExtension   Kind = "fib-extension"
)

// Kinds lists all tool kinds.
var Kinds = []Kind{
	KindTrendline,
	KindHorizontalLine,
	KindHorizontalRay,
	KindVerticalLine,
	KindRay,
	KindExtendedLine,
	KindCrossLine,
	KindFibRetracement,
	KindFibExtension,
}

// RequiredPoints returns the number of anchor points a tool of this kind
// needs before it can be rendered.
func (k Kind) RequiredPoints() int {
	switch k {
	case KindHorizontalLine, KindHorizontalRay, KindVerticalLine, KindCrossLine:
		return 1
	default:
		return 2
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := constructors[k]
	return ok
}

// ParseKind converts a type name to a Kind.  A few legacy spellings are
// accepted.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if alias, ok := kindAliases[s]; ok {
		k = alias
	}
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

var kindAliases = map[string]Kind{
	"trend-line":          KindTrendline,
	"hline":               KindHorizontalLine,
	"horizontal":          KindHorizontalLine,
	"vline":               KindVerticalLine,
	"vertical":            KindVerticalLine,
	"extended":            KindExtendedLine,
	"crossline":           KindCrossLine,
	"fibonacci":           KindFibRetracement,
	"fib":                 KindFibRetracement,
	"fibonacci-extension": KindFibExtension,
}

var (
	// ErrUnknownKind is returned when decoding a tool of unknown type.
	ErrUnknownKind = errors.New("unknown drawing type")

	// ErrPointIndex is returned for edits of non-existing anchor points.
	ErrPointIndex = errors.New("point index out of range")

	// ErrLocked is returned for point edits on locked tools.
	ErrLocked = errors.New("drawing is locked")
)

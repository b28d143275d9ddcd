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

// Package label computes where the text label of a drawing goes.
//
// [SolveGap] finds the part of a line which is left undrawn so that an
// on-line label sits inside the line.  [Placer] turns line geometry and
// alignment settings into the position, rotation and line layout of the
// text.  All functions are pure and work in pixel coordinates.
package label

import (
	"strings"
	"unicode/utf8"
)

// LineHeightFactor is the distance between the baselines of two
// consecutive text lines, in units of the font size.
const LineHeightFactor = 1.2

// Font describes the text style of a label.
type Font struct {
	Family string
	Size   float64
	Weight string // "normal" or "bold"
}

// Bold reports whether the font uses a bold weight.
func (f Font) Bold() bool {
	switch f.Weight {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	return false
}

// LineHeight returns the baseline distance for multi-line text.
func (f Font) LineHeight() float64 {
	return f.Size * LineHeightFactor
}

// Measurer measures the advance width of a single line of text.
type Measurer interface {
	TextWidth(text string, f Font) float64
}

// ApproxMeasurer estimates text widths from the number of characters.
// AvgAdvance is the average glyph advance in units of the font size.
type ApproxMeasurer struct {
	AvgAdvance float64
}

// TextWidth implements the [Measurer] interface.
func (m ApproxMeasurer) TextWidth(text string, f Font) float64 {
	w := float64(utf8.RuneCountInString(text)) * m.AvgAdvance * f.Size
	if f.Bold() {
		w *= 1.05
	}
	return w
}

// DefaultMeasurer is used when no other measurer is configured.
var DefaultMeasurer Measurer = ApproxMeasurer{AvgAdvance: 0.55}

// BlockWidth returns the width of the widest line of a multi-line text.
func BlockWidth(m Measurer, text string, f Font) float64 {
	var w float64
	for _, line := range SplitLines(text) {
		w = max(w, m.TextWidth(line, f))
	}
	return w
}

// SplitLines splits text at line breaks.  The empty string yields no
// lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

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

package viewport

import (
	"math"
	"sort"
)

// Scale maps data values along one axis to pixel positions.
// The mapping must be continuous and monotonic.
type Scale interface {
	// Apply maps a data value to a pixel position.
	Apply(v float64) float64

	// Range returns the pixel interval covered by the scale, in the order
	// given by the host (it may be decreasing, e.g. for price axes).
	Range() (lo, hi float64)
}

// LinearScale is a linear mapping from Domain to Pixels.
type LinearScale struct {
	Domain [2]float64
	Pixels [2]float64
}

// Apply implements the [Scale] interface.
func (s LinearScale) Apply(v float64) float64 {
	d := s.Domain[1] - s.Domain[0]
	if d == 0 {
		return s.Pixels[0]
	}
	return s.Pixels[0] + (v-s.Domain[0])/d*(s.Pixels[1]-s.Pixels[0])
}

// Range implements the [Scale] interface.
func (s LinearScale) Range() (float64, float64) {
	return s.Pixels[0], s.Pixels[1]
}

// Invert maps a pixel position back to a data value.
func (s LinearScale) Invert(px float64) float64 {
	r := s.Pixels[1] - s.Pixels[0]
	if r == 0 {
		return s.Domain[0]
	}
	return s.Domain[0] + (px-s.Pixels[0])/r*(s.Domain[1]-s.Domain[0])
}

// BarIndex maps fractional bar indices to pixels using the centre
// positions of the rendered bars.  This accounts for non-uniform bar
// spacing, e.g. after session gaps have been collapsed.
//
// Centres must be strictly increasing.
type BarIndex struct {
	Centres []float64
}

// DataIndexToPixel implements the [IndexMapper] interface.
// Indices between two bars are interpolated linearly; indices outside the
// known bars are extrapolated using the spacing of the nearest pair.
func (b *BarIndex) DataIndexToPixel(index float64) float64 {
	n := len(b.Centres)
	switch {
	case n == 0:
		return math.NaN()
	case n == 1:
		return b.Centres[0]
	}

	if index <= 0 {
		step := b.Centres[1] - b.Centres[0]
		return b.Centres[0] + index*step
	}
	if index >= float64(n-1) {
		step := b.Centres[n-1] - b.Centres[n-2]
		return b.Centres[n-1] + (index-float64(n-1))*step
	}

	i := int(math.Floor(index))
	frac := index - float64(i)
	return b.Centres[i] + frac*(b.Centres[i+1]-b.Centres[i])
}

// PixelToDataIndex is the inverse of DataIndexToPixel.
func (b *BarIndex) PixelToDataIndex(px float64) float64 {
	n := len(b.Centres)
	switch {
	case n == 0:
		return math.NaN()
	case n == 1:
		return 0
	}

	if px <= b.Centres[0] {
		step := b.Centres[1] - b.Centres[0]
		return (px - b.Centres[0]) / step
	}
	if px >= b.Centres[n-1] {
		step := b.Centres[n-1] - b.Centres[n-2]
		return float64(n-1) + (px-b.Centres[n-1])/step
	}

	i := sort.SearchFloat64s(b.Centres, px)
	if b.Centres[i] == px {
		return float64(i)
	}
	lo, hi := b.Centres[i-1], b.Centres[i]
	return float64(i-1) + (px-lo)/(hi-lo)
}

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

// Package viewport maps logical chart coordinates (bar index, price) to
// pixels and clips infinite lines to the visible plot rectangle.
//
// Pixel coordinates follow the screen convention: x grows to the right and
// y grows downwards, so Top < Bottom.
package viewport

import (
	"errors"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/drawtools/label"
)

// Host is the chart a set of drawings is attached to.
//
// A host may in addition implement [IndexMapper], [PlotArea] and
// [Zoomer].  Missing capabilities fall back to the plain scales.
type Host interface {
	XScale() Scale
	YScale() Scale
}

// IndexMapper is implemented by hosts which know the exact pixel
// position of every bar.
type IndexMapper interface {
	DataIndexToPixel(index float64) float64
}

// IndexInverter is implemented by index mappers which can map a pixel
// position back to a fractional bar index.
type IndexInverter interface {
	PixelToDataIndex(px float64) float64
}

// Inverter is implemented by scales which can map a pixel position back
// to a data value.
type Inverter interface {
	Invert(px float64) float64
}

// PlotArea is implemented by hosts which know their margins.  The plot
// rectangle then runs from left to width-right.  If ok is false, the
// horizontal extent is taken from the x scale range.
type PlotArea interface {
	PlotMargins() (left, right, width float64, ok bool)
}

// Zoomer is implemented by hosts which apply a zoom transform to the
// drawings layer.
type Zoomer interface {
	ZoomScaleFactor() float64
}

var (
	// ErrNoXScale indicates a viewport without a horizontal scale.
	ErrNoXScale = errors.New("viewport: missing x scale")

	// ErrNoYScale indicates a viewport without a price scale.
	ErrNoYScale = errors.New("viewport: missing y scale")
)

// Viewport is the state of the chart at the time of a render call.
// It is derived from the host and never stored.
type Viewport struct {
	XScale Scale
	YScale Scale

	// Index, if set, is used instead of XScale to map bar indices.
	Index IndexMapper

	// Left, Right, Top and Bottom delimit the visible plot rectangle.
	Left, Right float64
	Top, Bottom float64

	// ChartWidth is the full width of the chart, including margins.
	ChartWidth float64

	// Zoom is the scale factor applied to the drawings layer.
	Zoom float64

	// Measure measures label text.  If nil, [label.DefaultMeasurer]
	// is used.
	Measure label.Measurer
}

// New captures the current state of h.
func New(h Host) (*Viewport, error) {
	xs := h.XScale()
	ys := h.YScale()
	if xs == nil {
		return nil, ErrNoXScale
	}
	if ys == nil {
		return nil, ErrNoYScale
	}

	v := &Viewport{
		XScale: xs,
		YScale: ys,
		Zoom:   1,
	}

	if m, ok := h.(IndexMapper); ok {
		v.Index = m
	}

	x0, x1 := xs.Range()
	v.Left, v.Right = min(x0, x1), max(x0, x1)
	v.ChartWidth = v.Right
	if pa, ok := h.(PlotArea); ok {
		if left, right, width, ok := pa.PlotMargins(); ok && width-right > left {
			v.Left = left
			v.Right = width - right
			v.ChartWidth = width
		}
	}

	y0, y1 := ys.Range()
	v.Top, v.Bottom = min(y0, y1), max(y0, y1)

	if z, ok := h.(Zoomer); ok {
		if k := z.ZoomScaleFactor(); k > 0 && !math.IsInf(k, 0) {
			v.Zoom = k
		}
	}

	return v, nil
}

// Check reports host misconfiguration which makes rendering impossible.
func (v *Viewport) Check() error {
	if v == nil || v.YScale == nil {
		return ErrNoYScale
	}
	if v.XScale == nil && v.Index == nil {
		return ErrNoXScale
	}
	return nil
}

// ToPixel maps the logical point (x, price) to pixel coordinates.
// Points outside the visible area are not clipped.
func (v *Viewport) ToPixel(x, price float64) vec.Vec2 {
	return vec.Vec2{X: v.XPixel(x), Y: v.YScale.Apply(price)}
}

// XPixel maps a bar index (or time value) to a horizontal pixel position.
func (v *Viewport) XPixel(x float64) float64 {
	if v.Index != nil {
		if px := v.Index.DataIndexToPixel(x); !math.IsNaN(px) {
			return px
		}
	}
	return v.XScale.Apply(x)
}

// FromPixel maps a pixel position back to logical chart coordinates.
// The result is false if one of the scales cannot be inverted.
func (v *Viewport) FromPixel(p vec.Vec2) (x, price float64, ok bool) {
	x = math.NaN()
	if inv, isInv := v.Index.(IndexInverter); isInv {
		x = inv.PixelToDataIndex(p.X)
	}
	if math.IsNaN(x) {
		inv, isInv := v.XScale.(Inverter)
		if !isInv {
			return 0, 0, false
		}
		x = inv.Invert(p.X)
	}
	inv, isInv := v.YScale.(Inverter)
	if !isInv {
		return 0, 0, false
	}
	price = inv.Invert(p.Y)
	return x, price, !math.IsNaN(x) && !math.IsNaN(price)
}

// Bounds returns the visible plot rectangle.
func (v *Viewport) Bounds() Bounds {
	return Bounds{Left: v.Left, Right: v.Right, Top: v.Top, Bottom: v.Bottom}
}

// Rect returns the visible plot rectangle as a [rect.Rect].
// LLy holds the top edge, since y grows downwards.
func (v *Viewport) Rect() rect.Rect {
	return rect.Rect{LLx: v.Left, LLy: v.Top, URx: v.Right, URy: v.Bottom}
}

// StrokeWidth converts a nominal stroke width into the width to use on
// the zoomed drawings layer, so that lines keep their on-screen width.
func (v *Viewport) StrokeWidth(w float64) float64 {
	if v.Zoom <= 0 {
		return w
	}
	return w / v.Zoom
}

// Measurer returns the text measurer for this render pass.
func (v *Viewport) Measurer() label.Measurer {
	if v.Measure == nil {
		return label.DefaultMeasurer
	}
	return v.Measure
}

// StaticHost is a [Host] with fixed scales.
type StaticHost struct {
	X, Y Scale

	// Bars, if set, provides index-aware horizontal mapping.
	Bars *BarIndex

	// MarginLeft, MarginRight and Width describe the plot area.
	// They are ignored if Width is zero.
	MarginLeft, MarginRight float64
	Width                   float64

	Zoom float64
}

// XScale implements the [Host] interface.
func (h *StaticHost) XScale() Scale { return h.X }

// YScale implements the [Host] interface.
func (h *StaticHost) YScale() Scale { return h.Y }

// DataIndexToPixel implements the [IndexMapper] interface.
func (h *StaticHost) DataIndexToPixel(index float64) float64 {
	if h.Bars == nil || len(h.Bars.Centres) == 0 {
		return h.X.Apply(index)
	}
	return h.Bars.DataIndexToPixel(index)
}

// PixelToDataIndex implements the [IndexInverter] interface.
func (h *StaticHost) PixelToDataIndex(px float64) float64 {
	if h.Bars == nil || len(h.Bars.Centres) == 0 {
		if inv, ok := h.X.(Inverter); ok {
			return inv.Invert(px)
		}
		return math.NaN()
	}
	return h.Bars.PixelToDataIndex(px)
}

// PlotMargins implements the [PlotArea] interface.
func (h *StaticHost) PlotMargins() (left, right, width float64, ok bool) {
	return h.MarginLeft, h.MarginRight, h.Width, h.Width > 0
}

// ZoomScaleFactor implements the [Zoomer] interface.
func (h *StaticHost) ZoomScaleFactor() float64 {
	if h.Zoom == 0 {
		return 1
	}
	return h.Zoom
}

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

package raster

import (
	"image"
	"image/color"
)

// Canvas composites coverage produced by a [Rasterizer] into an image.
type Canvas struct {
	Img *image.RGBA
}

// NewCanvas allocates a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{Img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Fill sets every pixel to col.
func (c *Canvas) Fill(col color.Color) {
	r, g, b, a := col.RGBA()
	px := [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	pix := c.Img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		copy(pix[i:i+4], px[:])
	}
}

// Paint returns an [EmitFunc] which blends col over the canvas, with the
// coverage of each pixel multiplied by opacity.
func (c *Canvas) Paint(col color.NRGBA, opacity float64) EmitFunc {
	alpha := float32(col.A) / 255 * float32(min(max(opacity, 0), 1))
	sr := float32(col.R) / 255
	sg := float32(col.G) / 255
	sb := float32(col.B) / 255
	bounds := c.Img.Bounds()

	return func(y, xMin int, coverage []float32) {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			return
		}
		for i, cov := range coverage {
			x := xMin + i
			if x < bounds.Min.X || x >= bounds.Max.X || cov <= 0 {
				continue
			}
			a := alpha * cov
			off := c.Img.PixOffset(x, y)
			pix := c.Img.Pix[off : off+4 : off+4]
			k := 1 - a
			pix[0] = blend(sr*a, pix[0], k)
			pix[1] = blend(sg*a, pix[1], k)
			pix[2] = blend(sb*a, pix[2], k)
			pix[3] = blend(a, pix[3], k)
		}
	}
}

// blend computes src + dst·k for premultiplied 8-bit channels.
func blend(src float32, dst uint8, k float32) uint8 {
	v := src*255 + float32(dst)*k
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v + 0.5)
}

// Coverage returns an [EmitFunc] which writes raw coverage into a
// grayscale buffer with the given stride.  Overlapping calls keep the
// maximum value.
func Coverage(buf []byte, width, height, stride int) EmitFunc {
	return func(y, xMin int, coverage []float32) {
		if y < 0 || y >= height {
			return
		}
		row := buf[y*stride:]
		for i, cov := range coverage {
			x := xMin + i
			if x < 0 || x >= width {
				continue
			}
			v := uint8(min(cov, 1)*255 + 0.5)
			if v > row[x] {
				row[x] = v
			}
		}
	}
}

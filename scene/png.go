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
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/drawtools/label"
	"seehuhn.de/go/drawtools/raster"
)

// fallbackInk is used for colours which cannot be parsed.
var fallbackInk = color.NRGBA{R: 0x29, G: 0x62, B: 0xff, A: 0xff}

// Rasterize paints the layer into a new image.  Text is drawn using the
// glyph outlines of fonts; if fonts is nil, the Go fonts are used.
func Rasterize(l *Layer, opt Options, fonts *label.FontMeasurer) (*image.RGBA, error) {
	if fonts == nil {
		var err error
		fonts, err = label.GoFonts()
		if err != nil {
			return nil, err
		}
	}

	canvas := raster.NewCanvas(opt.Width, opt.Height)
	if opt.Background != "" {
		canvas.Fill(MustColor(opt.Background, color.NRGBA{A: 0}))
	}

	clip := rect.Rect{URx: float64(opt.Width), URy: float64(opt.Height)}
	r := raster.NewRasterizer(clip)

	var err error
	visit(l, func(n Node) {
		if err != nil {
			return
		}
		r.Reset(clip)
		switch n := n.(type) {
		case *Line:
			paintStroke(r, canvas, n.Stroke, n.A, n.B)

		case *Polygon:
			if len(n.Points) < 3 {
				return
			}
			fill := MustColor(n.Fill, fallbackInk)
			r.FillPolygon(n.Points, canvas.Paint(fill, n.Opacity))
			if n.Outline != nil {
				p := &path.Data{}
				p.MoveTo(n.Points[0])
				for _, pt := range n.Points[1:] {
					p.LineTo(pt)
				}
				p.Close()
				setStroke(r, *n.Outline)
				r.Stroke(p, canvas.Paint(MustColor(n.Outline.Color, fallbackInk), n.Outline.Opacity))
			}

		case *Handle:
			r.Cap = graphics.LineCapRound
			r.Width = 2*n.Radius + 1
			r.StrokeLine(n.Center, n.Center, canvas.Paint(MustColor(n.Stroke, fallbackInk), 1))
			r.Width = max(2*n.Radius-1, 0)
			r.StrokeLine(n.Center, n.Center, canvas.Paint(MustColor(n.Fill, color.NRGBA{255, 255, 255, 255}), 1))

		case *Text:
			err = paintText(r, canvas, n, fonts)
		}
	})
	if err != nil {
		return nil, err
	}
	return canvas.Img, nil
}

// WritePNG rasterises the layer with the Go fonts and encodes the result
// as PNG.
func WritePNG(w io.Writer, l *Layer, opt Options) error {
	img, err := Rasterize(l, opt, nil)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func setStroke(r *raster.Rasterizer, s Stroke) {
	r.Width = s.Width
	r.Cap = s.Cap
	r.Dash = s.Dash
	r.DashPhase = 0
}

func paintStroke(r *raster.Rasterizer, canvas *raster.Canvas, s Stroke, a, b vec.Vec2) {
	if s.Width <= 0 || s.Opacity <= 0 {
		return
	}
	setStroke(r, s)
	r.StrokeLine(a, b, canvas.Paint(MustColor(s.Color, fallbackInk), s.Opacity))
}

func paintText(r *raster.Rasterizer, canvas *raster.Canvas, t *Text, fonts *label.FontMeasurer) error {
	if len(t.Lines) == 0 || t.Font.Size <= 0 {
		return nil
	}
	base := matrix.RotateDeg(t.Angle).Translate(t.Pos.X, t.Pos.Y)

	if t.Background != "" {
		x0, y0, x1, y1 := textBox(t, fonts)
		box := []vec.Vec2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
		r.CTM = base
		r.FillPolygon(box, canvas.Paint(MustColor(t.Background, color.NRGBA{255, 255, 255, 255}), 1))
	}

	ink := canvas.Paint(MustColor(t.Fill, color.NRGBA{A: 255}), 1)
	shiftY := baselineShift(t.Baseline, t.Font.Size)
	for _, line := range t.Lines {
		outline, width, err := fonts.Outline(line.Text, t.Font)
		if err != nil {
			return fmt.Errorf("text %q: %w", line.Text, err)
		}
		dx := anchorShift(t.Anchor, width)
		r.CTM = matrix.Matrix{1, 0, 0, 1, dx, line.DY + shiftY}.RotateDeg(t.Angle).Translate(t.Pos.X, t.Pos.Y)
		r.FillNonZero(outline, ink)
	}
	return nil
}

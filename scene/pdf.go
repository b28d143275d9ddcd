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
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// WritePDF writes the layer as a single page PDF document, using one PDF
// point per pixel.  Text is set in Helvetica.
func WritePDF(w io.Writer, l *Layer, opt Options) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(opt.Width), Ht: float64(opt.Height)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	bg := color.NRGBA{255, 255, 255, 255}
	if opt.Background != "" {
		bg = MustColor(opt.Background, bg)
	}
	setFill(pdf, bg)
	pdf.Rect(0, 0, float64(opt.Width), float64(opt.Height), "F")

	visit(l, func(n Node) {
		switch n := n.(type) {
		case *Line:
			if n.Stroke.Width <= 0 || n.Stroke.Opacity <= 0 {
				return
			}
			pdfStroke(pdf, n.Stroke)
			pdf.Line(n.A.X, n.A.Y, n.B.X, n.B.Y)
			pdf.SetAlpha(1, "Normal")

		case *Polygon:
			if len(n.Points) < 3 {
				return
			}
			pts := make([]gofpdf.PointType, len(n.Points))
			for i, p := range n.Points {
				pts[i] = gofpdf.PointType{X: p.X, Y: p.Y}
			}
			setFill(pdf, MustColor(n.Fill, fallbackInk))
			pdf.SetAlpha(clamp01(n.Opacity), "Normal")
			pdf.Polygon(pts, "F")
			if n.Outline != nil {
				pdfStroke(pdf, *n.Outline)
				pdf.Polygon(pts, "D")
			}
			pdf.SetAlpha(1, "Normal")

		case *Handle:
			pdf.SetDashPattern([]float64{}, 0)
			pdf.SetLineWidth(1)
			setDraw(pdf, MustColor(n.Stroke, fallbackInk))
			setFill(pdf, MustColor(n.Fill, color.NRGBA{255, 255, 255, 255}))
			pdf.Circle(n.Center.X, n.Center.Y, n.Radius, "DF")

		case *Text:
			pdfText(pdf, n, tr, opt)
		}
	})

	return pdf.Output(w)
}

func pdfText(pdf *gofpdf.Fpdf, t *Text, tr func(string) string, opt Options) {
	if len(t.Lines) == 0 || t.Font.Size <= 0 {
		return
	}
	style := ""
	if t.Font.Bold() {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, t.Font.Size)

	if t.Background != "" {
		x0, y0, x1, y1 := textBox(t, opt.measurer())
		corners := []vec.Vec2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
		pts := make([]gofpdf.PointType, len(corners))
		for i, c := range corners {
			p := rotate(c, t.Angle).Add(t.Pos)
			pts[i] = gofpdf.PointType{X: p.X, Y: p.Y}
		}
		setFill(pdf, MustColor(t.Background, color.NRGBA{255, 255, 255, 255}))
		pdf.Polygon(pts, "F")
	}

	ink := MustColor(t.Fill, color.NRGBA{A: 255})
	pdf.SetTextColor(int(ink.R), int(ink.G), int(ink.B))

	shiftY := baselineShift(t.Baseline, t.Font.Size)
	pdf.TransformBegin()
	// gofpdf rotates counter-clockwise
	pdf.TransformRotate(-t.Angle, t.Pos.X, t.Pos.Y)
	for _, line := range t.Lines {
		s := tr(line.Text)
		dx := anchorShift(t.Anchor, pdf.GetStringWidth(s))
		pdf.Text(t.Pos.X+dx, t.Pos.Y+line.DY+shiftY, s)
	}
	pdf.TransformEnd()
}

func pdfStroke(pdf *gofpdf.Fpdf, s Stroke) {
	setDraw(pdf, MustColor(s.Color, fallbackInk))
	pdf.SetLineWidth(s.Width)
	if len(s.Dash) > 0 {
		pdf.SetDashPattern(s.Dash, 0)
	} else {
		pdf.SetDashPattern([]float64{}, 0)
	}
	switch s.Cap {
	case graphics.LineCapRound:
		pdf.SetLineCapStyle("round")
	case graphics.LineCapSquare:
		pdf.SetLineCapStyle("square")
	default:
		pdf.SetLineCapStyle("butt")
	}
	pdf.SetAlpha(clamp01(s.Opacity), "Normal")
}

func setDraw(pdf *gofpdf.Fpdf, c color.NRGBA) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFill(pdf *gofpdf.Fpdf, c color.NRGBA) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

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
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// FontMeasurer measures text using real glyph metrics.  It can also
// return glyph outlines, so that text can be rasterised with the same
// metrics that were used for layout.
//
// A FontMeasurer is safe for concurrent use.
type FontMeasurer struct {
	Regular *sfnt.Font
	Bold    *sfnt.Font

	mu  sync.Mutex
	buf sfnt.Buffer
}

var (
	goFonts    *FontMeasurer
	goFontsErr error
	goFontsMu  sync.Once
)

// GoFonts returns a measurer for the Go fonts.  The fonts are parsed on
// first use.
func GoFonts() (*FontMeasurer, error) {
	goFontsMu.Do(func() {
		regular, err := opentype.Parse(goregular.TTF)
		if err != nil {
			goFontsErr = fmt.Errorf("parse Go Regular: %w", err)
			return
		}
		bold, err := opentype.Parse(gobold.TTF)
		if err != nil {
			goFontsErr = fmt.Errorf("parse Go Bold: %w", err)
			return
		}
		goFonts = &FontMeasurer{Regular: regular, Bold: bold}
	})
	return goFonts, goFontsErr
}

func (m *FontMeasurer) face(f Font) *sfnt.Font {
	if f.Bold() && m.Bold != nil {
		return m.Bold
	}
	return m.Regular
}

func ppem(size float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(size * 64))
}

// TextWidth implements the [Measurer] interface.
// Glyphs missing from the font contribute the advance of the
// replacement glyph.
func (m *FontMeasurer) TextWidth(text string, f Font) float64 {
	if text == "" || f.Size <= 0 {
		return 0
	}
	fnt := m.face(f)
	size := ppem(f.Size)

	m.mu.Lock()
	defer m.mu.Unlock()

	var total fixed.Int26_6
	prev := sfnt.GlyphIndex(0)
	for i, r := range text {
		gid, err := fnt.GlyphIndex(&m.buf, r)
		if err != nil {
			continue
		}
		if i > 0 && prev != 0 {
			if k, err := fnt.Kern(&m.buf, prev, gid, size, font.HintingNone); err == nil {
				total += k
			}
		}
		if adv, err := fnt.GlyphAdvance(&m.buf, gid, size, font.HintingNone); err == nil {
			total += adv
		}
		prev = gid
	}
	return float64(total) / 64
}

// VerticalMetrics returns the ascent and descent of the font, both as
// positive distances from the baseline.
func (m *FontMeasurer) VerticalMetrics(f Font) (ascent, descent float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	met, err := m.face(f).Metrics(&m.buf, ppem(f.Size), font.HintingNone)
	if err != nil {
		return 0.8 * f.Size, 0.2 * f.Size
	}
	return float64(met.Ascent) / 64, float64(met.Descent) / 64
}

// Outline returns the glyph outlines of a single line of text, with the
// origin on the baseline at the start of the text.  The y axis points
// downwards.  The second return value is the advance width of the text.
func (m *FontMeasurer) Outline(text string, f Font) (*path.Data, float64, error) {
	fnt := m.face(f)
	size := ppem(f.Size)

	m.mu.Lock()
	defer m.mu.Unlock()

	p := &path.Data{}
	var x fixed.Int26_6
	prev := sfnt.GlyphIndex(0)
	for i, r := range text {
		gid, err := fnt.GlyphIndex(&m.buf, r)
		if err != nil {
			return nil, 0, fmt.Errorf("glyph for %q: %w", r, err)
		}
		if i > 0 && prev != 0 {
			if k, err := fnt.Kern(&m.buf, prev, gid, size, font.HintingNone); err == nil {
				x += k
			}
		}

		segs, err := fnt.LoadGlyph(&m.buf, gid, size, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("outline for %q: %w", r, err)
		}
		open := false
		for _, seg := range segs {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					p.Close()
				}
				p.MoveTo(glyphPoint(seg.Args[0], x))
				open = true
			case sfnt.SegmentOpLineTo:
				p.LineTo(glyphPoint(seg.Args[0], x))
			case sfnt.SegmentOpQuadTo:
				p.QuadTo(glyphPoint(seg.Args[0], x), glyphPoint(seg.Args[1], x))
			case sfnt.SegmentOpCubeTo:
				p.CubeTo(glyphPoint(seg.Args[0], x), glyphPoint(seg.Args[1], x), glyphPoint(seg.Args[2], x))
			}
		}
		if open {
			p.Close()
		}

		adv, err := fnt.GlyphAdvance(&m.buf, gid, size, font.HintingNone)
		if err != nil {
			return nil, 0, fmt.Errorf("advance for %q: %w", r, err)
		}
		x += adv
		prev = gid
	}
	return p, float64(x) / 64, nil
}

func glyphPoint(p fixed.Point26_6, dx fixed.Int26_6) vec.Vec2 {
	return vec.Vec2{
		X: float64(p.X+dx) / 64,
		Y: float64(p.Y) / 64,
	}
}

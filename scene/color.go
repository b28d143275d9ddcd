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
	"strconv"
	"strings"
)

var namedColors = map[string]color.NRGBA{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"orange":      {255, 165, 0, 255},
	"purple":      {128, 0, 128, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseColor parses a CSS colour in one of the forms #rgb, #rrggbb,
// #rrggbbaa, rgb(r,g,b), rgba(r,g,b,a) or a basic colour name.
func ParseColor(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		switch len(hex) {
		case 3:
			v, err := strconv.ParseUint(hex, 16, 16)
			if err != nil {
				return color.NRGBA{}, false
			}
			r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
			return color.NRGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}, true
		case 6, 8:
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return color.NRGBA{}, false
			}
			if len(hex) == 6 {
				v = v<<8 | 0xff
			}
			return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
		}
		return color.NRGBA{}, false
	}

	var args string
	var hasAlpha bool
	if rest, ok := strings.CutPrefix(s, "rgba("); ok {
		args, hasAlpha = rest, true
	} else if rest, ok := strings.CutPrefix(s, "rgb("); ok {
		args = rest
	} else {
		return color.NRGBA{}, false
	}
	args, ok := strings.CutSuffix(args, ")")
	if !ok {
		return color.NRGBA{}, false
	}
	parts := strings.Split(args, ",")
	if hasAlpha && len(parts) != 4 || !hasAlpha && len(parts) != 3 {
		return color.NRGBA{}, false
	}

	var ch [3]uint8
	for i := range 3 {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		ch[i] = uint8(min(max(v, 0), 255) + 0.5)
	}
	c := color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: 255}
	if hasAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		c.A = uint8(min(max(a, 0), 1)*255 + 0.5)
	}
	return c, true
}

// MustColor is like [ParseColor] but returns fallback for invalid input.
func MustColor(s string, fallback color.NRGBA) color.NRGBA {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return fallback
}

// HexColor formats c as #rrggbb, dropping the alpha channel.
func HexColor(c color.NRGBA) string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0xf]
	}
	return string(b)
}

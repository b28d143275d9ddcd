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

package tools

import (
	"maps"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/drawtools/scene"
)

// Style is the open set of visual options of a drawing.  Keys which are
// not set take the default value for the tool kind (see [DefaultStyle]).
// Values of the wrong type are never an error: every accessor falls back
// to the default instead.
type Style map[string]any

// Clone returns a deep copy of s with all numbers converted to float64,
// which is what a JSON round trip produces.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	res := make(Style, len(s))
	for k, v := range s {
		res[k] = normalizeValue(v)
	}
	return res
}

func normalizeValue(v any) any {
	switch v := v.(type) {
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	case []float64:
		res := make([]any, len(v))
		for i, x := range v {
			res[i] = x
		}
		return res
	case []int:
		res := make([]any, len(v))
		for i, x := range v {
			res[i] = float64(x)
		}
		return res
	case []any:
		res := make([]any, len(v))
		for i, x := range v {
			res[i] = normalizeValue(x)
		}
		return res
	case map[string]any:
		return map[string]any(Style(v).Clone())
	case Style:
		return map[string]any(v.Clone())
	}
	return v
}

// Float returns the numeric value of key.  Numeric strings are parsed.
// Missing, malformed, NaN or infinite values give def.
func (s Style) Float(key string, def float64) float64 {
	var x float64
	switch v := s[key].(type) {
	case float64:
		x = v
	case float32:
		x = float64(v)
	case int:
		x = float64(v)
	case int64:
		x = float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(v, "px")), 64)
		if err != nil {
			return def
		}
		x = f
	default:
		return def
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return def
	}
	return x
}

// Int returns the value of key rounded towards zero.
func (s Style) Int(key string, def int) int {
	x := s.Float(key, math.NaN())
	if math.IsNaN(x) || math.Abs(x) > 1e9 {
		return def
	}
	return int(x)
}

// Bool returns the boolean value of key.  The strings "true" and
// "false" and numbers are accepted.
func (s Style) Bool(key string, def bool) bool {
	switch v := s[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return def
}

// String returns the string value of key.
func (s Style) String(key string, def string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return def
}

// Color returns the value of key if it is a valid colour.
func (s Style) Color(key string, def string) string {
	v, ok := s[key].(string)
	if !ok {
		return def
	}
	if _, ok := scene.ParseColor(v); !ok {
		return def
	}
	return v
}

// Floats returns a list of non-negative numbers, e.g. a dash pattern.
// Both JSON arrays and comma separated strings are accepted.
func (s Style) Floats(key string, def []float64) []float64 {
	var items []any
	switch v := s[key].(type) {
	case []any:
		items = v
	case []float64:
		return v
	case string:
		for _, f := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
			items = append(items, f)
		}
	default:
		return def
	}
	res := make([]float64, 0, len(items))
	tmp := Style{}
	for _, it := range items {
		tmp["x"] = it
		x := tmp.Float("x", -1)
		if x < 0 {
			return def
		}
		res = append(res, x)
	}
	return res
}

// Sub returns the nested style stored under key, or nil.
func (s Style) Sub(key string) Style {
	switch v := s[key].(type) {
	case map[string]any:
		return Style(v)
	case Style:
		return v
	}
	return nil
}

// Merge returns a new style with the values of over replacing those in
// s.  Nested styles are merged recursively.
func (s Style) Merge(over Style) Style {
	res := maps.Clone(s)
	if res == nil {
		res = Style{}
	}
	for k, v := range over {
		if sub := over.Sub(k); sub != nil {
			if base := s.Sub(k); base != nil {
				res[k] = map[string]any(base.Merge(sub))
				continue
			}
		}
		res[k] = v
	}
	return res
}

// Style keys shared by all tools.
const (
	KeyLineColor      = "lineColor"
	KeyLineWidth      = "lineWidth"
	KeyLineStyle      = "lineStyle"
	KeyLineDash       = "lineDash"
	KeyLineCap        = "lineCap"
	KeyOpacity        = "opacity"
	KeyTextColor      = "textColor"
	KeyTextBackground = "textBackground"
	KeyFontSize       = "fontSize"
	KeyFontFamily     = "fontFamily"
	KeyFontWeight     = "fontWeight"
	KeyTextAlign      = "textAlign"
	KeyTextVAlign     = "textVAlign"
	KeyTextOffset     = "textOffset"
	KeyTextRotate     = "textRotate"
	KeyHandleRadius   = "handleRadius"
	KeyHitWidth       = "hitWidth"
	KeyShowPrice      = "showPrice"
	KeyPrecision      = "symbolPrecision"
	KeyExtendLeft     = "extendLeft"
	KeyExtendRight    = "extendRight"
	KeyArrowStart     = "arrowStart"
	KeyArrowEnd       = "arrowEnd"
	KeyInfoSettings   = "infoSettings"
	KeyPipSize        = "pipSize"
)

// Keys of the nested infoSettings style of trend lines.
const (
	InfoShow          = "showInfo"
	InfoPriceDelta    = "priceDelta"
	InfoPercentChange = "percentChange"
	InfoPips          = "pips"
	InfoBars          = "bars"
	InfoDistance      = "distance"
	InfoAngle         = "angle"
)

// Keys of the Fibonacci tools.
const (
	KeyReverse         = "reverse"
	KeyShowZones       = "showZones"
	KeyZoneOpacity     = "zoneOpacity"
	KeyLevelsLineStyle = "levelsLineStyle"
	KeyLevelsLineWidth = "levelsLineWidth"
	KeyShowPrices      = "showPrices"
	KeyShowLevels      = "showLevels"
	KeyShowTrendline   = "showTrendline"
)

var commonDefaults = Style{
	KeyLineColor:      "#2962ff",
	KeyLineWidth:      2.0,
	KeyLineStyle:      "solid",
	KeyLineCap:        "round",
	KeyOpacity:        1.0,
	KeyTextColor:      "#2962ff",
	KeyTextBackground: "",
	KeyFontSize:       12.0,
	KeyFontFamily:     "sans-serif",
	KeyFontWeight:     "normal",
	KeyTextAlign:      "center",
	KeyTextVAlign:     "top",
	KeyTextOffset:     8.0,
	KeyTextRotate:     true,
	KeyHandleRadius:   5.0,
	KeyHitWidth:       10.0,
}

var kindDefaults = map[Kind]Style{
	KindTrendline: {
		KeyExtendLeft:  false,
		KeyExtendRight: false,
		KeyArrowStart:  false,
		KeyArrowEnd:    false,
		KeyPipSize:     0.0001,
		KeyPrecision:   2.0,
		KeyInfoSettings: map[string]any{
			InfoShow:          false,
			InfoPriceDelta:    true,
			InfoPercentChange: true,
			InfoPips:          false,
			InfoBars:          true,
			InfoDistance:      false,
			InfoAngle:         true,
		},
	},
	KindHorizontalLine: {
		KeyLineStyle:  "dotted",
		KeyTextAlign:  "right",
		KeyShowPrice:  true,
		KeyPrecision:  5.0,
		KeyTextVAlign: "top",
	},
	KindHorizontalRay: {
		KeyLineStyle:  "dotted",
		KeyTextAlign:  "right",
		KeyShowPrice:  true,
		KeyPrecision:  5.0,
		KeyTextVAlign: "top",
	},
	KindVerticalLine: {
		KeyTextAlign:  "center",
		KeyTextVAlign: "middle",
		KeyTextRotate: true,
	},
	KindRay:          {},
	KindExtendedLine: {},
	KindCrossLine: {
		KeyLineStyle: "dashed",
		KeyLineWidth: 1.0,
		KeyShowPrice: true,
		KeyPrecision: 5.0,
	},
	KindFibRetracement: fibDefaults,
	KindFibExtension:   fibDefaults,
}

var fibDefaults = Style{
	KeyLineWidth:       1.0,
	KeyReverse:         false,
	KeyShowZones:       true,
	KeyZoneOpacity:     0.1,
	KeyLevelsLineStyle: "",
	KeyLevelsLineWidth: 0.0,
	KeyShowPrices:      true,
	KeyShowLevels:      true,
	KeyShowTrendline:   true,
	KeyExtendLeft:      false,
	KeyExtendRight:     false,
	KeyPrecision:       2.0,
}

// DefaultStyle returns the complete default style of a tool kind.
func DefaultStyle(k Kind) Style {
	return commonDefaults.Merge(kindDefaults[k]).Clone()
}

// dashPattern converts a line style name to a dash pattern in pixels.
// Unknown names give a solid line.
func dashPattern(name string) []float64 {
	switch name {
	case "dashed":
		return []float64{6, 4}
	case "dotted":
		return []float64{2, 3}
	case "dash-dot":
		return []float64{6, 3, 2, 3}
	}
	return nil
}

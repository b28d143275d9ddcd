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

package testcases

import "seehuhn.de/go/drawtools/tools"

var labelCases = []TestCase{
	{
		Name:   "alignments",
		Width:  800,
		Height: 600,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withStyle(withText(drawing("left", tools.KindTrendline, pt(10, 50), pt(90, 100)), "left"),
				tools.KeyTextAlign, "left", tools.KeyTextVAlign, "middle"),
			withStyle(withText(drawing("center", tools.KindTrendline, pt(10, 120), pt(90, 170)), "center"),
				tools.KeyTextAlign, "center", tools.KeyTextVAlign, "middle"),
			withStyle(withText(drawing("right", tools.KindTrendline, pt(10, 190), pt(90, 240)), "right"),
				tools.KeyTextAlign, "right", tools.KeyTextVAlign, "middle"),
		},
	},
	{
		Name:   "above_below",
		Width:  800,
		Height: 600,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withStyle(withText(drawing("above", tools.KindTrendline, pt(10, 80), pt(90, 160)), "above"),
				tools.KeyTextVAlign, "top"),
			withStyle(withText(drawing("below", tools.KindTrendline, pt(10, 160), pt(90, 240)), "below"),
				tools.KeyTextVAlign, "bottom"),
		},
	},
	{
		Name:   "steep",
		Width:  400,
		Height: 300,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withStyle(withText(drawing("steep", tools.KindTrendline, pt(48, 20), pt(52, 280)), "almost vertical"),
				tools.KeyTextVAlign, "middle"),
		},
	},
	{
		Name:   "multiline",
		Width:  800,
		Height: 600,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withStyle(withText(drawing("multi", tools.KindTrendline, pt(10, 100), pt(90, 200)), "first line\nsecond line"),
				tools.KeyTextVAlign, "middle",
				tools.KeyTextBackground, "#fff3e0"),
		},
	},
}

var viewportCases = []TestCase{
	{
		Name:   "margins",
		Width:  800,
		Height: 600,
		Chart: Chart{
			Bars:         [2]float64{0, 100},
			Prices:       [2]float64{0, 300},
			MarginLeft:   60,
			MarginRight:  80,
			MarginTop:    20,
			MarginBottom: 30,
		},
		Drawings: []tools.Payload{
			withText(drawing("ext", tools.KindExtendedLine, pt(40, 100), pt(60, 180)), "clipped"),
			drawing("h", tools.KindHorizontalLine, pt(0, 150)),
		},
	},
	{
		Name:   "zoomed",
		Width:  400,
		Height: 300,
		Chart:  Chart{Bars: [2]float64{0, 100}, Prices: [2]float64{0, 300}, Zoom: 2},
		Drawings: []tools.Payload{
			withText(drawing("trend", tools.KindTrendline, pt(10, 50), pt(90, 250)), "zoomed"),
		},
	},
	{
		Name:   "bar_centres",
		Width:  400,
		Height: 300,
		Chart: Chart{
			Bars:       [2]float64{0, 9},
			Prices:     [2]float64{0, 300},
			BarCentres: []float64{20, 60, 100, 140, 220, 260, 300, 340, 360, 380},
		},
		Drawings: []tools.Payload{
			withText(drawing("gap", tools.KindTrendline, pt(1, 50), pt(8, 250)), "session gap"),
			drawing("v", tools.KindVerticalLine, pt(4, 0)),
		},
	},
}

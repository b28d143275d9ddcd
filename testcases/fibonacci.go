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

var fibonacciCases = []TestCase{
	{
		Name:   "retracement",
		Width:  800,
		Height: 600,
		Chart:  Chart{Bars: [2]float64{0, 100}, Prices: [2]float64{0, 300}, MarginLeft: 80},
		Drawings: []tools.Payload{
			drawing("fib", tools.KindFibRetracement, pt(20, 100), pt(80, 200)),
		},
	},
	{
		Name:   "retracement_reversed",
		Width:  800,
		Height: 600,
		Chart:  Chart{Bars: [2]float64{0, 100}, Prices: [2]float64{0, 300}, MarginLeft: 80},
		Drawings: []tools.Payload{
			withStyle(drawing("fib", tools.KindFibRetracement, pt(20, 100), pt(80, 200)),
				tools.KeyReverse, true,
				tools.KeyShowZones, false),
		},
	},
	{
		Name:   "extension",
		Width:  800,
		Height: 600,
		Chart:  Chart{Bars: [2]float64{0, 100}, Prices: [2]float64{0, 300}},
		Drawings: []tools.Payload{
			withStyle(drawing("fib", tools.KindFibExtension, pt(30, 50), pt(50, 100)),
				tools.KeyExtendRight, true,
				tools.KeyLevelsLineStyle, "dotted"),
		},
	},
	{
		Name:   "custom_levels",
		Width:  400,
		Height: 300,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			func() tools.Payload {
				p := drawing("fib", tools.KindFibRetracement, pt(10, 60), pt(90, 240))
				p.Levels = []tools.FibLevel{
					{Value: 0, Label: "0", Color: "#787b86", Visible: true},
					{Value: 0.5, Label: "0.5", Color: "#4caf50", Visible: true, LineWidth: 2},
					{Value: 1, Label: "1", Color: "#787b86", Visible: true},
				}
				return p
			}(),
		},
	},
}

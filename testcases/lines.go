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

var lineCases = []TestCase{
	{
		Name:   "trendline",
		Width:  800,
		Height: 600,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withText(drawing("trend", tools.KindTrendline, pt(10, 50), pt(90, 250)), "uptrend"),
		},
	},
	{
		Name:   "trendline_info",
		Width:  800,
		Height: 600,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withStyle(drawing("trend", tools.KindTrendline, pt(20, 100), pt(60, 200)),
				tools.KeyInfoSettings, map[string]any{tools.InfoShow: true, tools.InfoPips: true}),
		},
	},
	{
		Name:   "trendline_arrows",
		Width:  400,
		Height: 300,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withStyle(drawing("arrows", tools.KindTrendline, pt(20, 200), pt(80, 100)),
				tools.KeyArrowStart, true,
				tools.KeyArrowEnd, true,
				tools.KeyLineWidth, 3),
		},
	},
	{
		Name:   "trendline_extended",
		Width:  400,
		Height: 300,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withStyle(drawing("ext", tools.KindTrendline, pt(40, 120), pt(60, 150)),
				tools.KeyExtendLeft, true,
				tools.KeyExtendRight, true,
				tools.KeyLineStyle, "dashed"),
		},
	},
	{
		Name:   "ray",
		Width:  800,
		Height: 600,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withText(drawing("ray", tools.KindRay, pt(0, 250), pt(5, 150)), "steep ray"),
			withText(drawing("ray_flat", tools.KindRay, pt(30, 100), pt(70, 110)), "flat ray"),
		},
	},
	{
		Name:   "extended_line",
		Width:  800,
		Height: 600,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withText(drawing("ext", tools.KindExtendedLine, pt(40, 140), pt(60, 160)), "channel"),
		},
	},
}

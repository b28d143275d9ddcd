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

var horizontalCases = []TestCase{
	{
		Name:   "line",
		Width:  800,
		Height: 600,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withText(drawing("support", tools.KindHorizontalLine, pt(50, 120)), "support"),
			withStyle(drawing("resistance", tools.KindHorizontalLine, pt(50, 240)),
				tools.KeyLineColor, "#f23645",
				tools.KeyTextColor, "#f23645",
				tools.KeyPrecision, 2),
		},
	},
	{
		Name:   "ray",
		Width:  800,
		Height: 600,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withText(drawing("ray", tools.KindHorizontalRay, pt(40, 180)), "breakout"),
		},
	},
	{
		Name:   "cross",
		Width:  800,
		Height: 600,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withText(drawing("cross", tools.KindCrossLine, pt(30, 90)), "entry"),
		},
	},
	{
		Name:   "offscreen",
		Width:  400,
		Height: 300,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			drawing("above", tools.KindHorizontalLine, pt(50, 400)),
			drawing("below", tools.KindHorizontalLine, pt(50, -20)),
		},
	},
}

var verticalCases = []TestCase{
	{
		Name:   "rotated",
		Width:  800,
		Height: 600,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withText(drawing("news", tools.KindVerticalLine, pt(50, 0)), "FOMC"),
		},
	},
	{
		Name:   "upright",
		Width:  800,
		Height: 600,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withStyle(withText(drawing("news", tools.KindVerticalLine, pt(25, 0)), "NFP\n08:30"),
				tools.KeyTextRotate, false),
		},
	},
	{
		Name:   "top",
		Width:  400,
		Height: 300,
		Chart:  defaultChart,
		Drawings: []tools.Payload{
			withStyle(withText(drawing("session", tools.KindVerticalLine, pt(75, 0)), "session open"),
				tools.KeyTextVAlign, "top",
				tools.KeyTextAlign, "left"),
		},
	},
}

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

// Command export writes the chart scenarios to JSON, one drawings
// document per scenario.  Run from the module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/drawtools/registry"
	"seehuhn.de/go/drawtools/testcases"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			out.TestCases = append(out.TestCases, toJSON(category, tc))
		}
	}

	if err := os.MkdirAll("testdata", 0o755); err != nil {
		logrus.WithError(err).Fatal("cannot create output directory")
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		logrus.WithError(err).Fatal("cannot create output file")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logrus.WithError(err).Fatal("cannot write test cases")
	}
	logrus.WithField("count", len(out.TestCases)).Info("test cases exported")
}

type jsonTestCase struct {
	Name     string            `json:"name"`
	Width    int               `json:"width"`
	Height   int               `json:"height"`
	Chart    jsonChart         `json:"chart"`
	Drawings registry.Document `json:"drawings"`
}

type jsonChart struct {
	Bars       [2]float64 `json:"bars"`
	Prices     [2]float64 `json:"prices"`
	Margins    [4]float64 `json:"margins"` // left, right, top, bottom
	Zoom       float64    `json:"zoom,omitempty"`
	BarCentres []float64  `json:"barCentres,omitempty"`
}

func toJSON(category string, tc testcases.TestCase) jsonTestCase {
	ch := tc.Chart
	return jsonTestCase{
		Name:   category + "_" + tc.Name,
		Width:  tc.Width,
		Height: tc.Height,
		Chart: jsonChart{
			Bars:       ch.Bars,
			Prices:     ch.Prices,
			Margins:    [4]float64{ch.MarginLeft, ch.MarginRight, ch.MarginTop, ch.MarginBottom},
			Zoom:       ch.Zoom,
			BarCentres: ch.BarCentres,
		},
		Drawings: registry.Document{
			Version:  registry.DocumentVersion,
			Drawings: tc.Drawings,
		},
	}
}

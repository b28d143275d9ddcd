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
	"math"

	"github.com/shopspring/decimal"
)

// maxPrecision limits the number of decimals in price labels.
const maxPrecision = 12

// FormatPrice formats a price with exactly the given number of
// decimals, rounding half away from zero.  NaN and infinite prices give
// the empty string.
func FormatPrice(price float64, precision int) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return ""
	}
	precision = min(max(precision, 0), maxPrecision)
	return decimal.NewFromFloat(price).StringFixed(int32(precision))
}

// percentChange returns the relative change from a to b, in percent.
// The result is false if a is zero.
func percentChange(a, b float64) (decimal.Decimal, bool) {
	if a == 0 || math.IsNaN(a) || math.IsNaN(b) {
		return decimal.Zero, false
	}
	da := decimal.NewFromFloat(a)
	db := decimal.NewFromFloat(b)
	return db.Sub(da).Div(da.Abs()).Mul(decimal.NewFromInt(100)), true
}

// Package report renders projection results as fixed-width text tables.
package report

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
)

// USD formats v with a K/M/B suffix and two decimals, e.g. "$1.23M".
func USD(v float64) string {
	return usd(v, 2, 2)
}

// USDShort is the compact form: whole K and M, one decimal for B.
func USDShort(v float64) string {
	return usd(v, 1, 0)
}

// usd picks the suffix by magnitude. bPlaces applies to billions, places to
// everything smaller.
func usd(v float64, bPlaces, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	d := decimal.NewFromFloat(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	switch {
	case d.GreaterThanOrEqual(billion):
		return sign + "$" + d.Div(billion).StringFixed(bPlaces) + "B"
	case d.GreaterThanOrEqual(million):
		return sign + "$" + d.Div(million).StringFixed(places) + "M"
	case d.GreaterThanOrEqual(thousand):
		return sign + "$" + d.Div(thousand).StringFixed(places) + "K"
	default:
		return sign + "$" + d.StringFixed(places)
	}
}

// Percent formats an already-scaled percentage: 1.5 -> "1.50%".
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

// Rate formats a fraction as a percentage: 0.015 -> "1.50%".
func Rate(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return Percent(decimal.NewFromFloat(v).Shift(2).InexactFloat64())
}

// Package stats contains the aggregation use cases feeding the dashboards.
package stats

import "github.com/shopspring/decimal"

// GrowthRate returns the percentage change from prior to current, rounded
// to two decimal places.
//
// Zero-baseline policy: with prior and current both zero the rate is 0%.
// With prior zero and current non-zero the true rate is undefined, and the
// series would otherwise show an infinity; the engine reports ±100% — the
// whole current value is treated as growth — which keeps the figure finite,
// signed and comparable.
func GrowthRate(current, prior decimal.Decimal) decimal.Decimal {
	if prior.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		if current.IsNegative() {
			return decimal.NewFromInt(-100)
		}
		return decimal.NewFromInt(100)
	}
	return current.Sub(prior).
		Mul(decimal.NewFromInt(100)).
		Div(prior).
		Round(2)
}

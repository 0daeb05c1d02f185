package service

import "github.com/shopspring/decimal"

// roundCents rounds a decimal amount to whole cents, half away from zero.
// Rollups round PER LINE and sum the rounded subtotals — never the other
// way around — so totals are reproducible to the cent regardless of line
// evaluation order.
func roundCents(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// lineSubtotal prices one BOM line: quantity × unit cost, rounded.
func lineSubtotal(unitCost int64, quantity decimal.Decimal) int64 {
	return roundCents(quantity.Mul(decimal.NewFromInt(unitCost)))
}

// labourCost prices labour time: minutes/60 × hourly rate, rounded once.
func labourCost(totalMinutes int, ratePerHour int64) int64 {
	if totalMinutes <= 0 || ratePerHour <= 0 {
		return 0
	}
	return roundCents(decimal.NewFromInt(int64(totalMinutes)).
		Mul(decimal.NewFromInt(ratePerHour)).
		Div(decimal.NewFromInt(60)))
}

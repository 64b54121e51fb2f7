package journal

import "github.com/shopspring/decimal"

// SuggestedProfit derives a profit/loss figure from entry, exit, and size.
// LONG: (exit - entry) * quantity. SHORT: (entry - exit) * quantity.
// The result is a suggestion; a persisted record may carry a manually
// entered figure instead.
func SuggestedProfit(side Side, entryPrice, exitPrice, quantity float64) float64 {
	entry := decimal.NewFromFloat(entryPrice)
	exit := decimal.NewFromFloat(exitPrice)
	qty := decimal.NewFromFloat(quantity)

	diff := exit.Sub(entry)
	if side == SideShort {
		diff = entry.Sub(exit)
	}
	return diff.Mul(qty).InexactFloat64()
}

// internal/calc/equity.go
// Package calc implements the borrower-facing calculators. Every function is
// pure so calculator workers stay trivially testable.
package calc

import "heloc-workers/internal/models"

// EquityResult is the output of the equity calculator.
type EquityResult struct {
	Equity        float64 `json:"equity"`
	AvailableCash int     `json:"availableCash"`
	LTVPercent    float64 `json:"ltvPercent"`
}

// Equity computes equity, borrowable cash and the loan-to-value ratio.
// Equity and available cash are intentionally not clamped at zero so an
// underwater property reads as a negative number, matching what the
// borrower sees. LTV is rounded to one decimal place for display.
func Equity(homeValue, mortgageBalance float64) EquityResult {
	equity := homeValue - mortgageBalance

	var ltv float64
	if homeValue != 0 {
		ltv = roundTo(mortgageBalance/homeValue*100, 1)
	}

	return EquityResult{
		Equity:        equity,
		AvailableCash: models.FloorCash(equity),
		LTVPercent:    ltv,
	}
}

// roundTo rounds v half away from zero at the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	scale := 1.0
	for i := 0; i < decimals; i++ {
		scale *= 10
	}
	if v >= 0 {
		return float64(int64(v*scale+0.5)) / scale
	}
	return float64(int64(v*scale-0.5)) / scale
}

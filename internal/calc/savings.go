// internal/calc/savings.go
package calc

// creditCardMinimumRate approximates a card's minimum payment as a flat 2%
// of the balance per month.
const creditCardMinimumRate = 0.02

// SavingsResult is the output of the debt-consolidation savings calculator.
type SavingsResult struct {
	CreditCardMonthly float64 `json:"creditCardMonthly"`
	HELOCMonthly      float64 `json:"helocMonthly"`
	MonthlySavings    float64 `json:"monthlySavings"`
	AnnualSavings     float64 `json:"annualSavings"`
}

// Savings compares the card minimum payment against an interest-only line of
// credit payment on the same balance. helocRate is a percentage. Savings can
// go negative when the line's rate exceeds the 2% minimum-payment threshold;
// that is the honest answer and is reported as-is.
func Savings(creditCardDebt, helocRate float64) SavingsResult {
	cardMonthly := creditCardDebt * creditCardMinimumRate
	helocMonthly := creditCardDebt * (helocRate / 12 / 100)
	monthly := cardMonthly - helocMonthly

	return SavingsResult{
		CreditCardMonthly: cardMonthly,
		HELOCMonthly:      helocMonthly,
		MonthlySavings:    monthly,
		AnnualSavings:     monthly * 12,
	}
}

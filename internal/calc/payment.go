// internal/calc/payment.go
package calc

import "math"

// RepaymentPeriodYears is the fixed repayment phase length after the draw
// period ends.
const RepaymentPeriodYears = 20

// PaymentResult is the output of the payment calculator.
type PaymentResult struct {
	InterestOnlyPayment float64 `json:"interestOnlyPayment"`
	FullPayment         float64 `json:"fullPayment"`
	TotalInterest       float64 `json:"totalInterest"`
}

// Payment computes the interest-only payment during the draw period and the
// fully amortizing payment during the 20-year repayment period.
// annualRate is a percentage (7.5 means 7.5%).
func Payment(loanAmount, annualRate float64, drawPeriodYears int) PaymentResult {
	monthlyRate := annualRate / 12 / 100
	totalPayments := float64(RepaymentPeriodYears * 12)

	interestOnly := loanAmount * monthlyRate

	var full float64
	if monthlyRate == 0 {
		// Zero rate degenerates to straight principal repayment.
		full = loanAmount / totalPayments
	} else {
		growth := math.Pow(1+monthlyRate, totalPayments)
		full = loanAmount * (monthlyRate * growth) / (growth - 1)
	}

	totalInterest := interestOnly*float64(drawPeriodYears)*12 +
		full*totalPayments - loanAmount

	return PaymentResult{
		InterestOnlyPayment: interestOnly,
		FullPayment:         full,
		TotalInterest:       totalInterest,
	}
}

// internal/workers/calculators/compute-quote/models.go
package computequote

import "heloc-workers/internal/calc"

// Calculator selectors accepted in Input.Calculator.
const (
	CalcEquity  = "equity"
	CalcPayment = "payment"
	CalcSavings = "savings"
)

type Input struct {
	Calculator string `json:"calculator"`

	// Equity inputs
	HomeValue       float64 `json:"homeValue,omitempty"`
	MortgageBalance float64 `json:"mortgageBalance,omitempty"`

	// Payment inputs
	LoanAmount      float64 `json:"loanAmount,omitempty"`
	InterestRate    float64 `json:"interestRate,omitempty"`
	DrawPeriodYears int     `json:"drawPeriodYears,omitempty"`

	// Savings inputs
	CreditCardDebt float64 `json:"creditCardDebt,omitempty"`
	HELOCRate      float64 `json:"helocRate,omitempty"`
}

type Output struct {
	Calculator string              `json:"calculator"`
	Equity     *calc.EquityResult  `json:"equity,omitempty"`
	Payment    *calc.PaymentResult `json:"payment,omitempty"`
	Savings    *calc.SavingsResult `json:"savings,omitempty"`
	Display    map[string]string   `json:"display"`
}

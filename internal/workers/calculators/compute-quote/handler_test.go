// internal/workers/calculators/compute-quote/handler_test.go
package computequote

import (
	"context"
	"testing"

	"heloc-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), logger.NewTestLogger(t))
}

func TestExecute_Equity(t *testing.T) {
	output, err := newHandler(t).Execute(context.Background(), &Input{
		Calculator:      CalcEquity,
		HomeValue:       500000,
		MortgageBalance: 250000,
	})
	require.NoError(t, err)

	require.NotNil(t, output.Equity)
	assert.Equal(t, float64(250000), output.Equity.Equity)
	assert.Equal(t, 212500, output.Equity.AvailableCash)
	assert.Equal(t, 50.0, output.Equity.LTVPercent)

	assert.Equal(t, "$250,000", output.Display["equity"])
	assert.Equal(t, "$212,500", output.Display["availableCash"])
	assert.Equal(t, "50.0%", output.Display["ltv"])
}

func TestExecute_Payment(t *testing.T) {
	output, err := newHandler(t).Execute(context.Background(), &Input{
		Calculator:      CalcPayment,
		LoanAmount:      100000,
		InterestRate:    7.5,
		DrawPeriodYears: 10,
	})
	require.NoError(t, err)

	require.NotNil(t, output.Payment)
	assert.InDelta(t, 625.0, output.Payment.InterestOnlyPayment, 0.001)
	assert.Equal(t, "$625/mo", output.Display["interestOnlyPayment"])
}

func TestExecute_PaymentZeroRate(t *testing.T) {
	output, err := newHandler(t).Execute(context.Background(), &Input{
		Calculator:      CalcPayment,
		LoanAmount:      120000,
		InterestRate:    0,
		DrawPeriodYears: 10,
	})
	require.NoError(t, err)

	require.NotNil(t, output.Payment)
	assert.InDelta(t, 500.0, output.Payment.FullPayment, 0.001)
}

func TestExecute_Savings(t *testing.T) {
	output, err := newHandler(t).Execute(context.Background(), &Input{
		Calculator:     CalcSavings,
		CreditCardDebt: 30000,
		HELOCRate:      7.5,
	})
	require.NoError(t, err)

	require.NotNil(t, output.Savings)
	assert.InDelta(t, 412.50, output.Savings.MonthlySavings, 0.001)
	assert.InDelta(t, 4950.0, output.Savings.AnnualSavings, 0.001)
	assert.Equal(t, "$600", output.Display["creditCardMonthly"])
	assert.Equal(t, "$188", output.Display["helocMonthly"])
	assert.Equal(t, "$4,950", output.Display["annualSavings"])
}

func TestExecute_InvalidInputs(t *testing.T) {
	tests := []struct {
		name  string
		input Input
	}{
		{"unknown calculator", Input{Calculator: "refinance"}},
		{"equity zero home value", Input{Calculator: CalcEquity, HomeValue: 0}},
		{"equity negative mortgage", Input{Calculator: CalcEquity, HomeValue: 100000, MortgageBalance: -1}},
		{"payment zero loan", Input{Calculator: CalcPayment, LoanAmount: 0, InterestRate: 7.5, DrawPeriodYears: 10}},
		{"payment zero draw period", Input{Calculator: CalcPayment, LoanAmount: 100000, InterestRate: 7.5}},
		{"savings zero debt", Input{Calculator: CalcSavings, CreditCardDebt: 0, HELOCRate: 7.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newHandler(t).Execute(context.Background(), &tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrQuoteInvalidInput)
		})
	}
}

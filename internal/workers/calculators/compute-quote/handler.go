// internal/workers/calculators/compute-quote/handler.go
package computequote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"heloc-workers/internal/calc"
	"heloc-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "compute-quote"
)

var (
	ErrQuoteInvalidInput = errors.New("QUOTE_INVALID_INPUT")
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "QUOTE_INVALID_INPUT", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	switch input.Calculator {
	case CalcEquity:
		return h.computeEquity(input)
	case CalcPayment:
		return h.computePayment(input)
	case CalcSavings:
		return h.computeSavings(input)
	default:
		return nil, fmt.Errorf("%w: unknown calculator %q", ErrQuoteInvalidInput, input.Calculator)
	}
}

func (h *Handler) computeEquity(input *Input) (*Output, error) {
	if input.HomeValue <= 0 {
		return nil, fmt.Errorf("%w: homeValue must be positive", ErrQuoteInvalidInput)
	}
	if input.MortgageBalance < 0 {
		return nil, fmt.Errorf("%w: mortgageBalance must not be negative", ErrQuoteInvalidInput)
	}

	result := calc.Equity(input.HomeValue, input.MortgageBalance)

	return &Output{
		Calculator: CalcEquity,
		Equity:     &result,
		Display: map[string]string{
			"equity":        calc.FormatUSD(result.Equity),
			"availableCash": calc.FormatUSD(float64(result.AvailableCash)),
			"ltv":           calc.FormatPercent(result.LTVPercent),
		},
	}, nil
}

func (h *Handler) computePayment(input *Input) (*Output, error) {
	if input.LoanAmount <= 0 {
		return nil, fmt.Errorf("%w: loanAmount must be positive", ErrQuoteInvalidInput)
	}
	if input.InterestRate < 0 {
		return nil, fmt.Errorf("%w: interestRate must not be negative", ErrQuoteInvalidInput)
	}
	if input.DrawPeriodYears <= 0 {
		return nil, fmt.Errorf("%w: drawPeriodYears must be positive", ErrQuoteInvalidInput)
	}

	result := calc.Payment(input.LoanAmount, input.InterestRate, input.DrawPeriodYears)

	return &Output{
		Calculator: CalcPayment,
		Payment:    &result,
		Display: map[string]string{
			"interestOnlyPayment": calc.FormatUSD(result.InterestOnlyPayment) + "/mo",
			"fullPayment":         calc.FormatUSD(result.FullPayment) + "/mo",
			"totalInterest":       calc.FormatUSD(result.TotalInterest),
		},
	}, nil
}

func (h *Handler) computeSavings(input *Input) (*Output, error) {
	if input.CreditCardDebt <= 0 {
		return nil, fmt.Errorf("%w: creditCardDebt must be positive", ErrQuoteInvalidInput)
	}
	if input.HELOCRate < 0 {
		return nil, fmt.Errorf("%w: helocRate must not be negative", ErrQuoteInvalidInput)
	}

	result := calc.Savings(input.CreditCardDebt, input.HELOCRate)

	return &Output{
		Calculator: CalcSavings,
		Savings:    &result,
		Display: map[string]string{
			"creditCardMonthly": calc.FormatUSD(result.CreditCardMonthly),
			"helocMonthly":      calc.FormatUSD(result.HELOCMonthly),
			"monthlySavings":    calc.FormatUSD(result.MonthlySavings),
			"annualSavings":     calc.FormatUSD(result.AnnualSavings),
		},
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

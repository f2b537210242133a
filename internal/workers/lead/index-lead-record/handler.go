// internal/workers/lead/index-lead-record/handler.go
package indexleadrecord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"heloc-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
)

const (
	TaskType = "index-lead-record"
)

var (
	ErrIndexWriteFailed = errors.New("INDEX_WRITE_FAILED")
)

type Handler struct {
	config *Config
	client *elasticsearch.Client
	logger logger.Logger
}

func NewHandler(config *Config, client *elasticsearch.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: client,
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
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "INDEX_WRITE_FAILED", err.Error(), 3)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.LeadID == "" {
		return nil, fmt.Errorf("%w: leadId is required", ErrIndexWriteFailed)
	}

	doc := h.buildDocument(input)

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal document: %v", ErrIndexWriteFailed, err)
	}

	res, err := h.client.Index(
		h.config.IndexName,
		bytes.NewReader(body),
		h.client.Index.WithDocumentID(input.LeadID),
		h.client.Index.WithContext(ctx),
		h.client.Index.WithRefresh("false"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexWriteFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		detail, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("%w: %s: %s", ErrIndexWriteFailed, res.Status(), detail)
	}

	h.logger.Info("lead indexed", map[string]interface{}{
		"leadId": input.LeadID,
		"index":  h.config.IndexName,
	})

	return &Output{
		Indexed:    true,
		IndexName:  h.config.IndexName,
		DocumentID: input.LeadID,
	}, nil
}

func (h *Handler) buildDocument(input *Input) *leadDocument {
	names := make([]string, 0, len(input.TopPartners))
	topScore := 0
	for _, p := range input.TopPartners {
		names = append(names, p.Name)
		if p.FinalScore > topScore {
			topScore = p.FinalScore
		}
	}

	return &leadDocument{
		LeadID:          input.LeadID,
		Email:           input.Survey.Email,
		ZipCode:         input.Survey.ZipCode,
		CreditScoreBand: string(input.Survey.CreditScoreBand),
		PropertyType:    string(input.Survey.PropertyType),
		UseOfFunds:      string(input.Survey.UseOfFunds),
		Timeframe:       string(input.Survey.Timeframe),
		HomeValue:       input.Survey.HomeValue,
		MortgageBalance: input.Survey.MortgageBalance,
		Equity:          input.Equity,
		AvailableCash:   input.AvailableCash,
		TopPartnerNames: names,
		TopScore:        topScore,
		Priority:        input.Priority,
		CreatedAt:       input.CreatedAt,
	}
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, _ int32) {
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

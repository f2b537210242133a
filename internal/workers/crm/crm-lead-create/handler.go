// internal/workers/crm/crm-lead-create/handler.go
package crmleadcreate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"heloc-workers/internal/calc"
	commonerrors "heloc-workers/internal/common/errors"
	"heloc-workers/internal/common/logger"
	"heloc-workers/internal/common/metrics"
	"heloc-workers/internal/common/zoho"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "crm-lead-create"
)

var (
	ErrCRMSyncFailed = errors.New("CRM_SYNC_FAILED")
)

// CRMService covers the Zoho calls this worker makes, narrowed for mocking.
type CRMService interface {
	SearchContacts(ctx context.Context, email string) ([]zoho.Contact, error)
	CreateContact(ctx context.Context, contact *zoho.Contact) (string, error)
}

type Handler struct {
	config *Config
	crm    CRMService
	logger logger.Logger
	errors *commonerrors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}

	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		crm:    zoho.NewCRMClient(config.ZohoAPIKey, config.ZohoOAuthToken),
		logger: scoped,
		errors: commonerrors.NewErrorHandler(scoped),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "PARSE_ERROR").Inc()
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "CRM_SYNC_FAILED").Inc()
		h.errors.HandleJobError(ctx, client, job, commonerrors.NewCRMSyncFailedError(err))
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if !h.config.Enabled {
		return &Output{
			Success: false,
			Message: "CRM lead creation disabled",
		}, nil
	}

	if input.Survey.Email == "" {
		return nil, fmt.Errorf("%w: survey has no contact email", ErrCRMSyncFailed)
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)

	existing, err := h.crm.SearchContacts(ctx, input.Survey.Email)
	if err != nil {
		h.logger.Warn("failed to search for existing contact", map[string]interface{}{
			"email": input.Survey.Email,
			"error": err,
		})
	} else if len(existing) > 0 {
		h.logger.Info("contact already exists in CRM", map[string]interface{}{
			"email":     input.Survey.Email,
			"contactId": existing[0].ID,
		})
		return &Output{
			Success:     true,
			Message:     "Contact already exists in CRM",
			ContactID:   existing[0].ID,
			CRMProvider: "zoho",
			CreatedAt:   createdAt,
		}, nil
	}

	contact := &zoho.Contact{
		Email:       input.Survey.Email,
		FirstName:   input.Survey.FirstName,
		LastName:    input.Survey.LastName,
		Phone:       input.Survey.Phone,
		Source:      h.config.LeadSource,
		Description: h.buildDescription(input),
	}

	contactID, err := h.crm.CreateContact(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCRMSyncFailed, err)
	}

	h.logger.Info("CRM contact created", map[string]interface{}{
		"leadId":    input.LeadID,
		"contactId": contactID,
	})

	return &Output{
		Success:     true,
		Message:     "Contact created in CRM",
		ContactID:   contactID,
		CRMProvider: "zoho",
		CreatedAt:   createdAt,
	}, nil
}

func (h *Handler) buildDescription(input *Input) string {
	topPartner := "none"
	if len(input.TopPartners) > 0 {
		topPartner = input.TopPartners[0].Name
	}
	return fmt.Sprintf("HELOC lead %s. Available cash %s, top match %s, priority %s.",
		input.LeadID,
		calc.FormatUSD(float64(input.AvailableCash)),
		topPartner,
		input.Priority,
	)
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

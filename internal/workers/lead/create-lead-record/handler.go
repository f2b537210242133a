// internal/workers/lead/create-lead-record/handler.go
package createleadrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"heloc-workers/internal/common/logger"
	"heloc-workers/internal/common/metrics"
	"heloc-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "create-lead-record"
)

var (
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrDuplicateLead        = errors.New("DUPLICATE_LEAD")
)

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
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
		errorCode := "UNKNOWN_ERROR"
		retries := int32(0)
		if errors.Is(err, ErrDatabaseInsertFailed) {
			errorCode = "DATABASE_INSERT_FAILED"
			retries = 3
		} else if errors.Is(err, ErrDuplicateLead) {
			errorCode = "DUPLICATE_LEAD"
			retries = 0
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	// One active lead per borrower email and property zip.
	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM leads
			WHERE email = $1 AND zip_code = $2 AND status NOT IN ('closed', 'rejected')
		)`, input.Survey.Email, input.Survey.ZipCode).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrDatabaseInsertFailed, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: open lead already exists for %s in %s",
			ErrDuplicateLead, input.Survey.Email, input.Survey.ZipCode)
	}

	leadID := uuid.New().String()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	surveyJSON, err := json.Marshal(input.Survey)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal survey: %v", ErrDatabaseInsertFailed, err)
	}
	partnersJSON, err := json.Marshal(input.TopPartners)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal partners: %v", ErrDatabaseInsertFailed, err)
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO leads (
			id, email, zip_code, survey_data, equity, available_cash,
			top_partners, priority, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		leadID,
		input.Survey.Email,
		input.Survey.ZipCode,
		surveyJSON,
		input.Equity,
		input.AvailableCash,
		partnersJSON,
		input.Priority,
		models.LeadStatusNew,
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrDatabaseInsertFailed, err)
	}

	// Audit trail is best effort; a failed audit insert never fails the lead.
	auditDetailsJSON, err := json.Marshal(map[string]interface{}{
		"email":         input.Survey.Email,
		"zipCode":       input.Survey.ZipCode,
		"availableCash": input.AvailableCash,
		"priority":      input.Priority,
	})
	if err != nil {
		h.logger.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		auditDetailsJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"lead_created",
		"lead",
		leadID,
		auditDetailsJSON,
		createdAt,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":  err,
			"leadId": leadID,
		})
	}

	metrics.LeadsCreated.WithLabelValues(input.Priority).Inc()

	h.logger.Info("lead record created", map[string]interface{}{
		"leadId":        leadID,
		"zipCode":       input.Survey.ZipCode,
		"availableCash": input.AvailableCash,
		"priority":      input.Priority,
	})

	return &Output{
		LeadID:     leadID,
		LeadStatus: models.LeadStatusNew,
		CreatedAt:  createdAt,
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

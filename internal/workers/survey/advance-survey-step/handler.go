// internal/workers/survey/advance-survey-step/handler.go
package advancesurveystep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"heloc-workers/internal/common/logger"
	"heloc-workers/internal/wizard"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "advance-survey-step"
)

var (
	ErrSessionStoreFailed = errors.New("SESSION_STORE_FAILED")
)

type Handler struct {
	config *Config
	store  *wizard.Store
	logger logger.Logger
}

func NewHandler(config *Config, store *wizard.Store, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		store:  store,
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
		errorCode := "SESSION_NOT_FOUND"
		if errors.Is(err, ErrSessionStoreFailed) {
			errorCode = "SESSION_STORE_FAILED"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Action == ActionStart {
		return h.startSession(ctx, input)
	}

	sess, err := h.store.Load(ctx, input.SessionID)
	if err != nil {
		if errors.Is(err, wizard.ErrSessionNotFound) {
			return nil, fmt.Errorf("session %s not found or expired", input.SessionID)
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionStoreFailed, err)
	}

	var transitionErr error
	switch input.Action {
	case ActionNext:
		transitionErr = sess.Next(input.Patch)
	case ActionBack:
		transitionErr = sess.Back()
	default:
		return nil, fmt.Errorf("unknown action %q", input.Action)
	}

	var guardErr *wizard.GuardError
	if transitionErr != nil {
		if !errors.As(transitionErr, &guardErr) {
			return nil, transitionErr
		}
		// Guard refusals are not job failures: the process keeps the
		// borrower on the current step.
		h.logger.Info("transition refused", map[string]interface{}{
			"sessionId": input.SessionID,
			"step":      string(sess.Step),
			"reason":    guardErr.Reason,
		})
	}

	if err := h.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionStoreFailed, err)
	}

	output := &Output{
		SessionID: sess.SessionID,
		Step:      sess.Step,
	}
	if guardErr != nil {
		output.GuardViolation = guardErr.Reason
	}
	if survey, done := sess.Completed(); done {
		output.Submitted = true
		output.Survey = &survey
		// Submitted sessions stay in the store until TTL so retried
		// downstream jobs can re-read the payload.
	}
	return output, nil
}

func (h *Handler) startSession(ctx context.Context, input *Input) (*Output, error) {
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	sess := wizard.NewSession(sessionID)
	if err := h.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionStoreFailed, err)
	}

	h.logger.Info("session started", map[string]interface{}{
		"sessionId": sessionID,
	})

	return &Output{
		SessionID: sessionID,
		Step:      sess.Step,
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

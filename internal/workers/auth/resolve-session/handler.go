// internal/workers/auth/resolve-session/handler.go
package resolvesession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"heloc-workers/internal/common/logger"
	"heloc-workers/internal/common/userapi"
	"heloc-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "resolve-session"
)

var (
	ErrMissingSessionID = errors.New("AUTHENTICATION_ERROR")
)

type Handler struct {
	config *Config
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, redisClient *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		redis:  redisClient,
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
		h.failJob(client, job, "AUTHENTICATION_ERROR", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// execute classifies the session. Account service failures degrade to an
// unauthenticated state rather than failing the job, only a missing session
// id is an error.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.SessionID == "" {
		return nil, fmt.Errorf("%w: sessionId is required", ErrMissingSessionID)
	}

	tokens := userapi.NewRedisTokenStore(h.redis, input.SessionID, h.config.TokenTTL)
	client := userapi.NewClient(h.config.BaseURL, tokens, h.config.Timeout)

	user, err := client.GetCurrentUser(ctx)
	if err != nil {
		h.logger.Warn("current user lookup failed, treating session as unauthenticated", map[string]interface{}{
			"sessionId": input.SessionID,
			"error":     err,
		})
		user = nil
	}

	state := models.StateFor(user)

	h.logger.Info("session resolved", map[string]interface{}{
		"sessionId": input.SessionID,
		"authState": state,
	})

	return &Output{
		SessionID: input.SessionID,
		AuthState: state,
		User:      user,
		IsAdmin:   state == models.AuthStateAdmin,
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

// internal/workers/lead/check-priority-routing/handler.go
package checkpriorityrouting

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"heloc-workers/internal/common/logger"
	"heloc-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "check-priority-routing"
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redis,
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
		h.failJob(client, job, "PRIORITY_ROUTING_FAILED", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "PRIORITY_ROUTING_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	accountType := AccountTypeStandard
	topScore := 0

	if len(input.TopPartners) > 0 {
		top := input.TopPartners[0]
		topScore = top.FinalScore

		fetched, err := h.getPartnerAccountType(ctx, top.Name)
		if err != nil {
			h.logger.Warn("failed to fetch partner account type, defaulting to standard", map[string]interface{}{
				"partner": top.Name,
				"error":   err,
			})
		} else {
			accountType = fetched
		}
	}

	isPremium := accountType == AccountTypePremium
	priority := h.determinePriority(input.Timeframe, isPremium, topScore)

	h.logger.Info("priority routing determined", map[string]interface{}{
		"leadId":      input.LeadID,
		"accountType": accountType,
		"isPremium":   isPremium,
		"topScore":    topScore,
		"priority":    priority,
	})

	return &Output{
		IsPremiumPartner: isPremium,
		RoutingPriority:  priority,
	}, nil
}

func (h *Handler) getPartnerAccountType(ctx context.Context, partnerName string) (string, error) {
	cacheKey := "partner:account:" + partnerName
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		return val, nil
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT account_type
		FROM partner_accounts
		WHERE name = $1`, partnerName)

	var accountType string
	err := row.Scan(&accountType)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("partner account not found for %s", partnerName)
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	switch accountType {
	case AccountTypePremium, AccountTypeVerified, AccountTypeStandard:
		// valid
	default:
		accountType = AccountTypeStandard
	}

	h.redis.Set(ctx, cacheKey, accountType, h.config.CacheTTL)
	return accountType, nil
}

func (h *Handler) determinePriority(timeframe models.Timeframe, isPremium bool, topScore int) string {
	if timeframe == models.TimeframeImmediate {
		return models.PriorityHot
	}
	if isPremium || topScore >= h.config.HighScoreThreshold {
		return models.PriorityHigh
	}
	return models.PriorityStandard
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

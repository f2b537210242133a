// internal/workers/matching/score-partners/handler.go
package scorepartners

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"heloc-workers/internal/catalog"
	"heloc-workers/internal/common/logger"
	"heloc-workers/internal/common/metrics"
	"heloc-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "score-partners"
)

// Scoring bonuses applied on top of each partner's base match score.
const (
	creditTierBonus = 10
	timeframeBonus  = 8
	useOfFundsBonus = 7
	loanRangeBonus  = 5
)

var (
	ErrPartnerMatchFailed = errors.New("PARTNER_MATCH_FAILED")
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
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "PARTNER_MATCH_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if !input.Survey.CreditScoreBand.Valid() {
		return nil, fmt.Errorf("%w: credit_score_band %q is not a known band", ErrPartnerMatchFailed, input.Survey.CreditScoreBand)
	}

	availableCash := input.Survey.AvailableCash()

	roster := input.CatalogOverride
	if len(roster) == 0 {
		roster = catalog.Partners()
	}

	scored := scorePartners(roster, &input.Survey, availableCash)
	top := topPartners(scored, h.config.TopPartnersLimit)

	for _, p := range top {
		metrics.PartnerMatches.WithLabelValues(p.Name).Inc()
	}

	h.logger.Info("partners scored", map[string]interface{}{
		"leadId":        input.LeadID,
		"availableCash": availableCash,
		"topPartner":    top[0].Name,
		"topScore":      top[0].FinalScore,
	})

	return &Output{
		LeadID:        input.LeadID,
		Equity:        input.Survey.Equity(),
		AvailableCash: availableCash,
		TopPartners:   top,
	}, nil
}

// scorePartners applies the bonus rules to every partner in the roster. The
// input order is the roster order, which makes the later stable sort
// reproducible when scores tie.
func scorePartners(roster []models.PartnerRecord, survey *models.SurveyResponse, availableCash int) []models.ScoredPartner {
	scored := make([]models.ScoredPartner, 0, len(roster))

	for _, partner := range roster {
		score := partner.BaseMatchScore

		if partner.ServesCreditBand(survey.CreditScoreBand) {
			score += creditTierBonus
		}
		if partner.HasSpecialty(string(survey.Timeframe)) {
			score += timeframeBonus
		}
		if partner.HasSpecialty(string(survey.UseOfFunds)) {
			score += useOfFundsBonus
		}
		if partner.CoversLoanAmount(availableCash) {
			score += loanRangeBonus
		}

		scored = append(scored, models.ScoredPartner{
			PartnerRecord: partner,
			FinalScore:    score,
		})
	}

	return scored
}

// topPartners sorts by final score descending, preserving catalog order for
// ties, and keeps at most limit entries with ranks assigned from 1.
func topPartners(scored []models.ScoredPartner, limit int) []models.ScoredPartner {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	if limit > len(scored) {
		limit = len(scored)
	}
	top := scored[:limit]
	for i := range top {
		top[i].Rank = i + 1
	}
	return top
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

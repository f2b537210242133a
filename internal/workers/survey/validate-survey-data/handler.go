// internal/workers/survey/validate-survey-data/handler.go
package validatesurveydata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"heloc-workers/internal/common/logger"
	"heloc-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const TaskType = "validate-survey-data"

var (
	ErrSurveyValidationFailed = errors.New("SURVEY_VALIDATION_FAILED")
)

// surveySchema is the JSON Schema every submitted survey must satisfy. The
// enums mirror the typed constants in internal/models; the schema exists so
// payloads arriving from process variables are checked before any worker
// trusts them.
const surveySchema = `{
  "type": "object",
  "required": ["home_value", "mortgage_balance", "credit_score_band", "property_type", "use_of_funds", "timeframe", "zip_code"],
  "properties": {
    "home_value": {"type": "number", "exclusiveMinimum": 0},
    "mortgage_balance": {"type": "number", "minimum": 0},
    "credit_score_band": {"enum": ["740+", "670-739", "580-669", "below-580"]},
    "property_type": {"enum": ["Single Family", "Condo", "Townhouse", "Multi-Family"]},
    "use_of_funds": {"enum": ["Home Renovation", "Debt Consolidation", "Education Expenses", "Investment Property", "Emergency Fund", "Other"]},
    "timeframe": {"enum": ["Immediately", "Within 30 days", "Within 60 days", "Just exploring"]},
    "zip_code": {"type": "string", "pattern": "^[0-9]{5}$"},
    "first_name": {"type": "string"},
    "last_name": {"type": "string"},
    "email": {"type": "string"},
    "phone": {"type": "string"}
  }
}`

type Handler struct {
	config *Config
	schema *gojsonschema.Schema
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(surveySchema))
	if err != nil {
		return nil, fmt.Errorf("compile survey schema: %w", err)
	}

	return &Handler{
		config: config,
		schema: schema,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}, nil
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
		h.failJob(client, job, "SURVEY_VALIDATION_FAILED", err.Error())
		return
	}

	if !output.Valid {
		// Invalid payloads throw a BPMN error so the process can route the
		// borrower back to the wizard instead of retrying.
		h.failJob(client, job, "SURVEY_VALIDATION_FAILED", fmt.Sprintf("survey invalid: %v", output.Errors))
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	doc, err := json.Marshal(input.Survey)
	if err != nil {
		return nil, fmt.Errorf("marshal survey: %w", err)
	}

	result, err := h.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		h.logger.Warn("survey rejected", map[string]interface{}{
			"errors": errs,
		})
		return &Output{Valid: false, Errors: errs}, nil
	}

	return &Output{Valid: true, Warnings: h.collectWarnings(&input.Survey)}, nil
}

// collectWarnings flags soft constraints the intake UI enforces but the
// server accepts. A mortgage above 90% of the home value still validates,
// the borrower just has little or no equity to draw on.
func (h *Handler) collectWarnings(survey *models.SurveyResponse) []string {
	var warnings []string
	if survey.MortgageBalance > 0.9*survey.HomeValue {
		warnings = append(warnings, fmt.Sprintf(
			"mortgage balance %.0f exceeds 90%% of home value %.0f",
			survey.MortgageBalance, survey.HomeValue,
		))
	}
	return warnings
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

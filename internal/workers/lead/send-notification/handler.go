// internal/workers/lead/send-notification/handler.go
package sendnotification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"heloc-workers/internal/calc"
	commonaws "heloc-workers/internal/common/aws"
	"heloc-workers/internal/common/logger"
	"heloc-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-notification"
)

var (
	ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")
)

// Define interfaces for mocking
type SESService interface {
	SendTextEmail(ctx context.Context, from, to, subject, body string) error
}

type SNSService interface {
	SendSMS(ctx context.Context, phoneNumber, message string) error
}

type Handler struct {
	config      *Config
	db          *sql.DB
	logger      logger.Logger
	sesClient   SESService
	snsClient   SNSService
	templateMap map[string]map[string]interface{}
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) (*Handler, error) {
	templateData, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	ctx := context.Background()
	sesClient, err := commonaws.NewSESClient(ctx, config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("init SES client: %w", err)
	}
	snsClient, err := commonaws.NewSNSClient(ctx, config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("init SNS client: %w", err)
	}

	return &Handler{
		config:      config,
		db:          db,
		logger:      log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient:   sesClient,
		snsClient:   snsClient,
		templateMap: templateData,
	}, nil
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
		errorCode := "NOTIFICATION_SEND_FAILED"
		retries := int32(0)
		if errors.Is(err, ErrNotificationSendFailed) {
			retries = 3
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	template, exists := h.templateMap[input.NotificationType]
	if !exists {
		return nil, fmt.Errorf("template not found for type: %s", input.NotificationType)
	}

	topPartner := ""
	if len(input.TopPartners) > 0 {
		topPartner = input.TopPartners[0].Name
	}

	data := map[string]interface{}{
		"leadId":        input.LeadID,
		"firstName":     input.Survey.FirstName,
		"availableCash": calc.FormatUSD(float64(input.AvailableCash)),
		"topPartner":    topPartner,
		"priority":      input.Priority,
	}

	subject := renderTemplate(template["subject"].(string), data)
	body := renderTemplate(template["body"].(string), data)

	sentAt := time.Now().UTC().Format(time.RFC3339)
	notificationID := uuid.New().String()

	emailSent := false
	smsSent := false

	if h.config.EmailEnabled && input.Survey.Email != "" {
		if err := h.sendEmail(ctx, input.Survey.Email, subject, body); err != nil {
			h.logger.Error("email send failed", map[string]interface{}{
				"error": err,
				"email": input.Survey.Email,
			})
			output := &Output{NotificationID: notificationID, Status: StatusFailed, SentAt: sentAt}
			h.logNotification(ctx, input, output, subject)
			return output, nil
		}
		emailSent = true
	}

	// SMS is reserved for hot leads, the borrower asked for immediate funding.
	if h.config.SMSEnabled && input.Survey.Phone != "" && input.Priority == models.PriorityHot {
		if err := h.sendSMS(ctx, input.Survey.Phone, body); err != nil {
			h.logger.Error("SMS send failed", map[string]interface{}{
				"error": err,
				"phone": input.Survey.Phone,
			})
			output := &Output{NotificationID: notificationID, Status: StatusFailed, SentAt: sentAt}
			h.logNotification(ctx, input, output, subject)
			return output, nil
		}
		smsSent = true
	}

	status := StatusDisabled
	if emailSent || smsSent {
		status = StatusSent
	}

	output := &Output{
		NotificationID: notificationID,
		Status:         status,
		SentAt:         sentAt,
	}
	h.logNotification(ctx, input, output, subject)
	return output, nil
}

// logNotification records the attempt for the audit trail. Failures here
// never change the notification outcome.
func (h *Handler) logNotification(ctx context.Context, input *Input, output *Output, subject string) {
	if h.db == nil {
		return
	}
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO notification_log (id, lead_id, notification_type, subject, status, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		output.NotificationID,
		input.LeadID,
		input.NotificationType,
		subject,
		output.Status,
		output.SentAt,
	)
	if err != nil {
		h.logger.Warn("notification log insert failed", map[string]interface{}{
			"error":          err,
			"notificationId": output.NotificationID,
		})
	}
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	return h.sesClient.SendTextEmail(ctx, h.config.FromEmail, to, subject, body)
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	return h.snsClient.SendSMS(ctx, to, message)
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

// Simplified template rendering with placeholder removal for missing values
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl

	for k, v := range data {
		placeholder := "{{" + k + "}}"
		value := ""
		if s, ok := v.(string); ok {
			value = s
		} else if i, ok := v.(int); ok {
			value = fmt.Sprintf("%d", i)
		} else if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Remaining placeholders had no value; drop them.
	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}

	return result
}

func loadTemplates() (map[string]map[string]interface{}, error) {
	return map[string]map[string]interface{}{
		TypeLeadConfirmation: {
			"subject": "Your HELOC matches are ready",
			"body":    "Hi {{firstName}}, based on your home equity you could access up to {{availableCash}}. Your top match is {{topPartner}}. A specialist will reach out shortly.",
		},
		TypePartnerHandoff: {
			"subject": "New HELOC lead assigned",
			"body":    "Lead {{leadId}} has been routed to you. Priority: {{priority}}.",
		},
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// internal/workers/lead/send-notification/models.go
package sendnotification

import "heloc-workers/internal/models"

type Input struct {
	LeadID           string                 `json:"leadId"`
	NotificationType string                 `json:"notificationType"`
	Survey           models.SurveyResponse  `json:"survey"`
	AvailableCash    int                    `json:"availableCash"`
	TopPartners      []models.ScoredPartner `json:"topPartners"`
	Priority         string                 `json:"priority,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Notification types
const (
	TypeLeadConfirmation = "lead_confirmation"
	TypePartnerHandoff   = "partner_handoff"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

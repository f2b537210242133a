// internal/workers/crm/crm-lead-create/models.go
package crmleadcreate

import "heloc-workers/internal/models"

type Input struct {
	LeadID        string                 `json:"leadId"`
	Survey        models.SurveyResponse  `json:"survey"`
	AvailableCash int                    `json:"availableCash"`
	TopPartners   []models.ScoredPartner `json:"topPartners"`
	Priority      string                 `json:"priority,omitempty"`
}

type Output struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ContactID   string `json:"contactId,omitempty"`
	CRMProvider string `json:"crmProvider,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

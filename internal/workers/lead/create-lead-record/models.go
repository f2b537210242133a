// internal/workers/lead/create-lead-record/models.go
package createleadrecord

import "heloc-workers/internal/models"

type Input struct {
	Survey        models.SurveyResponse  `json:"survey"`
	Equity        float64                `json:"equity"`
	AvailableCash int                    `json:"availableCash"`
	TopPartners   []models.ScoredPartner `json:"topPartners"`
	Priority      string                 `json:"priority"`
}

type Output struct {
	LeadID     string `json:"leadId"`
	LeadStatus string `json:"leadStatus"`
	CreatedAt  string `json:"createdAt"`
}

// internal/workers/matching/score-partners/models.go
package scorepartners

import "heloc-workers/internal/models"

type Input struct {
	LeadID string                `json:"leadId"`
	Survey models.SurveyResponse `json:"survey"`

	// CatalogOverride replaces the built-in partner roster when set.
	// Used by workflow tests to score against a controlled catalog.
	CatalogOverride []models.PartnerRecord `json:"catalogOverride,omitempty"`
}

type Output struct {
	LeadID        string                 `json:"leadId"`
	Equity        float64                `json:"equity"`
	AvailableCash int                    `json:"availableCash"`
	TopPartners   []models.ScoredPartner `json:"topPartners"`
}

// internal/workers/lead/index-lead-record/models.go
package indexleadrecord

import "heloc-workers/internal/models"

type Input struct {
	LeadID        string                 `json:"leadId"`
	Survey        models.SurveyResponse  `json:"survey"`
	Equity        float64                `json:"equity"`
	AvailableCash int                    `json:"availableCash"`
	TopPartners   []models.ScoredPartner `json:"topPartners"`
	Priority      string                 `json:"priority"`
	CreatedAt     string                 `json:"createdAt"`
}

type Output struct {
	Indexed    bool   `json:"indexed"`
	IndexName  string `json:"indexName"`
	DocumentID string `json:"documentId"`
}

// leadDocument is the flattened shape stored in the search index. Partner
// names are denormalized so the dashboard can facet on them directly.
type leadDocument struct {
	LeadID          string   `json:"lead_id"`
	Email           string   `json:"email"`
	ZipCode         string   `json:"zip_code"`
	CreditScoreBand string   `json:"credit_score_band"`
	PropertyType    string   `json:"property_type"`
	UseOfFunds      string   `json:"use_of_funds"`
	Timeframe       string   `json:"timeframe"`
	HomeValue       float64  `json:"home_value"`
	MortgageBalance float64  `json:"mortgage_balance"`
	Equity          float64  `json:"equity"`
	AvailableCash   int      `json:"available_cash"`
	TopPartnerNames []string `json:"top_partner_names"`
	TopScore        int      `json:"top_score"`
	Priority        string   `json:"priority"`
	CreatedAt       string   `json:"created_at"`
}

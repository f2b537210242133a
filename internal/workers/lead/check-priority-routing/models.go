// internal/workers/lead/check-priority-routing/models.go
package checkpriorityrouting

import "heloc-workers/internal/models"

const (
	AccountTypePremium  = "premium"
	AccountTypeVerified = "verified"
	AccountTypeStandard = "standard"
)

type Input struct {
	LeadID      string                 `json:"leadId"`
	Timeframe   models.Timeframe       `json:"timeframe"`
	TopPartners []models.ScoredPartner `json:"topPartners"`
}

type Output struct {
	IsPremiumPartner bool   `json:"isPremiumPartner"`
	RoutingPriority  string `json:"routingPriority"`
}

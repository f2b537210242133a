// internal/models/lead.go
package models

// Lead is the persisted record produced when a survey is submitted and
// matched. The raw survey payload is stored as JSONB alongside the derived
// numbers so the pipeline can be replayed without recomputation.
type Lead struct {
	ID            string          `json:"id"`
	Survey        SurveyResponse  `json:"survey"`
	Equity        float64         `json:"equity"`
	AvailableCash int             `json:"availableCash"`
	TopPartners   []ScoredPartner `json:"topPartners,omitempty"`
	Priority      string          `json:"priority,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

// Lead routing priorities assigned by check-priority-routing.
const (
	PriorityHot      = "hot"
	PriorityHigh     = "high"
	PriorityStandard = "standard"
)

// Lead lifecycle statuses.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusClosed    = "closed"
	LeadStatusRejected  = "rejected"
)

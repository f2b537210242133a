// internal/workers/survey/advance-survey-step/models.go
package advancesurveystep

import (
	"heloc-workers/internal/models"
	"heloc-workers/internal/wizard"
)

// Wizard actions accepted in Input.Action.
const (
	ActionStart = "start"
	ActionNext  = "next"
	ActionBack  = "back"
)

type Input struct {
	SessionID string       `json:"sessionId"`
	Action    string       `json:"action"`
	Patch     wizard.Patch `json:"patch"`
}

type Output struct {
	SessionID string                 `json:"sessionId"`
	Step      wizard.Step            `json:"step"`
	Submitted bool                   `json:"submitted"`
	Survey    *models.SurveyResponse `json:"survey,omitempty"`
	// Set instead of advancing when a guard refuses the transition.
	GuardViolation string `json:"guardViolation,omitempty"`
}

// internal/wizard/wizard.go
// Package wizard implements the three step survey state machine. The machine
// itself is pure; persistence between workflow messages lives in Store.
package wizard

import (
	"fmt"

	"heloc-workers/internal/models"
)

// Step identifies the wizard position.
type Step string

const (
	StepProperty  Step = "STEP_PROPERTY"
	StepGoals     Step = "STEP_GOALS"
	StepCredit    Step = "STEP_CREDIT"
	StepSubmitted Step = "STEP_SUBMITTED"
)

// Default slider positions shown before the borrower touches anything.
const (
	DefaultHomeValue       = 500000
	DefaultMortgageBalance = 250000
)

// Session is one borrower's wizard state. It serializes to JSON for the
// session store.
type Session struct {
	SessionID string                `json:"sessionId"`
	Step      Step                  `json:"step"`
	Survey    models.SurveyResponse `json:"survey"`
}

// NewSession starts a session at the property step with default slider
// values and all other fields empty.
func NewSession(sessionID string) *Session {
	return &Session{
		SessionID: sessionID,
		Step:      StepProperty,
		Survey: models.SurveyResponse{
			HomeValue:       DefaultHomeValue,
			MortgageBalance: DefaultMortgageBalance,
		},
	}
}

// GuardError reports why a Next transition was refused. The step does not
// change when a guard fails.
type GuardError struct {
	Step   Step
	Reason string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("step %s: %s", e.Step, e.Reason)
}

// Next advances the session one step after merging the patch into the survey.
// Each step has its own guard; on a guard failure the session is unchanged
// and a *GuardError is returned. Advancing past the credit step marks the
// session submitted and the completed survey becomes available via
// Completed().
func (s *Session) Next(patch Patch) error {
	merged := s.Survey
	patch.apply(&merged)

	switch s.Step {
	case StepProperty:
		if err := guardProperty(&merged); err != nil {
			return err
		}
		s.Survey = merged
		s.Step = StepGoals
		return nil

	case StepGoals:
		if err := guardGoals(&merged); err != nil {
			return err
		}
		s.Survey = merged
		s.Step = StepCredit
		return nil

	case StepCredit:
		if err := guardCredit(&merged); err != nil {
			return err
		}
		s.Survey = merged
		s.Step = StepSubmitted
		return nil

	case StepSubmitted:
		return &GuardError{Step: s.Step, Reason: "survey already submitted"}

	default:
		return &GuardError{Step: s.Step, Reason: "unknown step"}
	}
}

// Back moves one step toward the start. It has no guard and never loses
// entered data. Back from the first step or after submission is refused.
func (s *Session) Back() error {
	switch s.Step {
	case StepGoals:
		s.Step = StepProperty
		return nil
	case StepCredit:
		s.Step = StepGoals
		return nil
	default:
		return &GuardError{Step: s.Step, Reason: "cannot go back from this step"}
	}
}

// Completed returns the finished survey. The second return is false until
// the session reaches the submitted step.
func (s *Session) Completed() (models.SurveyResponse, bool) {
	if s.Step != StepSubmitted {
		return models.SurveyResponse{}, false
	}
	return s.Survey, true
}

func guardProperty(sv *models.SurveyResponse) error {
	if sv.HomeValue <= 0 {
		return &GuardError{Step: StepProperty, Reason: "home_value must be set"}
	}
	if sv.MortgageBalance < 0 {
		return &GuardError{Step: StepProperty, Reason: "mortgage_balance must not be negative"}
	}
	if !sv.PropertyType.Valid() {
		return &GuardError{Step: StepProperty, Reason: "property_type must be selected"}
	}
	if !models.ValidZipCode(sv.ZipCode) {
		return &GuardError{Step: StepProperty, Reason: "zip_code must be exactly 5 digits"}
	}
	return nil
}

func guardGoals(sv *models.SurveyResponse) error {
	if !sv.UseOfFunds.Valid() {
		return &GuardError{Step: StepGoals, Reason: "use_of_funds must be selected"}
	}
	if !sv.Timeframe.Valid() {
		return &GuardError{Step: StepGoals, Reason: "timeframe must be selected"}
	}
	return nil
}

func guardCredit(sv *models.SurveyResponse) error {
	if !sv.CreditScoreBand.Valid() {
		return &GuardError{Step: StepCredit, Reason: "credit_score_band must be selected"}
	}
	return nil
}

// Patch carries the fields a single wizard message may set. Pointers
// distinguish "not sent" from a zero value.
type Patch struct {
	HomeValue       *float64             `json:"home_value,omitempty"`
	MortgageBalance *float64             `json:"mortgage_balance,omitempty"`
	PropertyType    *models.PropertyType `json:"property_type,omitempty"`
	ZipCode         *string              `json:"zip_code,omitempty"`
	UseOfFunds      *models.UseOfFunds   `json:"use_of_funds,omitempty"`
	Timeframe       *models.Timeframe    `json:"timeframe,omitempty"`
	CreditScoreBand *models.CreditBand   `json:"credit_score_band,omitempty"`
	FirstName       *string              `json:"first_name,omitempty"`
	LastName        *string              `json:"last_name,omitempty"`
	Email           *string              `json:"email,omitempty"`
	Phone           *string              `json:"phone,omitempty"`
}

func (p Patch) apply(sv *models.SurveyResponse) {
	if p.HomeValue != nil {
		sv.HomeValue = *p.HomeValue
	}
	if p.MortgageBalance != nil {
		sv.MortgageBalance = *p.MortgageBalance
	}
	if p.PropertyType != nil {
		sv.PropertyType = *p.PropertyType
	}
	if p.ZipCode != nil {
		sv.ZipCode = *p.ZipCode
	}
	if p.UseOfFunds != nil {
		sv.UseOfFunds = *p.UseOfFunds
	}
	if p.Timeframe != nil {
		sv.Timeframe = *p.Timeframe
	}
	if p.CreditScoreBand != nil {
		sv.CreditScoreBand = *p.CreditScoreBand
	}
	if p.FirstName != nil {
		sv.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		sv.LastName = *p.LastName
	}
	if p.Email != nil {
		sv.Email = *p.Email
	}
	if p.Phone != nil {
		sv.Phone = *p.Phone
	}
}

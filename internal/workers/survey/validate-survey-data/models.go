// internal/workers/survey/validate-survey-data/models.go
package validatesurveydata

import "heloc-workers/internal/models"

type Input struct {
	Survey models.SurveyResponse `json:"survey"`
}

type Output struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

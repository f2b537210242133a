// internal/workers/survey/validate-survey-data/handler_test.go
package validatesurveydata

import (
	"context"
	"testing"

	"heloc-workers/internal/common/logger"
	"heloc-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) *Handler {
	handler, err := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	require.NoError(t, err)
	return handler
}

func validSurvey() models.SurveyResponse {
	return models.SurveyResponse{
		HomeValue:       500000,
		MortgageBalance: 250000,
		CreditScoreBand: models.CreditGood,
		PropertyType:    models.PropertyCondo,
		UseOfFunds:      models.UseRenovation,
		Timeframe:       models.TimeframeThirty,
		ZipCode:         "94107",
		FirstName:       "Amy",
		LastName:        "Chen",
		Email:           "amy@example.com",
	}
}

func TestExecute_ValidSurvey(t *testing.T) {
	output, err := newHandler(t).Execute(context.Background(), &Input{Survey: validSurvey()})
	require.NoError(t, err)

	assert.True(t, output.Valid)
	assert.Empty(t, output.Errors)
}

func TestExecute_HighLTVWarnsButValidates(t *testing.T) {
	survey := validSurvey()
	survey.HomeValue = 500000
	survey.MortgageBalance = 475000

	output, err := newHandler(t).Execute(context.Background(), &Input{Survey: survey})
	require.NoError(t, err)

	assert.True(t, output.Valid)
	assert.Empty(t, output.Errors)
	require.Len(t, output.Warnings, 1)
	assert.Contains(t, output.Warnings[0], "90%")
}

func TestExecute_ModerateLTVHasNoWarnings(t *testing.T) {
	output, err := newHandler(t).Execute(context.Background(), &Input{Survey: validSurvey()})
	require.NoError(t, err)

	assert.True(t, output.Valid)
	assert.Empty(t, output.Warnings)
}

func TestExecute_InvalidSurveys(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.SurveyResponse)
	}{
		{"zero home value", func(s *models.SurveyResponse) { s.HomeValue = 0 }},
		{"negative mortgage", func(s *models.SurveyResponse) { s.MortgageBalance = -100 }},
		{"unknown credit band", func(s *models.SurveyResponse) { s.CreditScoreBand = "850" }},
		{"unknown property type", func(s *models.SurveyResponse) { s.PropertyType = "Houseboat" }},
		{"unknown use of funds", func(s *models.SurveyResponse) { s.UseOfFunds = "Vacation" }},
		{"unknown timeframe", func(s *models.SurveyResponse) { s.Timeframe = "Next year" }},
		{"short zip", func(s *models.SurveyResponse) { s.ZipCode = "941" }},
		{"alpha zip", func(s *models.SurveyResponse) { s.ZipCode = "9410a" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			survey := validSurvey()
			tt.mutate(&survey)

			output, err := newHandler(t).Execute(context.Background(), &Input{Survey: survey})
			require.NoError(t, err)

			assert.False(t, output.Valid)
			assert.NotEmpty(t, output.Errors)
		})
	}
}

func TestExecute_ContactFieldsOptional(t *testing.T) {
	survey := validSurvey()
	survey.FirstName = ""
	survey.LastName = ""
	survey.Email = ""
	survey.Phone = ""

	output, err := newHandler(t).Execute(context.Background(), &Input{Survey: survey})
	require.NoError(t, err)
	assert.True(t, output.Valid)
}

// internal/workers/lead/create-lead-record/handler_test.go
package createleadrecord

import (
	"context"
	"testing"

	"heloc-workers/internal/common/logger"
	"heloc-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestInput() *Input {
	return &Input{
		Survey: models.SurveyResponse{
			HomeValue:       500000,
			MortgageBalance: 250000,
			CreditScoreBand: models.CreditExcellent,
			PropertyType:    models.PropertySingleFamily,
			UseOfFunds:      models.UseConsolidation,
			Timeframe:       models.TimeframeImmediate,
			ZipCode:         "78701",
			FirstName:       "Amy",
			LastName:        "Chen",
			Email:           "amy@example.com",
			Phone:           "512-555-0101",
		},
		Equity:        250000,
		AvailableCash: 212500,
		TopPartners: []models.ScoredPartner{
			{PartnerRecord: models.PartnerRecord{Name: "Chase"}, FinalScore: 125, Rank: 1},
		},
		Priority: models.PriorityHot,
	}
}

func newHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewHandler(LoadConfig(), db, logger.NewTestLogger(t)), mock
}

// ==========================
// Core Functionality Tests
// ==========================

func TestExecute_Success(t *testing.T) {
	handler, mock := newHandler(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("amy@example.com", "78701").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectExec(`INSERT INTO leads`).
		WithArgs(
			sqlmock.AnyArg(), // lead ID (UUID)
			"amy@example.com",
			"78701",
			sqlmock.AnyArg(), // survey JSON
			float64(250000),
			212500,
			sqlmock.AnyArg(), // partners JSON
			models.PriorityHot,
			models.LeadStatusNew,
			sqlmock.AnyArg(), // created_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.NotEmpty(t, output.LeadID)
	assert.Equal(t, models.LeadStatusNew, output.LeadStatus)
	assert.NotEmpty(t, output.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DuplicateLead(t *testing.T) {
	handler, mock := newHandler(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("amy@example.com", "78701").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := handler.Execute(context.Background(), createTestInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateLead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_InsertFailure(t *testing.T) {
	handler, mock := newHandler(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectExec(`INSERT INTO leads`).
		WillReturnError(assert.AnError)

	_, err := handler.Execute(context.Background(), createTestInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDatabaseInsertFailed)
}

func TestExecute_AuditFailureDoesNotFailLead(t *testing.T) {
	handler, mock := newHandler(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectExec(`INSERT INTO leads`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnError(assert.AnError)

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)
	assert.NotEmpty(t, output.LeadID)
}

func TestExecute_DuplicateCheckFailureIsRetryable(t *testing.T) {
	handler, mock := newHandler(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnError(assert.AnError)

	_, err := handler.Execute(context.Background(), createTestInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDatabaseInsertFailed)
}

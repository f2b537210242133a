// internal/workers/lead/send-notification/handler_test.go
package sendnotification

import (
	"context"
	"testing"
	"time"

	"heloc-workers/internal/common/logger"
	"heloc-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type sentEmail struct {
	From    string
	To      string
	Subject string
	Body    string
}

type MockSESService struct {
	SendErr error
	Calls   []sentEmail
}

func (m *MockSESService) SendTextEmail(ctx context.Context, from, to, subject, body string) error {
	m.Calls = append(m.Calls, sentEmail{From: from, To: to, Subject: subject, Body: body})
	return m.SendErr
}

type sentSMS struct {
	PhoneNumber string
	Message     string
}

type MockSNSService struct {
	SendErr error
	Calls   []sentSMS
}

func (m *MockSNSService) SendSMS(ctx context.Context, phoneNumber, message string) error {
	m.Calls = append(m.Calls, sentSMS{PhoneNumber: phoneNumber, Message: message})
	return m.SendErr
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		EmailEnabled: true,
		SMSEnabled:   true,
		FromEmail:    "no-reply@helocmatch.example.com",
		AWSRegion:    "us-east-1",
		Timeout:      30 * time.Second,
	}
}

func createTestInput(priority string) *Input {
	return &Input{
		LeadID:           "lead-001",
		NotificationType: TypeLeadConfirmation,
		Survey: models.SurveyResponse{
			FirstName: "Amy",
			Email:     "amy@example.com",
			Phone:     "512-555-0101",
		},
		AvailableCash: 212500,
		TopPartners: []models.ScoredPartner{
			{PartnerRecord: models.PartnerRecord{Name: "Chase"}, FinalScore: 125, Rank: 1},
		},
		Priority: priority,
	}
}

func createTestHandler(t *testing.T, config *Config) (*Handler, *MockSESService, *MockSNSService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	templates, err := loadTemplates()
	require.NoError(t, err)

	sesMock := &MockSESService{}
	snsMock := &MockSNSService{}

	handler := &Handler{
		config:      config,
		db:          db,
		logger:      logger.NewTestLogger(t),
		sesClient:   sesMock,
		snsClient:   snsMock,
		templateMap: templates,
	}
	return handler, sesMock, snsMock, mock
}

func expectNotificationLog(mock sqlmock.Sqlmock) {
	mock.ExpectExec(`INSERT INTO notification_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestExecute_EmailOnlyForStandardPriority(t *testing.T) {
	handler, sesMock, snsMock, mock := createTestHandler(t, createTestConfig())
	expectNotificationLog(mock)

	output, err := handler.Execute(context.Background(), createTestInput(models.PriorityStandard))
	require.NoError(t, err)

	assert.Equal(t, StatusSent, output.Status)
	assert.Len(t, sesMock.Calls, 1)
	assert.Empty(t, snsMock.Calls)

	sent := sesMock.Calls[0]
	assert.Equal(t, "amy@example.com", sent.To)
	assert.Equal(t, "no-reply@helocmatch.example.com", sent.From)
	assert.Contains(t, sent.Body, "Amy")
	assert.Contains(t, sent.Body, "$212,500")
	assert.Contains(t, sent.Body, "Chase")
}

func TestExecute_SMSForHotLead(t *testing.T) {
	handler, sesMock, snsMock, mock := createTestHandler(t, createTestConfig())
	expectNotificationLog(mock)

	output, err := handler.Execute(context.Background(), createTestInput(models.PriorityHot))
	require.NoError(t, err)

	assert.Equal(t, StatusSent, output.Status)
	assert.Len(t, sesMock.Calls, 1)
	assert.Len(t, snsMock.Calls, 1)
	assert.Equal(t, "512-555-0101", snsMock.Calls[0].PhoneNumber)
}

func TestExecute_NoSMSForHighPriority(t *testing.T) {
	handler, _, snsMock, mock := createTestHandler(t, createTestConfig())
	expectNotificationLog(mock)

	_, err := handler.Execute(context.Background(), createTestInput(models.PriorityHigh))
	require.NoError(t, err)

	assert.Empty(t, snsMock.Calls)
}

func TestExecute_EmailFailureReturnsFailedStatus(t *testing.T) {
	handler, sesMock, _, mock := createTestHandler(t, createTestConfig())
	expectNotificationLog(mock)

	sesMock.SendErr = assert.AnError

	output, err := handler.Execute(context.Background(), createTestInput(models.PriorityStandard))
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, output.Status)
}

func TestExecute_SMSFailureReturnsFailedStatus(t *testing.T) {
	handler, _, snsMock, mock := createTestHandler(t, createTestConfig())
	expectNotificationLog(mock)

	snsMock.SendErr = assert.AnError

	output, err := handler.Execute(context.Background(), createTestInput(models.PriorityHot))
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, output.Status)
}

func TestExecute_AllChannelsDisabled(t *testing.T) {
	config := createTestConfig()
	config.EmailEnabled = false
	config.SMSEnabled = false

	handler, sesMock, snsMock, mock := createTestHandler(t, config)
	expectNotificationLog(mock)

	output, err := handler.Execute(context.Background(), createTestInput(models.PriorityHot))
	require.NoError(t, err)

	assert.Equal(t, StatusDisabled, output.Status)
	assert.Empty(t, sesMock.Calls)
	assert.Empty(t, snsMock.Calls)
}

func TestExecute_UnknownTemplateFails(t *testing.T) {
	handler, _, _, _ := createTestHandler(t, createTestConfig())

	input := createTestInput(models.PriorityStandard)
	input.NotificationType = "unknown_type"

	_, err := handler.Execute(context.Background(), input)
	require.Error(t, err)
}

func TestExecute_LogFailureDoesNotChangeOutcome(t *testing.T) {
	handler, _, _, mock := createTestHandler(t, createTestConfig())
	mock.ExpectExec(`INSERT INTO notification_log`).
		WillReturnError(assert.AnError)

	output, err := handler.Execute(context.Background(), createTestInput(models.PriorityStandard))
	require.NoError(t, err)

	assert.Equal(t, StatusSent, output.Status)
}

// ==========================
// Template Rendering Tests
// ==========================

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]interface{}
		expected string
	}{
		{
			name:     "replaces known placeholders",
			template: "Hi {{firstName}}, up to {{availableCash}}.",
			data:     map[string]interface{}{"firstName": "Amy", "availableCash": "$212,500"},
			expected: "Hi Amy, up to $212,500.",
		},
		{
			name:     "drops missing placeholders",
			template: "Hello {{firstName}}{{missing}}!",
			data:     map[string]interface{}{"firstName": "Amy"},
			expected: "Hello Amy!",
		},
		{
			name:     "formats non-string values",
			template: "Count: {{count}}",
			data:     map[string]interface{}{"count": 3},
			expected: "Count: 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, renderTemplate(tt.template, tt.data))
		})
	}
}

// internal/workers/lead/check-priority-routing/handler_test.go
package checkpriorityrouting

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"heloc-workers/internal/common/logger"
	"heloc-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:            10 * time.Second,
		CacheTTL:           30 * time.Minute,
		HighScoreThreshold: 115,
	}
}

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	}), mr
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func createTestInput(timeframe models.Timeframe, topScore int) *Input {
	return &Input{
		LeadID:    "lead-123",
		Timeframe: timeframe,
		TopPartners: []models.ScoredPartner{
			{PartnerRecord: models.PartnerRecord{Name: "Chase"}, FinalScore: topScore, Rank: 1},
		},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestExecute_ImmediateTimeframeIsHot(t *testing.T) {
	db, mock := setupMockDB(t)
	client, _ := setupRedis(t)
	handler := NewHandler(createTestConfig(), db, client, logger.NewTestLogger(t))

	mock.ExpectQuery(`SELECT account_type`).
		WithArgs("Chase").
		WillReturnRows(sqlmock.NewRows([]string{"account_type"}).AddRow(AccountTypeStandard))

	output, err := handler.Execute(context.Background(), createTestInput(models.TimeframeImmediate, 100))
	require.NoError(t, err)

	assert.Equal(t, models.PriorityHot, output.RoutingPriority)
	assert.False(t, output.IsPremiumPartner)
}

func TestExecute_PremiumPartnerIsHigh(t *testing.T) {
	db, mock := setupMockDB(t)
	client, _ := setupRedis(t)
	handler := NewHandler(createTestConfig(), db, client, logger.NewTestLogger(t))

	mock.ExpectQuery(`SELECT account_type`).
		WithArgs("Chase").
		WillReturnRows(sqlmock.NewRows([]string{"account_type"}).AddRow(AccountTypePremium))

	output, err := handler.Execute(context.Background(), createTestInput(models.TimeframeExploring, 100))
	require.NoError(t, err)

	assert.True(t, output.IsPremiumPartner)
	assert.Equal(t, models.PriorityHigh, output.RoutingPriority)
}

func TestExecute_HighScoreIsHigh(t *testing.T) {
	db, mock := setupMockDB(t)
	client, _ := setupRedis(t)
	handler := NewHandler(createTestConfig(), db, client, logger.NewTestLogger(t))

	mock.ExpectQuery(`SELECT account_type`).
		WillReturnRows(sqlmock.NewRows([]string{"account_type"}).AddRow(AccountTypeStandard))

	output, err := handler.Execute(context.Background(), createTestInput(models.TimeframeSixty, 120))
	require.NoError(t, err)

	assert.Equal(t, models.PriorityHigh, output.RoutingPriority)
	assert.False(t, output.IsPremiumPartner)
}

func TestExecute_StandardPriority(t *testing.T) {
	db, mock := setupMockDB(t)
	client, _ := setupRedis(t)
	handler := NewHandler(createTestConfig(), db, client, logger.NewTestLogger(t))

	mock.ExpectQuery(`SELECT account_type`).
		WillReturnRows(sqlmock.NewRows([]string{"account_type"}).AddRow(AccountTypeVerified))

	output, err := handler.Execute(context.Background(), createTestInput(models.TimeframeExploring, 100))
	require.NoError(t, err)

	assert.Equal(t, models.PriorityStandard, output.RoutingPriority)
}

func TestExecute_AccountTypeCached(t *testing.T) {
	db, _ := setupMockDB(t)
	client, mr := setupRedis(t)
	handler := NewHandler(createTestConfig(), db, client, logger.NewTestLogger(t))

	require.NoError(t, mr.Set("partner:account:Chase", AccountTypePremium))

	// No query expectation set; a database hit would fail the mock.
	output, err := handler.Execute(context.Background(), createTestInput(models.TimeframeExploring, 100))
	require.NoError(t, err)

	assert.True(t, output.IsPremiumPartner)
	assert.Equal(t, models.PriorityHigh, output.RoutingPriority)
}

func TestExecute_LookupPopulatesCache(t *testing.T) {
	db, mock := setupMockDB(t)
	client, mr := setupRedis(t)
	handler := NewHandler(createTestConfig(), db, client, logger.NewTestLogger(t))

	mock.ExpectQuery(`SELECT account_type`).
		WithArgs("Chase").
		WillReturnRows(sqlmock.NewRows([]string{"account_type"}).AddRow(AccountTypePremium))

	_, err := handler.Execute(context.Background(), createTestInput(models.TimeframeExploring, 100))
	require.NoError(t, err)

	cached, err := mr.Get("partner:account:Chase")
	require.NoError(t, err)
	assert.Equal(t, AccountTypePremium, cached)
}

func TestExecute_FailOpenOnDatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	client, _ := setupRedis(t)
	handler := NewHandler(createTestConfig(), db, client, logger.NewTestLogger(t))

	mock.ExpectQuery(`SELECT account_type`).
		WillReturnError(assert.AnError)

	output, err := handler.Execute(context.Background(), createTestInput(models.TimeframeExploring, 100))
	require.NoError(t, err)

	assert.False(t, output.IsPremiumPartner)
	assert.Equal(t, models.PriorityStandard, output.RoutingPriority)
}

func TestExecute_UnknownPartnerDefaultsToStandard(t *testing.T) {
	db, mock := setupMockDB(t)
	client, _ := setupRedis(t)
	handler := NewHandler(createTestConfig(), db, client, logger.NewTestLogger(t))

	mock.ExpectQuery(`SELECT account_type`).
		WillReturnRows(sqlmock.NewRows([]string{"account_type"}))

	output, err := handler.Execute(context.Background(), createTestInput(models.TimeframeThirty, 100))
	require.NoError(t, err)

	assert.Equal(t, models.PriorityStandard, output.RoutingPriority)
}

func TestExecute_NoPartnersDefaultsToStandard(t *testing.T) {
	db, _ := setupMockDB(t)
	client, _ := setupRedis(t)
	handler := NewHandler(createTestConfig(), db, client, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		LeadID:    "lead-456",
		Timeframe: models.TimeframeExploring,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PriorityStandard, output.RoutingPriority)
	assert.False(t, output.IsPremiumPartner)
}

package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Light-700/Nidhi-Rakshak/internal/application/dto"
	"github.com/Light-700/Nidhi-Rakshak/internal/application/usecase"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/event"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/model"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/port"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/service"
	"github.com/Light-700/Nidhi-Rakshak/internal/infrastructure/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRepo() *mockProfileRepository {
	return &mockProfileRepository{inner: memory.NewProfileRepository()}
}

func validOutcomeRequest() dto.RecordOutcomeRequest {
	return dto.RecordOutcomeRequest{
		Identifier:      "ravi@okhdfcbank",
		IsFraud:         false,
		Amount:          decimal.NewFromInt(1500),
		TransactionType: "PAYMENT",
		Caller:          "HDFC-UPI-01",
	}
}

func TestRecordOutcome_Execute(t *testing.T) {
	t.Run("records a clean outcome for a new identifier", func(t *testing.T) {
		repo := newRepo()
		publisher := &mockEventPublisher{}
		uc := usecase.NewRecordOutcome(repo, publisher, service.NewRiskScorer(), testLogger())

		resp, err := uc.Execute(context.Background(), validOutcomeRequest())

		require.NoError(t, err)
		assert.Equal(t, "ravi@okhdfcbank", resp.Profile.Identifier)
		assert.Equal(t, 1, resp.Profile.TotalTransactions)
		assert.Equal(t, 0, resp.Profile.FraudCount)
		assert.Equal(t, "LOW", resp.Profile.RiskLevel)
		assert.Empty(t, resp.RaisedFlags)
		require.NotEmpty(t, publisher.published)
		_, ok := publisher.published[0].(event.OutcomeRecorded)
		assert.True(t, ok)
	})

	t.Run("records a fraud outcome and escalates", func(t *testing.T) {
		repo := newRepo()
		publisher := &mockEventPublisher{}
		uc := usecase.NewRecordOutcome(repo, publisher, service.NewRiskScorer(), testLogger())

		req := validOutcomeRequest()
		req.IsFraud = true
		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Profile.FraudCount)
		assert.Equal(t, 100.0, resp.Profile.RiskScore)
		assert.True(t, resp.Profile.IsBlacklisted)
		assert.Equal(t, "BLACKLISTED", resp.Profile.RiskLevel)
	})

	t.Run("appends a history record", func(t *testing.T) {
		repo := newRepo()
		publisher := &mockEventPublisher{}
		uc := usecase.NewRecordOutcome(repo, publisher, service.NewRiskScorer(), testLogger())

		req := validOutcomeRequest()
		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		records, err := repo.History(context.Background(), req.Identifier, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "PAYMENT", records[0].Type)
		assert.Equal(t, "HDFC-UPI-01", records[0].Caller)
		assert.True(t, records[0].Amount.Equal(decimal.NewFromInt(1500)))
	})

	t.Run("rejects missing identifier", func(t *testing.T) {
		uc := usecase.NewRecordOutcome(newRepo(), &mockEventPublisher{}, service.NewRiskScorer(), testLogger())

		req := validOutcomeRequest()
		req.Identifier = "   "
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, port.ErrInvalidInput)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		uc := usecase.NewRecordOutcome(newRepo(), &mockEventPublisher{}, service.NewRiskScorer(), testLogger())

		req := validOutcomeRequest()
		req.Amount = decimal.NewFromInt(-1)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, port.ErrInvalidInput)
	})

	t.Run("rejects missing transaction type", func(t *testing.T) {
		uc := usecase.NewRecordOutcome(newRepo(), &mockEventPublisher{}, service.NewRiskScorer(), testLogger())

		req := validOutcomeRequest()
		req.TransactionType = ""
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, port.ErrInvalidInput)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		repo := newRepo()
		publisher := &mockEventPublisher{
			publishFunc: func(ctx context.Context, events ...event.Event) error {
				return assert.AnError
			},
		}
		uc := usecase.NewRecordOutcome(repo, publisher, service.NewRiskScorer(), testLogger())

		resp, err := uc.Execute(context.Background(), validOutcomeRequest())
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Profile.TotalTransactions)
	})

	t.Run("propagates storage failures", func(t *testing.T) {
		repo := newRepo()
		repo.atomicUpdateFunc = func(ctx context.Context, identifier string, fn port.UpdateFunc) (*model.Profile, error) {
			return nil, port.NewStorageError("update", assert.AnError)
		}
		uc := usecase.NewRecordOutcome(repo, &mockEventPublisher{}, service.NewRiskScorer(), testLogger())

		_, err := uc.Execute(context.Background(), validOutcomeRequest())
		require.Error(t, err)
		assert.True(t, port.IsStorageError(err))
	})
}

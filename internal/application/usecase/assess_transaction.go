package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Light-700/Nidhi-Rakshak/internal/application/dto"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/port"
)

// fraudDecisionThreshold converts the classifier probability into a binary
// outcome; it matches the decision boundary used at training time.
const fraudDecisionThreshold = 0.5

// AssessTransaction is the full scoring flow for a raw transaction: derive
// the classifier verdict, then apply the outcome to the sender's profile.
type AssessTransaction struct {
	model         port.ModelClient
	recordOutcome *RecordOutcome
}

// NewAssessTransaction creates a new AssessTransaction use case.
func NewAssessTransaction(model port.ModelClient, recordOutcome *RecordOutcome) *AssessTransaction {
	return &AssessTransaction{
		model:         model,
		recordOutcome: recordOutcome,
	}
}

// Execute scores the transaction with the external classifier and records
// the resulting outcome against the identifier's profile.
func (uc *AssessTransaction) Execute(ctx context.Context, req dto.AssessTransactionRequest) (dto.AssessmentResponse, error) {
	if strings.TrimSpace(req.Identifier) == "" {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: identifier is required", port.ErrInvalidInput)
	}
	if req.Amount < 0 {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: amount must not be negative", port.ErrInvalidInput)
	}

	probability, err := uc.model.Predict(ctx, port.RawTransaction{
		Step:           req.Step,
		Type:           req.TransactionType,
		Amount:         req.Amount,
		OldBalanceOrig: req.OldBalanceOrig,
		NewBalanceOrig: req.NewBalanceOrig,
		OldBalanceDest: req.OldBalanceDest,
		NewBalanceDest: req.NewBalanceDest,
	})
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("classifier prediction: %w", err)
	}

	isFraud := probability >= fraudDecisionThreshold
	confidence := probability
	if !isFraud {
		confidence = 1 - probability
	}

	outcome, err := uc.recordOutcome.Execute(ctx, dto.RecordOutcomeRequest{
		Identifier:      req.Identifier,
		IsFraud:         isFraud,
		Amount:          decimal.NewFromFloat(req.Amount),
		TransactionType: req.TransactionType,
		Caller:          req.Caller,
	})
	if err != nil {
		return dto.AssessmentResponse{}, err
	}

	return dto.AssessmentResponse{
		IsFraud:          isFraud,
		FraudProbability: probability,
		Confidence:       confidence,
		Profile:          outcome.Profile,
		RaisedFlags:      outcome.RaisedFlags,
		AssessedAt:       time.Now().UTC(),
	}, nil
}

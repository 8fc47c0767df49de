package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Light-700/Nidhi-Rakshak/internal/application/dto"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/model"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/port"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/service"
)

// ValidateTransaction is the pre-transaction gate. It never mutates the
// profile; the verdict is computed from the stored profile plus the
// attributes of the proposed transaction.
type ValidateTransaction struct {
	repo      port.ProfileRepository
	validator *service.TransactionValidator
	logger    *slog.Logger
}

// NewValidateTransaction creates a new ValidateTransaction use case.
func NewValidateTransaction(
	repo port.ProfileRepository,
	validator *service.TransactionValidator,
	logger *slog.Logger,
) *ValidateTransaction {
	return &ValidateTransaction{repo: repo, validator: validator, logger: logger}
}

// Execute evaluates the proposed transaction. Unknown identifiers are
// validated as new users, not rejected.
func (uc *ValidateTransaction) Execute(ctx context.Context, req dto.ValidateTransactionRequest) (dto.VerdictResponse, error) {
	if strings.TrimSpace(req.Identifier) == "" {
		return dto.VerdictResponse{}, fmt.Errorf("%w: identifier is required", port.ErrInvalidInput)
	}
	if req.Amount.IsNegative() {
		return dto.VerdictResponse{}, fmt.Errorf("%w: amount must not be negative", port.ErrInvalidInput)
	}
	if strings.TrimSpace(req.TransactionType) == "" {
		return dto.VerdictResponse{}, fmt.Errorf("%w: transaction type is required", port.ErrInvalidInput)
	}

	input := service.ValidationInput{
		Identifier:      req.Identifier,
		Recipient:       req.Recipient,
		Amount:          req.Amount,
		TransactionType: req.TransactionType,
	}

	profile, err := uc.repo.Get(ctx, req.Identifier)
	switch {
	case err == nil:
		input.ProfileKnown = true
		input.ProfileBlacklisted = profile.IsBlacklisted()
		input.ProfileRiskLevel = profile.RiskLevel()
	case errors.Is(err, port.ErrProfileNotFound):
		// First sighting of this identifier; validated with zero history.
	default:
		return dto.VerdictResponse{}, fmt.Errorf("load profile %s: %w", req.Identifier, err)
	}

	verdict := uc.validator.Validate(input)

	access := model.NewAccessRecord(req.Caller, req.Identifier, model.AccessActionValidate, time.Now().UTC())
	if err := uc.repo.AppendAccessLog(ctx, access); err != nil {
		uc.logger.Error("failed to append access log entry",
			slog.String("identifier", req.Identifier),
			slog.String("action", model.AccessActionValidate),
			slog.String("error", err.Error()),
		)
	}

	return dto.VerdictResponse{
		Identifier:     req.Identifier,
		RiskTier:       verdict.RiskTier.String(),
		Factors:        verdict.Factors,
		Recommendation: verdict.Recommendation.String(),
		ShouldBlock:    verdict.ShouldBlock,
		ProfileKnown:   input.ProfileKnown,
	}, nil
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Light-700/Nidhi-Rakshak/internal/application/dto"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/model"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/port"
)

// ResetProfile clears the counters, flags, fraud timestamps, and blacklist
// state of an existing profile. This is the only path that un-blacklists an
// identifier.
type ResetProfile struct {
	repo   port.ProfileRepository
	logger *slog.Logger
}

// NewResetProfile creates a new ResetProfile use case.
func NewResetProfile(repo port.ProfileRepository, logger *slog.Logger) *ResetProfile {
	return &ResetProfile{repo: repo, logger: logger}
}

// Execute resets the counters for a known identifier. Unknown identifiers
// return port.ErrProfileNotFound; a reset never creates a profile.
func (uc *ResetProfile) Execute(ctx context.Context, identifier, caller string) (dto.ResetResponse, error) {
	if strings.TrimSpace(identifier) == "" {
		return dto.ResetResponse{}, fmt.Errorf("%w: identifier is required", port.ErrInvalidInput)
	}

	now := time.Now().UTC()
	var prevFraud, prevTotal int

	_, err := uc.repo.UpdateExisting(ctx, identifier, func(p *model.Profile) (*model.TransactionRecord, error) {
		prevFraud, prevTotal = p.ResetCounters(now)
		return nil, nil
	})
	if err != nil {
		return dto.ResetResponse{}, fmt.Errorf("reset profile %s: %w", identifier, err)
	}

	uc.logger.Info("profile counters reset",
		slog.String("identifier", identifier),
		slog.String("caller", caller),
		slog.Int("previous_fraud_count", prevFraud),
		slog.Int("previous_total_transactions", prevTotal),
	)

	return dto.ResetResponse{
		Identifier:                identifier,
		PreviousFraudCount:        prevFraud,
		PreviousTotalTransactions: prevTotal,
		ResetAt:                   now,
	}, nil
}

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

// recentHistoryLimit bounds the history rows attached to a profile lookup.
const recentHistoryLimit = 10

// recentFraudWindow is the reporting window for the recent fraud counter.
const recentFraudWindow = 30 * 24 * time.Hour

// GetProfile is the read-side use case for a single risk profile. Every
// successful lookup is written to the access log.
type GetProfile struct {
	repo   port.ProfileRepository
	logger *slog.Logger
}

// NewGetProfile creates a new GetProfile use case.
func NewGetProfile(repo port.ProfileRepository, logger *slog.Logger) *GetProfile {
	return &GetProfile{repo: repo, logger: logger}
}

// Execute returns the current profile for the identifier. Callers that want
// to treat unknown identifiers as zero-risk should map port.ErrProfileNotFound
// themselves.
func (uc *GetProfile) Execute(ctx context.Context, identifier, caller string) (dto.ProfileResponse, error) {
	if strings.TrimSpace(identifier) == "" {
		return dto.ProfileResponse{}, fmt.Errorf("%w: identifier is required", port.ErrInvalidInput)
	}

	profile, err := uc.repo.Get(ctx, identifier)
	if err != nil {
		return dto.ProfileResponse{}, fmt.Errorf("get profile %s: %w", identifier, err)
	}

	history, err := uc.repo.History(ctx, identifier, recentHistoryLimit)
	if err != nil {
		return dto.ProfileResponse{}, fmt.Errorf("load history %s: %w", identifier, err)
	}

	now := time.Now().UTC()
	recentFrauds, err := uc.repo.FraudCountSince(ctx, identifier, now.Add(-recentFraudWindow))
	if err != nil {
		return dto.ProfileResponse{}, fmt.Errorf("count recent frauds %s: %w", identifier, err)
	}

	access := model.NewAccessRecord(caller, identifier, model.AccessActionLookup, now)
	if err := uc.repo.AppendAccessLog(ctx, access); err != nil {
		uc.logger.Error("failed to append access log entry",
			slog.String("identifier", identifier),
			slog.String("action", model.AccessActionLookup),
			slog.String("error", err.Error()),
		)
	}

	resp := dto.FromProfile(profile)
	resp.RecentFraudCount = recentFrauds
	for _, record := range history {
		resp.RecentHistory = append(resp.RecentHistory, dto.FromTransactionRecord(record))
	}
	return resp, nil
}

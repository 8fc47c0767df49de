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

// BlacklistProfile applies a manual blacklist to an identifier, creating
// the profile first if it has never been seen.
type BlacklistProfile struct {
	repo      port.ProfileRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewBlacklistProfile creates a new BlacklistProfile use case.
func NewBlacklistProfile(
	repo port.ProfileRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *BlacklistProfile {
	return &BlacklistProfile{repo: repo, publisher: publisher, logger: logger}
}

// Execute blacklists the identifier. Blacklisting an already blacklisted
// profile is a no-op that still returns the current profile.
func (uc *BlacklistProfile) Execute(ctx context.Context, req dto.BlacklistRequest) (dto.ProfileResponse, error) {
	if strings.TrimSpace(req.Identifier) == "" {
		return dto.ProfileResponse{}, fmt.Errorf("%w: identifier is required", port.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return dto.ProfileResponse{}, fmt.Errorf("%w: reason is required", port.ErrInvalidInput)
	}

	now := time.Now().UTC()
	updated, err := uc.repo.AtomicUpdate(ctx, req.Identifier, func(p *model.Profile) (*model.TransactionRecord, error) {
		p.MarkBlacklisted(req.Reason, now)
		return nil, nil
	})
	if err != nil {
		return dto.ProfileResponse{}, fmt.Errorf("blacklist profile %s: %w", req.Identifier, err)
	}

	if events := updated.DomainEvents(); len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			uc.logger.Error("failed to publish blacklist events",
				slog.String("identifier", req.Identifier),
				slog.String("error", err.Error()),
			)
		}
	}

	uc.logger.Warn("identifier blacklisted",
		slog.String("identifier", req.Identifier),
		slog.String("reason", req.Reason),
		slog.String("caller", req.Caller),
	)

	return dto.FromProfile(updated), nil
}

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
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/service"
)

// RecordOutcome is the use case applying one classified transaction outcome
// to an identifier's risk profile. This is the only path that mutates
// profiles in normal operation.
type RecordOutcome struct {
	repo      port.ProfileRepository
	publisher port.EventPublisher
	scorer    *service.RiskScorer
	logger    *slog.Logger
}

// NewRecordOutcome creates a new RecordOutcome use case.
func NewRecordOutcome(
	repo port.ProfileRepository,
	publisher port.EventPublisher,
	scorer *service.RiskScorer,
	logger *slog.Logger,
) *RecordOutcome {
	return &RecordOutcome{
		repo:      repo,
		publisher: publisher,
		scorer:    scorer,
		logger:    logger,
	}
}

// Execute escalates the profile inside a single atomic store update and
// appends the history record in the same unit. Calling it twice for the
// same real-world transaction double-counts; exactly-once submission is the
// caller's responsibility.
func (uc *RecordOutcome) Execute(ctx context.Context, req dto.RecordOutcomeRequest) (dto.OutcomeResponse, error) {
	if err := validateOutcomeRequest(req); err != nil {
		return dto.OutcomeResponse{}, err
	}

	now := time.Now().UTC()
	var raisedFlags []string

	updated, err := uc.repo.AtomicUpdate(ctx, req.Identifier, func(p *model.Profile) (*model.TransactionRecord, error) {
		raisedFlags = p.RecordOutcome(uc.scorer, req.IsFraud, now)
		record := model.NewTransactionRecord(p, req.Amount, req.TransactionType, req.IsFraud, req.Caller, now)
		return &record, nil
	})
	if err != nil {
		return dto.OutcomeResponse{}, fmt.Errorf("record outcome for %s: %w", req.Identifier, err)
	}

	// The profile is already committed at this point; a publish failure
	// must not fail the request, or a retry would double-count.
	if events := updated.DomainEvents(); len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			uc.logger.Error("failed to publish profile events",
				slog.String("identifier", req.Identifier),
				slog.String("error", err.Error()),
			)
		}
	}

	if raisedFlags == nil {
		raisedFlags = make([]string, 0)
	}
	return dto.OutcomeResponse{
		Profile:     dto.FromProfile(updated),
		RaisedFlags: raisedFlags,
		RecordedAt:  now,
	}, nil
}

func validateOutcomeRequest(req dto.RecordOutcomeRequest) error {
	if strings.TrimSpace(req.Identifier) == "" {
		return fmt.Errorf("%w: identifier is required", port.ErrInvalidInput)
	}
	if req.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", port.ErrInvalidInput)
	}
	if strings.TrimSpace(req.TransactionType) == "" {
		return fmt.Errorf("%w: transaction type is required", port.ErrInvalidInput)
	}
	return nil
}

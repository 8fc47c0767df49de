package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/Light-700/Nidhi-Rakshak/internal/application/dto"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/port"
)

// topProfileLimit caps the worst-offender list in the stats response.
const topProfileLimit = 10

// GetStats aggregates counters across the whole profile store.
type GetStats struct {
	repo port.ProfileRepository
}

// NewGetStats creates a new GetStats use case.
func NewGetStats(repo port.ProfileRepository) *GetStats {
	return &GetStats{repo: repo}
}

// Execute returns store-wide counters, the overall fraud rate, and the
// profiles with the highest fraud counts.
func (uc *GetStats) Execute(ctx context.Context) (dto.StatsResponse, error) {
	stats, err := uc.repo.Stats(ctx)
	if err != nil {
		return dto.StatsResponse{}, fmt.Errorf("load store stats: %w", err)
	}

	profiles, err := uc.repo.ListProfiles(ctx)
	if err != nil {
		return dto.StatsResponse{}, fmt.Errorf("list profiles: %w", err)
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].FraudCount() != profiles[j].FraudCount() {
			return profiles[i].FraudCount() > profiles[j].FraudCount()
		}
		return profiles[i].Identifier() < profiles[j].Identifier()
	})
	if len(profiles) > topProfileLimit {
		profiles = profiles[:topProfileLimit]
	}
	top := make([]dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		top = append(top, dto.FromProfile(p))
	}

	var overallRate float64
	if stats.TotalTransactions > 0 {
		overallRate = float64(stats.TotalFraudCases) / float64(stats.TotalTransactions)
	}

	return dto.StatsResponse{
		TotalProfiles:       stats.TotalProfiles,
		TotalFraudCases:     stats.TotalFraudCases,
		TotalTransactions:   stats.TotalTransactions,
		OverallFraudRate:    overallRate,
		BlacklistedProfiles: stats.BlacklistedProfiles,
		HighRiskProfiles:    stats.HighRiskProfiles,
		TopProfiles:         top,
	}, nil
}

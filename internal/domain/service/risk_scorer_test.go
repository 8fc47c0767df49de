package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Light-700/Nidhi-Rakshak/internal/domain/service"
)

func TestRiskScorer_ZeroTransactions(t *testing.T) {
	scorer := service.NewRiskScorer()

	assert.Equal(t, 0.0, scorer.Score(0, 0, 0))
	// The rate is undefined without transactions, so the score stays zero
	// even with recent activity claimed.
	assert.Equal(t, 0.0, scorer.Score(0, 0, 5))
}

func TestRiskScorer_PureRate(t *testing.T) {
	scorer := service.NewRiskScorer()

	assert.Equal(t, 0.0, scorer.Score(0, 100, 0))
	assert.Equal(t, 10.0, scorer.Score(1, 10, 0))
	assert.Equal(t, 50.0, scorer.Score(5, 10, 0))
}

func TestRiskScorer_CountPenalties(t *testing.T) {
	scorer := service.NewRiskScorer()

	tests := []struct {
		name       string
		fraudCount int
		total      int
		expected   float64
	}{
		// rate 1% with no penalty at the boundary counts
		{name: "ten frauds no penalty", fraudCount: 10, total: 1000, expected: 1.0},
		{name: "eleven frauds small penalty", fraudCount: 11, total: 1100, expected: 1.0 + 5},
		{name: "twenty frauds still small penalty", fraudCount: 20, total: 2000, expected: 1.0 + 5},
		{name: "twenty-one frauds medium penalty", fraudCount: 21, total: 2100, expected: 1.0 + 15},
		{name: "fifty frauds medium penalty", fraudCount: 50, total: 5000, expected: 1.0 + 15},
		{name: "fifty-one frauds large penalty", fraudCount: 51, total: 5100, expected: 1.0 + 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.fraudCount, tt.total, 0)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestRiskScorer_RecentActivityBonus(t *testing.T) {
	scorer := service.NewRiskScorer()

	base := scorer.Score(5, 100, 0)
	withRecent := scorer.Score(5, 100, 3)
	assert.InDelta(t, base+6, withRecent, 1e-9)
}

func TestRiskScorer_CapAt100(t *testing.T) {
	scorer := service.NewRiskScorer()

	// All frauds: rate alone is 100.
	assert.Equal(t, 100.0, scorer.Score(10, 10, 0))
	// Penalty and recent bonus cannot push past the cap.
	assert.Equal(t, 100.0, scorer.Score(60, 60, 10))
}

func TestRiskScorer_Monotonic(t *testing.T) {
	scorer := service.NewRiskScorer()

	// For a fixed total, more fraud never lowers the score.
	prev := 0.0
	for fc := 0; fc <= 100; fc++ {
		got := scorer.Score(fc, 100, 0)
		assert.GreaterOrEqual(t, got, prev, "score dropped at fraudCount=%d", fc)
		prev = got
	}
}

package service

// RiskScorer is a domain service that derives a 0-100 risk score for a UPI
// identifier from its accumulated fraud history.
type RiskScorer struct{}

// NewRiskScorer creates a new RiskScorer instance.
func NewRiskScorer() *RiskScorer {
	return &RiskScorer{}
}

// Score computes the risk score for an identifier with the given counters.
// The base score is the fraud rate scaled to 0-100. An additive penalty is
// applied by absolute fraud count, and each fraud in the recent window adds
// two more points. The result is capped at 100.
//
// Pure and deterministic; no failure modes.
func (s *RiskScorer) Score(fraudCount, totalTransactions, recentFraudCount int) float64 {
	if totalTransactions == 0 {
		return 0
	}

	score := float64(fraudCount) / float64(totalTransactions) * 100

	switch {
	case fraudCount > 50:
		score += 30
	case fraudCount > 20:
		score += 15
	case fraudCount > 10:
		score += 5
	}

	score += 2 * float64(recentFraudCount)

	if score > 100 {
		score = 100
	}
	return score
}

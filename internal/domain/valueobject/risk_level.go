package valueobject

import "fmt"

// RiskLevel is an immutable value object representing the risk classification
// of a UPI identifier or a proposed transaction.
type RiskLevel struct {
	value string
	rank  int
}

var (
	RiskLevelLow         = RiskLevel{value: "LOW", rank: 0}
	RiskLevelMedium      = RiskLevel{value: "MEDIUM", rank: 1}
	RiskLevelHigh        = RiskLevel{value: "HIGH", rank: 2}
	RiskLevelCritical    = RiskLevel{value: "CRITICAL", rank: 3}
	RiskLevelBlacklisted = RiskLevel{value: "BLACKLISTED", rank: 4}
)

// riskLadder drives classification. Evaluated top-down, first match wins:
// either the fraud-count threshold or the score threshold fires a tier.
// Kept as an ordered table so the tie-break order stays auditable.
var riskLadder = []struct {
	level      RiskLevel
	fraudCount int
	score      float64
}{
	{RiskLevelBlacklisted, 100, 90},
	{RiskLevelCritical, 50, 75},
	{RiskLevelHigh, 20, 50},
	{RiskLevelMedium, 10, 25},
}

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "HIGH":
		return RiskLevelHigh, nil
	case "CRITICAL":
		return RiskLevelCritical, nil
	case "BLACKLISTED":
		return RiskLevelBlacklisted, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// ClassifyRisk derives the RiskLevel from a risk score (0-100) and the
// absolute fraud count. Count and score thresholds are independent triggers;
// the highest tier for which either fires governs.
func ClassifyRisk(score float64, fraudCount int) RiskLevel {
	for _, tier := range riskLadder {
		if fraudCount >= tier.fraudCount || score >= tier.score {
			return tier.level
		}
	}
	return RiskLevelLow
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// Rank returns the ordinal position of this level in the escalation ladder,
// LOW=0 up to BLACKLISTED=4.
func (r RiskLevel) Rank() int {
	return r.rank
}

// Max returns the higher of this level and the other level.
func (r RiskLevel) Max(other RiskLevel) RiskLevel {
	if other.rank > r.rank {
		return other
	}
	return r
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

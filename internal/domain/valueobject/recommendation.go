package valueobject

import "fmt"

// Recommendation is an immutable value object representing the action a
// caller should take for a proposed transaction.
type Recommendation struct {
	value string
}

var (
	RecommendationProceed        = Recommendation{value: "PROCEED"}
	RecommendationProceedCaution = Recommendation{value: "PROCEED_WITH_CAUTION"}
	RecommendationManualReview   = Recommendation{value: "MANUAL_REVIEW_REQUIRED"}
	RecommendationBlock          = Recommendation{value: "BLOCK_TRANSACTION"}
	RecommendationNewUserCaution = Recommendation{value: "NEW_USER_CAUTION"}
)

// RecommendationFromString reconstructs a Recommendation from its string form.
func RecommendationFromString(s string) (Recommendation, error) {
	switch s {
	case "PROCEED":
		return RecommendationProceed, nil
	case "PROCEED_WITH_CAUTION":
		return RecommendationProceedCaution, nil
	case "MANUAL_REVIEW_REQUIRED":
		return RecommendationManualReview, nil
	case "BLOCK_TRANSACTION":
		return RecommendationBlock, nil
	case "NEW_USER_CAUTION":
		return RecommendationNewUserCaution, nil
	default:
		return Recommendation{}, fmt.Errorf("invalid recommendation: %s", s)
	}
}

// RecommendationForTier maps a validation risk tier to the recommended action.
func RecommendationForTier(tier RiskLevel) Recommendation {
	switch {
	case tier.Rank() >= RiskLevelCritical.Rank():
		return RecommendationBlock
	case tier.Equal(RiskLevelHigh):
		return RecommendationManualReview
	case tier.Equal(RiskLevelMedium):
		return RecommendationProceedCaution
	default:
		return RecommendationProceed
	}
}

// String returns the string representation.
func (r Recommendation) String() string {
	return r.value
}

// IsZero returns true if the Recommendation has not been set.
func (r Recommendation) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another Recommendation.
func (r Recommendation) Equal(other Recommendation) bool {
	return r.value == other.value
}

package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Light-700/Nidhi-Rakshak/internal/domain/valueobject"
)

// Risk factors contributing to a validation verdict.
const (
	FactorSuspiciousIdentifier = "SUSPICIOUS_IDENTIFIER"
	FactorHighAmount           = "HIGH_AMOUNT"
	FactorMediumAmount         = "MEDIUM_AMOUNT"
	FactorBlacklistedUser      = "BLACKLISTED_USER"
	FactorCriticalUserRisk     = "CRITICAL_USER_RISK"
	FactorHighUserRisk         = "HIGH_USER_RISK"
	FactorSuspiciousWithdrawal = "SUSPICIOUS_WITHDRAWAL"
)

// suspiciousSubstrings is the fixed denylist of fraud-indicative words
// checked against sender and recipient handles.
var suspiciousSubstrings = []string{
	"fraud", "scam", "fake", "phish", "spam", "hack",
}

var (
	highAmountThreshold       = decimal.NewFromInt(100000)
	mediumAmountThreshold     = decimal.NewFromInt(50000)
	withdrawalAmountThreshold = decimal.NewFromInt(25000)
)

// withdrawalTypes are the cash-withdrawal-equivalent transaction categories.
var withdrawalTypes = map[string]bool{
	"CASH_OUT": true,
	"DEBIT":    true,
}

// ValidationInput carries the data needed to validate a proposed transaction.
// The profile fields reflect the sender's stored history; ProfileKnown is
// false when the identifier has never been observed.
type ValidationInput struct {
	Identifier         string
	Recipient          string
	Amount             decimal.Decimal
	TransactionType    string
	ProfileKnown       bool
	ProfileBlacklisted bool
	ProfileRiskLevel   valueobject.RiskLevel
}

// Verdict is the outcome of transaction validation.
type Verdict struct {
	RiskTier       valueobject.RiskLevel
	Factors        []string
	Recommendation valueobject.Recommendation
	ShouldBlock    bool
}

// TransactionValidator produces block/review/proceed verdicts for proposed
// transactions by combining stored profile history with amount and pattern
// heuristics. It never mutates profile state.
type TransactionValidator struct{}

// NewTransactionValidator creates a new TransactionValidator instance.
func NewTransactionValidator() *TransactionValidator {
	return &TransactionValidator{}
}

// Validate evaluates a proposed transaction. The risk tier starts at LOW and
// only ever escalates as checks fire; no check can lower a tier already set
// by an earlier one.
func (v *TransactionValidator) Validate(input ValidationInput) Verdict {
	tier := valueobject.RiskLevelLow
	factors := make([]string, 0)

	if containsSuspiciousPattern(input.Identifier) || containsSuspiciousPattern(input.Recipient) {
		tier = tier.Max(valueobject.RiskLevelCritical)
		factors = append(factors, FactorSuspiciousIdentifier)
	}

	switch {
	case input.Amount.GreaterThan(highAmountThreshold):
		tier = tier.Max(valueobject.RiskLevelHigh)
		factors = append(factors, FactorHighAmount)
	case input.Amount.GreaterThan(mediumAmountThreshold):
		tier = tier.Max(valueobject.RiskLevelMedium)
		factors = append(factors, FactorMediumAmount)
	}

	if input.ProfileKnown {
		switch {
		case input.ProfileBlacklisted:
			tier = tier.Max(valueobject.RiskLevelCritical)
			factors = append(factors, FactorBlacklistedUser)
		case input.ProfileRiskLevel.Equal(valueobject.RiskLevelCritical):
			tier = tier.Max(valueobject.RiskLevelCritical)
			factors = append(factors, FactorCriticalUserRisk)
		case input.ProfileRiskLevel.Equal(valueobject.RiskLevelHigh):
			tier = tier.Max(valueobject.RiskLevelMedium)
			factors = append(factors, FactorHighUserRisk)
		}
	}

	if withdrawalTypes[input.TransactionType] && input.Amount.GreaterThan(withdrawalAmountThreshold) {
		tier = tier.Max(valueobject.RiskLevelHigh)
		factors = append(factors, FactorSuspiciousWithdrawal)
	}

	recommendation := valueobject.RecommendationForTier(tier)
	if !input.ProfileKnown && tier.Equal(valueobject.RiskLevelLow) {
		recommendation = valueobject.RecommendationNewUserCaution
	}

	return Verdict{
		RiskTier:       tier,
		Factors:        factors,
		Recommendation: recommendation,
		ShouldBlock:    input.ProfileBlacklisted || tier.Rank() >= valueobject.RiskLevelCritical.Rank(),
	}
}

func containsSuspiciousPattern(handle string) bool {
	if handle == "" {
		return false
	}
	lowered := strings.ToLower(handle)
	for _, word := range suspiciousSubstrings {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

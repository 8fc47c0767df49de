package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Light-700/Nidhi-Rakshak/internal/domain/service"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/valueobject"
)

func TestValidator_NewUserSmallAmount(t *testing.T) {
	validator := service.NewTransactionValidator()

	verdict := validator.Validate(service.ValidationInput{
		Identifier:      "ravi@okhdfcbank",
		Amount:          decimal.NewFromInt(500),
		TransactionType: "PAYMENT",
		ProfileKnown:    false,
	})

	assert.True(t, verdict.RiskTier.Equal(valueobject.RiskLevelLow))
	assert.Empty(t, verdict.Factors)
	assert.True(t, verdict.Recommendation.Equal(valueobject.RecommendationNewUserCaution))
	assert.False(t, verdict.ShouldBlock)
}

func TestValidator_KnownCleanUser(t *testing.T) {
	validator := service.NewTransactionValidator()

	verdict := validator.Validate(service.ValidationInput{
		Identifier:       "ravi@okhdfcbank",
		Amount:           decimal.NewFromInt(500),
		TransactionType:  "PAYMENT",
		ProfileKnown:     true,
		ProfileRiskLevel: valueobject.RiskLevelLow,
	})

	assert.True(t, verdict.RiskTier.Equal(valueobject.RiskLevelLow))
	assert.True(t, verdict.Recommendation.Equal(valueobject.RecommendationProceed))
	assert.False(t, verdict.ShouldBlock)
}

func TestValidator_SuspiciousIdentifier(t *testing.T) {
	validator := service.NewTransactionValidator()

	tests := []struct {
		name       string
		identifier string
		recipient  string
	}{
		{name: "fraud in sender", identifier: "fraudster123@upi", recipient: ""},
		{name: "scam in sender", identifier: "total-scam@upi", recipient: ""},
		{name: "case insensitive", identifier: "PhIsH-king@upi", recipient: ""},
		{name: "hack in recipient", identifier: "ravi@okhdfcbank", recipient: "hackme@upi"},
		{name: "spam in recipient", identifier: "ravi@okhdfcbank", recipient: "SPAM4u@upi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := validator.Validate(service.ValidationInput{
				Identifier:      tt.identifier,
				Recipient:       tt.recipient,
				Amount:          decimal.NewFromInt(100),
				TransactionType: "PAYMENT",
			})

			assert.True(t, verdict.RiskTier.Equal(valueobject.RiskLevelCritical))
			assert.Contains(t, verdict.Factors, service.FactorSuspiciousIdentifier)
			assert.True(t, verdict.Recommendation.Equal(valueobject.RecommendationBlock))
			assert.True(t, verdict.ShouldBlock)
		})
	}
}

func TestValidator_AmountTiers(t *testing.T) {
	validator := service.NewTransactionValidator()

	t.Run("exactly at medium threshold does not fire", func(t *testing.T) {
		verdict := validator.Validate(service.ValidationInput{
			Identifier:      "ravi@okhdfcbank",
			Amount:          decimal.NewFromInt(50000),
			TransactionType: "PAYMENT",
			ProfileKnown:    true,
		})
		assert.True(t, verdict.RiskTier.Equal(valueobject.RiskLevelLow))
		assert.Empty(t, verdict.Factors)
	})

	t.Run("above medium threshold", func(t *testing.T) {
		verdict := validator.Validate(service.ValidationInput{
			Identifier:      "ravi@okhdfcbank",
			Amount:          decimal.NewFromInt(50001),
			TransactionType: "PAYMENT",
			ProfileKnown:    true,
		})
		assert.True(t, verdict.RiskTier.Equal(valueobject.RiskLevelMedium))
		assert.Contains(t, verdict.Factors, service.FactorMediumAmount)
		assert.True(t, verdict.Recommendation.Equal(valueobject.RecommendationProceedCaution))
	})

	t.Run("above high threshold", func(t *testing.T) {
		verdict := validator.Validate(service.ValidationInput{
			Identifier:      "ravi@okhdfcbank",
			Amount:          decimal.NewFromInt(100001),
			TransactionType: "PAYMENT",
			ProfileKnown:    true,
		})
		assert.True(t, verdict.RiskTier.Equal(valueobject.RiskLevelHigh))
		assert.Contains(t, verdict.Factors, service.FactorHighAmount)
		assert.NotContains(t, verdict.Factors, service.FactorMediumAmount)
		assert.True(t, verdict.Recommendation.Equal(valueobject.RecommendationManualReview))
		assert.False(t, verdict.ShouldBlock)
	})
}

func TestValidator_ProfileHistory(t *testing.T) {
	validator := service.NewTransactionValidator()

	t.Run("blacklisted sender always blocks", func(t *testing.T) {
		verdict := validator.Validate(service.ValidationInput{
			Identifier:         "ravi@okhdfcbank",
			Amount:             decimal.NewFromInt(10),
			TransactionType:    "PAYMENT",
			ProfileKnown:       true,
			ProfileBlacklisted: true,
			ProfileRiskLevel:   valueobject.RiskLevelBlacklisted,
		})
		assert.True(t, verdict.RiskTier.Equal(valueobject.RiskLevelCritical))
		assert.Contains(t, verdict.Factors, service.FactorBlacklistedUser)
		assert.True(t, verdict.ShouldBlock)
	})

	t.Run("critical level blocks", func(t *testing.T) {
		verdict := validator.Validate(service.ValidationInput{
			Identifier:       "ravi@okhdfcbank",
			Amount:           decimal.NewFromInt(10),
			TransactionType:  "PAYMENT",
			ProfileKnown:     true,
			ProfileRiskLevel: valueobject.RiskLevelCritical,
		})
		assert.True(t, verdict.RiskTier.Equal(valueobject.RiskLevelCritical))
		assert.Contains(t, verdict.Factors, service.FactorCriticalUserRisk)
		assert.True(t, verdict.ShouldBlock)
	})

	t.Run("high level escalates to medium only", func(t *testing.T) {
		verdict := validator.Validate(service.ValidationInput{
			Identifier:       "ravi@okhdfcbank",
			Amount:           decimal.NewFromInt(10),
			TransactionType:  "PAYMENT",
			ProfileKnown:     true,
			ProfileRiskLevel: valueobject.RiskLevelHigh,
		})
		assert.True(t, verdict.RiskTier.Equal(valueobject.RiskLevelMedium))
		assert.Contains(t, verdict.Factors, service.FactorHighUserRisk)
		assert.False(t, verdict.ShouldBlock)
	})
}

func TestValidator_SuspiciousWithdrawal(t *testing.T) {
	validator := service.NewTransactionValidator()

	t.Run("cash out above threshold", func(t *testing.T) {
		verdict := validator.Validate(service.ValidationInput{
			Identifier:      "ravi@okhdfcbank",
			Amount:          decimal.NewFromInt(30000),
			TransactionType: "CASH_OUT",
			ProfileKnown:    true,
		})
		assert.True(t, verdict.RiskTier.Equal(valueobject.RiskLevelHigh))
		assert.Contains(t, verdict.Factors, service.FactorSuspiciousWithdrawal)
	})

	t.Run("debit above threshold", func(t *testing.T) {
		verdict := validator.Validate(service.ValidationInput{
			Identifier:      "ravi@okhdfcbank",
			Amount:          decimal.NewFromInt(25001),
			TransactionType: "DEBIT",
			ProfileKnown:    true,
		})
		assert.True(t, verdict.RiskTier.Equal(valueobject.RiskLevelHigh))
		assert.Contains(t, verdict.Factors, service.FactorSuspiciousWithdrawal)
	})

	t.Run("unknown sender cash out above threshold", func(t *testing.T) {
		// The withdrawal rule applies regardless of whether the sender has a
		// profile; a first-seen cash out of 60000 goes to manual review, not
		// the new-user path.
		verdict := validator.Validate(service.ValidationInput{
			Identifier:      "newuser@upi",
			Amount:          decimal.NewFromInt(60000),
			TransactionType: "CASH_OUT",
			ProfileKnown:    false,
		})
		assert.True(t, verdict.RiskTier.Equal(valueobject.RiskLevelHigh))
		assert.Contains(t, verdict.Factors, service.FactorSuspiciousWithdrawal)
		assert.Contains(t, verdict.Factors, service.FactorMediumAmount)
		assert.True(t, verdict.Recommendation.Equal(valueobject.RecommendationManualReview))
		assert.False(t, verdict.ShouldBlock)
	})

	t.Run("payment above threshold does not fire", func(t *testing.T) {
		verdict := validator.Validate(service.ValidationInput{
			Identifier:      "ravi@okhdfcbank",
			Amount:          decimal.NewFromInt(30000),
			TransactionType: "PAYMENT",
			ProfileKnown:    true,
		})
		assert.NotContains(t, verdict.Factors, service.FactorSuspiciousWithdrawal)
	})

	t.Run("cash out at threshold does not fire", func(t *testing.T) {
		verdict := validator.Validate(service.ValidationInput{
			Identifier:      "ravi@okhdfcbank",
			Amount:          decimal.NewFromInt(25000),
			TransactionType: "CASH_OUT",
			ProfileKnown:    true,
		})
		assert.NotContains(t, verdict.Factors, service.FactorSuspiciousWithdrawal)
	})
}

func TestValidator_FactorsAccumulate(t *testing.T) {
	validator := service.NewTransactionValidator()

	verdict := validator.Validate(service.ValidationInput{
		Identifier:       "scammer@upi",
		Amount:           decimal.NewFromInt(120000),
		TransactionType:  "CASH_OUT",
		ProfileKnown:     true,
		ProfileRiskLevel: valueobject.RiskLevelHigh,
	})

	// Every fired check contributes a factor; the tier is the maximum, not
	// the last one evaluated.
	assert.True(t, verdict.RiskTier.Equal(valueobject.RiskLevelCritical))
	assert.Contains(t, verdict.Factors, service.FactorSuspiciousIdentifier)
	assert.Contains(t, verdict.Factors, service.FactorHighAmount)
	assert.Contains(t, verdict.Factors, service.FactorHighUserRisk)
	assert.Contains(t, verdict.Factors, service.FactorSuspiciousWithdrawal)
	assert.True(t, verdict.ShouldBlock)
}

func TestValidator_NeverMutates(t *testing.T) {
	validator := service.NewTransactionValidator()

	input := service.ValidationInput{
		Identifier:      "ravi@okhdfcbank",
		Amount:          decimal.NewFromInt(500),
		TransactionType: "PAYMENT",
	}

	first := validator.Validate(input)
	second := validator.Validate(input)

	assert.Equal(t, first.RiskTier.String(), second.RiskTier.String())
	assert.Equal(t, first.Factors, second.Factors)
	assert.Equal(t, first.ShouldBlock, second.ShouldBlock)
}

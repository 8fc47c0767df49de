package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Light-700/Nidhi-Rakshak/internal/domain/model"
)

// RecordOutcomeRequest is the input for applying one classified transaction
// outcome to an identifier's profile.
type RecordOutcomeRequest struct {
	Identifier      string          `json:"identifier"`
	IsFraud         bool            `json:"is_fraud"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transaction_type"`
	Caller          string          `json:"caller"`
}

// ProfileResponse is the external view of a risk profile.
type ProfileResponse struct {
	Identifier        string     `json:"identifier"`
	FraudCount        int        `json:"fraud_count"`
	TotalTransactions int        `json:"total_transactions"`
	FraudRate         float64    `json:"fraud_rate"`
	RiskScore         float64    `json:"risk_score"`
	RiskLevel         string     `json:"risk_level"`
	IsBlacklisted     bool       `json:"is_blacklisted"`
	WarningFlags      []string   `json:"warning_flags"`
	FirstFraudAt      *time.Time `json:"first_fraud_at,omitempty"`
	LastFraudAt       *time.Time `json:"last_fraud_at,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// RecentFraudCount and RecentHistory are populated on direct profile
	// lookups only.
	RecentFraudCount int            `json:"recent_fraud_count,omitempty"`
	RecentHistory    []HistoryEntry `json:"recent_history,omitempty"`
}

// HistoryEntry is one transaction history row in a profile view.
type HistoryEntry struct {
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transaction_type"`
	IsFraud         bool            `json:"is_fraud"`
	RiskScore       float64         `json:"risk_score"`
	RiskLevel       string          `json:"risk_level"`
	RecordedAt      time.Time       `json:"recorded_at"`
}

// FromTransactionRecord maps a history row to its external view.
func FromTransactionRecord(r model.TransactionRecord) HistoryEntry {
	return HistoryEntry{
		Amount:          r.Amount,
		TransactionType: r.Type,
		IsFraud:         r.IsFraud,
		RiskScore:       r.RiskScore,
		RiskLevel:       r.RiskLevel.String(),
		RecordedAt:      r.RecordedAt,
	}
}

// OutcomeResponse is returned after an outcome has been applied.
type OutcomeResponse struct {
	Profile     ProfileResponse `json:"profile"`
	RaisedFlags []string        `json:"raised_flags"`
	RecordedAt  time.Time       `json:"recorded_at"`
}

// AssessTransactionRequest is the input for the full classify-then-record
// flow on a raw transaction.
type AssessTransactionRequest struct {
	Identifier      string  `json:"identifier"`
	Caller          string  `json:"caller"`
	Step            int     `json:"step"`
	TransactionType string  `json:"transaction_type"`
	Amount          float64 `json:"amount"`
	OldBalanceOrig  float64 `json:"old_balance_orig"`
	NewBalanceOrig  float64 `json:"new_balance_orig"`
	OldBalanceDest  float64 `json:"old_balance_dest"`
	NewBalanceDest  float64 `json:"new_balance_dest"`
}

// AssessmentResponse combines the classifier verdict with the updated
// profile view.
type AssessmentResponse struct {
	IsFraud          bool            `json:"is_fraud"`
	FraudProbability float64         `json:"fraud_probability"`
	Confidence       float64         `json:"confidence"`
	Profile          ProfileResponse `json:"profile"`
	RaisedFlags      []string        `json:"raised_flags"`
	AssessedAt       time.Time       `json:"assessed_at"`
}

// ValidateTransactionRequest is the input for pre-transaction validation.
type ValidateTransactionRequest struct {
	Identifier      string          `json:"identifier"`
	Recipient       string          `json:"recipient,omitempty"`
	Caller          string          `json:"caller"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transaction_type"`
}

// VerdictResponse is the validation verdict returned to callers.
type VerdictResponse struct {
	Identifier     string   `json:"identifier"`
	RiskTier       string   `json:"risk_tier"`
	Factors        []string `json:"factors"`
	Recommendation string   `json:"recommendation"`
	ShouldBlock    bool     `json:"should_block"`
	ProfileKnown   bool     `json:"profile_known"`
}

// ResetResponse reports the counters replaced by a reset.
type ResetResponse struct {
	Identifier                string    `json:"identifier"`
	PreviousFraudCount        int       `json:"previous_fraud_count"`
	PreviousTotalTransactions int       `json:"previous_total_transactions"`
	ResetAt                   time.Time `json:"reset_at"`
}

// BlacklistRequest is the input for a manual blacklist action.
type BlacklistRequest struct {
	Identifier string `json:"identifier"`
	Reason     string `json:"reason"`
	Caller     string `json:"caller"`
}

// StatsResponse aggregates counters over the whole profile store.
type StatsResponse struct {
	TotalProfiles       int     `json:"total_profiles"`
	TotalFraudCases     int     `json:"total_fraud_cases"`
	TotalTransactions   int     `json:"total_transactions"`
	OverallFraudRate    float64 `json:"overall_fraud_rate"`
	BlacklistedProfiles int     `json:"blacklisted_profiles"`
	HighRiskProfiles    int     `json:"high_risk_profiles"`

	// TopProfiles lists the worst offenders, ordered by fraud count descending.
	TopProfiles []ProfileResponse `json:"top_profiles,omitempty"`
}

// FromProfile maps a domain profile to the response DTO.
func FromProfile(p *model.Profile) ProfileResponse {
	return ProfileResponse{
		Identifier:        p.Identifier(),
		FraudCount:        p.FraudCount(),
		TotalTransactions: p.TotalTransactions(),
		FraudRate:         p.FraudRate(),
		RiskScore:         p.RiskScore(),
		RiskLevel:         p.RiskLevel().String(),
		IsBlacklisted:     p.IsBlacklisted(),
		WarningFlags:      p.WarningFlags(),
		FirstFraudAt:      p.FirstFraudAt(),
		LastFraudAt:       p.LastFraudAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}

package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Light-700/Nidhi-Rakshak/internal/application/dto"
	"github.com/Light-700/Nidhi-Rakshak/internal/application/usecase"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/port"
	"github.com/Light-700/Nidhi-Rakshak/pkg/auth"
	"github.com/Light-700/Nidhi-Rakshak/pkg/observability"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// callerFromContext extracts the partner identity from JWT claims in the context.
func callerFromContext(ctx context.Context) (string, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "authentication required")
	}
	return claims.PartnerID, nil
}

// mapError converts application errors to gRPC status codes.
func mapError(err error) error {
	switch {
	case errors.Is(err, port.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrProfileNotFound):
		return status.Error(codes.NotFound, "profile not found")
	case port.IsStorageError(err):
		return status.Error(codes.Unavailable, "storage unavailable")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

// Compile-time assertion that RiskProfileHandler implements RiskProfileServiceServer.
var _ RiskProfileServiceServer = (*RiskProfileHandler)(nil)

// RiskProfileHandler implements the gRPC RiskProfileServiceServer interface.
type RiskProfileHandler struct {
	UnimplementedRiskProfileServiceServer
	recordOutcome       *usecase.RecordOutcome
	assessTransaction   *usecase.AssessTransaction
	getProfile          *usecase.GetProfile
	validateTransaction *usecase.ValidateTransaction
	resetProfile        *usecase.ResetProfile
	blacklistProfile    *usecase.BlacklistProfile
	getStats            *usecase.GetStats
	metrics             *observability.EngineMetrics
	logger              *slog.Logger
}

// NewRiskProfileHandler creates a new gRPC handler. metrics may be nil when
// the metrics exporter is disabled.
func NewRiskProfileHandler(
	recordOutcome *usecase.RecordOutcome,
	assessTransaction *usecase.AssessTransaction,
	getProfile *usecase.GetProfile,
	validateTransaction *usecase.ValidateTransaction,
	resetProfile *usecase.ResetProfile,
	blacklistProfile *usecase.BlacklistProfile,
	getStats *usecase.GetStats,
	metrics *observability.EngineMetrics,
	logger *slog.Logger,
) *RiskProfileHandler {
	return &RiskProfileHandler{
		recordOutcome:       recordOutcome,
		assessTransaction:   assessTransaction,
		getProfile:          getProfile,
		validateTransaction: validateTransaction,
		resetProfile:        resetProfile,
		blacklistProfile:    blacklistProfile,
		getStats:            getStats,
		metrics:             metrics,
		logger:              logger,
	}
}

// Proto-aligned request/response message types.

// RiskProfileMsg represents the proto RiskProfile message.
type RiskProfileMsg struct {
	Identifier        string   `json:"identifier"`
	FraudCount        int32    `json:"fraud_count"`
	TotalTransactions int32    `json:"total_transactions"`
	FraudRate         float64  `json:"fraud_rate"`
	RiskScore         float64  `json:"risk_score"`
	RiskLevel         string   `json:"risk_level"`
	IsBlacklisted     bool     `json:"is_blacklisted"`
	WarningFlags      []string `json:"warning_flags"`
	FirstFraudAt      string   `json:"first_fraud_at,omitempty"`
	LastFraudAt       string   `json:"last_fraud_at,omitempty"`
	UpdatedAt         string   `json:"updated_at"`
}

// RecordOutcomeRequest represents the proto RecordOutcomeRequest message.
type RecordOutcomeRequest struct {
	Identifier      string `json:"identifier"`
	IsFraud         bool   `json:"is_fraud"`
	Amount          string `json:"amount"`
	TransactionType string `json:"transaction_type"`
}

// RecordOutcomeResponse represents the proto RecordOutcomeResponse message.
type RecordOutcomeResponse struct {
	Profile     *RiskProfileMsg `json:"profile"`
	RaisedFlags []string        `json:"raised_flags"`
	RecordedAt  string          `json:"recorded_at"`
}

// AssessTransactionRequest represents the proto AssessTransactionRequest message.
type AssessTransactionRequest struct {
	Identifier      string  `json:"identifier"`
	Step            int32   `json:"step"`
	TransactionType string  `json:"transaction_type"`
	Amount          float64 `json:"amount"`
	OldBalanceOrig  float64 `json:"old_balance_orig"`
	NewBalanceOrig  float64 `json:"new_balance_orig"`
	OldBalanceDest  float64 `json:"old_balance_dest"`
	NewBalanceDest  float64 `json:"new_balance_dest"`
}

// AssessTransactionResponse represents the proto AssessTransactionResponse message.
type AssessTransactionResponse struct {
	IsFraud          bool            `json:"is_fraud"`
	FraudProbability float64         `json:"fraud_probability"`
	Confidence       float64         `json:"confidence"`
	Profile          *RiskProfileMsg `json:"profile"`
	RaisedFlags      []string        `json:"raised_flags"`
}

// GetProfileRequest represents the proto GetProfileRequest message.
type GetProfileRequest struct {
	Identifier string `json:"identifier"`
}

// GetProfileResponse represents the proto GetProfileResponse message.
type GetProfileResponse struct {
	Profile          *RiskProfileMsg    `json:"profile"`
	RecentFraudCount int32              `json:"recent_fraud_count"`
	RecentHistory    []*HistoryEntryMsg `json:"recent_history,omitempty"`
}

// HistoryEntryMsg represents the proto HistoryEntry message.
type HistoryEntryMsg struct {
	Amount          string  `json:"amount"`
	TransactionType string  `json:"transaction_type"`
	IsFraud         bool    `json:"is_fraud"`
	RiskScore       float64 `json:"risk_score"`
	RiskLevel       string  `json:"risk_level"`
	RecordedAt      string  `json:"recorded_at"`
}

// ValidateTransactionRequest represents the proto ValidateTransactionRequest message.
type ValidateTransactionRequest struct {
	Identifier      string `json:"identifier"`
	Recipient       string `json:"recipient"`
	Amount          string `json:"amount"`
	TransactionType string `json:"transaction_type"`
}

// ValidateTransactionResponse represents the proto ValidateTransactionResponse message.
type ValidateTransactionResponse struct {
	Identifier     string   `json:"identifier"`
	RiskTier       string   `json:"risk_tier"`
	Factors        []string `json:"factors"`
	Recommendation string   `json:"recommendation"`
	ShouldBlock    bool     `json:"should_block"`
	ProfileKnown   bool     `json:"profile_known"`
}

// ResetProfileRequest represents the proto ResetProfileRequest message.
type ResetProfileRequest struct {
	Identifier string `json:"identifier"`
}

// ResetProfileResponse represents the proto ResetProfileResponse message.
type ResetProfileResponse struct {
	Identifier                string `json:"identifier"`
	PreviousFraudCount        int32  `json:"previous_fraud_count"`
	PreviousTotalTransactions int32  `json:"previous_total_transactions"`
	ResetAt                   string `json:"reset_at"`
}

// BlacklistProfileRequest represents the proto BlacklistProfileRequest message.
type BlacklistProfileRequest struct {
	Identifier string `json:"identifier"`
	Reason     string `json:"reason"`
}

// BlacklistProfileResponse represents the proto BlacklistProfileResponse message.
type BlacklistProfileResponse struct {
	Profile *RiskProfileMsg `json:"profile"`
}

// GetStatsRequest represents the proto GetStatsRequest message.
type GetStatsRequest struct{}

// GetStatsResponse represents the proto GetStatsResponse message.
type GetStatsResponse struct {
	TotalProfiles       int32             `json:"total_profiles"`
	TotalFraudCases     int32             `json:"total_fraud_cases"`
	TotalTransactions   int32             `json:"total_transactions"`
	OverallFraudRate    float64           `json:"overall_fraud_rate"`
	BlacklistedProfiles int32             `json:"blacklisted_profiles"`
	HighRiskProfiles    int32             `json:"high_risk_profiles"`
	TopProfiles         []*RiskProfileMsg `json:"top_profiles,omitempty"`
}

func profileMsg(p dto.ProfileResponse) *RiskProfileMsg {
	msg := &RiskProfileMsg{
		Identifier:        p.Identifier,
		FraudCount:        int32(p.FraudCount),
		TotalTransactions: int32(p.TotalTransactions),
		FraudRate:         p.FraudRate,
		RiskScore:         p.RiskScore,
		RiskLevel:         p.RiskLevel,
		IsBlacklisted:     p.IsBlacklisted,
		WarningFlags:      p.WarningFlags,
		UpdatedAt:         p.UpdatedAt.Format(time.RFC3339),
	}
	if p.FirstFraudAt != nil {
		msg.FirstFraudAt = p.FirstFraudAt.Format(time.RFC3339)
	}
	if p.LastFraudAt != nil {
		msg.LastFraudAt = p.LastFraudAt.Format(time.RFC3339)
	}
	return msg
}

// RecordOutcome handles a classified transaction outcome.
func (h *RiskProfileHandler) RecordOutcome(ctx context.Context, req *RecordOutcomeRequest) (*RecordOutcomeResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RolePartner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	amount := decimal.Zero
	if req.Amount != "" {
		amount, err = decimal.NewFromString(req.Amount)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
		}
	}

	result, err := h.recordOutcome.Execute(ctx, dto.RecordOutcomeRequest{
		Identifier:      req.Identifier,
		IsFraud:         req.IsFraud,
		Amount:          amount,
		TransactionType: req.TransactionType,
		Caller:          caller,
	})
	if err != nil {
		h.logger.Error("failed to record outcome",
			slog.String("identifier", req.Identifier),
			slog.String("error", err.Error()),
		)
		return nil, mapError(err)
	}

	h.countOutcome(ctx, req.IsFraud, result.RaisedFlags, result.Profile)

	return &RecordOutcomeResponse{
		Profile:     profileMsg(result.Profile),
		RaisedFlags: result.RaisedFlags,
		RecordedAt:  result.RecordedAt.Format(time.RFC3339),
	}, nil
}

// AssessTransaction handles the full classify-then-record flow.
func (h *RiskProfileHandler) AssessTransaction(ctx context.Context, req *AssessTransactionRequest) (*AssessTransactionResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RolePartner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	result, err := h.assessTransaction.Execute(ctx, dto.AssessTransactionRequest{
		Identifier:      req.Identifier,
		Caller:          caller,
		Step:            int(req.Step),
		TransactionType: req.TransactionType,
		Amount:          req.Amount,
		OldBalanceOrig:  req.OldBalanceOrig,
		NewBalanceOrig:  req.NewBalanceOrig,
		OldBalanceDest:  req.OldBalanceDest,
		NewBalanceDest:  req.NewBalanceDest,
	})
	if err != nil {
		h.logger.Error("failed to assess transaction",
			slog.String("identifier", req.Identifier),
			slog.String("error", err.Error()),
		)
		return nil, mapError(err)
	}

	h.countOutcome(ctx, result.IsFraud, result.RaisedFlags, result.Profile)

	return &AssessTransactionResponse{
		IsFraud:          result.IsFraud,
		FraudProbability: result.FraudProbability,
		Confidence:       result.Confidence,
		Profile:          profileMsg(result.Profile),
		RaisedFlags:      result.RaisedFlags,
	}, nil
}

// GetProfile handles a profile lookup request.
func (h *RiskProfileHandler) GetProfile(ctx context.Context, req *GetProfileRequest) (*GetProfileResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RolePartner, auth.RoleAuditor); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	result, err := h.getProfile.Execute(ctx, req.Identifier, caller)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &GetProfileResponse{
		Profile:          profileMsg(result),
		RecentFraudCount: int32(result.RecentFraudCount),
	}
	for _, entry := range result.RecentHistory {
		resp.RecentHistory = append(resp.RecentHistory, &HistoryEntryMsg{
			Amount:          entry.Amount.String(),
			TransactionType: entry.TransactionType,
			IsFraud:         entry.IsFraud,
			RiskScore:       entry.RiskScore,
			RiskLevel:       entry.RiskLevel,
			RecordedAt:      entry.RecordedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// ValidateTransaction handles a pre-transaction validation request.
func (h *RiskProfileHandler) ValidateTransaction(ctx context.Context, req *ValidateTransactionRequest) (*ValidateTransactionResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RolePartner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	amount := decimal.Zero
	if req.Amount != "" {
		amount, err = decimal.NewFromString(req.Amount)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
		}
	}

	result, err := h.validateTransaction.Execute(ctx, dto.ValidateTransactionRequest{
		Identifier:      req.Identifier,
		Recipient:       req.Recipient,
		Caller:          caller,
		Amount:          amount,
		TransactionType: req.TransactionType,
	})
	if err != nil {
		return nil, mapError(err)
	}

	if result.ShouldBlock && h.metrics != nil {
		h.metrics.ValidationsBlocked.Add(ctx, 1,
			metric.WithAttributes(attribute.String("risk_tier", result.RiskTier)))
	}

	return &ValidateTransactionResponse{
		Identifier:     result.Identifier,
		RiskTier:       result.RiskTier,
		Factors:        result.Factors,
		Recommendation: result.Recommendation,
		ShouldBlock:    result.ShouldBlock,
		ProfileKnown:   result.ProfileKnown,
	}, nil
}

// ResetProfile handles an administrative counter reset.
func (h *RiskProfileHandler) ResetProfile(ctx context.Context, req *ResetProfileRequest) (*ResetProfileResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	result, err := h.resetProfile.Execute(ctx, req.Identifier, caller)
	if err != nil {
		return nil, mapError(err)
	}

	return &ResetProfileResponse{
		Identifier:                result.Identifier,
		PreviousFraudCount:        int32(result.PreviousFraudCount),
		PreviousTotalTransactions: int32(result.PreviousTotalTransactions),
		ResetAt:                   result.ResetAt.Format(time.RFC3339),
	}, nil
}

// BlacklistProfile handles a manual blacklist request.
func (h *RiskProfileHandler) BlacklistProfile(ctx context.Context, req *BlacklistProfileRequest) (*BlacklistProfileResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	result, err := h.blacklistProfile.Execute(ctx, dto.BlacklistRequest{
		Identifier: req.Identifier,
		Reason:     req.Reason,
		Caller:     caller,
	})
	if err != nil {
		return nil, mapError(err)
	}

	if h.metrics != nil {
		h.metrics.Blacklists.Add(ctx, 1)
	}

	return &BlacklistProfileResponse{Profile: profileMsg(result)}, nil
}

// GetStats handles a store-wide statistics request.
func (h *RiskProfileHandler) GetStats(ctx context.Context, req *GetStatsRequest) (*GetStatsResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleAuditor); err != nil {
		return nil, err
	}

	result, err := h.getStats.Execute(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &GetStatsResponse{
		TotalProfiles:       int32(result.TotalProfiles),
		TotalFraudCases:     int32(result.TotalFraudCases),
		TotalTransactions:   int32(result.TotalTransactions),
		OverallFraudRate:    result.OverallFraudRate,
		BlacklistedProfiles: int32(result.BlacklistedProfiles),
		HighRiskProfiles:    int32(result.HighRiskProfiles),
	}
	for _, p := range result.TopProfiles {
		resp.TopProfiles = append(resp.TopProfiles, profileMsg(p))
	}
	return resp, nil
}

func (h *RiskProfileHandler) countOutcome(ctx context.Context, isFraud bool, raisedFlags []string, profile dto.ProfileResponse) {
	if h.metrics == nil {
		return
	}
	h.metrics.OutcomesRecorded.Add(ctx, 1)
	if isFraud {
		h.metrics.FraudOutcomes.Add(ctx, 1)
	}
	if len(raisedFlags) > 0 {
		h.metrics.Escalations.Add(ctx, int64(len(raisedFlags)),
			metric.WithAttributes(attribute.String("risk_level", profile.RiskLevel)))
	}
}

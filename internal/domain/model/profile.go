package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Light-700/Nidhi-Rakshak/internal/domain/event"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/service"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/valueobject"
)

// Escalation flag names appended to a profile's warning flags. Each
// threshold flag is emitted at most once per profile; FlagRecentFraudActivity
// may repeat on every qualifying fraudulent outcome.
const (
	FlagMediumThresholdReached    = "MEDIUM_RISK_THRESHOLD_REACHED"
	FlagHighThresholdReached      = "HIGH_RISK_THRESHOLD_REACHED"
	FlagCriticalThresholdReached  = "CRITICAL_RISK_THRESHOLD_REACHED"
	FlagBlacklistThresholdReached = "BLACKLIST_THRESHOLD_REACHED"
	FlagRecentFraudActivity       = "RECENT_FRAUD_ACTIVITY"

	// ManualBlacklistFlagPrefix prefixes the flag recording a manual
	// blacklist action together with its reason.
	ManualBlacklistFlagPrefix = "MANUAL_BLACKLIST:"
)

// Fraud-count boundaries at which threshold flags are raised. These mirror
// the classification ladder's count triggers.
const (
	mediumFlagBoundary    = 10
	highFlagBoundary      = 20
	criticalFlagBoundary  = 50
	blacklistCountTrigger = 100
	blacklistScoreTrigger = 90.0
)

// recentFraudWindow is the lookback for the repeatable recent-activity flag.
const recentFraudWindow = 24 * time.Hour

// Profile is the aggregate root holding the escalating risk record for one
// UPI identifier. All mutation goes through RecordOutcome, MarkBlacklisted,
// or ResetCounters; the repository serializes concurrent writers per
// identifier so these transitions never interleave.
type Profile struct {
	identifier        string
	fraudCount        int
	totalTransactions int
	riskScore         float64
	riskLevel         valueobject.RiskLevel
	blacklisted       bool
	firstFraudAt      *time.Time
	lastFraudAt       *time.Time
	warningFlags      []string
	createdAt         time.Time
	updatedAt         time.Time
	version           int
	domainEvents      []event.Event
}

// NewProfile creates a fresh zero-valued profile for an identifier that has
// not been observed before.
func NewProfile(identifier string, now time.Time) (*Profile, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, fmt.Errorf("identifier is required")
	}
	return &Profile{
		identifier:   identifier,
		riskLevel:    valueobject.RiskLevelLow,
		warningFlags: make([]string, 0),
		createdAt:    now,
		updatedAt:    now,
		version:      1,
	}, nil
}

// RecordOutcome applies one classified transaction outcome to the profile:
// counters, score, level, warning flags, blacklist state, and fraud
// timestamps, in that order. It returns the flags newly raised by this call.
//
// The blacklist bit is sticky: once set it is never cleared here, regardless
// of subsequent non-fraud outcomes.
func (p *Profile) RecordOutcome(scorer *service.RiskScorer, isFraud bool, now time.Time) []string {
	previousLastFraud := p.lastFraudAt

	p.totalTransactions++
	if isFraud {
		p.fraudCount++
	}

	p.riskScore = scorer.Score(p.fraudCount, p.totalTransactions, 0)
	p.riskLevel = valueobject.ClassifyRisk(p.riskScore, p.fraudCount)

	emitted := p.raiseThresholdFlags()

	if isFraud && previousLastFraud != nil && now.Sub(*previousLastFraud) <= recentFraudWindow {
		// Deliberately not deduplicated: every qualifying outcome repeats it.
		p.warningFlags = append(p.warningFlags, FlagRecentFraudActivity)
		emitted = append(emitted, FlagRecentFraudActivity)
	}

	wasBlacklisted := p.blacklisted
	if p.fraudCount >= blacklistCountTrigger || p.riskScore >= blacklistScoreTrigger {
		p.blacklisted = true
	}
	if p.blacklisted {
		p.riskLevel = valueobject.RiskLevelBlacklisted
	}

	if isFraud {
		if p.firstFraudAt == nil {
			t := now
			p.firstFraudAt = &t
		}
		t := now
		p.lastFraudAt = &t
	}

	p.updatedAt = now
	p.version++

	p.domainEvents = append(p.domainEvents, event.OutcomeRecorded{
		Identifier:        p.identifier,
		IsFraud:           isFraud,
		FraudCount:        p.fraudCount,
		TotalTransactions: p.totalTransactions,
		RiskScore:         p.riskScore,
		RiskLevel:         p.riskLevel.String(),
		OccurredAt:        now,
	})
	for _, flag := range emitted {
		p.domainEvents = append(p.domainEvents, event.EscalationFlagged{
			Identifier: p.identifier,
			Flag:       flag,
			FraudCount: p.fraudCount,
			RiskScore:  p.riskScore,
			RiskLevel:  p.riskLevel.String(),
			OccurredAt: now,
		})
	}
	if p.blacklisted && !wasBlacklisted {
		p.domainEvents = append(p.domainEvents, event.ProfileBlacklisted{
			Identifier: p.identifier,
			Reason:     "fraud threshold exceeded",
			FraudCount: p.fraudCount,
			RiskScore:  p.riskScore,
			OccurredAt: now,
		})
	}

	return emitted
}

// raiseThresholdFlags emits count-boundary flags. The 10/20/50 boundaries
// trigger on exact equality since counters only ever advance by one; the
// blacklist boundary triggers on the first crossing at or above 100.
func (p *Profile) raiseThresholdFlags() []string {
	var emitted []string

	boundaryFlags := []struct {
		count int
		flag  string
	}{
		{mediumFlagBoundary, FlagMediumThresholdReached},
		{highFlagBoundary, FlagHighThresholdReached},
		{criticalFlagBoundary, FlagCriticalThresholdReached},
	}
	for _, b := range boundaryFlags {
		if p.fraudCount == b.count && !p.hasFlag(b.flag) {
			p.warningFlags = append(p.warningFlags, b.flag)
			emitted = append(emitted, b.flag)
		}
	}

	if p.fraudCount >= blacklistCountTrigger && !p.hasFlag(FlagBlacklistThresholdReached) {
		p.warningFlags = append(p.warningFlags, FlagBlacklistThresholdReached)
		emitted = append(emitted, FlagBlacklistThresholdReached)
	}

	return emitted
}

// MarkBlacklisted applies a manual blacklist action: the profile is pinned
// at the top of the ladder and a flag recording the reason is appended.
func (p *Profile) MarkBlacklisted(reason string, now time.Time) {
	wasBlacklisted := p.blacklisted

	p.blacklisted = true
	p.riskScore = 100
	p.riskLevel = valueobject.RiskLevelBlacklisted

	flag := ManualBlacklistFlagPrefix + reason
	if !p.hasFlag(flag) {
		p.warningFlags = append(p.warningFlags, flag)
	}

	p.updatedAt = now
	p.version++

	if !wasBlacklisted {
		p.domainEvents = append(p.domainEvents, event.ProfileBlacklisted{
			Identifier: p.identifier,
			Reason:     reason,
			FraudCount: p.fraudCount,
			RiskScore:  p.riskScore,
			OccurredAt: now,
		})
	}
}

// ResetCounters zeroes all counters, flags, and fraud timestamps while
// preserving the identifier. It returns the replaced counter values.
func (p *Profile) ResetCounters(now time.Time) (prevFraudCount, prevTotal int) {
	prevFraudCount = p.fraudCount
	prevTotal = p.totalTransactions

	p.fraudCount = 0
	p.totalTransactions = 0
	p.riskScore = 0
	p.riskLevel = valueobject.RiskLevelLow
	p.blacklisted = false
	p.firstFraudAt = nil
	p.lastFraudAt = nil
	p.warningFlags = make([]string, 0)
	p.updatedAt = now
	p.version++

	return prevFraudCount, prevTotal
}

func (p *Profile) hasFlag(flag string) bool {
	for _, f := range p.warningFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// Reconstruct rebuilds a Profile from persisted data (no validation, no events).
func Reconstruct(
	identifier string,
	fraudCount, totalTransactions int,
	riskScore float64,
	riskLevel valueobject.RiskLevel,
	blacklisted bool,
	firstFraudAt, lastFraudAt *time.Time,
	warningFlags []string,
	version int,
	createdAt, updatedAt time.Time,
) *Profile {
	if warningFlags == nil {
		warningFlags = make([]string, 0)
	}
	return &Profile{
		identifier:        identifier,
		fraudCount:        fraudCount,
		totalTransactions: totalTransactions,
		riskScore:         riskScore,
		riskLevel:         riskLevel,
		blacklisted:       blacklisted,
		firstFraudAt:      firstFraudAt,
		lastFraudAt:       lastFraudAt,
		warningFlags:      warningFlags,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		domainEvents:      make([]event.Event, 0),
	}
}

// FraudRate returns fraudCount/totalTransactions, or 0 for an empty profile.
func (p *Profile) FraudRate() float64 {
	if p.totalTransactions == 0 {
		return 0
	}
	return float64(p.fraudCount) / float64(p.totalTransactions)
}

// --- Accessors ---

func (p *Profile) Identifier() string               { return p.identifier }
func (p *Profile) FraudCount() int                  { return p.fraudCount }
func (p *Profile) TotalTransactions() int           { return p.totalTransactions }
func (p *Profile) RiskScore() float64               { return p.riskScore }
func (p *Profile) RiskLevel() valueobject.RiskLevel { return p.riskLevel }
func (p *Profile) IsBlacklisted() bool              { return p.blacklisted }
func (p *Profile) FirstFraudAt() *time.Time         { return p.firstFraudAt }
func (p *Profile) LastFraudAt() *time.Time          { return p.lastFraudAt }
func (p *Profile) WarningFlags() []string           { return p.warningFlags }
func (p *Profile) Version() int                     { return p.version }
func (p *Profile) CreatedAt() time.Time             { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time             { return p.updatedAt }

// DomainEvents returns all accumulated domain events and clears them.
func (p *Profile) DomainEvents() []event.Event {
	evts := p.domainEvents
	p.domainEvents = make([]event.Event, 0)
	return evts
}

package event

import "time"

const (
	// EventTypeOutcomeRecorded is emitted every time a classified transaction
	// outcome is applied to a profile.
	EventTypeOutcomeRecorded = "fraud.profile.outcome_recorded"

	// EventTypeEscalationFlagged is emitted when a profile crosses a warning
	// threshold and a new warning flag is raised.
	EventTypeEscalationFlagged = "fraud.profile.escalation_flagged"

	// EventTypeProfileBlacklisted is emitted when a profile becomes
	// blacklisted, whether by threshold or by manual action.
	EventTypeProfileBlacklisted = "fraud.profile.blacklisted"
)

// Event is the interface all domain events published by the profile
// aggregate implement. Key is the Kafka partition key (the identifier).
type Event interface {
	EventType() string
	Key() string
}

// OutcomeRecorded is published after a transaction outcome has been applied
// to an identifier's risk profile.
type OutcomeRecorded struct {
	Identifier        string    `json:"identifier"`
	IsFraud           bool      `json:"is_fraud"`
	FraudCount        int       `json:"fraud_count"`
	TotalTransactions int       `json:"total_transactions"`
	RiskScore         float64   `json:"risk_score"`
	RiskLevel         string    `json:"risk_level"`
	OccurredAt        time.Time `json:"occurred_at"`
}

// EventType returns the event type identifier.
func (e OutcomeRecorded) EventType() string { return EventTypeOutcomeRecorded }

// Key returns the profile identifier as the partition key.
func (e OutcomeRecorded) Key() string { return e.Identifier }

// EscalationFlagged is published when a warning flag is raised on a profile.
type EscalationFlagged struct {
	Identifier string    `json:"identifier"`
	Flag       string    `json:"flag"`
	FraudCount int       `json:"fraud_count"`
	RiskScore  float64   `json:"risk_score"`
	RiskLevel  string    `json:"risk_level"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventType returns the event type identifier.
func (e EscalationFlagged) EventType() string { return EventTypeEscalationFlagged }

// Key returns the profile identifier as the partition key.
func (e EscalationFlagged) Key() string { return e.Identifier }

// ProfileBlacklisted is published when a profile transitions to blacklisted,
// triggering alerts and downstream account blocks.
type ProfileBlacklisted struct {
	Identifier string    `json:"identifier"`
	Reason     string    `json:"reason"`
	FraudCount int       `json:"fraud_count"`
	RiskScore  float64   `json:"risk_score"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventType returns the event type identifier.
func (e ProfileBlacklisted) EventType() string { return EventTypeProfileBlacklisted }

// Key returns the profile identifier as the partition key.
func (e ProfileBlacklisted) Key() string { return e.Identifier }

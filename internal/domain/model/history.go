package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Light-700/Nidhi-Rakshak/internal/domain/valueobject"
)

// TransactionRecord is one append-only history row for a profile. Records
// are never mutated after insert; reporting uses them for audit trails and
// windowed queries such as "frauds in the last 30 days".
type TransactionRecord struct {
	ID         uuid.UUID
	Identifier string
	Amount     decimal.Decimal
	Type       string
	IsFraud    bool
	RiskScore  float64
	RiskLevel  valueobject.RiskLevel
	Caller     string
	RecordedAt time.Time
}

// NewTransactionRecord captures the outcome of a single transaction together
// with the profile state that resulted from applying it.
func NewTransactionRecord(
	p *Profile,
	amount decimal.Decimal,
	txnType string,
	isFraud bool,
	caller string,
	now time.Time,
) TransactionRecord {
	return TransactionRecord{
		ID:         uuid.New(),
		Identifier: p.Identifier(),
		Amount:     amount,
		Type:       txnType,
		IsFraud:    isFraud,
		RiskScore:  p.RiskScore(),
		RiskLevel:  p.RiskLevel(),
		Caller:     caller,
		RecordedAt: now,
	}
}

// AccessRecord is one append-only row in the partner access log, written on
// every external read against a profile for usage accounting.
type AccessRecord struct {
	ID         uuid.UUID
	Caller     string
	Identifier string
	Action     string
	OccurredAt time.Time
}

// Access log action kinds.
const (
	AccessActionLookup   = "profile_lookup"
	AccessActionValidate = "transaction_validation"
)

// NewAccessRecord creates an access log row for a partner read.
func NewAccessRecord(caller, identifier, action string, now time.Time) AccessRecord {
	return AccessRecord{
		ID:         uuid.New(),
		Caller:     caller,
		Identifier: identifier,
		Action:     action,
		OccurredAt: now,
	}
}

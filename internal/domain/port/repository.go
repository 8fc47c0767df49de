package port

import (
	"context"
	"time"

	"github.com/Light-700/Nidhi-Rakshak/internal/domain/event"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/model"
)

// UpdateFunc mutates a profile inside an atomic read-modify-write cycle and
// optionally returns a history record to persist in the same unit. Returning
// an error aborts the whole update; nothing is committed.
type UpdateFunc func(p *model.Profile) (*model.TransactionRecord, error)

// Stats are aggregate counters over the whole profile store.
type Stats struct {
	TotalProfiles       int
	TotalFraudCases     int
	TotalTransactions   int
	BlacklistedProfiles int
	HighRiskProfiles    int
}

// ProfileRepository is the persistence port for risk profiles, their
// transaction history, and the partner access log.
//
// AtomicUpdate and UpdateExisting serialize concurrent writers per
// identifier; writers on distinct identifiers proceed in parallel. Readers
// may observe the pre- or post-update snapshot but never a partial write.
type ProfileRepository interface {
	// Get retrieves a profile by identifier. Returns ErrProfileNotFound for
	// unseen identifiers.
	Get(ctx context.Context, identifier string) (*model.Profile, error)

	// AtomicUpdate loads the profile (creating a fresh zero-valued one if
	// absent), applies fn, and persists the result plus any returned history
	// record as a single atomic unit.
	AtomicUpdate(ctx context.Context, identifier string, fn UpdateFunc) (*model.Profile, error)

	// UpdateExisting behaves like AtomicUpdate but returns ErrProfileNotFound
	// instead of creating a missing profile.
	UpdateExisting(ctx context.Context, identifier string, fn UpdateFunc) (*model.Profile, error)

	// ListProfiles returns all profiles, most fraudulent first.
	ListProfiles(ctx context.Context) ([]*model.Profile, error)

	// Stats computes aggregate counters over the store.
	Stats(ctx context.Context) (Stats, error)

	// History returns up to limit most recent history records for an
	// identifier, newest first.
	History(ctx context.Context, identifier string, limit int) ([]model.TransactionRecord, error)

	// FraudCountSince counts fraudulent history records for an identifier at
	// or after the given time.
	FraudCountSince(ctx context.Context, identifier string, since time.Time) (int, error)

	// AppendAccessLog records an external read against a profile.
	AppendAccessLog(ctx context.Context, record model.AccessRecord) error
}

// EventPublisher is the port for publishing domain events to the messaging
// infrastructure.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.Event) error
}

// RawTransaction carries the raw transaction fields the external classifier
// scores. Feature derivation from these fields is part of the model
// contract and happens inside the classifier adapter.
type RawTransaction struct {
	Step           int
	Type           string
	Amount         float64
	OldBalanceOrig float64
	NewBalanceOrig float64
	OldBalanceDest float64
	NewBalanceDest float64
}

// ModelClient is the port for the external fraud classifier. The returned
// probability is the classifier's fraud likelihood in [0,1].
type ModelClient interface {
	Predict(ctx context.Context, txn RawTransaction) (probability float64, err error)
}

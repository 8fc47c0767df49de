package memory

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/Light-700/Nidhi-Rakshak/internal/domain/model"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/port"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/valueobject"
)

// shardCount is the number of update-lock stripes. Writers on the same
// identifier always hash to the same stripe; writers on distinct identifiers
// almost always proceed in parallel.
const shardCount = 64

// ProfileRepository is an in-memory implementation of port.ProfileRepository
// for development and tests. Profiles are stored as immutable snapshots:
// updates mutate a private clone and swap it in, so concurrent readers see
// either the pre- or post-update state, never a partial write.
type ProfileRepository struct {
	updateLocks [shardCount]sync.Mutex

	mu       sync.RWMutex
	profiles map[string]*model.Profile
	history  map[string][]model.TransactionRecord

	accessMu  sync.Mutex
	accessLog []model.AccessRecord
}

// NewProfileRepository creates an empty in-memory profile repository.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		profiles: make(map[string]*model.Profile),
		history:  make(map[string][]model.TransactionRecord),
	}
}

var _ port.ProfileRepository = (*ProfileRepository)(nil)

// Get retrieves a snapshot of a profile by identifier.
func (r *ProfileRepository) Get(ctx context.Context, identifier string) (*model.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, port.NewStorageError("get", err)
	}

	r.mu.RLock()
	p, ok := r.profiles[identifier]
	r.mu.RUnlock()

	if !ok {
		return nil, port.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

// AtomicUpdate applies fn to the profile under the identifier's stripe lock,
// creating a fresh zero-valued profile when the identifier is unseen.
func (r *ProfileRepository) AtomicUpdate(ctx context.Context, identifier string, fn port.UpdateFunc) (*model.Profile, error) {
	return r.update(ctx, identifier, fn, true)
}

// UpdateExisting applies fn like AtomicUpdate but fails with
// ErrProfileNotFound when the identifier is unseen.
func (r *ProfileRepository) UpdateExisting(ctx context.Context, identifier string, fn port.UpdateFunc) (*model.Profile, error) {
	return r.update(ctx, identifier, fn, false)
}

func (r *ProfileRepository) update(ctx context.Context, identifier string, fn port.UpdateFunc, createIfAbsent bool) (*model.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, port.NewStorageError("update", err)
	}

	lock := &r.updateLocks[shardFor(identifier)]
	lock.Lock()
	defer lock.Unlock()

	r.mu.RLock()
	stored, ok := r.profiles[identifier]
	r.mu.RUnlock()

	var working *model.Profile
	switch {
	case ok:
		working = cloneProfile(stored)
	case createIfAbsent:
		p, err := model.NewProfile(identifier, time.Now().UTC())
		if err != nil {
			return nil, err
		}
		working = p
	default:
		return nil, port.ErrProfileNotFound
	}

	record, err := fn(working)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.profiles[identifier] = cloneProfile(working)
	if record != nil {
		r.history[identifier] = append(r.history[identifier], *record)
	}
	r.mu.Unlock()

	return working, nil
}

// ListProfiles returns snapshots of all profiles, most fraudulent first.
func (r *ProfileRepository) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, port.NewStorageError("list", err)
	}

	r.mu.RLock()
	profiles := make([]*model.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, cloneProfile(p))
	}
	r.mu.RUnlock()

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].FraudCount() > profiles[j].FraudCount()
	})
	return profiles, nil
}

// Stats computes aggregate counters over all stored profiles.
func (r *ProfileRepository) Stats(ctx context.Context) (port.Stats, error) {
	if err := ctx.Err(); err != nil {
		return port.Stats{}, port.NewStorageError("stats", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := port.Stats{TotalProfiles: len(r.profiles)}
	for _, p := range r.profiles {
		stats.TotalFraudCases += p.FraudCount()
		stats.TotalTransactions += p.TotalTransactions()
		if p.IsBlacklisted() {
			stats.BlacklistedProfiles++
		} else if p.RiskLevel().Rank() >= valueobject.RiskLevelHigh.Rank() {
			stats.HighRiskProfiles++
		}
	}
	return stats, nil
}

// History returns up to limit most recent history records, newest first.
func (r *ProfileRepository) History(ctx context.Context, identifier string, limit int) ([]model.TransactionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, port.NewStorageError("history", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.history[identifier]
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}

	records := make([]model.TransactionRecord, 0, limit)
	for i := len(all) - 1; i >= len(all)-limit; i-- {
		records = append(records, all[i])
	}
	return records, nil
}

// FraudCountSince counts fraudulent history records at or after since.
func (r *ProfileRepository) FraudCountSince(ctx context.Context, identifier string, since time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, port.NewStorageError("fraud count", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, rec := range r.history[identifier] {
		if rec.IsFraud && !rec.RecordedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// AppendAccessLog records an external read against a profile.
func (r *ProfileRepository) AppendAccessLog(ctx context.Context, record model.AccessRecord) error {
	if err := ctx.Err(); err != nil {
		return port.NewStorageError("access log", err)
	}

	r.accessMu.Lock()
	r.accessLog = append(r.accessLog, record)
	r.accessMu.Unlock()
	return nil
}

// AccessLog returns a snapshot of the access log, oldest first. Used by
// reporting and tests.
func (r *ProfileRepository) AccessLog() []model.AccessRecord {
	r.accessMu.Lock()
	defer r.accessMu.Unlock()
	return append([]model.AccessRecord(nil), r.accessLog...)
}

func shardFor(identifier string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(identifier))
	return h.Sum32() % shardCount
}

func cloneProfile(p *model.Profile) *model.Profile {
	flags := append([]string(nil), p.WarningFlags()...)
	var first, last *time.Time
	if t := p.FirstFraudAt(); t != nil {
		c := *t
		first = &c
	}
	if t := p.LastFraudAt(); t != nil {
		c := *t
		last = &c
	}
	return model.Reconstruct(
		p.Identifier(),
		p.FraudCount(), p.TotalTransactions(),
		p.RiskScore(), p.RiskLevel(), p.IsBlacklisted(),
		first, last, flags,
		p.Version(), p.CreatedAt(), p.UpdatedAt(),
	)
}

package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Light-700/Nidhi-Rakshak/internal/domain/model"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/port"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/service"
	"github.com/Light-700/Nidhi-Rakshak/internal/infrastructure/memory"
)

func TestGet_NotFound(t *testing.T) {
	repo := memory.NewProfileRepository()

	_, err := repo.Get(context.Background(), "unknown@upi")
	assert.ErrorIs(t, err, port.ErrProfileNotFound)
}

func TestAtomicUpdate_CreatesProfile(t *testing.T) {
	repo := memory.NewProfileRepository()
	scorer := service.NewRiskScorer()

	updated, err := repo.AtomicUpdate(context.Background(), "ravi@okhdfcbank", func(p *model.Profile) (*model.TransactionRecord, error) {
		p.RecordOutcome(scorer, false, time.Now().UTC())
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalTransactions())

	stored, err := repo.Get(context.Background(), "ravi@okhdfcbank")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TotalTransactions())
}

func TestUpdateExisting_NotFound(t *testing.T) {
	repo := memory.NewProfileRepository()

	_, err := repo.UpdateExisting(context.Background(), "unknown@upi", func(p *model.Profile) (*model.TransactionRecord, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, port.ErrProfileNotFound)
}

func TestAtomicUpdate_SnapshotIsolation(t *testing.T) {
	repo := memory.NewProfileRepository()
	scorer := service.NewRiskScorer()
	ctx := context.Background()

	_, err := repo.AtomicUpdate(ctx, "ravi@okhdfcbank", func(p *model.Profile) (*model.TransactionRecord, error) {
		p.RecordOutcome(scorer, false, time.Now().UTC())
		return nil, nil
	})
	require.NoError(t, err)

	// Mutating a returned snapshot must not leak into the store.
	snapshot, err := repo.Get(ctx, "ravi@okhdfcbank")
	require.NoError(t, err)
	snapshot.RecordOutcome(scorer, true, time.Now().UTC())

	fresh, err := repo.Get(ctx, "ravi@okhdfcbank")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.FraudCount())
	assert.Equal(t, 1, fresh.TotalTransactions())
}

func TestAtomicUpdate_ConcurrentCounters(t *testing.T) {
	repo := memory.NewProfileRepository()
	scorer := service.NewRiskScorer()
	ctx := context.Background()

	const goroutines = 100
	const fraudEvery = 4 // every 4th writer records a fraud

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := repo.AtomicUpdate(ctx, "ravi@okhdfcbank", func(p *model.Profile) (*model.TransactionRecord, error) {
				p.RecordOutcome(scorer, i%fraudEvery == 0, time.Now().UTC())
				return nil, nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	p, err := repo.Get(ctx, "ravi@okhdfcbank")
	require.NoError(t, err)
	assert.Equal(t, goroutines, p.TotalTransactions(), "no update may be lost")
	assert.Equal(t, goroutines/fraudEvery, p.FraudCount())
}

func TestAtomicUpdate_FnErrorDiscardsChanges(t *testing.T) {
	repo := memory.NewProfileRepository()
	scorer := service.NewRiskScorer()
	ctx := context.Background()

	_, err := repo.AtomicUpdate(ctx, "ravi@okhdfcbank", func(p *model.Profile) (*model.TransactionRecord, error) {
		p.RecordOutcome(scorer, false, time.Now().UTC())
		return nil, nil
	})
	require.NoError(t, err)

	_, err = repo.AtomicUpdate(ctx, "ravi@okhdfcbank", func(p *model.Profile) (*model.TransactionRecord, error) {
		p.RecordOutcome(scorer, true, time.Now().UTC())
		return nil, assert.AnError
	})
	require.Error(t, err)

	p, err := repo.Get(ctx, "ravi@okhdfcbank")
	require.NoError(t, err)
	assert.Equal(t, 0, p.FraudCount(), "failed update must not be applied")
	assert.Equal(t, 1, p.TotalTransactions())
}

func TestHistoryAndFraudCountSince(t *testing.T) {
	repo := memory.NewProfileRepository()
	scorer := service.NewRiskScorer()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		ts := base.Add(time.Duration(i) * 24 * time.Hour)
		isFraud := i%2 == 0 // frauds on days 0, 2, 4
		_, err := repo.AtomicUpdate(ctx, "ravi@okhdfcbank", func(p *model.Profile) (*model.TransactionRecord, error) {
			p.RecordOutcome(scorer, isFraud, ts)
			record := model.NewTransactionRecord(p, decimal.NewFromInt(100), "PAYMENT", isFraud, "HDFC-UPI-01", ts)
			return &record, nil
		})
		require.NoError(t, err)
	}

	records, err := repo.History(ctx, "ravi@okhdfcbank", 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	// Newest first.
	assert.True(t, records[0].RecordedAt.After(records[1].RecordedAt))
	assert.True(t, records[1].RecordedAt.After(records[2].RecordedAt))

	all, err := repo.History(ctx, "ravi@okhdfcbank", 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	count, err := repo.FraudCountSince(ctx, "ravi@okhdfcbank", base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, count, "frauds on days 2 and 4 fall inside the window")

	count, err = repo.FraudCountSince(ctx, "ravi@okhdfcbank", base)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestStats(t *testing.T) {
	repo := memory.NewProfileRepository()
	scorer := service.NewRiskScorer()
	ctx := context.Background()
	now := time.Now().UTC()

	// Clean profile.
	_, err := repo.AtomicUpdate(ctx, "clean@upi", func(p *model.Profile) (*model.TransactionRecord, error) {
		for i := 0; i < 10; i++ {
			p.RecordOutcome(scorer, false, now)
		}
		return nil, nil
	})
	require.NoError(t, err)

	// Blacklisted profile (all fraud).
	_, err = repo.AtomicUpdate(ctx, "mule@upi", func(p *model.Profile) (*model.TransactionRecord, error) {
		p.RecordOutcome(scorer, true, now)
		return nil, nil
	})
	require.NoError(t, err)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProfiles)
	assert.Equal(t, 1, stats.TotalFraudCases)
	assert.Equal(t, 11, stats.TotalTransactions)
	assert.Equal(t, 1, stats.BlacklistedProfiles)
	// Blacklisted profiles are counted separately from high-risk ones.
	assert.Equal(t, 0, stats.HighRiskProfiles)
}

func TestListProfiles_SortedByFraudCount(t *testing.T) {
	repo := memory.NewProfileRepository()
	scorer := service.NewRiskScorer()
	ctx := context.Background()
	now := time.Now().UTC()

	seed := func(identifier string, frauds int) {
		_, err := repo.AtomicUpdate(ctx, identifier, func(p *model.Profile) (*model.TransactionRecord, error) {
			for i := 0; i < frauds; i++ {
				p.RecordOutcome(scorer, true, now)
			}
			return nil, nil
		})
		require.NoError(t, err)
	}

	seed("one@upi", 1)
	seed("three@upi", 3)
	seed("two@upi", 2)

	profiles, err := repo.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	assert.Equal(t, "three@upi", profiles[0].Identifier())
	assert.Equal(t, "two@upi", profiles[1].Identifier())
	assert.Equal(t, "one@upi", profiles[2].Identifier())
}

func TestAppendAccessLog(t *testing.T) {
	repo := memory.NewProfileRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	err := repo.AppendAccessLog(ctx, model.NewAccessRecord("HDFC-UPI-01", "ravi@okhdfcbank", model.AccessActionLookup, now))
	require.NoError(t, err)
	err = repo.AppendAccessLog(ctx, model.NewAccessRecord("SBI-UPI-02", "ravi@okhdfcbank", model.AccessActionValidate, now))
	require.NoError(t, err)

	log := repo.AccessLog()
	require.Len(t, log, 2)
	assert.Equal(t, "HDFC-UPI-01", log[0].Caller)
	assert.Equal(t, model.AccessActionLookup, log[0].Action)
	assert.Equal(t, model.AccessActionValidate, log[1].Action)
}

func TestUpdate_CancelledContext(t *testing.T) {
	repo := memory.NewProfileRepository()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.AtomicUpdate(ctx, "ravi@okhdfcbank", func(p *model.Profile) (*model.TransactionRecord, error) {
		return nil, nil
	})
	require.Error(t, err)
	assert.True(t, port.IsStorageError(err))
}

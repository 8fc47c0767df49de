package usecase_test

import (
	"context"
	"time"

	"github.com/Light-700/Nidhi-Rakshak/internal/domain/event"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/model"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/port"
)

// Hand-written mocks shared by the use case tests. Each func field, when
// set, overrides the default behavior of the fallback in-memory store.

type mockProfileRepository struct {
	inner port.ProfileRepository

	getFunc            func(ctx context.Context, identifier string) (*model.Profile, error)
	atomicUpdateFunc   func(ctx context.Context, identifier string, fn port.UpdateFunc) (*model.Profile, error)
	updateExistingFunc func(ctx context.Context, identifier string, fn port.UpdateFunc) (*model.Profile, error)
	statsFunc          func(ctx context.Context) (port.Stats, error)
	appendAccessFunc   func(ctx context.Context, record model.AccessRecord) error

	accessRecords []model.AccessRecord
}

func (m *mockProfileRepository) Get(ctx context.Context, identifier string) (*model.Profile, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, identifier)
	}
	return m.inner.Get(ctx, identifier)
}

func (m *mockProfileRepository) AtomicUpdate(ctx context.Context, identifier string, fn port.UpdateFunc) (*model.Profile, error) {
	if m.atomicUpdateFunc != nil {
		return m.atomicUpdateFunc(ctx, identifier, fn)
	}
	return m.inner.AtomicUpdate(ctx, identifier, fn)
}

func (m *mockProfileRepository) UpdateExisting(ctx context.Context, identifier string, fn port.UpdateFunc) (*model.Profile, error) {
	if m.updateExistingFunc != nil {
		return m.updateExistingFunc(ctx, identifier, fn)
	}
	return m.inner.UpdateExisting(ctx, identifier, fn)
}

func (m *mockProfileRepository) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	return m.inner.ListProfiles(ctx)
}

func (m *mockProfileRepository) Stats(ctx context.Context) (port.Stats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return m.inner.Stats(ctx)
}

func (m *mockProfileRepository) History(ctx context.Context, identifier string, limit int) ([]model.TransactionRecord, error) {
	return m.inner.History(ctx, identifier, limit)
}

func (m *mockProfileRepository) FraudCountSince(ctx context.Context, identifier string, since time.Time) (int, error) {
	return m.inner.FraudCountSince(ctx, identifier, since)
}

func (m *mockProfileRepository) AppendAccessLog(ctx context.Context, record model.AccessRecord) error {
	if m.appendAccessFunc != nil {
		return m.appendAccessFunc(ctx, record)
	}
	m.accessRecords = append(m.accessRecords, record)
	return nil
}

type mockEventPublisher struct {
	published   []event.Event
	publishFunc func(ctx context.Context, events ...event.Event) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.Event) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, events...)
	}
	m.published = append(m.published, events...)
	return nil
}

type mockModelClient struct {
	probability float64
	err         error
	lastTxn     port.RawTransaction
}

func (m *mockModelClient) Predict(ctx context.Context, txn port.RawTransaction) (float64, error) {
	m.lastTxn = txn
	if m.err != nil {
		return 0, m.err
	}
	return m.probability, nil
}

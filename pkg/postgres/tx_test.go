package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
)

type fakeTx struct {
	pgx.Tx

	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) Commit(ctx context.Context) error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
}

func (f *fakeBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

func TestWithTransaction_CommitsOnSuccess(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}

	err := WithTransaction(context.Background(), db, func(tx pgx.Tx) error {
		return nil
	})
	if err != nil {
		t.Fatalf("WithTransaction() error = %v", err)
	}
	if !db.tx.committed {
		t.Error("transaction was not committed")
	}
	if db.tx.rolledBack {
		t.Error("transaction was rolled back on success")
	}
}

func TestWithTransaction_RollsBackAndKeepsFnError(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	fnErr := errors.New("row locked by someone else")

	err := WithTransaction(context.Background(), db, func(tx pgx.Tx) error {
		return fnErr
	})
	if !errors.Is(err, fnErr) {
		t.Fatalf("WithTransaction() error = %v, want %v", err, fnErr)
	}
	if !db.tx.rolledBack {
		t.Error("transaction was not rolled back")
	}
	if db.tx.committed {
		t.Error("transaction was committed after fn failed")
	}
}

func TestWithTransaction_BeginFailure(t *testing.T) {
	db := &fakeBeginner{beginErr: errors.New("pool exhausted")}

	err := WithTransaction(context.Background(), db, func(tx pgx.Tx) error {
		t.Fatal("fn must not run when begin fails")
		return nil
	})
	if !errors.Is(err, db.beginErr) {
		t.Fatalf("WithTransaction() error = %v, want wrapped %v", err, db.beginErr)
	}
}

func TestWithTransaction_CommitFailure(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{commitErr: errors.New("connection reset")}}

	err := WithTransaction(context.Background(), db, func(tx pgx.Tx) error {
		return nil
	})
	if !errors.Is(err, db.tx.commitErr) {
		t.Fatalf("WithTransaction() error = %v, want wrapped %v", err, db.tx.commitErr)
	}
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Light-700/Nidhi-Rakshak/internal/domain/model"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/port"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/valueobject"
	pgdb "github.com/Light-700/Nidhi-Rakshak/pkg/postgres"
)

// queryTimeout bounds every storage operation. A timeout surfaces as a
// StorageError to the caller; it is never silently retried.
const queryTimeout = 5 * time.Second

// ProfileRepository implements port.ProfileRepository using PostgreSQL.
// Per-identifier write serialization is delegated to row-level locking:
// AtomicUpdate takes SELECT ... FOR UPDATE on the profile row inside a
// transaction, so concurrent writers on the same identifier queue while
// writers on distinct identifiers proceed in parallel.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a PostgreSQL-backed profile repository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

var _ port.ProfileRepository = (*ProfileRepository)(nil)

const profileColumns = `identifier, fraud_count, total_transactions, risk_score, risk_level,
		is_blacklisted, first_fraud_at, last_fraud_at, warning_flags, version, created_at, updated_at`

// Get retrieves a profile by identifier.
func (r *ProfileRepository) Get(ctx context.Context, identifier string) (*model.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + profileColumns + ` FROM risk_profiles WHERE identifier = $1`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrProfileNotFound
		}
		return nil, port.NewStorageError("get profile", err)
	}
	return p, nil
}

// AtomicUpdate runs fn against the row-locked profile, creating a fresh
// zero-valued row first when the identifier is unseen. The profile update
// and any history record commit as one transaction.
func (r *ProfileRepository) AtomicUpdate(ctx context.Context, identifier string, fn port.UpdateFunc) (*model.Profile, error) {
	return r.update(ctx, identifier, fn, true)
}

// UpdateExisting behaves like AtomicUpdate but fails with
// ErrProfileNotFound when the identifier has no row.
func (r *ProfileRepository) UpdateExisting(ctx context.Context, identifier string, fn port.UpdateFunc) (*model.Profile, error) {
	return r.update(ctx, identifier, fn, false)
}

func (r *ProfileRepository) update(ctx context.Context, identifier string, fn port.UpdateFunc, createIfAbsent bool) (*model.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var (
		p     *model.Profile
		fnErr error
	)
	err := pgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		p, fnErr = r.applyUpdate(ctx, tx, identifier, fn, createIfAbsent)
		return fnErr
	})
	if err != nil {
		if fnErr != nil {
			return nil, fnErr
		}
		// Begin or commit failed outside the update body.
		return nil, port.NewStorageError("update profile", err)
	}
	return p, nil
}

// applyUpdate holds the row-locked read-modify-write sequence. q is the
// enclosing transaction; every statement here must see the locked row.
func (r *ProfileRepository) applyUpdate(ctx context.Context, q pgdb.Querier, identifier string, fn port.UpdateFunc, createIfAbsent bool) (*model.Profile, error) {
	if createIfAbsent {
		now := time.Now().UTC()
		_, err := q.Exec(ctx, `
			INSERT INTO risk_profiles (
				identifier, fraud_count, total_transactions, risk_score, risk_level,
				is_blacklisted, warning_flags, version, created_at, updated_at
			) VALUES ($1, 0, 0, 0, 'LOW', FALSE, '[]', 1, $2, $2)
			ON CONFLICT (identifier) DO NOTHING
		`, identifier, now)
		if err != nil {
			return nil, port.NewStorageError("create profile", err)
		}
	}

	query := `SELECT ` + profileColumns + ` FROM risk_profiles WHERE identifier = $1 FOR UPDATE`

	p, err := scanProfile(q.QueryRow(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrProfileNotFound
		}
		return nil, port.NewStorageError("lock profile", err)
	}

	record, err := fn(p)
	if err != nil {
		return nil, err
	}

	flags, err := json.Marshal(p.WarningFlags())
	if err != nil {
		return nil, fmt.Errorf("marshal warning flags: %w", err)
	}

	_, err = q.Exec(ctx, `
		UPDATE risk_profiles SET
			fraud_count = $2, total_transactions = $3, risk_score = $4, risk_level = $5,
			is_blacklisted = $6, first_fraud_at = $7, last_fraud_at = $8,
			warning_flags = $9, version = $10, updated_at = $11
		WHERE identifier = $1
	`,
		p.Identifier(),
		p.FraudCount(), p.TotalTransactions(), p.RiskScore(), p.RiskLevel().String(),
		p.IsBlacklisted(), p.FirstFraudAt(), p.LastFraudAt(),
		flags, p.Version(), p.UpdatedAt(),
	)
	if err != nil {
		return nil, port.NewStorageError("save profile", err)
	}

	if record != nil {
		_, err = q.Exec(ctx, `
			INSERT INTO transaction_history (
				id, identifier, amount, type, is_fraud, risk_score, risk_level, caller, recorded_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			record.ID, record.Identifier, record.Amount, record.Type, record.IsFraud,
			record.RiskScore, record.RiskLevel.String(), record.Caller, record.RecordedAt,
		)
		if err != nil {
			return nil, port.NewStorageError("append history", err)
		}
	}

	return p, nil
}

// ListProfiles returns all profiles, most fraudulent first.
func (r *ProfileRepository) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + profileColumns + ` FROM risk_profiles ORDER BY fraud_count DESC, identifier`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, port.NewStorageError("list profiles", err)
	}
	defer rows.Close()

	var profiles []*model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, port.NewStorageError("scan profile", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, port.NewStorageError("list profiles", err)
	}
	return profiles, nil
}

// Stats computes aggregate counters over the store.
func (r *ProfileRepository) Stats(ctx context.Context) (port.Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var stats port.Stats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(fraud_count), 0),
			COALESCE(SUM(total_transactions), 0),
			COUNT(*) FILTER (WHERE is_blacklisted),
			COUNT(*) FILTER (WHERE NOT is_blacklisted AND risk_level IN ('HIGH', 'CRITICAL'))
		FROM risk_profiles
	`).Scan(
		&stats.TotalProfiles, &stats.TotalFraudCases, &stats.TotalTransactions,
		&stats.BlacklistedProfiles, &stats.HighRiskProfiles,
	)
	if err != nil {
		return port.Stats{}, port.NewStorageError("stats", err)
	}
	return stats, nil
}

// History returns up to limit most recent history records, newest first.
func (r *ProfileRepository) History(ctx context.Context, identifier string, limit int) ([]model.TransactionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, identifier, amount, type, is_fraud, risk_score, risk_level, caller, recorded_at
		FROM transaction_history
		WHERE identifier = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`, identifier, limit)
	if err != nil {
		return nil, port.NewStorageError("query history", err)
	}
	defer rows.Close()

	var records []model.TransactionRecord
	for rows.Next() {
		var rec model.TransactionRecord
		var levelStr string
		err := rows.Scan(
			&rec.ID, &rec.Identifier, &rec.Amount, &rec.Type, &rec.IsFraud,
			&rec.RiskScore, &levelStr, &rec.Caller, &rec.RecordedAt,
		)
		if err != nil {
			return nil, port.NewStorageError("scan history", err)
		}
		rec.RiskLevel, err = valueobject.RiskLevelFromString(levelStr)
		if err != nil {
			return nil, fmt.Errorf("parse risk level: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, port.NewStorageError("query history", err)
	}
	return records, nil
}

// FraudCountSince counts fraudulent history records at or after since.
func (r *ProfileRepository) FraudCountSince(ctx context.Context, identifier string, since time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM transaction_history
		WHERE identifier = $1 AND is_fraud AND recorded_at >= $2
	`, identifier, since).Scan(&count)
	if err != nil {
		return 0, port.NewStorageError("fraud count", err)
	}
	return count, nil
}

// AppendAccessLog records an external read against a profile.
func (r *ProfileRepository) AppendAccessLog(ctx context.Context, record model.AccessRecord) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO access_log (id, caller, identifier, action, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`, record.ID, record.Caller, record.Identifier, record.Action, record.OccurredAt)
	if err != nil {
		return port.NewStorageError("append access log", err)
	}
	return nil
}

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var (
		identifier        string
		fraudCount        int
		totalTransactions int
		riskScore         float64
		riskLevelStr      string
		blacklisted       bool
		firstFraudAt      *time.Time
		lastFraudAt       *time.Time
		flagsJSON         []byte
		version           int
		createdAt         time.Time
		updatedAt         time.Time
	)

	err := row.Scan(
		&identifier, &fraudCount, &totalTransactions, &riskScore, &riskLevelStr,
		&blacklisted, &firstFraudAt, &lastFraudAt, &flagsJSON, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	riskLevel, err := valueobject.RiskLevelFromString(riskLevelStr)
	if err != nil {
		return nil, fmt.Errorf("parse risk level: %w", err)
	}

	var flags []string
	if err := json.Unmarshal(flagsJSON, &flags); err != nil {
		return nil, fmt.Errorf("unmarshal warning flags: %w", err)
	}

	return model.Reconstruct(
		identifier, fraudCount, totalTransactions, riskScore, riskLevel,
		blacklisted, firstFraudAt, lastFraudAt, flags, version, createdAt, updatedAt,
	), nil
}

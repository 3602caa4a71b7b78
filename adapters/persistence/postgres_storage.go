package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mozzabt/portfolio/internal/domain/portfolio"
	"github.com/mozzabt/portfolio/pkg/apperror"
	"github.com/mozzabt/portfolio/pkg/logger"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS override_slots (
		slot_key   TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

type postgresSlotStorage struct {
	db      *pgxpool.Pool
	queries slotQueries
	logger  logger.Logger
}

func NewPostgresSlotStorage(db *pgxpool.Pool, logger logger.Logger) portfolio.SlotStorage {
	return &postgresSlotStorage{db: db, queries: newSlotQueries(sq.Dollar), logger: logger}
}

// EnsurePostgresSchema creates the slot table when it is missing.
func EnsurePostgresSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, postgresSchema); err != nil {
		return apperror.NewInternal("failed to create override_slots table", err)
	}
	return nil
}

func (r *postgresSlotStorage) Read(ctx context.Context, key string) (string, bool, error) {
	query, args, err := r.queries.read(key)
	if err != nil {
		return "", false, apperror.NewInternal("failed to build read slot query", err)
	}

	var value string
	err = r.db.QueryRow(ctx, query, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, pgError("failed to query slot", err)
	}
	return value, true, nil
}

func (r *postgresSlotStorage) Write(ctx context.Context, key, value string) error {
	query, args, err := r.queries.upsert(key, value)
	if err != nil {
		return apperror.NewInternal("failed to build upsert slot query", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return pgError("failed to upsert slot", err)
	}
	return nil
}

func (r *postgresSlotStorage) Remove(ctx context.Context, key string) error {
	query, args, err := r.queries.remove(key)
	if err != nil {
		return apperror.NewInternal("failed to build delete slot query", err)
	}
	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return pgError("failed to delete slot", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Debug("Remove on absent slot", zap.String("slot", key))
	}
	return nil
}

// pgError separates errors the server reported (bad SQL, constraint) from
// failures to reach it at all.
func pgError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return apperror.NewInternal(msg, err)
	}
	return apperror.NewUnavailable(msg, err)
}

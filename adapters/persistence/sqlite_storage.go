package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mozzabt/portfolio/pkg/apperror"
	"github.com/mozzabt/portfolio/pkg/logger"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS override_slots (
	slot_key   TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

type SQLiteSlotStorage struct {
	db      *sql.DB
	queries slotQueries
	logger  logger.Logger
}

// NewSQLiteSlotStorage opens (or creates) the database file at path.
func NewSQLiteSlotStorage(ctx context.Context, path string, log logger.Logger) (*SQLiteSlotStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One writer at a time; sqlite serialises writes anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite failed: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create override_slots table: %w", err)
	}

	log.Info("Open SQLite slot storage successfully.", zap.String("path", path))
	return &SQLiteSlotStorage{db: db, queries: newSlotQueries(sq.Question), logger: log}, nil
}

func (s *SQLiteSlotStorage) Read(ctx context.Context, key string) (string, bool, error) {
	query, args, err := s.queries.read(key)
	if err != nil {
		return "", false, fmt.Errorf("build read query: %w", err)
	}
	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, sqliteError(fmt.Sprintf("read slot %s", key), err)
	}
	return value, true, nil
}

func (s *SQLiteSlotStorage) Write(ctx context.Context, key, value string) error {
	query, args, err := s.queries.upsert(key, value)
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return sqliteError(fmt.Sprintf("write slot %s", key), err)
	}
	return nil
}

func (s *SQLiteSlotStorage) Remove(ctx context.Context, key string) error {
	query, args, err := s.queries.remove(key)
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return sqliteError(fmt.Sprintf("remove slot %s", key), err)
	}
	return nil
}

func (s *SQLiteSlotStorage) Close() error {
	return s.db.Close()
}

// sqliteError reports a locked or unreachable database file, or a request
// that gave up waiting, as unavailable. Everything else is internal.
func sqliteError(msg string, err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN:
			return apperror.NewUnavailable(msg, err)
		}
		return apperror.NewInternal(msg, err)
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperror.NewUnavailable(msg, err)
	}
	return apperror.NewInternal(msg, err)
}

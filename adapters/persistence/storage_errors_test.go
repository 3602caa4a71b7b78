package persistence

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mozzabt/portfolio/pkg/apperror"
	"github.com/mozzabt/portfolio/pkg/logger"
)

func TestRedisSlotStorage_UnreachableIsUnavailable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })
	storage := NewRedisSlotStorage(rdb)
	ctx := context.Background()

	_, _, err := storage.Read(ctx, "mozza_custom_skills")
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
	assert.ErrorIs(t, storage.Write(ctx, "mozza_custom_skills", "[]"), apperror.ErrUnavailable)
	assert.ErrorIs(t, storage.Remove(ctx, "mozza_custom_skills"), apperror.ErrUnavailable)
}

func TestPgError_Classification(t *testing.T) {
	serverErr := pgError("failed to upsert slot", &pgconn.PgError{Code: "42P01", Message: "relation does not exist"})
	assert.ErrorIs(t, serverErr, apperror.ErrInternal)
	assert.NotErrorIs(t, serverErr, apperror.ErrUnavailable)

	connErr := pgError("failed to query slot", errors.New("failed to connect to host"))
	assert.ErrorIs(t, connErr, apperror.ErrUnavailable)
}

func TestSQLiteSlotStorage_CanceledIsUnavailable(t *testing.T) {
	store, err := NewSQLiteSlotStorage(context.Background(), filepath.Join(t.TempDir(), "slots.db"), logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = store.Read(ctx, "mozza_custom_skills")
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
	assert.ErrorIs(t, store.Write(ctx, "mozza_custom_skills", "[]"), apperror.ErrUnavailable)
}

func TestSqliteError_Default(t *testing.T) {
	err := sqliteError("write slot k", errors.New("disk I/O error"))
	assert.ErrorIs(t, err, apperror.ErrInternal)
}

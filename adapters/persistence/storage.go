package persistence

import (
	"context"
	"fmt"

	"github.com/mozzabt/portfolio/internal/config"
	"github.com/mozzabt/portfolio/internal/domain/portfolio"
	"github.com/mozzabt/portfolio/pkg/logger"
)

// OpenSlotStorage connects the backend named by storage.driver. The returned
// close func releases whatever connection was opened.
func OpenSlotStorage(ctx context.Context, cfg config.Config, log logger.Logger) (portfolio.SlotStorage, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn("Using in-memory slot storage; overrides are lost on restart.")
		return NewMemorySlotStorage(), func() {}, nil

	case config.StorageSQLite, "":
		s, err := NewSQLiteSlotStorage(ctx, cfg.Storage.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil

	case config.StorageRedis:
		rdb, err := NewRedisClient(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisSlotStorage(rdb), func() { rdb.Close() }, nil

	case config.StoragePostgres:
		pool, err := NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		if err := EnsurePostgresSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return NewPostgresSlotStorage(pool, log), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

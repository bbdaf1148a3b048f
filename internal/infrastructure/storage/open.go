// Package storage elige el adaptador de persistencia según la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/salon-pos/internal/domain/repository"
	"github.com/jhoicas/salon-pos/internal/infrastructure/localstore"
	"github.com/jhoicas/salon-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/salon-pos/pkg/config"
)

// Open abre el almacén según STORE_DRIVER. La función devuelta libera la conexión al apagar.
func Open(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		rdb, err := localstore.NewRedis(ctx, cfg.Store.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return localstore.NewStore(localstore.NewRedisKV(rdb, cfg.Store.RedisPrefix), nil), func() { _ = rdb.Close() }, nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewDocumentStore(pool), pool.Close, nil
	default:
		db, err := localstore.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return localstore.NewStore(localstore.NewSQLiteKV(db), nil), func() { _ = db.Close() }, nil
	}
}

// Label describe el almacén para el log de arranque.
func Label(cfg *config.Config) string {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		return fmt.Sprintf("redis (%s*)", cfg.Store.RedisPrefix)
	case config.StorePostgres:
		return "postgres"
	default:
		return "sqlite (" + cfg.Store.SQLitePath + ")"
	}
}

package storage_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salon-pos/internal/domain/repository"
	"github.com/jhoicas/salon-pos/internal/infrastructure/storage"
	"github.com/jhoicas/salon-pos/pkg/config"
)

func TestOpen_SQLiteEnMemoria(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreSQLite, SQLitePath: ":memory:"}}
	store, closeFn, err := storage.Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	ctx := context.Background()
	rec, err := store.CreateRecord(ctx, repository.Employees, json.RawMessage(`{"name":"Jane"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	all, err := store.LoadCollection(ctx, repository.Employees)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, rec.ID, all[0].ID)
	assert.Equal(t, "sqlite (:memory:)", storage.Label(cfg))
}

func TestOpen_RedisInalcanzable(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreRedis, RedisURL: "redis://127.0.0.1:1/0"}}
	_, _, err := storage.Open(context.Background(), cfg)
	assert.Error(t, err)
}

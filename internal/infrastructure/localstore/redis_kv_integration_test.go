//go:build integration

package localstore_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/jhoicas/salon-pos/internal/domain/repository"
	"github.com/jhoicas/salon-pos/internal/infrastructure/localstore"
)

// Ejecutar con: go test -tags integration ./internal/infrastructure/localstore/...
func TestRedisKV_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := localstore.NewRedis(ctx, url)
	require.NoError(t, err)
	defer rdb.Close()

	store := localstore.NewStore(localstore.NewRedisKV(rdb, "salon-test:"), nil)
	rec, err := store.CreateRecord(ctx, repository.Employees, json.RawMessage(`{"name":"Jane"}`))
	require.NoError(t, err)

	raw, err := rdb.Get(ctx, "salon-test:employees").Result()
	require.NoError(t, err)
	assert.Contains(t, raw, rec.ID)

	list, err := store.LoadCollection(ctx, repository.Employees)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.JSONEq(t, `{"name":"Jane"}`, string(list[0].Fields))
}

//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/salon-pos/internal/domain"
	"github.com/jhoicas/salon-pos/internal/domain/repository"
	"github.com/jhoicas/salon-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/salon-pos/pkg/config"
)

// Ejecutar con: go test -tags integration ./internal/infrastructure/postgres/...
func newStore(t *testing.T) *postgres.DocumentStore {
	t.Helper()
	ctx := context.Background()
	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("salon_test"),
		tcPostgres.WithUsername("salon"),
		tcPostgres.WithPassword("salon"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	url, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	return postgres.NewDocumentStore(pool)
}

func TestDocumentStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	rec, err := store.CreateRecord(ctx, repository.Employees, json.RawMessage(`{"id":"ignored","name":"Jane"}`))
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", rec.ID, "el ID lo asigna la base")

	require.NoError(t, store.UpdateRecord(ctx, repository.Employees, rec.ID, json.RawMessage(`{"name":"Jane Doe"}`)))
	assert.ErrorIs(t, store.UpdateRecord(ctx, repository.Employees, "missing", json.RawMessage(`{}`)), domain.ErrNotFound)

	list, err := store.LoadCollection(ctx, repository.Employees)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.JSONEq(t, `{"name":"Jane Doe"}`, string(list[0].Fields))

	require.NoError(t, store.DeleteRecord(ctx, repository.Employees, rec.ID))
	list, err = store.LoadCollection(ctx, repository.Employees)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDocumentStore_SalesOrderedByDateDesc(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	_, err := store.CreateRecord(ctx, repository.Sales, json.RawMessage(`{"service":"b","date":"2024-05-02T10:00:00Z"}`))
	require.NoError(t, err)
	_, err = store.CreateRecord(ctx, repository.Sales, json.RawMessage(`{"service":"a","date":"2024-05-01T10:00:00Z"}`))
	require.NoError(t, err)
	_, err = store.CreateRecord(ctx, repository.Sales, json.RawMessage(`{"service":"c","date":"2024-05-03T10:00:00Z"}`))
	require.NoError(t, err)

	list, err := store.LoadCollection(ctx, repository.Sales)
	require.NoError(t, err)
	require.Len(t, list, 3)
	var services []string
	for _, r := range list {
		var f struct{ Service string }
		require.NoError(t, json.Unmarshal(r.Fields, &f))
		services = append(services, f.Service)
	}
	assert.Equal(t, []string{"c", "b", "a"}, services)
}

func TestDocumentStore_CollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	_, err := store.CreateRecord(ctx, repository.Services, json.RawMessage(`{"name":"Haircut"}`))
	require.NoError(t, err)

	list, err := store.LoadCollection(ctx, repository.Products)
	require.NoError(t, err)
	assert.Empty(t, list)
}

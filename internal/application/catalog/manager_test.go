package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salon-pos/internal/application/catalog"
	"github.com/jhoicas/salon-pos/internal/application/state/statetest"
	"github.com/jhoicas/salon-pos/internal/domain"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
	"github.com/jhoicas/salon-pos/pkg/logger"
)

func ptr[T any](v T) *T { return &v }

func newManager(t *testing.T) (*catalog.Manager, *statetest.Store) {
	t.Helper()
	store := statetest.New()
	return catalog.NewManager(store, logger.Nop(), nil), store
}

func TestManager_JaneAddRemove(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(t)

	jane, err := m.AddEmployee(ctx, entity.Employee{Name: "Jane", Email: "jane@salon.com", Phone: "555-0101"})
	require.NoError(t, err)
	require.Len(t, m.ListEmployees(), 1)
	assert.Equal(t, "Jane", m.ListEmployees()[0].Name)

	require.NoError(t, m.RemoveEmployee(ctx, jane.ID))
	assert.Empty(t, m.ListEmployees())

	fresh := catalog.NewManager(store, logger.Nop(), nil)
	require.NoError(t, fresh.LoadAll(ctx))
	assert.Empty(t, fresh.ListEmployees())
}

func TestManager_RemoveUnknownIsNoop(t *testing.T) {
	m, store := newManager(t)
	require.NoError(t, m.RemoveService(context.Background(), "missing"))
	assert.Zero(t, store.Calls("services", statetest.OpDelete))
}

func TestManager_UpdateOnlyNamedFieldsAndIdempotent(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	p, err := m.AddProduct(ctx, entity.Product{Name: "Shampoo", Price: decimal.NewFromInt(120), Stock: 10})
	require.NoError(t, err)

	patch := catalog.ProductPatch{Stock: ptr(7)}
	once, err := m.UpdateProduct(ctx, p.ID, patch)
	require.NoError(t, err)
	twice, err := m.UpdateProduct(ctx, p.ID, patch)
	require.NoError(t, err)

	assert.Equal(t, *once, *twice)
	assert.Equal(t, 7, twice.Stock)
	assert.Equal(t, "Shampoo", twice.Name)
	assert.True(t, decimal.NewFromInt(120).Equal(twice.Price))
}

func TestManager_UpdateUnknownReturnsNil(t *testing.T) {
	m, _ := newManager(t)
	got, err := m.UpdateEmployee(context.Background(), "missing", catalog.EmployeePatch{Name: ptr("X")})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestManager_StoreFailureOnAddProductLeavesMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(t)
	_, err := m.AddProduct(ctx, entity.Product{Name: "Gel", Price: decimal.NewFromInt(50), Stock: 3})
	require.NoError(t, err)
	before := m.ListProducts()

	store.FailOn("products", statetest.OpCreate)
	_, err = m.AddProduct(ctx, entity.Product{Name: "Cera", Price: decimal.NewFromInt(80), Stock: 1})
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, before, m.ListProducts())
}

func TestManager_ValidationRejectsBeforeStore(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(t)

	_, err := m.AddService(ctx, entity.Service{Name: " ", Price: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = m.AddService(ctx, entity.Service{Name: "Corte", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = m.AddProduct(ctx, entity.Product{Name: "Gel", Stock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, store.Calls("services", statetest.OpCreate))
	assert.Zero(t, store.Calls("products", statetest.OpCreate))
}

func TestManager_LoadAllReadsEveryCollection(t *testing.T) {
	ctx := context.Background()
	store := statetest.New()
	store.Seed("employees", "e1", `{"name":"Jane","email":"","phone":""}`)
	store.Seed("services", "s1", `{"name":"Haircut","price":"500"}`)
	store.Seed("products", "p1", `{"name":"Gel","price":50,"stock":2}`)
	store.Seed("customers", "c1", `{"name":"Ana","email":"ana@x.com","phone":"1"}`)

	m := catalog.NewManager(store, logger.Nop(), nil)
	assert.False(t, m.Loaded())
	require.NoError(t, m.LoadAll(ctx))
	assert.True(t, m.Loaded())

	assert.Len(t, m.ListEmployees(), 1)
	svc, ok := m.GetService("s1")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(500).Equal(svc.Price))
	prod, ok := m.GetProduct("p1")
	require.True(t, ok)
	assert.Equal(t, 2, prod.Stock)
	_, ok = m.GetCustomer("c1")
	assert.True(t, ok)
}

func TestManager_LoadAllFailure(t *testing.T) {
	store := statetest.New()
	store.FailOn("services", statetest.OpLoad)
	m := catalog.NewManager(store, logger.Nop(), nil)
	require.ErrorIs(t, m.LoadAll(context.Background()), domain.ErrStoreUnavailable)
	assert.False(t, m.Loaded())
}

func TestManager_SearchServicesCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	for _, name := range []string{"Haircut", "Hair Color", "Manicure"} {
		_, err := m.AddService(ctx, entity.Service{Name: name, Price: decimal.NewFromInt(100)})
		require.NoError(t, err)
	}

	assert.Len(t, m.SearchServices("HAIR"), 2)
	assert.Len(t, m.SearchServices("cure"), 1)
	assert.Len(t, m.SearchServices(""), 3)
	assert.Empty(t, m.SearchServices("pedicure"))
}

func TestManager_ServiceNameFallsBackToStoredValue(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	svc, err := m.AddService(ctx, entity.Service{Name: "Haircut", Price: decimal.NewFromInt(500)})
	require.NoError(t, err)

	assert.Equal(t, "Haircut", m.ServiceName(svc.ID))
	assert.Equal(t, "Corte clásico", m.ServiceName("Corte clásico"))
}

func TestManager_EmployeePhotoClearedIsOmitted(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(t)
	e, err := m.AddEmployee(ctx, entity.Employee{Name: "Jane", Photo: "https://img/jane.png"})
	require.NoError(t, err)

	_, err = m.UpdateEmployee(ctx, e.ID, catalog.EmployeePatch{Photo: ptr("")})
	require.NoError(t, err)
	recs := store.Records("employees")
	require.Len(t, recs, 1)
	assert.NotContains(t, string(recs[0].Fields), "photo")
}

func TestNewManager_PanicsWithoutStore(t *testing.T) {
	assert.Panics(t, func() { catalog.NewManager(nil, logger.Nop(), nil) })
}

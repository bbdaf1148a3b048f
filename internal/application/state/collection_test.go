package state_test

import (
	"context"
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salon-pos/internal/application/state"
	"github.com/jhoicas/salon-pos/internal/application/state/statetest"
	"github.com/jhoicas/salon-pos/internal/domain"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
	"github.com/jhoicas/salon-pos/internal/domain/repository"
	"github.com/jhoicas/salon-pos/pkg/logger"
)

type recordingObserver struct {
	mu   sync.Mutex
	ops  []string
	errs int
}

func (o *recordingObserver) ObserveStoreOp(collection, op string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, collection+"/"+op)
	if err != nil {
		o.errs++
	}
}

func newEmployees(store repository.Store, obs state.Observer) *state.Collection[entity.Employee] {
	return state.NewCollection[entity.Employee](store, repository.Employees, logger.Nop(), obs)
}

func TestCollection_AddAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	c := newEmployees(statetest.New(), nil)

	a, err := c.Add(ctx, entity.Employee{Name: "Jane"})
	require.NoError(t, err)
	b, err := c.Add(ctx, entity.Employee{Name: "John"})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, c.List(), 2)
}

func TestCollection_AddThenLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := statetest.New()
	c := newEmployees(store, nil)
	created, err := c.Add(ctx, entity.Employee{Name: "Jane", Email: "jane@x.com", Phone: "555"})
	require.NoError(t, err)

	fresh := newEmployees(store, nil)
	assert.False(t, fresh.Loaded())
	require.NoError(t, fresh.Load(ctx))
	assert.True(t, fresh.Loaded())

	got, ok := fresh.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, got)
}

func TestCollection_PersistsFieldsWithoutID(t *testing.T) {
	ctx := context.Background()
	store := statetest.New()
	c := newEmployees(store, nil)
	_, err := c.Add(ctx, entity.Employee{ID: "ignored", Name: "Jane"})
	require.NoError(t, err)

	recs := store.Records("employees")
	require.Len(t, recs, 1)
	assert.NotContains(t, string(recs[0].Fields), `"id"`)
	assert.Equal(t, "1", recs[0].ID)
}

func TestCollection_AddFailureLeavesMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	store := statetest.New()
	obs := &recordingObserver{}
	c := newEmployees(store, obs)
	_, err := c.Add(ctx, entity.Employee{Name: "Jane"})
	require.NoError(t, err)

	store.FailOn("employees", statetest.OpCreate)
	_, err = c.Add(ctx, entity.Employee{Name: "John"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Len(t, c.List(), 1)
	assert.Equal(t, 1, obs.errs)
}

func TestCollection_UpdateAppliesPatchAfterStoreConfirms(t *testing.T) {
	ctx := context.Background()
	store := statetest.New()
	c := newEmployees(store, nil)
	jane, err := c.Add(ctx, entity.Employee{Name: "Jane", Phone: "111"})
	require.NoError(t, err)

	setPhone := func(e entity.Employee) entity.Employee { e.Phone = "222"; return e }

	store.FailOn("employees", statetest.OpUpdate)
	_, err = c.Update(ctx, jane.ID, setPhone)
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	got, _ := c.Get(jane.ID)
	assert.Equal(t, "111", got.Phone)

	store.Heal()
	updated, err := c.Update(ctx, jane.ID, setPhone)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "222", updated.Phone)
	assert.Equal(t, "Jane", updated.Name)
	assert.Equal(t, jane.ID, updated.ID)
}

func TestCollection_UpdateUnknownIDReturnsNil(t *testing.T) {
	store := statetest.New()
	c := newEmployees(store, nil)
	got, err := c.Update(context.Background(), "nope", func(e entity.Employee) entity.Employee { return e })
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, store.Calls("employees", statetest.OpUpdate))
}

func TestCollection_UpdateKeepsOwnCopyOfID(t *testing.T) {
	ctx := context.Background()
	c := newEmployees(statetest.New(), nil)
	created, err := c.Add(ctx, entity.Employee{Name: "Jane"})
	require.NoError(t, err)

	// id compartiendo memoria con un buffer que luego se reescribe, como los params de fiber.
	buf := []byte(created.ID)
	id := unsafe.String(&buf[0], len(buf))
	_, err = c.Update(ctx, id, func(e entity.Employee) entity.Employee {
		e.Name = "Janet"
		return e
	})
	require.NoError(t, err)
	for i := range buf {
		buf[i] = 'Z'
	}

	got, ok := c.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Janet", got.Name)
}

func TestCollection_UpdateMissingInStoreDropsFromMemory(t *testing.T) {
	ctx := context.Background()
	store := statetest.New()
	c := newEmployees(store, nil)
	created, err := c.Add(ctx, entity.Employee{Name: "Jane"})
	require.NoError(t, err)
	require.NoError(t, store.DeleteRecord(ctx, repository.Employees, created.ID))

	out, err := c.Update(ctx, created.ID, func(e entity.Employee) entity.Employee {
		e.Name = "Janet"
		return e
	})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, ok := c.Get(created.ID)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestCollection_RemoveAndLoadAbsence(t *testing.T) {
	ctx := context.Background()
	store := statetest.New()
	c := newEmployees(store, nil)
	jane, err := c.Add(ctx, entity.Employee{Name: "Jane"})
	require.NoError(t, err)

	removed, err := c.Remove(ctx, jane.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = c.Remove(ctx, jane.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, store.Calls("employees", statetest.OpDelete))

	require.NoError(t, c.Load(ctx))
	_, ok := c.Get(jane.ID)
	assert.False(t, ok)
}

func TestCollection_RemoveFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	store := statetest.New()
	c := newEmployees(store, nil)
	jane, err := c.Add(ctx, entity.Employee{Name: "Jane"})
	require.NoError(t, err)

	store.FailOn("employees", statetest.OpDelete)
	_, err = c.Remove(ctx, jane.ID)
	require.Error(t, err)
	_, ok := c.Get(jane.ID)
	assert.True(t, ok)
}

func TestCollection_LoadFailureKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	store := statetest.New()
	c := newEmployees(store, nil)
	_, err := c.Add(ctx, entity.Employee{Name: "Jane"})
	require.NoError(t, err)

	store.FailOn("employees", statetest.OpLoad)
	require.ErrorIs(t, c.Load(ctx), domain.ErrStoreUnavailable)
	assert.Len(t, c.List(), 1)
}

func TestCollection_PrependPutsNewestFirst(t *testing.T) {
	ctx := context.Background()
	c := state.NewCollection[entity.Sale](statetest.New(), repository.Sales, logger.Nop(), nil)
	first, err := c.Add(ctx, entity.Sale{Service: "s1"})
	require.NoError(t, err)
	second, err := c.Add(ctx, entity.Sale{Service: "s2"})
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestCollection_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := newEmployees(statetest.New(), nil)
	_, err := c.Add(ctx, entity.Employee{Name: "Jane"})
	require.NoError(t, err)

	list := c.List()
	list[0].Name = "Mutada"
	got := c.List()
	assert.Equal(t, "Jane", got[0].Name)
}

func TestNewCollection_PanicsWithoutStore(t *testing.T) {
	assert.Panics(t, func() {
		state.NewCollection[entity.Employee](nil, repository.Employees, logger.Nop(), nil)
	})
}

// Package state mantiene colecciones en memoria sincronizadas con un repository.Store.
// Toda mutación se confirma primero en el almacén; la memoria sólo cambia si la escritura tuvo éxito.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/salon-pos/internal/domain"
	"github.com/jhoicas/salon-pos/internal/domain/repository"
	"github.com/jhoicas/salon-pos/pkg/logger"
)

// Entity es un registro identificable de una colección.
// WithID devuelve una copia con el ID dado; WithID("") se usa para serializar los campos sin ID.
type Entity[T any] interface {
	GetID() string
	WithID(id string) T
}

// Observer recibe el resultado de cada operación contra el almacén (métricas).
type Observer interface {
	ObserveStoreOp(collection, op string, elapsed time.Duration, err error)
}

// Collection colección en memoria de T respaldada por una colección del almacén.
// writeMu serializa a los escritores durante el viaje al almacén; mu protege el slice para lectores.
type Collection[T Entity[T]] struct {
	store    repository.Store
	coll     repository.Collection
	log      *logger.Logger
	observer Observer

	writeMu sync.Mutex
	mu      sync.RWMutex
	items   []T
	loaded  bool
}

// NewCollection construye la colección. Entra en pánico si store es nil.
func NewCollection[T Entity[T]](store repository.Store, coll repository.Collection, log *logger.Logger, observer Observer) *Collection[T] {
	if store == nil {
		panic(fmt.Sprintf("state: colección %s sin almacén", coll.Name))
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Collection[T]{store: store, coll: coll, log: log, observer: observer}
}

// Name nombre de la colección persistida.
func (c *Collection[T]) Name() string { return c.coll.Name }

// Load reemplaza la memoria con el contenido del almacén, en el orden que éste entrega.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	start := time.Now()
	recs, err := c.store.LoadCollection(ctx, c.coll)
	c.observe("load", start, err)
	if err != nil {
		c.logFailure("load", "", err)
		return fmt.Errorf("cargar %s: %w", c.coll.Name, err)
	}
	items := make([]T, 0, len(recs))
	for _, rec := range recs {
		item, err := decode[T](rec)
		if err != nil {
			err = fmt.Errorf("%w: %s/%s: %v", domain.ErrStoreUnavailable, c.coll.Name, rec.ID, err)
			c.logFailure("load", rec.ID, err)
			return err
		}
		items = append(items, item)
	}

	c.mu.Lock()
	c.items = items
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Add persiste item (el almacén asigna el ID) y lo agrega a memoria.
// Las colecciones con Prepend lo ubican al inicio.
func (c *Collection[T]) Add(ctx context.Context, item T) (T, error) {
	var zero T
	fields, err := encode(item)
	if err != nil {
		return zero, err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	start := time.Now()
	rec, err := c.store.CreateRecord(ctx, c.coll, fields)
	c.observe("add", start, err)
	if err != nil {
		c.logFailure("add", "", err)
		return zero, fmt.Errorf("agregar a %s: %w", c.coll.Name, err)
	}
	created := item.WithID(rec.ID)

	c.mu.Lock()
	if c.coll.Prepend {
		c.items = append([]T{created}, c.items...)
	} else {
		c.items = append(c.items, created)
	}
	c.mu.Unlock()
	return created, nil
}

// Update aplica patch al registro con ese ID, lo persiste y, si la escritura tuvo éxito, lo reemplaza en memoria.
// Devuelve nil, nil si el ID no está en memoria. Si el almacén ya no tiene el registro, se quita de memoria
// y se devuelve domain.ErrNotFound.
func (c *Collection[T]) Update(ctx context.Context, id string, patch func(T) T) (*T, error) {
	// id puede apuntar a un buffer reutilizado por el servidor HTTP; se guarda una copia propia.
	id = strings.Clone(id)

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	current, ok := c.Get(id)
	if !ok {
		return nil, nil
	}
	next := patch(current).WithID(id)
	fields, err := encode(next)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = c.store.UpdateRecord(ctx, c.coll, id, fields)
	c.observe("update", start, err)
	if errors.Is(err, domain.ErrNotFound) {
		c.mu.Lock()
		if i := c.indexOf(id); i >= 0 {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
		}
		c.mu.Unlock()
		c.log.Warn().Str("collection", c.coll.Name).Str("op", "update").Str("id", id).Msg("registro ausente en el almacén; se quita de memoria")
		return nil, fmt.Errorf("actualizar %s/%s: %w", c.coll.Name, id, err)
	}
	if err != nil {
		c.logFailure("update", id, err)
		return nil, fmt.Errorf("actualizar %s/%s: %w", c.coll.Name, id, err)
	}

	c.mu.Lock()
	if i := c.indexOf(id); i >= 0 {
		c.items[i] = next
	}
	c.mu.Unlock()
	return &next, nil
}

// Remove elimina el registro con ese ID. Devuelve false, nil (sin tocar el almacén) si no existe.
func (c *Collection[T]) Remove(ctx context.Context, id string) (bool, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if _, ok := c.Get(id); !ok {
		return false, nil
	}
	start := time.Now()
	err := c.store.DeleteRecord(ctx, c.coll, id)
	c.observe("remove", start, err)
	if err != nil {
		c.logFailure("remove", id, err)
		return false, fmt.Errorf("eliminar %s/%s: %w", c.coll.Name, id, err)
	}

	c.mu.Lock()
	if i := c.indexOf(id); i >= 0 {
		c.items = append(c.items[:i:i], c.items[i+1:]...)
	}
	c.mu.Unlock()
	return true, nil
}

// List devuelve una copia de los registros en memoria.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Get busca un registro por ID.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Len cantidad de registros en memoria.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Loaded indica si Load se completó al menos una vez.
func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// indexOf requiere mu tomado.
func (c *Collection[T]) indexOf(id string) int {
	for i, it := range c.items {
		if it.GetID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) observe(op string, start time.Time, err error) {
	if c.observer != nil {
		c.observer.ObserveStoreOp(c.coll.Name, op, time.Since(start), err)
	}
}

func (c *Collection[T]) logFailure(op, id string, err error) {
	ev := c.log.Error().Err(err).Str("collection", c.coll.Name).Str("op", op)
	if id != "" {
		ev = ev.Str("id", id)
	}
	ev.Bool("store_unavailable", errors.Is(err, domain.ErrStoreUnavailable)).Msg("fallo de persistencia; memoria sin cambios")
}

func encode[T Entity[T]](item T) (json.RawMessage, error) {
	raw, err := json.Marshal(item.WithID(""))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return raw, nil
}

func decode[T Entity[T]](rec repository.Record) (T, error) {
	var item T
	if len(rec.Fields) > 0 {
		if err := json.Unmarshal(rec.Fields, &item); err != nil {
			return item, err
		}
	}
	return item.WithID(rec.ID), nil
}

// Package statetest ofrece un repository.Store en memoria con inyección de fallos para pruebas.
package statetest

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/jhoicas/salon-pos/internal/domain"
	"github.com/jhoicas/salon-pos/internal/domain/repository"
)

// Operaciones que pueden fallar a pedido.
const (
	OpLoad   = "load"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

var _ repository.Store = (*Store)(nil)

// Store almacén en memoria. Los IDs son secuenciales ("1", "2", ...).
type Store struct {
	mu    sync.Mutex
	next  int
	data  map[string][]repository.Record
	fails map[string]error
	calls map[string]int
}

// New construye un almacén vacío.
func New() *Store {
	return &Store{data: map[string][]repository.Record{}, fails: map[string]error{}, calls: map[string]int{}}
}

// FailOn hace que la operación op de la colección name falle con ErrStoreUnavailable.
func (s *Store) FailOn(name, op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fails[name+"/"+op] = fmt.Errorf("%w: fallo simulado en %s/%s", domain.ErrStoreUnavailable, name, op)
}

// Heal quita todos los fallos configurados.
func (s *Store) Heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fails = map[string]error{}
}

// Calls cantidad de invocaciones de op sobre la colección name.
func (s *Store) Calls(name, op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name+"/"+op]
}

// Records copia de los registros guardados en la colección name.
func (s *Store) Records(name string) []repository.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]repository.Record, len(s.data[name]))
	copy(out, s.data[name])
	return out
}

// Seed agrega un registro ya existente (por ejemplo, datos heredados).
func (s *Store) Seed(name, id string, fields string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = append(s.data[name], repository.Record{ID: id, Fields: json.RawMessage(fields)})
}

func (s *Store) hit(name, op string) error {
	s.calls[name+"/"+op]++
	return s.fails[name+"/"+op]
}

func (s *Store) LoadCollection(_ context.Context, c repository.Collection) ([]repository.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit(c.Name, OpLoad); err != nil {
		return nil, err
	}
	out := make([]repository.Record, len(s.data[c.Name]))
	copy(out, s.data[c.Name])
	return out, nil
}

func (s *Store) CreateRecord(_ context.Context, c repository.Collection, fields json.RawMessage) (repository.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit(c.Name, OpCreate); err != nil {
		return repository.Record{}, err
	}
	s.next++
	rec := repository.Record{ID: strconv.Itoa(s.next), Fields: append(json.RawMessage(nil), fields...)}
	if c.Prepend {
		s.data[c.Name] = append([]repository.Record{rec}, s.data[c.Name]...)
	} else {
		s.data[c.Name] = append(s.data[c.Name], rec)
	}
	return rec, nil
}

func (s *Store) UpdateRecord(_ context.Context, c repository.Collection, id string, fields json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit(c.Name, OpUpdate); err != nil {
		return err
	}
	for i, r := range s.data[c.Name] {
		if r.ID == id {
			s.data[c.Name][i].Fields = append(json.RawMessage(nil), fields...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) DeleteRecord(_ context.Context, c repository.Collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit(c.Name, OpDelete); err != nil {
		return err
	}
	recs := s.data[c.Name]
	for i, r := range recs {
		if r.ID == id {
			s.data[c.Name] = append(recs[:i:i], recs[i+1:]...)
			return nil
		}
	}
	return nil
}

package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/salon-pos/internal/domain"
	"github.com/jhoicas/salon-pos/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store implementación del puerto repository.Store sobre un área clave-valor.
// Cada colección se serializa completa como arreglo JSON de objetos bajo Collection.Name
// y se reescribe entera en cada mutación (O(n) por escritura, sin escrituras parciales).
type Store struct {
	kv  KV
	ids *IDGenerator
	// mu serializa el ciclo leer-modificar-escribir de todas las colecciones.
	mu sync.Mutex
}

// NewStore construye el almacén local. ids nil usa el reloj del sistema.
func NewStore(kv KV, ids *IDGenerator) *Store {
	if ids == nil {
		ids = NewIDGenerator(nil)
	}
	return &Store{kv: kv, ids: ids}
}

type document map[string]json.RawMessage

// LoadCollection devuelve los registros en el orden en que están guardados.
func (s *Store) LoadCollection(ctx context.Context, c repository.Collection) ([]repository.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := s.read(ctx, c)
	if err != nil {
		return nil, err
	}
	out := make([]repository.Record, 0, len(docs))
	for i, d := range docs {
		rec, err := toRecord(d)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", domain.ErrStoreUnavailable, c.Name, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// CreateRecord asigna un ID, agrega el registro (al inicio si c.Prepend) y reescribe la colección.
func (s *Store) CreateRecord(ctx context.Context, c repository.Collection, fields json.RawMessage) (repository.Record, error) {
	doc, err := fromFields(fields)
	if err != nil {
		return repository.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := s.read(ctx, c)
	if err != nil {
		return repository.Record{}, err
	}
	id := s.ids.Next()
	for indexOf(docs, id) >= 0 {
		id = s.ids.Next()
	}
	if err := setID(doc, id); err != nil {
		return repository.Record{}, err
	}
	if c.Prepend {
		docs = append([]document{doc}, docs...)
	} else {
		docs = append(docs, doc)
	}
	if err := s.write(ctx, c, docs); err != nil {
		return repository.Record{}, err
	}
	return toRecord(doc)
}

// UpdateRecord reemplaza los campos del registro con ese ID. domain.ErrNotFound si no existe.
func (s *Store) UpdateRecord(ctx context.Context, c repository.Collection, id string, fields json.RawMessage) error {
	doc, err := fromFields(fields)
	if err != nil {
		return err
	}
	if err := setID(doc, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := s.read(ctx, c)
	if err != nil {
		return err
	}
	i := indexOf(docs, id)
	if i < 0 {
		return domain.ErrNotFound
	}
	docs[i] = doc
	return s.write(ctx, c, docs)
}

// DeleteRecord elimina el registro con ese ID; no reescribe si no existe.
func (s *Store) DeleteRecord(ctx context.Context, c repository.Collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := s.read(ctx, c)
	if err != nil {
		return err
	}
	i := indexOf(docs, id)
	if i < 0 {
		return nil
	}
	docs = append(docs[:i], docs[i+1:]...)
	return s.write(ctx, c, docs)
}

func (s *Store) read(ctx context.Context, c repository.Collection) ([]document, error) {
	raw, ok, err := s.kv.Get(ctx, c.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var docs []document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("%w: colección %s corrupta: %v", domain.ErrStoreUnavailable, c.Name, err)
	}
	return docs, nil
}

func (s *Store) write(ctx context.Context, c repository.Collection, docs []document) error {
	if docs == nil {
		docs = []document{}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", c.Name, err)
	}
	if err := s.kv.Set(ctx, c.Name, raw); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func fromFields(fields json.RawMessage) (document, error) {
	doc := document{}
	if len(fields) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(fields, &doc); err != nil {
		return nil, fmt.Errorf("%w: campos deben ser un objeto JSON: %v", domain.ErrInvalidInput, err)
	}
	delete(doc, "id")
	return doc, nil
}

func setID(doc document, id string) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return err
	}
	doc["id"] = raw
	return nil
}

func idOf(doc document) string {
	var id string
	if raw, ok := doc["id"]; ok {
		_ = json.Unmarshal(raw, &id)
	}
	return id
}

func indexOf(docs []document, id string) int {
	for i, d := range docs {
		if idOf(d) == id {
			return i
		}
	}
	return -1
}

func toRecord(doc document) (repository.Record, error) {
	id := idOf(doc)
	fields := make(document, len(doc))
	for k, v := range doc {
		if k != "id" {
			fields[k] = v
		}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return repository.Record{}, err
	}
	return repository.Record{ID: id, Fields: raw}, nil
}

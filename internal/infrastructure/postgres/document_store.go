package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/salon-pos/internal/domain"
	"github.com/jhoicas/salon-pos/internal/domain/repository"
)

var _ repository.Store = (*DocumentStore)(nil)

const documentsSchema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT        NOT NULL,
	id         TEXT        NOT NULL DEFAULT gen_random_uuid()::text,
	data       JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS idx_documents_collection_created ON documents (collection, created_at);`

// DocumentStore almacén remoto de documentos: una ruta jerárquica por colección (Collection.Path),
// IDs asignados por la base. Cada operación es un viaje independiente, sin transacciones entre registros.
type DocumentStore struct {
	q Querier
}

// NewDocumentStore construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentStore(q Querier) *DocumentStore {
	return &DocumentStore{q: q}
}

// Migrate crea la tabla de documentos si no existe.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, documentsSchema); err != nil {
		return fmt.Errorf("migrar documents: %w", err)
	}
	return nil
}

// LoadCollection lista los documentos de la colección. Si la colección declara OrderField
// se ordena por esa fecha; si no, por fecha de creación.
func (s *DocumentStore) LoadCollection(ctx context.Context, c repository.Collection) ([]repository.Record, error) {
	query := `SELECT id, data FROM documents WHERE collection = $1 ORDER BY created_at ASC, id ASC`
	args := []any{c.Path}
	if c.OrderField != "" {
		dir := "ASC"
		if c.Descending {
			dir = "DESC"
		}
		query = fmt.Sprintf(`SELECT id, data FROM documents WHERE collection = $1
			ORDER BY (data->>($2::text))::timestamptz %s NULLS LAST, created_at %s`, dir, dir)
		args = append(args, c.OrderField)
	}
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, unavailable("list "+c.Path, err)
	}
	defer rows.Close()
	var list []repository.Record
	for rows.Next() {
		var rec repository.Record
		var data []byte
		if err := rows.Scan(&rec.ID, &data); err != nil {
			return nil, unavailable("scan "+c.Path, err)
		}
		rec.Fields = json.RawMessage(data)
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list "+c.Path, err)
	}
	return list, nil
}

// CreateRecord inserta el documento y devuelve el ID asignado por la base.
func (s *DocumentStore) CreateRecord(ctx context.Context, c repository.Collection, fields json.RawMessage) (repository.Record, error) {
	data, err := withoutID(fields)
	if err != nil {
		return repository.Record{}, err
	}
	var id string
	err = s.q.QueryRow(ctx,
		`INSERT INTO documents (collection, data) VALUES ($1, $2::jsonb) RETURNING id`,
		c.Path, string(data),
	).Scan(&id)
	if err != nil {
		return repository.Record{}, unavailable("insert "+c.Path, err)
	}
	return repository.Record{ID: id, Fields: data}, nil
}

// UpdateRecord reemplaza el documento. domain.ErrNotFound si no existe.
func (s *DocumentStore) UpdateRecord(ctx context.Context, c repository.Collection, id string, fields json.RawMessage) error {
	data, err := withoutID(fields)
	if err != nil {
		return err
	}
	cmd, err := s.q.Exec(ctx,
		`UPDATE documents SET data = $3::jsonb, updated_at = now() WHERE collection = $1 AND id = $2`,
		c.Path, id, string(data),
	)
	if err != nil {
		return unavailable("update "+c.Path, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteRecord elimina el documento; no falla si no existe.
func (s *DocumentStore) DeleteRecord(ctx context.Context, c repository.Collection, id string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, c.Path, id); err != nil {
		return unavailable("delete "+c.Path, err)
	}
	return nil
}

// withoutID normaliza los campos a un objeto JSON sin la clave id (el ID vive en su columna).
func withoutID(fields json.RawMessage) (json.RawMessage, error) {
	obj := map[string]json.RawMessage{}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &obj); err != nil {
			return nil, fmt.Errorf("%w: campos deben ser un objeto JSON: %v", domain.ErrInvalidInput, err)
		}
	}
	delete(obj, "id")
	return json.Marshal(obj)
}

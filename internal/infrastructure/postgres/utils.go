package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/salon-pos/internal/domain"
)

// isInvalidJSON verifica si el error es un JSON inválido para una columna jsonb (22P02).
func isInvalidJSON(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02" // invalid_text_representation
	}
	return false
}

// unavailable envuelve un error del servidor como fallo del almacén.
func unavailable(op string, err error) error {
	if isInvalidJSON(err) {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, op, err)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
}

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrServiceNotFound  = errors.New("servicio no encontrado en el catálogo")
	ErrStoreUnavailable = errors.New("almacén de persistencia no disponible")
)

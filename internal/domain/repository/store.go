package repository

import (
	"context"
	"encoding/json"
)

// Collection describe una colección persistida.
// Name es la clave en el almacén local; Path la ruta jerárquica en el almacén remoto.
type Collection struct {
	Name string
	Path string
	// OrderField campo de fecha del documento por el que el almacén remoto ordena la carga (vacío = orden de creación).
	OrderField string
	Descending bool
	// Prepend indica que los registros nuevos van al inicio de la colección (más reciente primero).
	Prepend bool
}

// Colecciones del sistema.
var (
	Employees = Collection{Name: "employees", Path: "root/management/employees"}
	Services  = Collection{Name: "services", Path: "root/management/services"}
	Products  = Collection{Name: "products", Path: "root/management/products"}
	Customers = Collection{Name: "customers", Path: "root/management/customers"}
	Sales     = Collection{Name: "sales", Path: "root/transactions/sales", OrderField: "date", Descending: true, Prepend: true}
)

// Record registro plano de una colección: ID más los campos como objeto JSON (sin id).
type Record struct {
	ID     string
	Fields json.RawMessage
}

// Store define el puerto de persistencia por colecciones (DIP).
// Los adaptadores devuelven errores envueltos con domain.ErrStoreUnavailable cuando el almacén falla
// y domain.ErrNotFound cuando el ID no existe en UpdateRecord.
type Store interface {
	LoadCollection(ctx context.Context, c Collection) ([]Record, error)
	CreateRecord(ctx context.Context, c Collection, fields json.RawMessage) (Record, error)
	UpdateRecord(ctx context.Context, c Collection, id string, fields json.RawMessage) error
	DeleteRecord(ctx context.Context, c Collection, id string) error
}

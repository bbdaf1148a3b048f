package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada por un empleado.
// Service guarda el ID del servicio; registros antiguos pueden contener el nombre.
// Date se asigna una sola vez al crear la venta y no cambia después.
// CustomerName y CustomerContact vacíos no se persisten (campo ausente).
type Sale struct {
	ID              string          `json:"id,omitempty"`
	Service         string          `json:"service"`
	Amount          decimal.Decimal `json:"amount"`
	EmployeeName    string          `json:"employeeName"`
	Date            time.Time       `json:"date"`
	CustomerName    string          `json:"customerName,omitempty"`
	CustomerContact string          `json:"customerContact,omitempty"`
}

func (s Sale) GetID() string { return s.ID }

func (s Sale) WithID(id string) Sale {
	s.ID = id
	return s
}

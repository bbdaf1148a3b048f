package entity

import "github.com/shopspring/decimal"

// Product representa un producto de venta. Stock no se descuenta al registrar ventas.
type Product struct {
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

func (p Product) GetID() string { return p.ID }

func (p Product) WithID(id string) Product {
	p.ID = id
	return p
}

package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-pos/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name  string          `json:"name" validate:"required,min=1,max=200"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
	Stock int             `json:"stock" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto; los campos ausentes no cambian.
type UpdateProductRequest struct {
	Name  *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Stock *int             `json:"stock" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// ToProductResponse mapea la entidad.
func ToProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock}
}

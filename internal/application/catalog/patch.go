package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-pos/internal/domain/entity"
)

// EmployeePatch campos a modificar de un empleado; nil deja el valor actual.
// Photo vacío elimina la foto.
type EmployeePatch struct {
	Name  *string
	Email *string
	Phone *string
	Photo *string
}

// Apply devuelve e con los campos del patch aplicados.
func (p EmployeePatch) Apply(e entity.Employee) entity.Employee {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Phone != nil {
		e.Phone = *p.Phone
	}
	if p.Photo != nil {
		e.Photo = *p.Photo
	}
	return e
}

// ServicePatch campos a modificar de un servicio.
type ServicePatch struct {
	Name  *string
	Price *decimal.Decimal
}

func (p ServicePatch) Apply(s entity.Service) entity.Service {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	return s
}

// ProductPatch campos a modificar de un producto.
type ProductPatch struct {
	Name  *string
	Price *decimal.Decimal
	Stock *int
}

func (p ProductPatch) Apply(pr entity.Product) entity.Product {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Price != nil {
		pr.Price = *p.Price
	}
	if p.Stock != nil {
		pr.Stock = *p.Stock
	}
	return pr
}

// CustomerPatch campos a modificar de un cliente.
type CustomerPatch struct {
	Name  *string
	Email *string
	Phone *string
}

func (p CustomerPatch) Apply(c entity.Customer) entity.Customer {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	return c
}

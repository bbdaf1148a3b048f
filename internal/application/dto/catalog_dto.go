package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-pos/internal/domain/entity"
)

// CreateEmployeeRequest entrada para crear un empleado.
type CreateEmployeeRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=50"`
	Photo string `json:"photo" validate:"omitempty,url"`
}

// UpdateEmployeeRequest los campos ausentes no cambian; photo "" elimina la foto.
type UpdateEmployeeRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,max=50"`
	Photo *string `json:"photo" validate:"omitempty,url"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Photo string `json:"photo,omitempty"`
}

func ToEmployeeResponse(e entity.Employee) EmployeeResponse {
	return EmployeeResponse{ID: e.ID, Name: e.Name, Email: e.Email, Phone: e.Phone, Photo: e.Photo}
}

// CreateServiceRequest entrada para crear un servicio.
type CreateServiceRequest struct {
	Name  string          `json:"name" validate:"required,min=1,max=200"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
}

// UpdateServiceRequest los campos ausentes no cambian.
type UpdateServiceRequest struct {
	Name  *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
}

// ServiceResponse salida de un servicio.
type ServiceResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func ToServiceResponse(s entity.Service) ServiceResponse {
	return ServiceResponse{ID: s.ID, Name: s.Name, Price: s.Price}
}

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=50"`
}

// UpdateCustomerRequest los campos ausentes no cambian.
type UpdateCustomerRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,max=50"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func ToCustomerResponse(c entity.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}

// CustomerMessageRequest mensaje del administrador a un cliente.
type CustomerMessageRequest struct {
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

// MapSlice aplica f a cada elemento.
func MapSlice[S any, D any](in []S, f func(S) D) []D {
	out := make([]D, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

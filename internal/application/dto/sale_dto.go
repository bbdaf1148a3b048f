package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-pos/internal/domain/entity"
)

// RecordSaleRequest registro de venta desde la pantalla del empleado. El monto es el precio del servicio.
type RecordSaleRequest struct {
	ServiceID       string `json:"service_id" validate:"required"`
	EmployeeName    string `json:"employee_name" validate:"required,min=1,max=200"`
	CustomerName    string `json:"customer_name" validate:"omitempty,max=200"`
	CustomerContact string `json:"customer_contact" validate:"omitempty,max=200"`
}

// UpdateSaleRequest corrección administrativa de una venta. La fecha no es modificable.
type UpdateSaleRequest struct {
	Service         *string          `json:"service" validate:"omitempty,min=1"`
	Amount          *decimal.Decimal `json:"amount" validate:"omitempty,gte=0"`
	EmployeeName    *string          `json:"employee_name" validate:"omitempty,min=1,max=200"`
	CustomerName    *string          `json:"customer_name" validate:"omitempty,max=200"`
	CustomerContact *string          `json:"customer_contact" validate:"omitempty,max=200"`
}

// SaleResponse salida de una venta con el nombre del servicio resuelto.
type SaleResponse struct {
	ID              string          `json:"id"`
	Service         string          `json:"service"`
	ServiceName     string          `json:"service_name"`
	Amount          decimal.Decimal `json:"amount"`
	EmployeeName    string          `json:"employee_name"`
	Date            time.Time       `json:"date"`
	CustomerName    string          `json:"customer_name,omitempty"`
	CustomerContact string          `json:"customer_contact,omitempty"`
}

// ToSaleResponse mapea la venta; serviceName es el nombre ya resuelto.
func ToSaleResponse(s entity.Sale, serviceName string) SaleResponse {
	return SaleResponse{
		ID:              s.ID,
		Service:         s.Service,
		ServiceName:     serviceName,
		Amount:          s.Amount,
		EmployeeName:    s.EmployeeName,
		Date:            s.Date,
		CustomerName:    s.CustomerName,
		CustomerContact: s.CustomerContact,
	}
}

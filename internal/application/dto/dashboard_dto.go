package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary para el día seleccionado.
type DashboardSummaryDTO struct {
	Date          string          `json:"date"` // YYYY-MM-DD (UTC)
	TotalSales    decimal.Decimal `json:"total_sales"`
	SalesCount    int             `json:"sales_count"`
	ByService     []AmountByKey   `json:"by_service"`  // nombre de servicio resuelto
	ByEmployee    []AmountByKey   `json:"by_employee"` // nombre de empleado
	RecentSales   []RecentSaleDTO `json:"recent_sales"`
	SelectableDay []string        `json:"selectable_days"` // hoy y los 6 días anteriores
}

// AmountByKey total agrupado (servicio o empleado), ordenado de mayor a menor.
type AmountByKey struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// RecentSaleDTO fila de la tabla de ventas recientes.
type RecentSaleDTO struct {
	ID              string          `json:"id"`
	ServiceName     string          `json:"service_name"`
	Amount          decimal.Decimal `json:"amount"`
	EmployeeName    string          `json:"employee_name"`
	Date            time.Time       `json:"date"`
	CustomerName    string          `json:"customer_name,omitempty"`
	CustomerContact string          `json:"customer_contact,omitempty"`
}

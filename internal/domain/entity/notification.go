package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotificationType tipo de aviso al administrador.
type NotificationType string

const (
	NotificationSale      NotificationType = "sale"
	NotificationError     NotificationType = "error"
	NotificationComplaint NotificationType = "complaint"
	NotificationMessage   NotificationType = "message"
)

// Valid indica si el tipo es uno de los conocidos.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationSale, NotificationError, NotificationComplaint, NotificationMessage:
		return true
	}
	return false
}

// Notification evento transitorio para el administrador. No se persiste.
// Message es el texto que reporta el empleado; Text la línea legible que arma el sink antes de entregar.
type Notification struct {
	ID           string           `json:"id"`
	Type         NotificationType `json:"type"`
	Message      string           `json:"message,omitempty"`
	EmployeeName string           `json:"employeeName"`
	Recipient    string           `json:"recipient,omitempty"` // cliente destino en avisos de tipo message
	Date         time.Time        `json:"date"`
	Sale         *SaleSummary     `json:"sale,omitempty"`
	Text         string           `json:"text"`
}

// SaleSummary datos de la venta que acompañan a un aviso de tipo sale.
type SaleSummary struct {
	SaleID      string          `json:"saleId"`
	ServiceName string          `json:"serviceName"`
	Amount      decimal.Decimal `json:"amount"`
}

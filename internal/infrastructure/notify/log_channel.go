// Package notify implementa los canales de entrega de avisos al administrador.
package notify

import (
	"context"

	"github.com/jhoicas/salon-pos/internal/domain/entity"
	"github.com/jhoicas/salon-pos/pkg/logger"
)

// LogChannel escribe cada aviso en el log estructurado. Siempre está habilitado.
type LogChannel struct {
	log *logger.Logger
}

// NewLogChannel construye el canal.
func NewLogChannel(log *logger.Logger) *LogChannel {
	return &LogChannel{log: log.Component("notify.log")}
}

func (c *LogChannel) Name() string { return "log" }

func (c *LogChannel) Deliver(_ context.Context, n entity.Notification) error {
	ev := c.log.Info().
		Str("notification_id", n.ID).
		Str("type", string(n.Type)).
		Str("employee", n.EmployeeName).
		Time("date", n.Date)
	if n.Sale != nil {
		ev = ev.Str("sale_id", n.Sale.SaleID).Str("amount", n.Sale.Amount.String())
	}
	ev.Msg(n.Text)
	return nil
}

package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"

	"github.com/jhoicas/salon-pos/internal/domain/entity"
)

// EmailConfig servidor SMTP y destinatarios del administrador.
type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       []string
}

// EmailChannel envía cada aviso como correo de texto plano.
type EmailChannel struct {
	cfg  EmailConfig
	addr string
	send func(e *email.Email, addr string, a smtp.Auth) error
}

// NewEmailChannel construye el canal. From vacío usa User.
func NewEmailChannel(cfg EmailConfig) *EmailChannel {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &EmailChannel{
		cfg:  cfg,
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		send: func(e *email.Email, addr string, a smtp.Auth) error { return e.Send(addr, a) },
	}
}

func (c *EmailChannel) Name() string { return "email" }

// Deliver envía el correo. El envío SMTP no acepta contexto; se respeta una cancelación previa.
func (c *EmailChannel) Deliver(ctx context.Context, n entity.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := c.message(n)
	var a smtp.Auth
	if c.cfg.User != "" {
		a = smtp.PlainAuth("", c.cfg.User, c.cfg.Password, c.cfg.Host)
	}
	if err := c.send(e, c.addr, a); err != nil {
		return fmt.Errorf("email: enviar aviso %s: %w", n.ID, err)
	}
	return nil
}

func (c *EmailChannel) message(n entity.Notification) *email.Email {
	e := email.NewEmail()
	e.From = c.cfg.From
	e.To = c.cfg.To
	e.Subject = subject(n)

	var body strings.Builder
	body.WriteString(n.Text)
	body.WriteString("\n\n")
	fmt.Fprintf(&body, "Employee: %s\n", n.EmployeeName)
	fmt.Fprintf(&body, "Date: %s\n", n.Date.UTC().Format("2006-01-02 15:04:05 MST"))
	if n.Sale != nil {
		fmt.Fprintf(&body, "Sale: %s\n", n.Sale.SaleID)
	}
	e.Text = []byte(body.String())
	return e
}

func subject(n entity.Notification) string {
	switch n.Type {
	case entity.NotificationSale:
		return "New sale"
	case entity.NotificationError:
		return "Error report"
	case entity.NotificationComplaint:
		return "Complaint"
	default:
		return "Notification"
	}
}

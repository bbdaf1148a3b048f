// Package notify entrega avisos al administrador por los canales configurados sin bloquear
// la operación que los origina.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/salon-pos/internal/domain/entity"
	"github.com/jhoicas/salon-pos/pkg/logger"
)

// ErrClosed se devuelve al cerrar dos veces el sink.
var ErrClosed = errors.New("notify: sink cerrado")

// Channel destino de entrega de avisos (log, email, cola, push).
type Channel interface {
	Name() string
	Deliver(ctx context.Context, n entity.Notification) error
}

// Observer recibe el resultado de cada entrega (métricas).
type Observer interface {
	ObserveDelivery(channel string, err error)
	ObserveDropped()
}

// Config parámetros del sink.
type Config struct {
	QueueSize      int
	Workers        int
	CurrencySymbol string
	// DeliverTimeout límite por entrega a un canal; 0 usa 10s.
	DeliverTimeout time.Duration
}

// Sink cola acotada con workers que reparten cada aviso a todos los canales.
type Sink struct {
	cfg      Config
	channels []Channel
	log      *logger.Logger
	observer Observer
	now      func() time.Time

	queue  chan entity.Notification
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewSink construye el sink y arranca los workers.
func NewSink(cfg Config, log *logger.Logger, observer Observer, channels ...Channel) *Sink {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = "$"
	}
	if cfg.DeliverTimeout <= 0 {
		cfg.DeliverTimeout = 10 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	s := &Sink{
		cfg:      cfg,
		channels: channels,
		log:      log.Component("notify"),
		observer: observer,
		now:      time.Now,
		queue:    make(chan entity.Notification, cfg.QueueSize),
	}
	for i := 0; i < cfg.Workers; i++ {
		s.wg.Add(1)
		go s.run(i)
	}
	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, ch.Name())
	}
	s.log.Info().Int("workers", cfg.Workers).Strs("channels", names).Msg("sink de avisos iniciado")
	return s
}

// Notify completa ID, fecha y texto del aviso y lo encola. Nunca bloquea: con la cola llena el aviso se descarta.
func (s *Sink) Notify(_ context.Context, n entity.Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Date.IsZero() {
		n.Date = s.now()
	}
	n.Text = s.Format(n)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.log.Warn().Str("type", string(n.Type)).Msg("aviso descartado: sink cerrado")
		s.dropped()
		return
	}
	select {
	case s.queue <- n:
	default:
		s.log.Warn().Str("type", string(n.Type)).Str("text", n.Text).Msg("aviso descartado: cola llena")
		s.dropped()
	}
}

// Format arma la línea legible del aviso.
func (s *Sink) Format(n entity.Notification) string {
	switch n.Type {
	case entity.NotificationSale:
		if n.Sale == nil {
			return fmt.Sprintf("New sale notification: %s registered a sale", n.EmployeeName)
		}
		return fmt.Sprintf("New sale notification: %s sold %s for %s%s",
			n.EmployeeName, n.Sale.ServiceName, s.cfg.CurrencySymbol, n.Sale.Amount.String())
	case entity.NotificationMessage:
		return fmt.Sprintf("New message from %s to %s: %s", n.EmployeeName, n.Recipient, n.Message)
	default:
		return fmt.Sprintf("New %s from %s: %s", n.Type, n.EmployeeName, n.Message)
	}
}

// Close deja de aceptar avisos y espera a que los workers vacíen la cola o venza ctx.
func (s *Sink) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.log.Info().Msg("sink de avisos detenido")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notify: cierre incompleto: %w", ctx.Err())
	}
}

func (s *Sink) run(worker int) {
	defer s.wg.Done()
	for n := range s.queue {
		s.dispatch(n)
	}
	s.log.Debug().Int("worker", worker).Msg("worker de avisos terminado")
}

// dispatch entrega n a cada canal; un fallo se registra y no afecta al resto.
func (s *Sink) dispatch(n entity.Notification) {
	for _, ch := range s.channels {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.DeliverTimeout)
		err := ch.Deliver(ctx, n)
		cancel()
		if s.observer != nil {
			s.observer.ObserveDelivery(ch.Name(), err)
		}
		if err != nil {
			s.log.Error().Err(err).Str("channel", ch.Name()).Str("notification_id", n.ID).Msg("fallo al entregar aviso")
		}
	}
}

func (s *Sink) dropped() {
	if s.observer != nil {
		s.observer.ObserveDropped()
	}
}

// FromSale construye el aviso de una venta completada. serviceName es el nombre ya resuelto.
func FromSale(sale entity.Sale, serviceName string) entity.Notification {
	return entity.Notification{
		Type:         entity.NotificationSale,
		EmployeeName: sale.EmployeeName,
		Date:         sale.Date,
		Sale: &entity.SaleSummary{
			SaleID:      sale.ID,
			ServiceName: serviceName,
			Amount:      sale.Amount,
		},
	}
}

// FromReport construye el aviso de un reporte de empleado (error o queja).
func FromReport(t entity.NotificationType, employeeName, message string) entity.Notification {
	return entity.Notification{
		Type:         t,
		EmployeeName: strings.TrimSpace(employeeName),
		Message:      strings.TrimSpace(message),
	}
}

// Package sales administra las ventas en memoria (más reciente primero) sincronizadas con el almacén.
package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-pos/internal/application/notify"
	"github.com/jhoicas/salon-pos/internal/application/state"
	"github.com/jhoicas/salon-pos/internal/domain"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
	"github.com/jhoicas/salon-pos/internal/domain/repository"
	"github.com/jhoicas/salon-pos/pkg/logger"
)

// Catalog consulta de servicios que necesita el registro de ventas.
type Catalog interface {
	GetService(id string) (entity.Service, bool)
	ServiceName(ref string) string
}

// Notifier recibe los avisos de venta. notify.Sink lo implementa.
type Notifier interface {
	Notify(ctx context.Context, n entity.Notification)
}

// NewSale datos de una venta a registrar. Date lo asigna el manager.
type NewSale struct {
	Service         string
	Amount          decimal.Decimal
	EmployeeName    string
	CustomerName    string
	CustomerContact string
}

// RecordSaleInput flujo de registro del empleado: el monto sale del precio del servicio.
type RecordSaleInput struct {
	ServiceID       string
	EmployeeName    string
	CustomerName    string
	CustomerContact string
}

// Patch campos modificables de una venta; Date no se modifica.
type Patch struct {
	Service         *string
	Amount          *decimal.Decimal
	EmployeeName    *string
	CustomerName    *string
	CustomerContact *string
}

func (p Patch) apply(s entity.Sale) entity.Sale {
	if p.Service != nil {
		s.Service = *p.Service
	}
	if p.Amount != nil {
		s.Amount = *p.Amount
	}
	if p.EmployeeName != nil {
		s.EmployeeName = *p.EmployeeName
	}
	if p.CustomerName != nil {
		s.CustomerName = *p.CustomerName
	}
	if p.CustomerContact != nil {
		s.CustomerContact = *p.CustomerContact
	}
	return s
}

// Manager estado de ventas.
type Manager struct {
	sales    *state.Collection[entity.Sale]
	catalog  Catalog
	notifier Notifier
	log      *logger.Logger
	now      func() time.Time
}

// Option configura el Manager.
type Option func(*Manager)

// WithClock reemplaza el reloj usado para fechar ventas.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager construye el manager. Entra en pánico si store es nil.
// notifier nil deshabilita los avisos.
func NewManager(store repository.Store, catalog Catalog, notifier Notifier, log *logger.Logger, observer state.Observer, opts ...Option) *Manager {
	if store == nil {
		panic("sales: NewManager sin almacén")
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("sales")
	m := &Manager{
		sales:    state.NewCollection[entity.Sale](store, repository.Sales, log, observer),
		catalog:  catalog,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LoadAll reemplaza la memoria con las ventas del almacén (más reciente primero).
func (m *Manager) LoadAll(ctx context.Context) error {
	if err := m.sales.Load(ctx); err != nil {
		return err
	}
	m.log.Info().Int("sales", m.sales.Len()).Msg("ventas cargadas")
	return nil
}

// Loaded indica si las ventas se cargaron al menos una vez.
func (m *Manager) Loaded() bool { return m.sales.Loaded() }

// Add fecha la venta, la persiste y, confirmada, la deja al inicio de la lista y avisa al administrador.
func (m *Manager) Add(ctx context.Context, in NewSale) (entity.Sale, error) {
	sale := normalize(entity.Sale{
		Service:         in.Service,
		Amount:          in.Amount,
		EmployeeName:    in.EmployeeName,
		CustomerName:    in.CustomerName,
		CustomerContact: in.CustomerContact,
	})
	if err := validate(sale); err != nil {
		return entity.Sale{}, err
	}
	sale.Date = m.now().UTC()

	created, err := m.sales.Add(ctx, sale)
	if err != nil {
		return entity.Sale{}, err
	}
	m.log.Info().Str("sale_id", created.ID).Str("employee", created.EmployeeName).Str("amount", created.Amount.String()).Msg("venta registrada")
	if m.notifier != nil {
		m.notifier.Notify(ctx, notify.FromSale(created, m.serviceName(created.Service)))
	}
	return created, nil
}

// RecordSale registra la venta de un servicio del catálogo al precio vigente.
func (m *Manager) RecordSale(ctx context.Context, in RecordSaleInput) (entity.Sale, error) {
	if strings.TrimSpace(in.EmployeeName) == "" {
		return entity.Sale{}, fmt.Errorf("%w: empleado requerido", domain.ErrInvalidInput)
	}
	if m.catalog == nil {
		return entity.Sale{}, domain.ErrServiceNotFound
	}
	svc, ok := m.catalog.GetService(in.ServiceID)
	if !ok {
		return entity.Sale{}, domain.ErrServiceNotFound
	}
	return m.Add(ctx, NewSale{
		Service:         svc.ID,
		Amount:          svc.Price,
		EmployeeName:    in.EmployeeName,
		CustomerName:    in.CustomerName,
		CustomerContact: in.CustomerContact,
	})
}

// Update aplica el patch a la venta con ese ID. Devuelve nil, nil si no existe.
func (m *Manager) Update(ctx context.Context, id string, p Patch) (*entity.Sale, error) {
	if p.Amount != nil && p.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: monto negativo", domain.ErrInvalidInput)
	}
	if p.EmployeeName != nil && strings.TrimSpace(*p.EmployeeName) == "" {
		return nil, fmt.Errorf("%w: empleado requerido", domain.ErrInvalidInput)
	}
	if p.Service != nil && strings.TrimSpace(*p.Service) == "" {
		return nil, fmt.Errorf("%w: servicio requerido", domain.ErrInvalidInput)
	}
	return m.sales.Update(ctx, id, func(s entity.Sale) entity.Sale {
		return normalize(p.apply(s))
	})
}

// Remove elimina la venta con ese ID; no hace nada si no existe.
func (m *Manager) Remove(ctx context.Context, id string) error {
	_, err := m.sales.Remove(ctx, id)
	return err
}

// List ventas en memoria, más reciente primero.
func (m *Manager) List() []entity.Sale { return m.sales.List() }

// Get busca una venta por ID.
func (m *Manager) Get(id string) (entity.Sale, bool) { return m.sales.Get(id) }

// ListByDay ventas cuya fecha (UTC) cae en el día de day. limit <= 0 no limita.
func (m *Manager) ListByDay(day time.Time, limit int) []entity.Sale {
	y, mo, d := day.UTC().Date()
	out := make([]entity.Sale, 0)
	for _, s := range m.sales.List() {
		sy, smo, sd := s.Date.UTC().Date()
		if sy == y && smo == mo && sd == d {
			out = append(out, s)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// ServiceName nombre a mostrar del servicio de una venta.
func (m *Manager) ServiceName(s entity.Sale) string { return m.serviceName(s.Service) }

func (m *Manager) serviceName(ref string) string {
	if m.catalog == nil {
		return ref
	}
	return m.catalog.ServiceName(ref)
}

func normalize(s entity.Sale) entity.Sale {
	s.Service = strings.TrimSpace(s.Service)
	s.EmployeeName = strings.TrimSpace(s.EmployeeName)
	s.CustomerName = strings.TrimSpace(s.CustomerName)
	s.CustomerContact = strings.TrimSpace(s.CustomerContact)
	return s
}

func validate(s entity.Sale) error {
	if s.Service == "" {
		return fmt.Errorf("%w: servicio requerido", domain.ErrInvalidInput)
	}
	if s.EmployeeName == "" {
		return fmt.Errorf("%w: empleado requerido", domain.ErrInvalidInput)
	}
	if s.Amount.IsNegative() {
		return fmt.Errorf("%w: monto negativo", domain.ErrInvalidInput)
	}
	return nil
}

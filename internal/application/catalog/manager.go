// Package catalog administra empleados, servicios, productos y clientes en memoria,
// sincronizados con el almacén de persistencia.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"github.com/jhoicas/salon-pos/internal/application/state"
	"github.com/jhoicas/salon-pos/internal/domain"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
	"github.com/jhoicas/salon-pos/internal/domain/repository"
	"github.com/jhoicas/salon-pos/pkg/logger"
)

// Manager estado del catálogo. Las mutaciones se confirman en el almacén antes de tocar la memoria.
type Manager struct {
	employees *state.Collection[entity.Employee]
	services  *state.Collection[entity.Service]
	products  *state.Collection[entity.Product]
	customers *state.Collection[entity.Customer]
	log       *logger.Logger
}

// NewManager construye el manager. Entra en pánico si store es nil.
func NewManager(store repository.Store, log *logger.Logger, observer state.Observer) *Manager {
	if store == nil {
		panic("catalog: NewManager sin almacén")
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("catalog")
	return &Manager{
		employees: state.NewCollection[entity.Employee](store, repository.Employees, log, observer),
		services:  state.NewCollection[entity.Service](store, repository.Services, log, observer),
		products:  state.NewCollection[entity.Product](store, repository.Products, log, observer),
		customers: state.NewCollection[entity.Customer](store, repository.Customers, log, observer),
		log:       log,
	}
}

// LoadAll carga las cuatro colecciones en paralelo y reemplaza la memoria de cada una.
// Si alguna falla, las demás quedan cargadas y se devuelve el primer error.
func (m *Manager) LoadAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return m.employees.Load(gctx) })
	g.Go(func() error { return m.services.Load(gctx) })
	g.Go(func() error { return m.products.Load(gctx) })
	g.Go(func() error { return m.customers.Load(gctx) })
	if err := g.Wait(); err != nil {
		return err
	}
	m.log.Info().
		Int("employees", m.employees.Len()).
		Int("services", m.services.Len()).
		Int("products", m.products.Len()).
		Int("customers", m.customers.Len()).
		Msg("catálogo cargado")
	return nil
}

// Loaded indica si todas las colecciones se cargaron al menos una vez.
func (m *Manager) Loaded() bool {
	return m.employees.Loaded() && m.services.Loaded() && m.products.Loaded() && m.customers.Loaded()
}

// --- Empleados ---

// AddEmployee valida y persiste el empleado; devuelve el registro con el ID asignado.
func (m *Manager) AddEmployee(ctx context.Context, e entity.Employee) (entity.Employee, error) {
	e = normalizeEmployee(e)
	if e.Name == "" {
		return entity.Employee{}, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	return m.employees.Add(ctx, e)
}

// UpdateEmployee aplica el patch a el empleado con ese ID. Devuelve nil, nil si no existe.
func (m *Manager) UpdateEmployee(ctx context.Context, id string, p EmployeePatch) (*entity.Employee, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	return m.employees.Update(ctx, id, func(e entity.Employee) entity.Employee {
		return normalizeEmployee(p.Apply(e))
	})
}

// RemoveEmployee elimina el empleado con ese ID; no hace nada si no existe.
func (m *Manager) RemoveEmployee(ctx context.Context, id string) error {
	_, err := m.employees.Remove(ctx, id)
	return err
}

// ListEmployees devuelve los empleados en memoria.
func (m *Manager) ListEmployees() []entity.Employee { return m.employees.List() }

// GetEmployee busca el empleado por ID.
func (m *Manager) GetEmployee(id string) (entity.Employee, bool) { return m.employees.Get(id) }

// --- Servicios ---

// AddService valida y persiste el servicio; devuelve el registro con el ID asignado.
func (m *Manager) AddService(ctx context.Context, s entity.Service) (entity.Service, error) {
	s.Name = strings.TrimSpace(s.Name)
	if err := validateNamePrice(s.Name, s.Price); err != nil {
		return entity.Service{}, err
	}
	return m.services.Add(ctx, s)
}

// UpdateService aplica el patch a el servicio con ese ID. Devuelve nil, nil si no existe.
func (m *Manager) UpdateService(ctx context.Context, id string, p ServicePatch) (*entity.Service, error) {
	if err := validatePatch(p.Name, p.Price); err != nil {
		return nil, err
	}
	return m.services.Update(ctx, id, func(s entity.Service) entity.Service {
		s = p.Apply(s)
		s.Name = strings.TrimSpace(s.Name)
		return s
	})
}

// RemoveService elimina el servicio con ese ID; no hace nada si no existe.
func (m *Manager) RemoveService(ctx context.Context, id string) error {
	_, err := m.services.Remove(ctx, id)
	return err
}

// ListServices devuelve los servicios en memoria.
func (m *Manager) ListServices() []entity.Service { return m.services.List() }

// GetService busca el servicio por ID.
func (m *Manager) GetService(id string) (entity.Service, bool) { return m.services.Get(id) }

// SearchServices filtra servicios cuyo nombre contiene q, sin distinguir mayúsculas. q vacío devuelve todos.
func (m *Manager) SearchServices(q string) []entity.Service {
	all := m.services.List()
	q = strings.TrimSpace(q)
	if q == "" {
		return all
	}
	fold := cases.Fold() // un Caser no se comparte entre goroutines
	needle := fold.String(q)
	out := make([]entity.Service, 0, len(all))
	for _, s := range all {
		if strings.Contains(fold.String(s.Name), needle) {
			out = append(out, s)
		}
	}
	return out
}

// ServiceName resuelve el nombre a mostrar para el valor guardado en Sale.Service.
// Ventas antiguas guardaban el nombre; si el ID no existe se devuelve el valor tal cual.
func (m *Manager) ServiceName(ref string) string {
	if s, ok := m.services.Get(ref); ok {
		return s.Name
	}
	return ref
}

// --- Productos ---

// AddProduct valida y persiste el producto; devuelve el registro con el ID asignado.
func (m *Manager) AddProduct(ctx context.Context, p entity.Product) (entity.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := validateNamePrice(p.Name, p.Price); err != nil {
		return entity.Product{}, err
	}
	if p.Stock < 0 {
		return entity.Product{}, fmt.Errorf("%w: stock negativo", domain.ErrInvalidInput)
	}
	return m.products.Add(ctx, p)
}

// UpdateProduct aplica el patch a el producto con ese ID. Devuelve nil, nil si no existe.
func (m *Manager) UpdateProduct(ctx context.Context, id string, p ProductPatch) (*entity.Product, error) {
	if err := validatePatch(p.Name, p.Price); err != nil {
		return nil, err
	}
	if p.Stock != nil && *p.Stock < 0 {
		return nil, fmt.Errorf("%w: stock negativo", domain.ErrInvalidInput)
	}
	return m.products.Update(ctx, id, func(pr entity.Product) entity.Product {
		pr = p.Apply(pr)
		pr.Name = strings.TrimSpace(pr.Name)
		return pr
	})
}

// RemoveProduct elimina el producto con ese ID; no hace nada si no existe.
func (m *Manager) RemoveProduct(ctx context.Context, id string) error {
	_, err := m.products.Remove(ctx, id)
	return err
}

// ListProducts devuelve los productos en memoria.
func (m *Manager) ListProducts() []entity.Product { return m.products.List() }

// GetProduct busca el producto por ID.
func (m *Manager) GetProduct(id string) (entity.Product, bool) { return m.products.Get(id) }

// --- Clientes ---

// AddCustomer valida y persiste el cliente; devuelve el registro con el ID asignado.
func (m *Manager) AddCustomer(ctx context.Context, c entity.Customer) (entity.Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return entity.Customer{}, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	return m.customers.Add(ctx, c)
}

// UpdateCustomer aplica el patch a el cliente con ese ID. Devuelve nil, nil si no existe.
func (m *Manager) UpdateCustomer(ctx context.Context, id string, p CustomerPatch) (*entity.Customer, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	return m.customers.Update(ctx, id, func(c entity.Customer) entity.Customer {
		c = p.Apply(c)
		c.Name = strings.TrimSpace(c.Name)
		return c
	})
}

// RemoveCustomer elimina el cliente con ese ID; no hace nada si no existe.
func (m *Manager) RemoveCustomer(ctx context.Context, id string) error {
	_, err := m.customers.Remove(ctx, id)
	return err
}

// ListCustomers devuelve los clientes en memoria.
func (m *Manager) ListCustomers() []entity.Customer { return m.customers.List() }

// GetCustomer busca el cliente por ID.
func (m *Manager) GetCustomer(id string) (entity.Customer, bool) { return m.customers.Get(id) }

func normalizeEmployee(e entity.Employee) entity.Employee {
	e.Name = strings.TrimSpace(e.Name)
	e.Photo = strings.TrimSpace(e.Photo)
	return e
}

func validateNamePrice(name string, price decimal.Decimal) error {
	if name == "" {
		return fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	return nil
}

func validatePatch(name *string, price *decimal.Decimal) error {
	if name != nil && strings.TrimSpace(*name) == "" {
		return fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if price != nil && price.IsNegative() {
		return fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	return nil
}

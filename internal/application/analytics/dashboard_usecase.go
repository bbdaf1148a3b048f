// Package analytics contiene los casos de uso del dashboard del administrador
// y de los reportes diarios de ventas.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-pos/internal/application/dto"
	"github.com/jhoicas/salon-pos/internal/domain"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
)

const (
	dashboardRecentSales = 5 // filas de la tabla de ventas recientes
	dashboardDays        = 7 // días seleccionables (hoy incluido)
	dayLayout            = "2006-01-02"
)

// SalesSource ventas en memoria, más reciente primero.
type SalesSource interface {
	List() []entity.Sale
}

// ServiceNamer resuelve el nombre a mostrar de Sale.Service.
type ServiceNamer interface {
	ServiceName(ref string) string
}

// DashboardUseCase agrega las ventas del día seleccionado.
//
// Fuente de datos: el estado en memoria del manager de ventas; no consulta el almacén.
type DashboardUseCase struct {
	sales SalesSource
	names ServiceNamer
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(sales SalesSource, names ServiceNamer) *DashboardUseCase {
	return &DashboardUseCase{sales: sales, names: names, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// ParseDay interpreta YYYY-MM-DD como día UTC. Vacío devuelve el día actual.
func (uc *DashboardUseCase) ParseDay(s string) (time.Time, error) {
	if s == "" {
		y, m, d := uc.now().UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	day, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q, formato esperado YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return day, nil
}

// DaySales ventas cuyo Date (UTC) cae en day, más reciente primero.
func (uc *DashboardUseCase) DaySales(day time.Time) []entity.Sale {
	key := day.UTC().Format(dayLayout)
	out := make([]entity.Sale, 0)
	for _, s := range uc.sales.List() {
		if s.Date.UTC().Format(dayLayout) == key {
			out = append(out, s)
		}
	}
	return out
}

// ServiceName nombre resuelto del servicio de una venta.
func (uc *DashboardUseCase) ServiceName(s entity.Sale) string {
	if uc.names == nil {
		return s.Service
	}
	return uc.names.ServiceName(s.Service)
}

// GetSummary construye el resumen del día indicado (YYYY-MM-DD, vacío = hoy).
//
//  1. Total y cantidad de ventas del día
//  2. Totales por servicio y por empleado, de mayor a menor
//  3. Las 5 ventas más recientes con datos del cliente
//  4. Los 7 días seleccionables terminando hoy
func (uc *DashboardUseCase) GetSummary(date string) (*dto.DashboardSummaryDTO, error) {
	day, err := uc.ParseDay(date)
	if err != nil {
		return nil, err
	}
	daySales := uc.DaySales(day)

	total := decimal.Zero
	byService := newGrouper()
	byEmployee := newGrouper()
	for _, s := range daySales {
		total = total.Add(s.Amount)
		byService.add(uc.ServiceName(s), s.Amount)
		byEmployee.add(s.EmployeeName, s.Amount)
	}

	recent := make([]dto.RecentSaleDTO, 0, dashboardRecentSales)
	for i, s := range daySales {
		if i == dashboardRecentSales {
			break
		}
		recent = append(recent, dto.RecentSaleDTO{
			ID:              s.ID,
			ServiceName:     uc.ServiceName(s),
			Amount:          s.Amount,
			EmployeeName:    s.EmployeeName,
			Date:            s.Date,
			CustomerName:    s.CustomerName,
			CustomerContact: s.CustomerContact,
		})
	}

	return &dto.DashboardSummaryDTO{
		Date:          day.Format(dayLayout),
		TotalSales:    total,
		SalesCount:    len(daySales),
		ByService:     byService.sorted(),
		ByEmployee:    byEmployee.sorted(),
		RecentSales:   recent,
		SelectableDay: uc.selectableDays(),
	}, nil
}

func (uc *DashboardUseCase) selectableDays() []string {
	today := uc.now().UTC()
	days := make([]string, 0, dashboardDays)
	for i := 0; i < dashboardDays; i++ {
		days = append(days, today.AddDate(0, 0, -i).Format(dayLayout))
	}
	return days
}

type grouper struct {
	order []string
	items map[string]*dto.AmountByKey
}

func newGrouper() *grouper {
	return &grouper{items: map[string]*dto.AmountByKey{}}
}

func (g *grouper) add(name string, amount decimal.Decimal) {
	it, ok := g.items[name]
	if !ok {
		it = &dto.AmountByKey{Name: name, Total: decimal.Zero}
		g.items[name] = it
		g.order = append(g.order, name)
	}
	it.Total = it.Total.Add(amount)
	it.Count++
}

// sorted devuelve los grupos de mayor a menor total; empates por orden de aparición.
func (g *grouper) sorted() []dto.AmountByKey {
	out := make([]dto.AmountByKey, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, *g.items[name])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out
}

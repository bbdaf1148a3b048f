// Package pdf genera el reporte diario de ventas del salón.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del salón      │  Reporte diario + Fecha    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DEL DÍA + cantidad de ventas                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR SERVICIO          │  POR EMPLEADO                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Hora | Servicio | Empleado | Cliente | Monto         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-pos/internal/application/analytics"
	"github.com/jhoicas/salon-pos/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 40, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ analytics.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateDailyReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateDailyReport(_ context.Context, r analytics.DailyReport) ([]byte, error) {
	if r.Summary == nil {
		return nil, fmt.Errorf("pdf: reporte sin resumen")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte diario de ventas "+r.Summary.Date, true).
		WithAuthor(r.Title, true).
		Build()

	m := maroto.New(cfg)
	money := func(d decimal.Decimal) string { return r.CurrencySymbol + " " + formatMoney(d) }

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalRow(r.Summary, money))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(breakdownRows(r.Summary, money)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(r.Sales, money)...)
	if len(r.Sales) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin ventas registradas en el día.", props.Text{Size: 9, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r analytics.DailyReport) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(r.Title, "Salón"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DIARIO DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+r.Summary.Date, props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func totalRow(s *dto.DashboardSummaryDTO, money func(decimal.Decimal) string) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("TOTAL DEL DÍA", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(money(s.TotalSales), props.Text{Style: fontstyle.Bold, Size: 14, Top: 6}),
		),
		col.New(6).Add(
			text.New("VENTAS", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%d", s.SalesCount), props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Right, Top: 6}),
		),
	)
}

// breakdownRows: por servicio (izq) y por empleado (der), una fila por posición.
func breakdownRows(s *dto.DashboardSummaryDTO, money func(decimal.Decimal) string) []core.Row {
	title := func(label string) core.Component {
		return text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1})
	}
	rows := []core.Row{row.New(6).Add(
		col.New(6).Add(title("POR SERVICIO")),
		col.New(6).Add(title("POR EMPLEADO")),
	)}
	n := len(s.ByService)
	if len(s.ByEmployee) > n {
		n = len(s.ByEmployee)
	}
	cell := func(items []dto.AmountByKey, i int) []core.Col {
		if i >= len(items) {
			return []core.Col{col.New(4), col.New(2)}
		}
		return []core.Col{
			col.New(4).Add(text.New(fmt.Sprintf("%s (%d)", items[i].Name, items[i].Count), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money(items[i].Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 3})),
		}
	}
	for i := 0; i < n; i++ {
		cols := append(cell(s.ByService, i), cell(s.ByEmployee, i)...)
		rows = append(rows, row.New(5).Add(cols...))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Hora", 1, align.Left),
		h("Servicio", 3, align.Left),
		h("Empleado", 3, align.Left),
		h("Cliente", 3, align.Left),
		h("Monto", 2, align.Right),
	)
}

// tableRows: una fila por venta del día.
func tableRows(sales []dto.RecentSaleDTO, money func(decimal.Decimal) string) []core.Row {
	result := make([]core.Row, 0, len(sales))
	for _, s := range sales {
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(s.Date.UTC().Format("15:04"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(s.ServiceName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(s.EmployeeName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(customer(s), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(money(s.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func customer(s dto.RecentSaleDTO) string {
	switch {
	case s.CustomerName != "" && s.CustomerContact != "":
		return fmt.Sprintf("%s (%s)", s.CustomerName, s.CustomerContact)
	case s.CustomerName != "":
		return s.CustomerName
	case s.CustomerContact != "":
		return s.CustomerContact
	}
	return "-"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney dos decimales con separador de miles.
// Ej: 25000 → "25,000.00", -1234.5 → "-1,234.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}

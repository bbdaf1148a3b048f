// Package xlsx exporta las ventas del día a una hoja de cálculo.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/salon-pos/internal/application/analytics"
	"github.com/jhoicas/salon-pos/internal/application/dto"
)

const (
	salesSheet   = "Ventas"
	summarySheet = "Resumen"
)

var _ analytics.SalesSheetGenerator = (*SheetGenerator)(nil)

// SheetGenerator implementa analytics.SalesSheetGenerator con excelize.
type SheetGenerator struct{}

// NewSheetGenerator construye el generador.
func NewSheetGenerator() *SheetGenerator { return &SheetGenerator{} }

// GenerateSalesSheet hoja "Ventas" con una fila por venta y hoja "Resumen" con los totales agrupados.
func (g *SheetGenerator) GenerateSalesSheet(_ context.Context, r analytics.DailyReport) ([]byte, error) {
	if r.Summary == nil {
		return nil, fmt.Errorf("xlsx: reporte sin resumen")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(salesSheet)
	if err != nil {
		return nil, err
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"ID", "Fecha", "Servicio", "Empleado", "Cliente", "Contacto", "Monto"}
	if err := writeRow(f, salesSheet, 1, toAny(header)); err != nil {
		return nil, err
	}
	for i, s := range r.Sales {
		amount, _ := s.Amount.Float64()
		values := []any{
			s.ID,
			s.Date.UTC().Format("2006-01-02 15:04"),
			s.ServiceName,
			s.EmployeeName,
			s.CustomerName,
			s.CustomerContact,
			amount,
		}
		if err := writeRow(f, salesSheet, i+2, values); err != nil {
			return nil, err
		}
	}
	total, _ := r.Summary.TotalSales.Float64()
	totalRow := len(r.Sales) + 2
	if err := writeRow(f, salesSheet, totalRow, []any{"", "", "", "", "", "TOTAL", total}); err != nil {
		return nil, err
	}

	_ = f.SetColWidth(salesSheet, "A", "A", 16)
	_ = f.SetColWidth(salesSheet, "B", "B", 18)
	_ = f.SetColWidth(salesSheet, "C", "D", 24)
	_ = f.SetColWidth(salesSheet, "E", "F", 22)
	_ = f.SetColWidth(salesSheet, "G", "G", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#78285A"}, Pattern: 1},
	})
	_ = f.SetCellStyle(salesSheet, "A1", "G1", headerStyle)
	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	totalCell, _ := excelize.CoordinatesToCellName(6, totalRow)
	amountCell, _ := excelize.CoordinatesToCellName(7, totalRow)
	_ = f.SetCellStyle(salesSheet, totalCell, amountCell, boldStyle)

	if err := writeSummary(f, r); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(summarySheet, "A1", "C1", headerStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, r analytics.DailyReport) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	row := 1
	if err := writeRow(f, summarySheet, row, []any{"Agrupación", "Nombre", "Total"}); err != nil {
		return err
	}
	groups := []struct {
		label string
		items []dto.AmountByKey
	}{
		{"Servicio", r.Summary.ByService},
		{"Empleado", r.Summary.ByEmployee},
	}
	for _, group := range groups {
		for _, it := range group.items {
			row++
			total, _ := it.Total.Float64()
			if err := writeRow(f, summarySheet, row, []any{group.label, it.Name, total}); err != nil {
				return err
			}
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 14)
	_ = f.SetColWidth(summarySheet, "B", "B", 28)
	_ = f.SetColWidth(summarySheet, "C", "C", 14)
	return nil
}

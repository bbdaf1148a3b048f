package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/salon-pos/internal/application/dto"
)

// DailyReport datos del reporte diario: el resumen del dashboard más todas las ventas del día.
type DailyReport struct {
	Title          string
	CurrencySymbol string
	Summary        *dto.DashboardSummaryDTO
	Sales          []dto.RecentSaleDTO
}

// ReportPDFGenerator puerto de salida: genera el PDF del reporte diario.
type ReportPDFGenerator interface {
	GenerateDailyReport(ctx context.Context, r DailyReport) ([]byte, error)
}

// SalesSheetGenerator puerto de salida: genera la hoja de cálculo de ventas del día.
type SalesSheetGenerator interface {
	GenerateSalesSheet(ctx context.Context, r DailyReport) ([]byte, error)
}

// ReportUseCase arma reportes descargables sobre el mismo corte del dashboard.
type ReportUseCase struct {
	dashboard *DashboardUseCase
	pdf       ReportPDFGenerator
	sheet     SalesSheetGenerator
	title     string
	currency  string
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(dashboard *DashboardUseCase, pdf ReportPDFGenerator, sheet SalesSheetGenerator, title, currency string) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, pdf: pdf, sheet: sheet, title: title, currency: currency}
}

// Build arma el reporte del día (YYYY-MM-DD, vacío = hoy).
func (uc *ReportUseCase) Build(date string) (*DailyReport, error) {
	summary, err := uc.dashboard.GetSummary(date)
	if err != nil {
		return nil, err
	}
	day, err := uc.dashboard.ParseDay(date)
	if err != nil {
		return nil, err
	}
	daySales := uc.dashboard.DaySales(day)
	rows := make([]dto.RecentSaleDTO, 0, len(daySales))
	for _, s := range daySales {
		rows = append(rows, dto.RecentSaleDTO{
			ID:              s.ID,
			ServiceName:     uc.dashboard.ServiceName(s),
			Amount:          s.Amount,
			EmployeeName:    s.EmployeeName,
			Date:            s.Date,
			CustomerName:    s.CustomerName,
			CustomerContact: s.CustomerContact,
		})
	}
	return &DailyReport{Title: uc.title, CurrencySymbol: uc.currency, Summary: summary, Sales: rows}, nil
}

// PDF genera el reporte diario en PDF.
func (uc *ReportUseCase) PDF(ctx context.Context, date string) ([]byte, string, error) {
	r, err := uc.Build(date)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateDailyReport(ctx, *r)
	if err != nil {
		return nil, "", err
	}
	return b, fmt.Sprintf("reporte-%s.pdf", r.Summary.Date), nil
}

// XLSX genera la exportación de ventas del día.
func (uc *ReportUseCase) XLSX(ctx context.Context, date string) ([]byte, string, error) {
	r, err := uc.Build(date)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.sheet.GenerateSalesSheet(ctx, *r)
	if err != nil {
		return nil, "", err
	}
	return b, fmt.Sprintf("ventas-%s.xlsx", r.Summary.Date), nil
}

package xlsx_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/salon-pos/internal/application/analytics"
	"github.com/jhoicas/salon-pos/internal/application/dto"
	"github.com/jhoicas/salon-pos/internal/infrastructure/xlsx"
)

func TestGenerateSalesSheet(t *testing.T) {
	r := analytics.DailyReport{
		Summary: &dto.DashboardSummaryDTO{
			Date:       "2024-05-20",
			TotalSales: decimal.NewFromInt(1400),
			ByService:  []dto.AmountByKey{{Name: "Color", Total: decimal.NewFromInt(900)}, {Name: "Haircut", Total: decimal.NewFromInt(500)}},
			ByEmployee: []dto.AmountByKey{{Name: "Jane", Total: decimal.NewFromInt(1400)}},
		},
		Sales: []dto.RecentSaleDTO{
			{ID: "2", ServiceName: "Color", Amount: decimal.NewFromInt(900), EmployeeName: "Jane", Date: time.Date(2024, 5, 20, 11, 0, 0, 0, time.UTC), CustomerName: "Ana"},
			{ID: "1", ServiceName: "Haircut", Amount: decimal.NewFromInt(500), EmployeeName: "Jane", Date: time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)},
		},
	}
	b, err := xlsx.NewSheetGenerator().GenerateSalesSheet(context.Background(), r)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Ventas", "Resumen"}, f.GetSheetList())
	rows, err := f.GetRows("Ventas")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Servicio", rows[0][2])
	assert.Equal(t, "Color", rows[1][2])
	assert.Equal(t, "Ana", rows[1][4])
	assert.Equal(t, "TOTAL", rows[3][5])
	assert.Equal(t, "1400", rows[3][6])

	summary, err := f.GetRows("Resumen")
	require.NoError(t, err)
	assert.Len(t, summary, 4)
}

func TestGenerateSalesSheet_RequiresSummary(t *testing.T) {
	_, err := xlsx.NewSheetGenerator().GenerateSalesSheet(context.Background(), analytics.DailyReport{})
	assert.Error(t, err)
}

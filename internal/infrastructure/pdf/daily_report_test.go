package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salon-pos/internal/application/analytics"
	"github.com/jhoicas/salon-pos/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]decimal.Decimal{
		"0.00":         decimal.Zero,
		"500.00":       decimal.NewFromInt(500),
		"25,000.00":    decimal.NewFromInt(25000),
		"1,000,000.50": decimal.RequireFromString("1000000.5"),
		"-1,234.50":    decimal.RequireFromString("-1234.5"),
	}
	for want, in := range cases {
		assert.Equal(t, want, formatMoney(in))
	}
}

func TestGenerateDailyReport_ProducesPDF(t *testing.T) {
	r := analytics.DailyReport{
		Title:          "Salon",
		CurrencySymbol: "$",
		Summary: &dto.DashboardSummaryDTO{
			Date:       "2024-05-20",
			TotalSales: decimal.NewFromInt(1400),
			SalesCount: 2,
			ByService:  []dto.AmountByKey{{Name: "Color", Total: decimal.NewFromInt(900), Count: 1}, {Name: "Haircut", Total: decimal.NewFromInt(500), Count: 1}},
			ByEmployee: []dto.AmountByKey{{Name: "Jane", Total: decimal.NewFromInt(1400), Count: 2}},
		},
		Sales: []dto.RecentSaleDTO{
			{ID: "2", ServiceName: "Color", Amount: decimal.NewFromInt(900), EmployeeName: "Jane", Date: time.Date(2024, 5, 20, 11, 0, 0, 0, time.UTC), CustomerName: "Ana"},
			{ID: "1", ServiceName: "Haircut", Amount: decimal.NewFromInt(500), EmployeeName: "Jane", Date: time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)},
		},
	}
	b, err := NewMarotoReportGenerator().GenerateDailyReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerateDailyReport_RequiresSummary(t *testing.T) {
	_, err := NewMarotoReportGenerator().GenerateDailyReport(context.Background(), analytics.DailyReport{})
	assert.Error(t, err)
}

func TestCustomerLabel(t *testing.T) {
	assert.Equal(t, "Ana (555)", customer(dto.RecentSaleDTO{CustomerName: "Ana", CustomerContact: "555"}))
	assert.Equal(t, "-", customer(dto.RecentSaleDTO{}))
}

package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salon-pos/internal/application/analytics"
	"github.com/jhoicas/salon-pos/internal/domain"
)

type captureGenerator struct {
	got analytics.DailyReport
}

func (g *captureGenerator) GenerateDailyReport(_ context.Context, r analytics.DailyReport) ([]byte, error) {
	g.got = r
	return []byte("%PDF"), nil
}

func (g *captureGenerator) GenerateSalesSheet(_ context.Context, r analytics.DailyReport) ([]byte, error) {
	g.got = r
	return []byte("PK"), nil
}

func TestReport_IncludesEveryDaySale(t *testing.T) {
	sales := staticSales{}
	for i := 0; i < 8; i++ {
		sales = append(sales, sale(string(rune('a'+i)), "s1", "Jane", 100, today.Add(-time.Duration(i)*time.Minute)))
	}
	gen := &captureGenerator{}
	uc := analytics.NewReportUseCase(newUseCase(sales), gen, gen, "Salon", "$")

	b, name, err := uc.PDF(context.Background(), "2024-05-20")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b))
	assert.Equal(t, "reporte-2024-05-20.pdf", name)
	assert.Len(t, gen.got.Sales, 8)
	assert.Len(t, gen.got.Summary.RecentSales, 5)
	assert.Equal(t, "Haircut", gen.got.Sales[0].ServiceName)

	_, name, err = uc.XLSX(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "ventas-2024-05-20.xlsx", name)
}

func TestReport_InvalidDate(t *testing.T) {
	gen := &captureGenerator{}
	uc := analytics.NewReportUseCase(newUseCase(nil), gen, gen, "Salon", "$")
	_, _, err := uc.PDF(context.Background(), "ayer")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

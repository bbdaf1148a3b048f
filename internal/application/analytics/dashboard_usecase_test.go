package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salon-pos/internal/application/analytics"
	"github.com/jhoicas/salon-pos/internal/domain"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
)

type staticSales []entity.Sale

func (s staticSales) List() []entity.Sale { return s }

type namer map[string]string

func (n namer) ServiceName(ref string) string {
	if name, ok := n[ref]; ok {
		return name
	}
	return ref
}

var today = time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC)

func sale(id, service, employee string, amount int64, at time.Time) entity.Sale {
	return entity.Sale{ID: id, Service: service, EmployeeName: employee, Amount: decimal.NewFromInt(amount), Date: at}
}

func newUseCase(sales staticSales) *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(sales, namer{"s1": "Haircut", "s2": "Color"}).
		WithClock(func() time.Time { return today })
}

func TestGetSummary_TodayAggregates(t *testing.T) {
	sales := staticSales{
		sale("6", "s1", "Jane", 500, today.Add(-time.Minute)),
		sale("5", "s2", "John", 900, today.Add(-2*time.Minute)),
		sale("4", "s1", "Jane", 500, today.Add(-3*time.Minute)),
		sale("3", "Tinte", "Jane", 100, today.Add(-4*time.Minute)),
		sale("2", "s1", "John", 500, today.Add(-5*time.Minute)),
		sale("1", "s1", "Jane", 500, today.Add(-6*time.Minute)),
		sale("0", "s1", "Jane", 500, today.AddDate(0, 0, -1)),
	}
	got, err := newUseCase(sales).GetSummary("")
	require.NoError(t, err)

	assert.Equal(t, "2024-05-20", got.Date)
	assert.Equal(t, 6, got.SalesCount)
	assert.True(t, decimal.NewFromInt(3000).Equal(got.TotalSales))

	require.Len(t, got.ByService, 3)
	assert.Equal(t, "Haircut", got.ByService[0].Name)
	assert.True(t, decimal.NewFromInt(2000).Equal(got.ByService[0].Total))
	assert.Equal(t, 4, got.ByService[0].Count)
	assert.Equal(t, "Color", got.ByService[1].Name)
	assert.Equal(t, "Tinte", got.ByService[2].Name)

	require.Len(t, got.ByEmployee, 2)
	assert.Equal(t, "Jane", got.ByEmployee[0].Name)
	assert.True(t, decimal.NewFromInt(1600).Equal(got.ByEmployee[0].Total))

	require.Len(t, got.RecentSales, 5)
	assert.Equal(t, "6", got.RecentSales[0].ID)
	assert.Equal(t, "Haircut", got.RecentSales[0].ServiceName)

	require.Len(t, got.SelectableDay, 7)
	assert.Equal(t, "2024-05-20", got.SelectableDay[0])
	assert.Equal(t, "2024-05-14", got.SelectableDay[6])
}

func TestGetSummary_SelectedDay(t *testing.T) {
	sales := staticSales{
		sale("2", "s1", "Jane", 500, today),
		sale("1", "s2", "John", 900, today.AddDate(0, 0, -1)),
	}
	got, err := newUseCase(sales).GetSummary("2024-05-19")
	require.NoError(t, err)
	assert.Equal(t, 1, got.SalesCount)
	assert.True(t, decimal.NewFromInt(900).Equal(got.TotalSales))
	assert.Equal(t, "John", got.RecentSales[0].EmployeeName)
}

func TestGetSummary_EmptyDay(t *testing.T) {
	got, err := newUseCase(nil).GetSummary("2024-01-01")
	require.NoError(t, err)
	assert.True(t, got.TotalSales.IsZero())
	assert.Empty(t, got.ByService)
	assert.NotNil(t, got.RecentSales)
}

func TestGetSummary_InvalidDate(t *testing.T) {
	_, err := newUseCase(nil).GetSummary("20-05-2024")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

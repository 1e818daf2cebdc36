package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSummarize(t *testing.T) {
	start, end := MonthRange(1, 2026)
	summary := summarize(start, end, repository.PeriodTotals{
		Revenue:    d("10000"),
		Cost:       d("6000"),
		OrderCount: 42,
	}, d("1500"))

	assert.True(t, summary.GrossProfit.Equal(d("4000")))
	assert.True(t, summary.GrossMargin.Equal(d("0.4")))
	assert.True(t, summary.NetProfit.Equal(d("2500")))
	assert.Equal(t, int64(42), summary.OrderCount)
}

func TestSummarizeZeroRevenue(t *testing.T) {
	start, end := MonthRange(2, 2026)

	// No delivered orders: margin is zero, not a division error
	summary := summarize(start, end, repository.PeriodTotals{}, d("500"))
	assert.True(t, summary.GrossMargin.IsZero())
	assert.True(t, summary.GrossProfit.IsZero())
	assert.True(t, summary.NetProfit.Equal(d("-500")))
}

func TestSummarizeNegativeGross(t *testing.T) {
	start, end := MonthRange(3, 2026)
	summary := summarize(start, end, repository.PeriodTotals{
		Revenue: d("1000"),
		Cost:    d("1300"),
	}, decimal.Zero)

	assert.True(t, summary.GrossProfit.Equal(d("-300")))
	assert.True(t, summary.GrossMargin.Equal(d("-0.3")))
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2, 2026)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Month(2), end.Month())
	assert.Equal(t, 28, end.Day())

	// Year boundary
	start, end = MonthRange(12, 2025)
	assert.Equal(t, 2025, start.Year())
	assert.Equal(t, 31, end.Day())
	assert.Equal(t, 2025, end.Year())
}

func TestExportProfitLossTotalsRow(t *testing.T) {
	// Every month reports the same delivered totals and approved costs, so
	// the yearly totals row is twelve times the monthly figures.
	orderRepo := &fakeOrderRepo{delivered: repository.PeriodTotals{
		Revenue:    d("1000"),
		Cost:       d("600"),
		OrderCount: 2,
	}}
	svc := NewProfitService(orderRepo, &fakeCostRepo{approved: d("100")})

	data, err := svc.ExportProfitLoss(context.Background(), 2026)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	sheet := "Profit & Loss"
	rows, err := wb.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 14, "header + 12 months + totals")

	label, err := wb.GetCellValue(sheet, "A14")
	require.NoError(t, err)
	assert.Equal(t, "Total", label)

	orders, _ := wb.GetCellValue(sheet, "B14")
	assert.Equal(t, "24", orders)
	revenue, _ := wb.GetCellValue(sheet, "C14")
	assert.Equal(t, "12000", revenue)
	net, _ := wb.GetCellValue(sheet, "H14")
	assert.Equal(t, "3600", net)
}

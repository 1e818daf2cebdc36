package service

import (
	"context"
	"fmt"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ProfitSummary is the profit-and-loss result for one period.
type ProfitSummary struct {
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	Revenue          decimal.Decimal `json:"revenue"`
	COGS             decimal.Decimal `json:"cogs"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	GrossMargin      decimal.Decimal `json:"gross_margin"` // Fraction, 0 when revenue is 0
	OperationalCosts decimal.Decimal `json:"operational_costs"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	OrderCount       int64           `json:"order_count"`
}

// MonthlySummary pairs a month label with its profit numbers for trend output.
type MonthlySummary struct {
	Month   int           `json:"month"`
	Year    int           `json:"year"`
	Summary ProfitSummary `json:"summary"`
}

// marginScale is the rounding precision for the computed margin fraction.
const marginScale = 4

// summarize derives gross/net profit and margin from period aggregates.
// Revenue of zero yields a zero margin rather than a division error.
func summarize(start, end time.Time, totals repository.PeriodTotals, costs decimal.Decimal) ProfitSummary {
	gross := totals.Revenue.Sub(totals.Cost)
	margin := decimal.Zero
	if totals.Revenue.IsPositive() {
		margin = gross.Div(totals.Revenue).Round(marginScale)
	}
	return ProfitSummary{
		StartDate:        start,
		EndDate:          end,
		Revenue:          totals.Revenue,
		COGS:             totals.Cost,
		GrossProfit:      gross,
		GrossMargin:      margin,
		OperationalCosts: costs,
		NetProfit:        gross.Sub(costs),
		OrderCount:       totals.OrderCount,
	}
}

// MonthRange returns the inclusive [first instant, last instant] of a month in UTC.
func MonthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

type ProfitService interface {
	PeriodSummary(ctx context.Context, start, end time.Time) (ProfitSummary, error)
	MonthlySummary(ctx context.Context, month, year int) (ProfitSummary, error)
	Trend(ctx context.Context, year int) ([]MonthlySummary, error)
	YearToDate(ctx context.Context, year int, now time.Time) (ProfitSummary, error)
	ExportProfitLoss(ctx context.Context, year int) ([]byte, error)
}

type profitService struct {
	orderRepo repository.OrderRepository
	costRepo  repository.CostRepository
}

func NewProfitService(orderRepo repository.OrderRepository, costRepo repository.CostRepository) ProfitService {
	return &profitService{orderRepo: orderRepo, costRepo: costRepo}
}

// PeriodSummary re-scans delivered orders and approved costs for the range on
// every call. No incremental computation; rollups re-invoke with different
// boundaries.
func (s *profitService) PeriodSummary(ctx context.Context, start, end time.Time) (ProfitSummary, error) {
	if end.Before(start) {
		return ProfitSummary{}, fmt.Errorf("%w: end date before start date", ErrValidation)
	}

	totals, err := s.orderRepo.DeliveredTotals(ctx, start, end)
	if err != nil {
		return ProfitSummary{}, err
	}
	costs, err := s.costRepo.ApprovedTotal(ctx, start, end)
	if err != nil {
		return ProfitSummary{}, err
	}

	return summarize(start, end, totals, costs), nil
}

func (s *profitService) MonthlySummary(ctx context.Context, month, year int) (ProfitSummary, error) {
	if month < 1 || month > 12 {
		return ProfitSummary{}, fmt.Errorf("%w: month must be 1-12", ErrValidation)
	}
	start, end := MonthRange(month, year)
	return s.PeriodSummary(ctx, start, end)
}

func (s *profitService) Trend(ctx context.Context, year int) ([]MonthlySummary, error) {
	trend := make([]MonthlySummary, 0, 12)
	for month := 1; month <= 12; month++ {
		summary, err := s.MonthlySummary(ctx, month, year)
		if err != nil {
			return nil, err
		}
		trend = append(trend, MonthlySummary{Month: month, Year: year, Summary: summary})
	}
	return trend, nil
}

func (s *profitService) YearToDate(ctx context.Context, year int, now time.Time) (ProfitSummary, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := now.UTC()
	if year < now.UTC().Year() {
		end = time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	}
	return s.PeriodSummary(ctx, start, end)
}

// ExportProfitLoss renders the 12-month trend for a year as an XLSX workbook,
// closed by a yearly totals row.
func (s *profitService) ExportProfitLoss(ctx context.Context, year int) ([]byte, error) {
	trend, err := s.Trend(ctx, year)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Profit & Loss"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"Month", "Orders", "Revenue", "COGS", "Gross Profit", "Gross Margin", "Operational Costs", "Net Profit"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	var total ProfitSummary
	for rowIdx, m := range trend {
		total.OrderCount += m.Summary.OrderCount
		total.Revenue = total.Revenue.Add(m.Summary.Revenue)
		total.COGS = total.COGS.Add(m.Summary.COGS)
		total.GrossProfit = total.GrossProfit.Add(m.Summary.GrossProfit)
		total.OperationalCosts = total.OperationalCosts.Add(m.Summary.OperationalCosts)
		total.NetProfit = total.NetProfit.Add(m.Summary.NetProfit)

		values := []interface{}{
			fmt.Sprintf("%04d-%02d", m.Year, m.Month),
			m.Summary.OrderCount,
			m.Summary.Revenue.InexactFloat64(),
			m.Summary.COGS.InexactFloat64(),
			m.Summary.GrossProfit.InexactFloat64(),
			m.Summary.GrossMargin.InexactFloat64(),
			m.Summary.OperationalCosts.InexactFloat64(),
			m.Summary.NetProfit.InexactFloat64(),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	if total.Revenue.IsPositive() {
		total.GrossMargin = total.GrossProfit.Div(total.Revenue).Round(marginScale)
	}
	totalValues := []interface{}{
		"Total",
		total.OrderCount,
		total.Revenue.InexactFloat64(),
		total.COGS.InexactFloat64(),
		total.GrossProfit.InexactFloat64(),
		total.GrossMargin.InexactFloat64(),
		total.OperationalCosts.InexactFloat64(),
		total.NetProfit.InexactFloat64(),
	}
	for colIdx, v := range totalValues {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, len(trend)+2)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return nil, fmt.Errorf("failed to write totals row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

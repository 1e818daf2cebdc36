package service

import (
	"testing"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompareLedgerTotalsMatching(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	report := CompareLedgerTotals(start, end,
		repository.LedgerTotals{Credits: d("1000.00"), Debits: d("600.00")},
		repository.PeriodTotals{Revenue: d("1000.00"), Cost: d("600.00")},
	)

	assert.True(t, report.RevenueMatch)
	assert.True(t, report.COGSMatch)
	assert.True(t, report.OverallMatch)
	assert.True(t, report.RevenueDifference.IsZero())
	assert.True(t, report.COGSDifference.IsZero())
}

func TestCompareLedgerTotalsWithinEpsilon(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	// A one-cent rounding drift still counts as reconciled
	report := CompareLedgerTotals(start, end,
		repository.LedgerTotals{Credits: d("1000.01"), Debits: d("600.00")},
		repository.PeriodTotals{Revenue: d("1000.00"), Cost: d("600.00")},
	)
	assert.True(t, report.RevenueMatch)
	assert.True(t, report.OverallMatch)
}

func TestCompareLedgerTotalsMismatch(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	report := CompareLedgerTotals(start, end,
		repository.LedgerTotals{Credits: d("950.00"), Debits: d("600.02")},
		repository.PeriodTotals{Revenue: d("1000.00"), Cost: d("600.00")},
	)

	assert.False(t, report.RevenueMatch)
	assert.False(t, report.COGSMatch)
	assert.False(t, report.OverallMatch)
	assert.True(t, report.RevenueDifference.Equal(d("-50.00")))
	assert.True(t, report.COGSDifference.Equal(d("0.02")))
}

func TestCompareLedgerTotalsPartialMismatch(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	// One side matching is not enough for overall reconciliation
	report := CompareLedgerTotals(start, end,
		repository.LedgerTotals{Credits: d("1000.00"), Debits: d("500.00")},
		repository.PeriodTotals{Revenue: d("1000.00"), Cost: d("600.00")},
	)
	assert.True(t, report.RevenueMatch)
	assert.False(t, report.COGSMatch)
	assert.False(t, report.OverallMatch)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPartner(share string) model.Partner {
	return model.Partner{
		ID:                    uuid.New(),
		ProfitSharePercentage: decimal.RequireFromString(share),
		IsActive:              true,
	}
}

func TestAllocateSharesFullCapacity(t *testing.T) {
	netProfit := decimal.RequireFromString("10000")
	partners := []model.Partner{testPartner("60"), testPartner("25"), testPartner("15")}

	allocations := AllocateShares(netProfit, partners)
	require.Len(t, allocations, 3)

	assert.True(t, allocations[0].Amount.Equal(decimal.RequireFromString("6000")))
	assert.True(t, allocations[1].Amount.Equal(decimal.RequireFromString("2500")))
	assert.True(t, allocations[2].Amount.Equal(decimal.RequireFromString("1500")))

	// Shares summing to 100% allocate the full net profit
	total := decimal.Zero
	for _, a := range allocations {
		total = total.Add(a.Amount)
	}
	assert.True(t, total.Equal(netProfit))
}

func TestAllocateSharesFractionalRounding(t *testing.T) {
	netProfit := decimal.RequireFromString("1000.55")
	allocations := AllocateShares(netProfit, []model.Partner{testPartner("33.3333")})
	require.Len(t, allocations, 1)

	// 1000.55 * 33.3333 / 100 rounded to 4 places
	assert.True(t, allocations[0].Amount.Equal(decimal.RequireFromString("333.5163")),
		"got %s", allocations[0].Amount)
}

func TestAllocateSharesNoPartners(t *testing.T) {
	allocations := AllocateShares(decimal.RequireFromString("5000"), nil)
	assert.Empty(t, allocations)
}

func TestCanTransitionDistribution(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{model.DistributionPending, model.DistributionApproved, true},
		{model.DistributionPending, model.DistributionRejected, true},
		{model.DistributionPending, model.DistributionPaid, false},
		{model.DistributionApproved, model.DistributionPaid, true},
		{model.DistributionApproved, model.DistributionRejected, true},
		{model.DistributionApproved, model.DistributionPending, false},
		{model.DistributionPaid, model.DistributionRejected, false},
		{model.DistributionPaid, model.DistributionApproved, false},
		{model.DistributionRejected, model.DistributionApproved, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransitionDistribution(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestParsePeriod(t *testing.T) {
	start, end, err := parsePeriod("2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.True(t, start.Before(end))

	_, _, err = parsePeriod("2026-02-01", "2026-01-01")
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = parsePeriod("not-a-date", "2026-01-31")
	assert.ErrorIs(t, err, ErrValidation)
}

// distributionFixture wires the service against in-memory repositories and a
// nil advisory locker. Two active partners split a 900 net profit 60/40.
func distributionFixture() (DistributionService, *fakeDistributionRepo, *fakePartnerRepo) {
	partnerRepo := &fakePartnerRepo{partners: []model.Partner{testPartner("60"), testPartner("40")}}
	distRepo := newFakeDistributionRepo()
	profit := &fakeProfitService{summary: ProfitSummary{
		Revenue:          decimal.RequireFromString("1500"),
		COGS:             decimal.RequireFromString("400"),
		GrossProfit:      decimal.RequireFromString("1100"),
		GrossMargin:      decimal.RequireFromString("0.7333"),
		OperationalCosts: decimal.RequireFromString("200"),
		NetProfit:        decimal.RequireFromString("900"),
		OrderCount:       3,
	}}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	svc := NewDistributionService(partnerRepo, distRepo, &fakeActivityRepo{}, profit, fakeTxManager{}, nil, log)
	return svc, distRepo, partnerRepo
}

func TestDistributeSecondRunConflicts(t *testing.T) {
	svc, distRepo, _ := distributionFixture()
	adminID := uuid.New().String()
	req := DistributeRequest{
		Action:     "distribute",
		PeriodType: model.PeriodTypeMonthly,
		StartDate:  "2026-01-01",
		EndDate:    "2026-01-31",
	}

	created, err := svc.Distribute(context.Background(), adminID, req)
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, dist := range created {
		assert.Equal(t, model.DistributionPending, dist.Status)
	}

	// Re-running the same period must not duplicate rows
	_, err = svc.Distribute(context.Background(), adminID, req)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, distRepo.rows, 2)

	// An overlapping-but-different period is rejected the same way
	overlap := req
	overlap.StartDate = "2026-01-15"
	overlap.EndDate = "2026-02-14"
	_, err = svc.Distribute(context.Background(), adminID, overlap)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDistributeRejectedPeriodStillBlocks(t *testing.T) {
	svc, distRepo, partnerRepo := distributionFixture()

	// A REJECTED row occupies the partner+period slot until it is deleted,
	// matching the unique index on (partner_id, start_date, end_date).
	rejected := model.ProfitDistribution{
		ID:         uuid.New(),
		PartnerID:  partnerRepo.partners[0].ID,
		PeriodType: model.PeriodTypeMonthly,
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:     model.DistributionRejected,
	}
	distRepo.rows[rejected.ID] = rejected

	req := DistributeRequest{
		Action:     "distribute",
		PeriodType: model.PeriodTypeMonthly,
		StartDate:  "2026-01-01",
		EndDate:    "2026-01-31",
	}
	_, err := svc.Distribute(context.Background(), uuid.New().String(), req)
	assert.ErrorIs(t, err, ErrConflict)

	// Deleting the rejected row frees the period for a clean re-run
	require.NoError(t, svc.Delete(context.Background(), rejected.ID.String(), uuid.New().String()))
	created, err := svc.Distribute(context.Background(), uuid.New().String(), req)
	require.NoError(t, err)
	assert.Len(t, created, 2)
}

func TestDeletePaidDistributionConflicts(t *testing.T) {
	svc, distRepo, partnerRepo := distributionFixture()

	paid := model.ProfitDistribution{
		ID:         uuid.New(),
		PartnerID:  partnerRepo.partners[0].ID,
		PeriodType: model.PeriodTypeMonthly,
		StartDate:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		Status:     model.DistributionPaid,
	}
	distRepo.rows[paid.ID] = paid

	err := svc.Delete(context.Background(), paid.ID.String(), uuid.New().String())
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, distRepo.rows, paid.ID, "paid row must survive the delete attempt")

	// Non-terminal rows stay deletable
	pending := paid
	pending.ID = uuid.New()
	pending.Status = model.DistributionPending
	distRepo.rows[pending.ID] = pending
	require.NoError(t, svc.Delete(context.Background(), pending.ID.String(), uuid.New().String()))
	assert.NotContains(t, distRepo.rows, pending.ID)
}

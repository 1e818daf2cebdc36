package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/repository"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// --- DTOs ---

type DistributeRequest struct {
	Action     string `json:"action" binding:"required,oneof=distribute"`
	PeriodType string `json:"period_type" binding:"required,oneof=MONTHLY QUARTERLY YEARLY CUSTOM"`
	StartDate  string `json:"start_date" binding:"required"` // RFC3339 date, period-inclusive
	EndDate    string `json:"end_date" binding:"required"`
}

type DistributionStatusRequest struct {
	Status           string `json:"status" binding:"required,oneof=APPROVED PAID REJECTED"`
	PaymentMethod    string `json:"payment_method"`
	PaymentReference string `json:"payment_reference"`
	RejectionReason  string `json:"rejection_reason"`
}

// Allocation is one partner's computed cut of a distribution run.
type Allocation struct {
	PartnerID uuid.UUID
	Share     decimal.Decimal
	Amount    decimal.Decimal
}

// AllocateShares splits net profit across partners by their share percentage.
// The percentage is snapshotted by the caller; this is pure arithmetic:
// amount = netProfit * share / 100, rounded to 4 decimal places.
func AllocateShares(netProfit decimal.Decimal, partners []model.Partner) []Allocation {
	hundred := decimal.NewFromInt(100)
	allocations := make([]Allocation, 0, len(partners))
	for _, p := range partners {
		allocations = append(allocations, Allocation{
			PartnerID: p.ID,
			Share:     p.ProfitSharePercentage,
			Amount:    netProfit.Mul(p.ProfitSharePercentage).Div(hundred).Round(4),
		})
	}
	return allocations
}

// CanTransitionDistribution encodes the forward-only status machine:
// PENDING -> APPROVED -> PAID, and PENDING/APPROVED -> REJECTED.
// PAID and REJECTED are terminal.
func CanTransitionDistribution(from, to string) bool {
	switch from {
	case model.DistributionPending:
		return to == model.DistributionApproved || to == model.DistributionRejected
	case model.DistributionApproved:
		return to == model.DistributionPaid || to == model.DistributionRejected
	default:
		return false
	}
}

// --- Interface ---

type DistributionService interface {
	Distribute(ctx context.Context, userID string, req DistributeRequest) ([]model.ProfitDistribution, error)
	UpdateStatus(ctx context.Context, id, userID string, req DistributionStatusRequest) (*model.ProfitDistribution, error)
	Delete(ctx context.Context, id, userID string) error
	List(ctx context.Context, page, limit int, partnerID, status string) ([]model.ProfitDistribution, int64, error)
	Get(ctx context.Context, id string) (*model.ProfitDistribution, error)
}

type distributionService struct {
	partnerRepo      repository.PartnerRepository
	distributionRepo repository.DistributionRepository
	activityRepo     repository.ActivityRepository
	profitService    ProfitService
	txManager        repository.TransactionManager
	locker           *redislock.Client // nil skips the advisory lock
	log              *logrus.Logger
}

func NewDistributionService(
	partnerRepo repository.PartnerRepository,
	distributionRepo repository.DistributionRepository,
	activityRepo repository.ActivityRepository,
	profitService ProfitService,
	txManager repository.TransactionManager,
	locker *redislock.Client,
	log *logrus.Logger,
) DistributionService {
	return &distributionService{
		partnerRepo:      partnerRepo,
		distributionRepo: distributionRepo,
		activityRepo:     activityRepo,
		profitService:    profitService,
		txManager:        txManager,
		locker:           locker,
		log:              log,
	}
}

// distributionLockTTL bounds how long a run may hold the advisory lock.
const distributionLockTTL = 30 * time.Second

// Distribute computes net profit for the period and creates one PENDING
// distribution row per active partner inside a single transaction. A redis
// advisory lock keyed by the period rejects concurrent runs, and an overlap
// check against existing rows rejects re-runs of an already distributed
// period with a conflict.
func (s *distributionService) Distribute(ctx context.Context, userID string, req DistributeRequest) ([]model.ProfitDistribution, error) {
	start, end, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	lockKey := fmt.Sprintf("profit:distribute:%s:%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	if s.locker != nil {
		lock, lockErr := s.locker.Obtain(ctx, lockKey, distributionLockTTL, nil)
		if errors.Is(lockErr, redislock.ErrNotObtained) {
			return nil, fmt.Errorf("%w: a distribution run for this period is already in progress", ErrConflict)
		}
		if lockErr != nil {
			return nil, fmt.Errorf("failed to obtain distribution lock: %w", lockErr)
		}
		defer func() {
			if releaseErr := lock.Release(context.WithoutCancel(ctx)); releaseErr != nil {
				s.log.WithError(releaseErr).Warn("failed to release distribution lock")
			}
		}()
	}

	summary, err := s.profitService.PeriodSummary(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if !summary.NetProfit.IsPositive() {
		return nil, fmt.Errorf("%w: no positive net profit for the period", ErrValidation)
	}

	partners, err := s.partnerRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(partners) == 0 {
		return nil, fmt.Errorf("%w: no active partners to distribute to", ErrValidation)
	}

	allocations := AllocateShares(summary.NetProfit, partners)

	var created []model.ProfitDistribution
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		for _, alloc := range allocations {
			exists, existsErr := s.distributionRepo.ExistsOverlapping(txCtx, alloc.PartnerID, start, end)
			if existsErr != nil {
				return existsErr
			}
			if exists {
				return fmt.Errorf("%w: partner %s already has a distribution overlapping this period", ErrConflict, alloc.PartnerID)
			}

			dist := model.ProfitDistribution{
				PartnerID:          alloc.PartnerID,
				PeriodType:         req.PeriodType,
				StartDate:          start,
				EndDate:            end,
				TotalRevenue:       summary.Revenue,
				TotalCosts:         summary.COGS.Add(summary.OperationalCosts),
				NetProfit:          summary.NetProfit,
				PartnerShare:       alloc.Share,
				DistributionAmount: alloc.Amount,
				Status:             model.DistributionPending,
			}
			if createErr := s.distributionRepo.Create(txCtx, &dist); createErr != nil {
				return fmt.Errorf("failed to create distribution: %w", createErr)
			}
			created = append(created, dist)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"period_type": req.PeriodType,
			"start_date":  start,
			"end_date":    end,
			"net_profit":  summary.NetProfit,
			"partners":    len(allocations),
		})
		audit := &model.ActivityLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionDistributeProfit,
			EntityID:   lockKey,
			EntityName: req.PeriodType,
			Details:    string(details),
		}
		if auditErr := s.activityRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write activity log: %w", auditErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateStatus applies one state machine transition. PAID rows reject any
// further transition with a conflict. Paying increments the partner's
// lifetime received total under a row lock.
func (s *distributionService) UpdateStatus(ctx context.Context, id, userID string, req DistributionStatusRequest) (*model.ProfitDistribution, error) {
	distID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid distribution id", ErrValidation)
	}

	var updated *model.ProfitDistribution
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		dist, findErr := s.distributionRepo.FindByIDForUpdate(txCtx, distID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: distribution not found", ErrNotFound)
			}
			return findErr
		}

		if !CanTransitionDistribution(dist.Status, req.Status) {
			return fmt.Errorf("%w: cannot transition distribution from %s to %s", ErrConflict, dist.Status, req.Status)
		}

		now := time.Now().UTC()
		actor := parseUserID(userID)

		switch req.Status {
		case model.DistributionApproved:
			dist.Status = model.DistributionApproved
			dist.ApprovedBy = actor
			dist.ApprovedAt = &now
		case model.DistributionPaid:
			dist.Status = model.DistributionPaid
			dist.PaidAt = &now
			dist.PaymentMethod = req.PaymentMethod
			dist.PaymentReference = req.PaymentReference

			partner, partnerErr := s.partnerRepo.FindByIDForUpdate(txCtx, dist.PartnerID)
			if partnerErr != nil {
				return fmt.Errorf("failed to load partner: %w", partnerErr)
			}
			partner.TotalProfitReceived = partner.TotalProfitReceived.Add(dist.DistributionAmount)
			if updateErr := s.partnerRepo.Update(txCtx, partner); updateErr != nil {
				return fmt.Errorf("failed to update partner totals: %w", updateErr)
			}
		case model.DistributionRejected:
			dist.Status = model.DistributionRejected
			dist.RejectionReason = req.RejectionReason
			dist.ApprovedBy = nil
			dist.ApprovedAt = nil
		}

		if saveErr := s.distributionRepo.Update(txCtx, dist); saveErr != nil {
			return fmt.Errorf("failed to update distribution: %w", saveErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"status":            req.Status,
			"payment_method":    req.PaymentMethod,
			"payment_reference": req.PaymentReference,
		})
		audit := &model.ActivityLog{
			UserID:     actor,
			Action:     model.ActionUpdateDistribution,
			EntityID:   dist.ID.String(),
			EntityName: dist.PeriodType,
			Details:    string(details),
		}
		if auditErr := s.activityRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write activity log: %w", auditErr)
		}

		updated = dist
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a distribution row. PAID rows are undeletable.
func (s *distributionService) Delete(ctx context.Context, id, userID string) error {
	distID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid distribution id", ErrValidation)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		dist, findErr := s.distributionRepo.FindByIDForUpdate(txCtx, distID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: distribution not found", ErrNotFound)
			}
			return findErr
		}

		if dist.Status == model.DistributionPaid {
			return fmt.Errorf("%w: paid distributions cannot be deleted", ErrConflict)
		}

		if deleteErr := s.distributionRepo.Delete(txCtx, dist.ID); deleteErr != nil {
			return fmt.Errorf("failed to delete distribution: %w", deleteErr)
		}

		details, _ := json.Marshal(map[string]interface{}{"deleted": true, "status": dist.Status})
		audit := &model.ActivityLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionUpdateDistribution,
			EntityID:   dist.ID.String(),
			EntityName: dist.PeriodType,
			Details:    string(details),
		}
		return s.activityRepo.Log(txCtx, audit)
	})
}

func (s *distributionService) List(ctx context.Context, page, limit int, partnerID, status string) ([]model.ProfitDistribution, int64, error) {
	var pid *uuid.UUID
	if partnerID != "" {
		parsed, err := uuid.Parse(partnerID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid partner id", ErrValidation)
		}
		pid = &parsed
	}
	return s.distributionRepo.List(ctx, page, limit, pid, status)
}

func (s *distributionService) Get(ctx context.Context, id string) (*model.ProfitDistribution, error) {
	distID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid distribution id", ErrValidation)
	}
	dist, err := s.distributionRepo.FindByID(ctx, distID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: distribution not found", ErrNotFound)
		}
		return nil, err
	}
	return dist, nil
}

// --- helpers ---

func parsePeriod(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := parseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start_date", ErrValidation)
	}
	end, err := parseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end_date", ErrValidation)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date before start_date", ErrValidation)
	}
	return start, end, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", value)
}

func parseUserID(userID string) *uuid.UUID {
	if parsed, err := uuid.Parse(userID); err == nil {
		return &parsed
	}
	return nil
}

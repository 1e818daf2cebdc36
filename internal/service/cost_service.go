package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateCostRequest struct {
	Category    string  `json:"category" binding:"required,oneof=RENT UTILITIES SALARY MARKETING LOGISTICS OTHER"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description"`
	CostDate    string  `json:"cost_date" binding:"required"` // RFC3339 or YYYY-MM-DD
}

type CostFilter struct {
	Category string
	Month    int
	Year     int
	Page     int
	Limit    int
}

// --- Interface ---

type CostService interface {
	CreateCost(ctx context.Context, userID string, req CreateCostRequest) (*model.OperationalCost, error)
	ApproveCost(ctx context.Context, id, userID string) (*model.OperationalCost, error)
	ListCosts(ctx context.Context, filter CostFilter) ([]model.OperationalCost, int64, error)
}

type costService struct {
	costRepo     repository.CostRepository
	ledgerRepo   repository.LedgerRepository
	activityRepo repository.ActivityRepository
	txManager    repository.TransactionManager
}

func NewCostService(
	costRepo repository.CostRepository,
	ledgerRepo repository.LedgerRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
) CostService {
	return &costService{
		costRepo:     costRepo,
		ledgerRepo:   ledgerRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
	}
}

func (s *costService) CreateCost(ctx context.Context, userID string, req CreateCostRequest) (*model.OperationalCost, error) {
	costDate, err := parseDate(req.CostDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid cost_date", ErrValidation)
	}

	cost := &model.OperationalCost{
		Category:      req.Category,
		Amount:        decimal.NewFromFloat(req.Amount),
		Description:   req.Description,
		CostDate:      costDate,
		Month:         int(costDate.Month()),
		Year:          costDate.Year(),
		PaymentStatus: model.CostUnpaid,
		CreatedBy:     parseUserID(userID),
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.costRepo.Create(txCtx, cost); createErr != nil {
			return fmt.Errorf("failed to create cost: %w", createErr)
		}

		details, _ := json.Marshal(req)
		audit := &model.ActivityLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionCreateCost,
			EntityID:   cost.ID.String(),
			EntityName: req.Category,
			Details:    string(details),
		}
		return s.activityRepo.Log(txCtx, audit)
	})
	if err != nil {
		return nil, err
	}

	return cost, nil
}

// ApproveCost marks a cost approved and appends the matching DEBIT ledger
// entry in the same transaction. Approving twice is a conflict.
func (s *costService) ApproveCost(ctx context.Context, id, userID string) (*model.OperationalCost, error) {
	costID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid cost id", ErrValidation)
	}

	approver := parseUserID(userID)
	if approver == nil {
		return nil, fmt.Errorf("%w: acting user id is required", ErrValidation)
	}

	var approved *model.OperationalCost
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		cost, findErr := s.costRepo.FindByID(txCtx, costID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cost not found", ErrNotFound)
			}
			return findErr
		}

		if cost.IsApproved {
			return fmt.Errorf("%w: cost is already approved", ErrConflict)
		}

		now := time.Now().UTC()
		cost.IsApproved = true
		cost.ApprovedBy = approver
		cost.ApprovedAt = &now
		if saveErr := s.costRepo.Update(txCtx, cost); saveErr != nil {
			return fmt.Errorf("failed to approve cost: %w", saveErr)
		}

		entry := &model.LedgerEntry{
			SourceType:  model.LedgerSourceCost,
			Direction:   model.LedgerDebit,
			Amount:      cost.Amount,
			Description: "Operational cost: " + cost.Category,
			EntryDate:   cost.CostDate,
		}
		if ledgerErr := s.ledgerRepo.Create(txCtx, entry); ledgerErr != nil {
			return fmt.Errorf("failed to write cost ledger entry: %w", ledgerErr)
		}

		details, _ := json.Marshal(map[string]interface{}{"approved": true})
		audit := &model.ActivityLog{
			UserID:     approver,
			Action:     model.ActionApproveCost,
			EntityID:   cost.ID.String(),
			EntityName: cost.Category,
			Details:    string(details),
		}
		if auditErr := s.activityRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write activity log: %w", auditErr)
		}

		approved = cost
		return nil
	})
	if err != nil {
		return nil, err
	}

	return approved, nil
}

func (s *costService) ListCosts(ctx context.Context, filter CostFilter) ([]model.OperationalCost, int64, error) {
	return s.costRepo.List(ctx, filter.Page, filter.Limit, filter.Category, filter.Month, filter.Year)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreatePartnerRequest struct {
	Name                  string  `json:"name" binding:"required"`
	Email                 string  `json:"email" binding:"omitempty,email"`
	Phone                 string  `json:"phone"`
	ProfitSharePercentage float64 `json:"profit_share_percentage" binding:"gte=0,lte=100"`
	Override              bool    `json:"override"` // Admin acknowledgment that the 100% cap may be exceeded
}

type UpdatePartnerRequest struct {
	Name                  string   `json:"name"`
	Email                 string   `json:"email" binding:"omitempty,email"`
	Phone                 string   `json:"phone"`
	ProfitSharePercentage *float64 `json:"profit_share_percentage" binding:"omitempty,gte=0,lte=100"`
	IsActive              *bool    `json:"is_active"`
	Override              bool     `json:"override"`
}

// PartnerResult carries the partner plus an optional share-cap warning that
// was accepted via override.
type PartnerResult struct {
	Partner *model.Partner
	Warning string
}

var shareCapacity = decimal.NewFromInt(100)

// validateShareCap checks the active-partner share-sum invariant. With
// override set the write proceeds but a warning is returned for the caller to
// surface; without it the violation is a conflict.
func validateShareCap(otherShares, newShare decimal.Decimal, override bool) (string, error) {
	total := otherShares.Add(newShare)
	if total.LessThanOrEqual(shareCapacity) {
		return "", nil
	}
	if !override {
		return "", fmt.Errorf("%w: active partner shares would total %s%%, exceeding 100%%", ErrConflict, total.String())
	}
	return fmt.Sprintf("active partner shares now total %s%%, exceeding 100%%", total.String()), nil
}

// --- Interface ---

type PartnerService interface {
	CreatePartner(ctx context.Context, userID string, req CreatePartnerRequest) (PartnerResult, error)
	UpdatePartner(ctx context.Context, id, userID string, req UpdatePartnerRequest) (PartnerResult, error)
	DeactivatePartner(ctx context.Context, id, userID string) error
	GetPartner(ctx context.Context, id string) (*model.Partner, error)
	ListPartners(ctx context.Context, page, limit int, activeOnly bool) ([]model.Partner, int64, error)
}

type partnerService struct {
	partnerRepo  repository.PartnerRepository
	activityRepo repository.ActivityRepository
	txManager    repository.TransactionManager
	log          *logrus.Logger
}

func NewPartnerService(
	partnerRepo repository.PartnerRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
	log *logrus.Logger,
) PartnerService {
	return &partnerService{
		partnerRepo:  partnerRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		log:          log,
	}
}

func (s *partnerService) CreatePartner(ctx context.Context, userID string, req CreatePartnerRequest) (PartnerResult, error) {
	share := decimal.NewFromFloat(req.ProfitSharePercentage)

	var result PartnerResult
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		otherShares, sumErr := s.partnerRepo.ActiveShareSum(txCtx, nil)
		if sumErr != nil {
			return sumErr
		}

		warning, capErr := validateShareCap(otherShares, share, req.Override)
		if capErr != nil {
			return capErr
		}
		if warning != "" {
			s.log.WithFields(logrus.Fields{
				"partner": req.Name,
				"user_id": userID,
			}).Warn(warning)
		}

		partner := &model.Partner{
			Name:                  req.Name,
			Email:                 req.Email,
			Phone:                 req.Phone,
			ProfitSharePercentage: share,
			IsActive:              true,
			TotalProfitReceived:   decimal.Zero,
		}
		if createErr := s.partnerRepo.Create(txCtx, partner); createErr != nil {
			return fmt.Errorf("failed to create partner: %w", createErr)
		}

		details, _ := json.Marshal(req)
		audit := &model.ActivityLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionCreatePartner,
			EntityID:   partner.ID.String(),
			EntityName: partner.Name,
			Details:    string(details),
		}
		if auditErr := s.activityRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write activity log: %w", auditErr)
		}

		result = PartnerResult{Partner: partner, Warning: warning}
		return nil
	})
	if err != nil {
		return PartnerResult{}, err
	}

	return result, nil
}

func (s *partnerService) UpdatePartner(ctx context.Context, id, userID string, req UpdatePartnerRequest) (PartnerResult, error) {
	partnerID, err := uuid.Parse(id)
	if err != nil {
		return PartnerResult{}, fmt.Errorf("%w: invalid partner id", ErrValidation)
	}

	var result PartnerResult
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		partner, findErr := s.partnerRepo.FindByIDForUpdate(txCtx, partnerID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: partner not found", ErrNotFound)
			}
			return findErr
		}

		if req.Name != "" {
			partner.Name = req.Name
		}
		if req.Email != "" {
			partner.Email = req.Email
		}
		if req.Phone != "" {
			partner.Phone = req.Phone
		}
		if req.IsActive != nil {
			partner.IsActive = *req.IsActive
		}

		var warning string
		if req.ProfitSharePercentage != nil {
			newShare := decimal.NewFromFloat(*req.ProfitSharePercentage)

			// Percentage edits re-validate against the rest of the active pool.
			if partner.IsActive {
				otherShares, sumErr := s.partnerRepo.ActiveShareSum(txCtx, &partner.ID)
				if sumErr != nil {
					return sumErr
				}
				var capErr error
				warning, capErr = validateShareCap(otherShares, newShare, req.Override)
				if capErr != nil {
					return capErr
				}
				if warning != "" {
					s.log.WithFields(logrus.Fields{
						"partner_id": partner.ID,
						"user_id":    userID,
					}).Warn(warning)
				}
			}
			partner.ProfitSharePercentage = newShare
		}

		if saveErr := s.partnerRepo.Update(txCtx, partner); saveErr != nil {
			return fmt.Errorf("failed to update partner: %w", saveErr)
		}

		details, _ := json.Marshal(req)
		audit := &model.ActivityLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionUpdatePartner,
			EntityID:   partner.ID.String(),
			EntityName: partner.Name,
			Details:    string(details),
		}
		if auditErr := s.activityRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write activity log: %w", auditErr)
		}

		result = PartnerResult{Partner: partner, Warning: warning}
		return nil
	})
	if err != nil {
		return PartnerResult{}, err
	}

	return result, nil
}

// DeactivatePartner soft-deactivates the partner. Partners with recorded
// distributions keep their history; there is no hard delete path.
func (s *partnerService) DeactivatePartner(ctx context.Context, id, userID string) error {
	partnerID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid partner id", ErrValidation)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		partner, findErr := s.partnerRepo.FindByIDForUpdate(txCtx, partnerID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: partner not found", ErrNotFound)
			}
			return findErr
		}

		partner.IsActive = false
		if saveErr := s.partnerRepo.Update(txCtx, partner); saveErr != nil {
			return fmt.Errorf("failed to deactivate partner: %w", saveErr)
		}

		details, _ := json.Marshal(map[string]interface{}{"is_active": false})
		audit := &model.ActivityLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionDeactivatePartner,
			EntityID:   partner.ID.String(),
			EntityName: partner.Name,
			Details:    string(details),
		}
		return s.activityRepo.Log(txCtx, audit)
	})
}

func (s *partnerService) GetPartner(ctx context.Context, id string) (*model.Partner, error) {
	partnerID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid partner id", ErrValidation)
	}
	partner, err := s.partnerRepo.FindByID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: partner not found", ErrNotFound)
		}
		return nil, err
	}
	return partner, nil
}

func (s *partnerService) ListPartners(ctx context.Context, page, limit int, activeOnly bool) ([]model.Partner, int64, error) {
	return s.partnerRepo.List(ctx, page, limit, activeOnly)
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PartnerRepository interface {
	Create(ctx context.Context, partner *model.Partner) error
	Update(ctx context.Context, partner *model.Partner) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Partner, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Partner, error)
	List(ctx context.Context, page, limit int, activeOnly bool) ([]model.Partner, int64, error)
	ListActive(ctx context.Context) ([]model.Partner, error)
	ActiveShareSum(ctx context.Context, excludeID *uuid.UUID) (decimal.Decimal, error)
	HasDistributions(ctx context.Context, partnerID uuid.UUID) (bool, error)
}

type partnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &partnerRepository{db: db}
}

func (r *partnerRepository) Create(ctx context.Context, partner *model.Partner) error {
	return GetDB(ctx, r.db).Create(partner).Error
}

func (r *partnerRepository) Update(ctx context.Context, partner *model.Partner) error {
	return GetDB(ctx, r.db).Save(partner).Error
}

func (r *partnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Partner, error) {
	var partner model.Partner
	if err := GetDB(ctx, r.db).First(&partner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *partnerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Partner, error) {
	var partner model.Partner
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&partner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *partnerRepository) List(ctx context.Context, page, limit int, activeOnly bool) ([]model.Partner, int64, error) {
	var partners []model.Partner
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Partner{})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at asc").Offset(offset).Limit(limit).Find(&partners).Error; err != nil {
		return nil, 0, err
	}

	return partners, total, nil
}

func (r *partnerRepository) ListActive(ctx context.Context) ([]model.Partner, error) {
	var partners []model.Partner
	if err := GetDB(ctx, r.db).Where("is_active = ?", true).Order("created_at asc").Find(&partners).Error; err != nil {
		return nil, err
	}
	return partners, nil
}

// ActiveShareSum returns the sum of profit share percentages across active
// partners, optionally excluding one partner (the one being edited).
func (r *partnerRepository) ActiveShareSum(ctx context.Context, excludeID *uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Sum decimal.Decimal
	}
	db := GetDB(ctx, r.db).Model(&model.Partner{}).
		Select("COALESCE(SUM(profit_share_percentage), 0) as sum").
		Where("is_active = ?", true)
	if excludeID != nil {
		db = db.Where("id <> ?", *excludeID)
	}
	if err := db.Scan(&row).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum partner shares: %w", err)
	}
	return row.Sum, nil
}

func (r *partnerRepository) HasDistributions(ctx context.Context, partnerID uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.ProfitDistribution{}).
		Where("partner_id = ?", partnerID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type DistributionRepository interface {
	Create(ctx context.Context, dist *model.ProfitDistribution) error
	Update(ctx context.Context, dist *model.ProfitDistribution) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProfitDistribution, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ProfitDistribution, error)
	List(ctx context.Context, page, limit int, partnerID *uuid.UUID, status string) ([]model.ProfitDistribution, int64, error)
	ExistsOverlapping(ctx context.Context, partnerID uuid.UUID, start, end time.Time) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type distributionRepository struct {
	db *gorm.DB
}

func NewDistributionRepository(db *gorm.DB) DistributionRepository {
	return &distributionRepository{db: db}
}

func (r *distributionRepository) Create(ctx context.Context, dist *model.ProfitDistribution) error {
	return GetDB(ctx, r.db).Create(dist).Error
}

func (r *distributionRepository) Update(ctx context.Context, dist *model.ProfitDistribution) error {
	return GetDB(ctx, r.db).Save(dist).Error
}

func (r *distributionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ProfitDistribution, error) {
	var dist model.ProfitDistribution
	if err := GetDB(ctx, r.db).Preload("Partner").First(&dist, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dist, nil
}

func (r *distributionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ProfitDistribution, error) {
	var dist model.ProfitDistribution
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dist, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dist, nil
}

func (r *distributionRepository) List(ctx context.Context, page, limit int, partnerID *uuid.UUID, status string) ([]model.ProfitDistribution, int64, error) {
	var dists []model.ProfitDistribution
	var total int64

	db := GetDB(ctx, r.db).Model(&model.ProfitDistribution{})
	if partnerID != nil {
		db = db.Where("partner_id = ?", *partnerID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Partner").Order("created_at desc").Offset(offset).Limit(limit).Find(&dists).Error; err != nil {
		return nil, 0, err
	}

	return dists, total, nil
}

func (r *distributionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.ProfitDistribution{}).Error
}

// ExistsOverlapping reports whether the partner already has a distribution
// whose period overlaps [start, end]. Any row counts, REJECTED included: the
// partner+period unique index would refuse a second row for the same period
// anyway, so a rejected period has to be deleted before it can be re-run.
func (r *distributionRepository) ExistsOverlapping(ctx context.Context, partnerID uuid.UUID, start, end time.Time) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.ProfitDistribution{}).
		Where("partner_id = ? AND start_date <= ? AND end_date >= ?",
			partnerID, end, start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
